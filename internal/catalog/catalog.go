// Package catalog loads starter content (concepts, relationships, sessions,
// curricula and shares) from YAML and applies it to a running engine.
package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/wonder/internal/graph"
	"github.com/abhisek/wonder/internal/session"
	"github.com/abhisek/wonder/internal/share"
)

//go:embed schema.json
var schemaJSON []byte

//go:embed seed.yaml
var seedYAML []byte

const schemaURL = "schema://catalog.json"

// Catalog is the decoded YAML document.
type Catalog struct {
	Concepts      []Concept      `yaml:"concepts"`
	Relationships []Relationship `yaml:"relationships"`
	Sessions      []Session      `yaml:"sessions"`
	Curricula     []Curriculum   `yaml:"curricula"`
	Shares        []Share        `yaml:"shares"`
}

type Concept struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags"`
}

type Relationship struct {
	Source string `yaml:"source"`
	Target string `yaml:"target"`
}

// Session is created as given; Status and CurrentFocus, when set, are
// applied as an update right after.
type Session struct {
	Name           string   `yaml:"name"`
	Description    string   `yaml:"description"`
	FocusTags      []string `yaml:"focus_tags"`
	LinkedConcepts []string `yaml:"linked_concepts"`
	Status         string   `yaml:"status"`
	CurrentFocus   string   `yaml:"current_focus"`
}

type Curriculum struct {
	Title          string   `yaml:"title"`
	Description    string   `yaml:"description"`
	Tags           []string `yaml:"tags"`
	SourceURL      string   `yaml:"source_url"`
	LinkedConcepts []string `yaml:"linked_concepts"`
}

// Share is published with AuthorizedHandles; Grants are authorized
// afterwards as a separate step.
type Share struct {
	Author            string   `yaml:"author"`
	Title             string   `yaml:"title"`
	Summary           string   `yaml:"summary"`
	Tags              []string `yaml:"tags"`
	LinkedConcepts    []string `yaml:"linked_concepts"`
	Visibility        string   `yaml:"visibility"`
	AuthorizedHandles []string `yaml:"authorized_handles"`
	Grants            []string `yaml:"grants"`
}

// Target is the engine surface a catalog is applied to.
type Target interface {
	AddConcept(ctx context.Context, node graph.Node) graph.Node
	AddRelationship(ctx context.Context, source, target string) error
	CreateSession(ctx context.Context, in session.SessionInput) (session.LearningSession, error)
	UpdateSession(ctx context.Context, id string, upd session.SessionUpdate) (session.LearningSession, error)
	CreateCurriculum(ctx context.Context, in session.CurriculumInput) (session.Curriculum, error)
	PublishShare(ctx context.Context, in share.PublishInput) (share.IdeaShare, error)
	AuthorizeShare(ctx context.Context, id string, handles []string) (share.IdeaShare, error)
}

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("parse catalog schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(schemaURL)
})

// Parse decodes a YAML catalog and validates its shape. An empty document
// is an empty catalog.
func Parse(data []byte) (*Catalog, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if raw == nil {
		return &Catalog{}, nil
	}

	if err := validate(raw); err != nil {
		return nil, err
	}

	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return &cat, nil
}

// Load reads and parses the catalog file at path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	cat, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cat, nil
}

// Default returns the embedded starter catalog.
func Default() *Catalog {
	cat, err := Parse(seedYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded seed catalog: %v", err))
	}
	return cat
}

// validate round-trips the YAML value through JSON so the schema sees plain
// JSON types.
func validate(raw any) error {
	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile catalog schema: %w", err)
	}

	b, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("catalog is not representable as JSON: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("catalog is not representable as JSON: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("catalog validation failed: %w", err)
	}
	return nil
}

// Apply loads cat into t: concepts first, then relationships, sessions,
// curricula and shares. It stops at the first error.
func Apply(ctx context.Context, t Target, cat *Catalog) error {
	for _, c := range cat.Concepts {
		t.AddConcept(ctx, graph.Node{Name: c.Name, Description: c.Description, Tags: c.Tags})
	}
	for i, r := range cat.Relationships {
		if err := t.AddRelationship(ctx, r.Source, r.Target); err != nil {
			return fmt.Errorf("relationships[%d]: %w", i, err)
		}
	}
	for i, s := range cat.Sessions {
		created, err := t.CreateSession(ctx, session.SessionInput{
			Name:           s.Name,
			Description:    s.Description,
			FocusTags:      s.FocusTags,
			LinkedConcepts: s.LinkedConcepts,
		})
		if err != nil {
			return fmt.Errorf("sessions[%d]: %w", i, err)
		}
		if upd, ok := sessionUpdate(s); ok {
			if _, err := t.UpdateSession(ctx, created.ID, upd); err != nil {
				return fmt.Errorf("sessions[%d]: update: %w", i, err)
			}
		}
	}
	for i, c := range cat.Curricula {
		_, err := t.CreateCurriculum(ctx, session.CurriculumInput{
			Title:          c.Title,
			Description:    c.Description,
			Tags:           c.Tags,
			SourceURL:      c.SourceURL,
			LinkedConcepts: c.LinkedConcepts,
		})
		if err != nil {
			return fmt.Errorf("curricula[%d]: %w", i, err)
		}
	}
	for i, s := range cat.Shares {
		published, err := t.PublishShare(ctx, share.PublishInput{
			Author:            s.Author,
			Title:             s.Title,
			Summary:           s.Summary,
			Tags:              s.Tags,
			LinkedConcepts:    s.LinkedConcepts,
			Visibility:        s.Visibility,
			AuthorizedHandles: s.AuthorizedHandles,
		})
		if err != nil {
			return fmt.Errorf("shares[%d]: %w", i, err)
		}
		if len(s.Grants) > 0 {
			if _, err := t.AuthorizeShare(ctx, published.ID, s.Grants); err != nil {
				return fmt.Errorf("shares[%d]: grants: %w", i, err)
			}
		}
	}
	return nil
}

func sessionUpdate(s Session) (session.SessionUpdate, bool) {
	var upd session.SessionUpdate
	if s.Status != "" {
		upd.Status = &s.Status
	}
	if s.CurrentFocus != "" {
		upd.CurrentFocus = &s.CurrentFocus
	}
	return upd, upd.Status != nil || upd.CurrentFocus != nil
}
