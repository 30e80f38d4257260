package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/wonder/internal/keys"
)

// Curriculum is an uploaded study outline linked to graph concepts. It is
// immutable once created.
type Curriculum struct {
	ID             string
	Title          string
	Description    string
	Tags           []string
	SourceURL      *string
	LinkedConcepts []string
	UploadedAt     time.Time
}

func (c Curriculum) clone() Curriculum {
	c.Tags = append([]string(nil), c.Tags...)
	c.LinkedConcepts = append([]string(nil), c.LinkedConcepts...)
	if c.SourceURL != nil {
		u := *c.SourceURL
		c.SourceURL = &u
	}
	return c
}

// CurriculumInput holds the fields needed to upload a curriculum.
type CurriculumInput struct {
	Title          string
	Description    string
	Tags           []string
	SourceURL      string
	LinkedConcepts []string
}

// CreateCurriculum validates the input against the graph and stores a new curriculum.
func (r *Registry) CreateCurriculum(in CurriculumInput) (Curriculum, error) {
	linked, err := r.concepts.Resolve(in.LinkedConcepts)
	if err != nil {
		return Curriculum{}, fmt.Errorf("curriculum concepts: %w", err)
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return Curriculum{}, ErrEmptyTitle
	}

	c := Curriculum{
		ID:             uuid.NewString(),
		Title:          title,
		Description:    strings.TrimSpace(in.Description),
		Tags:           keys.Tags(in.Tags),
		LinkedConcepts: linked,
		UploadedAt:     r.now(),
	}
	if u := strings.TrimSpace(in.SourceURL); u != "" {
		c.SourceURL = &u
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	r.curricula[c.ID] = &entry[Curriculum]{seq: r.seq, value: c}
	return c.clone(), nil
}

// GetCurriculum returns the curriculum with the given id.
func (r *Registry) GetCurriculum(id string) (Curriculum, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.curricula[id]
	if !ok {
		return Curriculum{}, fmt.Errorf("%w: %s", ErrUnknownCurriculum, id)
	}
	return e.value.clone(), nil
}

// ListCurricula returns all curricula, most recently uploaded first.
func (r *Registry) ListCurricula() []Curriculum {
	r.mu.RLock()
	entries := make([]*entry[Curriculum], 0, len(r.curricula))
	for _, e := range r.curricula {
		entries = append(entries, &entry[Curriculum]{seq: e.seq, value: e.value.clone()})
	}
	r.mu.RUnlock()

	return newestFirst(entries, func(c Curriculum) time.Time { return c.UploadedAt })
}
