package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/wonder/internal/graph"
	"github.com/abhisek/wonder/internal/session"
	"github.com/abhisek/wonder/internal/share"
)

// stores applies a catalog straight onto the in-memory stores.
type stores struct {
	graph    *graph.Store
	sessions *session.Registry
	shares   *share.Registry
}

func newStores() *stores {
	g := graph.NewStore()
	return &stores{graph: g, sessions: session.NewRegistry(g), shares: share.NewRegistry(g)}
}

func (s *stores) AddConcept(_ context.Context, n graph.Node) graph.Node {
	return s.graph.AddNode(n)
}

func (s *stores) AddRelationship(_ context.Context, source, target string) error {
	return s.graph.AddRelationship(source, target)
}

func (s *stores) CreateSession(_ context.Context, in session.SessionInput) (session.LearningSession, error) {
	return s.sessions.CreateSession(in)
}

func (s *stores) UpdateSession(_ context.Context, id string, upd session.SessionUpdate) (session.LearningSession, error) {
	return s.sessions.UpdateSession(id, upd)
}

func (s *stores) CreateCurriculum(_ context.Context, in session.CurriculumInput) (session.Curriculum, error) {
	return s.sessions.CreateCurriculum(in)
}

func (s *stores) PublishShare(_ context.Context, in share.PublishInput) (share.IdeaShare, error) {
	return s.shares.Publish(in)
}

func (s *stores) AuthorizeShare(_ context.Context, id string, handles []string) (share.IdeaShare, error) {
	return s.shares.Authorize(id, handles)
}

func TestDefault(t *testing.T) {
	cat := Default()
	assert.Len(t, cat.Concepts, 4)
	assert.Len(t, cat.Relationships, 4)
	require.Len(t, cat.Sessions, 1)
	assert.Equal(t, "Full-stack Python sprint", cat.Sessions[0].Name)
	require.Len(t, cat.Curricula, 1)
	assert.Equal(t, "https://fastapi.tiangolo.com/", cat.Curricula[0].SourceURL)
	require.Len(t, cat.Shares, 1)
	assert.Equal(t, "public", cat.Shares[0].Visibility)
}

func TestApplyDefault(t *testing.T) {
	s := newStores()
	require.NoError(t, Apply(context.Background(), s, Default()))

	assert.Equal(t, 4, s.graph.Len())
	require.NoError(t, s.graph.Validate())

	path, err := s.graph.ShortestPath("programming fundamentals", "fastapi")
	require.NoError(t, err)
	assert.Len(t, path, 3)

	prereqs, err := s.graph.Prerequisites("FastAPI")
	require.NoError(t, err)
	assert.Len(t, prereqs, 3)

	sessions := s.sessions.ListSessions()
	require.Len(t, sessions, 1)
	require.NotNil(t, sessions[0].CurrentFocus)
	assert.Equal(t, "FastAPI", *sessions[0].CurrentFocus)
	assert.Equal(t, "active", sessions[0].Status)
	assert.Len(t, s.sessions.ListCurricula(), 1)
	assert.Len(t, s.shares.List(""), 1)
}

func TestParse(t *testing.T) {
	cat, err := Parse([]byte(`
concepts:
  - name: Go
    tags: [lang]
  - name: Goroutines
relationships:
  - {source: Go, target: Goroutines}
shares:
  - author: gopher
    title: Channels
    summary: Notes on channels
    tags: [concurrency]
    visibility: connections
    authorized_handles: [friend]
`))
	require.NoError(t, err)
	assert.Len(t, cat.Concepts, 2)
	assert.Equal(t, []string{"lang"}, cat.Concepts[0].Tags)
	assert.Equal(t, Relationship{Source: "Go", Target: "Goroutines"}, cat.Relationships[0])
	assert.Equal(t, []string{"friend"}, cat.Shares[0].AuthorizedHandles)
}

func TestParse_Empty(t *testing.T) {
	cat, err := Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, cat.Concepts)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not yaml", "concepts: [unclosed"},
		{"scalar document", "hello"},
		{"unknown section", "lessons: []"},
		{"concept without name", "concepts:\n  - description: nameless"},
		{"blank concept name", "concepts:\n  - name: '   '"},
		{"relationship missing target", "relationships:\n  - source: A"},
		{"bad visibility", "shares:\n  - {author: a, title: t, summary: s, tags: [x], visibility: friends}"},
		{"share without tags", "shares:\n  - {author: a, title: t, summary: s}"},
		{"tags not a list", "concepts:\n  - {name: A, tags: web}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestApply_StopsAtFirstError(t *testing.T) {
	cat := &Catalog{
		Concepts:      []Concept{{Name: "A"}, {Name: "B"}},
		Relationships: []Relationship{{Source: "A", Target: "B"}, {Source: "B", Target: "missing"}},
		Sessions:      []Session{{Name: "never created"}},
	}
	s := newStores()

	err := Apply(context.Background(), s, cat)
	require.Error(t, err)
	assert.ErrorIs(t, err, graph.ErrUnknownNode)
	assert.Contains(t, err.Error(), "relationships[1]")
	assert.Empty(t, s.sessions.ListSessions())
}

func TestApply_ShareErrorsSurface(t *testing.T) {
	cat := &Catalog{
		Concepts: []Concept{{Name: "A"}},
		Shares:   []Share{{Author: "a", Title: "t", Summary: "s", Tags: []string{"x"}, LinkedConcepts: []string{"zzz"}}},
	}
	err := Apply(context.Background(), newStores(), cat)
	assert.ErrorIs(t, err, share.ErrUnknownConcept)
	assert.Contains(t, err.Error(), "shares[0]")
}

func TestApply_SessionUpdatesAndGrants(t *testing.T) {
	cat, err := Parse([]byte(`
concepts:
  - {name: A}
sessions:
  - {name: Sprint, linked_concepts: [A], status: paused, current_focus: A}
  - {name: Plain}
shares:
  - author: ana
    title: Notes
    summary: Working notes
    tags: [go]
    visibility: connections
    authorized_handles: [Bob]
    grants: [Cleo, bob]
`))
	require.NoError(t, err)

	s := newStores()
	require.NoError(t, Apply(context.Background(), s, cat))

	byName := map[string]session.LearningSession{}
	for _, ls := range s.sessions.ListSessions() {
		byName[ls.Name] = ls
	}
	assert.Equal(t, "paused", byName["Sprint"].Status)
	require.NotNil(t, byName["Sprint"].CurrentFocus)
	assert.Equal(t, "A", *byName["Sprint"].CurrentFocus)
	assert.Equal(t, "active", byName["Plain"].Status)
	assert.Nil(t, byName["Plain"].CurrentFocus)

	assert.Len(t, s.shares.List("cleo"), 1, "granted handle sees the share")
	shares := s.shares.List("ana")
	require.Len(t, shares, 1)
	assert.Equal(t, []string{"bob", "cleo"}, shares[0].AuthorizedHandles)
	assert.Empty(t, s.shares.List("dave"))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("concepts:\n  - name: Solo\n"), 0o644))

	cat, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cat.Concepts, 1)
	assert.Equal(t, "Solo", cat.Concepts[0].Name)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
