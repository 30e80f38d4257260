package session

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/wonder/internal/graph"
)

func newTestGraph(t *testing.T) *graph.Store {
	t.Helper()
	g := graph.NewStore()
	g.AddNode(graph.Node{Name: "A", Description: "Alpha foundations"})
	g.AddNode(graph.Node{Name: "B", Description: "Beta concept"})
	g.AddNode(graph.Node{Name: "C", Description: "Gamma advanced"})
	require.NoError(t, g.AddRelationship("A", "B"))
	require.NoError(t, g.AddRelationship("B", "C"))
	return g
}

// stepClock returns a clock that advances one second per call.
func stepClock() func() time.Time {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	n := 0
	return func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Second)
	}
}

func strPtr(s string) *string { return &s }

func TestCreateSession(t *testing.T) {
	r := NewRegistry(newTestGraph(t))

	s, err := r.CreateSession(SessionInput{
		Name:           "  Deep dive ",
		Description:    "Focus on intermediate skills",
		FocusTags:      []string{"Intermediate", "practice", "intermediate", " "},
		LinkedConcepts: []string{"a", "B", "A"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, "Deep dive", s.Name)
	assert.Equal(t, []string{"intermediate", "practice"}, s.FocusTags)
	assert.Equal(t, []string{"A", "B"}, s.LinkedConcepts)
	assert.Equal(t, DefaultStatus, s.Status)
	assert.Nil(t, s.CurrentFocus)
	assert.False(t, s.CreatedAt.IsZero())
}

func TestCreateSession_CollectsAllUnknownConcepts(t *testing.T) {
	r := NewRegistry(newTestGraph(t))

	_, err := r.CreateSession(SessionInput{
		Name:           "Broken",
		LinkedConcepts: []string{"A", "zeta", "", "omega", "zeta"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, graph.ErrUnknownNode)

	var batch *graph.UnknownConceptsError
	require.True(t, errors.As(err, &batch))
	assert.Equal(t, []string{"(blank)", "omega", "zeta"}, batch.Names)
	assert.Empty(t, r.ListSessions(), "failed create must not store anything")
}

func TestCreateSession_EmptyName(t *testing.T) {
	r := NewRegistry(newTestGraph(t))
	_, err := r.CreateSession(SessionInput{Name: "   ", LinkedConcepts: []string{"A"}})
	assert.ErrorIs(t, err, ErrEmptyName)
	assert.Empty(t, r.ListSessions())
}

func TestUpdateSession(t *testing.T) {
	r := NewRegistry(newTestGraph(t))
	s, err := r.CreateSession(SessionInput{Name: "Deep dive", LinkedConcepts: []string{"A", "B"}})
	require.NoError(t, err)

	updated, err := r.UpdateSession(s.ID, SessionUpdate{
		Status:       strPtr("paused"),
		CurrentFocus: strPtr(" Review A "),
	})
	require.NoError(t, err)
	assert.Equal(t, "paused", updated.Status)
	require.NotNil(t, updated.CurrentFocus)
	assert.Equal(t, "Review A", *updated.CurrentFocus)

	// Blank status is ignored, blank focus clears.
	updated, err = r.UpdateSession(s.ID, SessionUpdate{
		Status:       strPtr("  "),
		CurrentFocus: strPtr(""),
	})
	require.NoError(t, err)
	assert.Equal(t, "paused", updated.Status)
	assert.Nil(t, updated.CurrentFocus)

	// Nil fields leave everything untouched.
	updated, err = r.UpdateSession(s.ID, SessionUpdate{})
	require.NoError(t, err)
	assert.Equal(t, "paused", updated.Status)

	got, err := r.GetSession(s.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestUpdateSession_Unknown(t *testing.T) {
	r := NewRegistry(newTestGraph(t))
	_, err := r.UpdateSession("nope", SessionUpdate{Status: strPtr("done")})
	assert.ErrorIs(t, err, ErrUnknownSession)

	_, err = r.GetSession("nope")
	assert.ErrorIs(t, err, ErrUnknownSession)
}

func TestListSessions_NewestFirst(t *testing.T) {
	r := NewRegistry(newTestGraph(t), WithClock(stepClock()))
	for _, name := range []string{"first", "second", "third"} {
		_, err := r.CreateSession(SessionInput{Name: name})
		require.NoError(t, err)
	}

	var got []string
	for _, s := range r.ListSessions() {
		got = append(got, s.Name)
	}
	assert.Equal(t, []string{"third", "second", "first"}, got)
}

func TestListSessions_SameTimestampKeepsInsertionOrder(t *testing.T) {
	fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	r := NewRegistry(newTestGraph(t), WithClock(func() time.Time { return fixed }))
	for _, name := range []string{"first", "second"} {
		_, err := r.CreateSession(SessionInput{Name: name})
		require.NoError(t, err)
	}
	list := r.ListSessions()
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Name)
}

func TestCreateCurriculum(t *testing.T) {
	r := NewRegistry(newTestGraph(t))

	c, err := r.CreateCurriculum(CurriculumInput{
		Title:          "Beta syllabus",
		Description:    "Outline for beta concept",
		Tags:           []string{"Intermediate"},
		SourceURL:      " https://example.com ",
		LinkedConcepts: []string{"b"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Beta syllabus", c.Title)
	assert.Equal(t, []string{"intermediate"}, c.Tags)
	require.NotNil(t, c.SourceURL)
	assert.Equal(t, "https://example.com", *c.SourceURL)
	assert.Equal(t, []string{"B"}, c.LinkedConcepts)

	got, err := r.GetCurriculum(c.ID)
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestCreateCurriculum_Validation(t *testing.T) {
	r := NewRegistry(newTestGraph(t))

	_, err := r.CreateCurriculum(CurriculumInput{Title: " "})
	assert.ErrorIs(t, err, ErrEmptyTitle)

	_, err = r.CreateCurriculum(CurriculumInput{Title: "x", LinkedConcepts: []string{"missing"}})
	assert.ErrorIs(t, err, graph.ErrUnknownNode)

	c, err := r.CreateCurriculum(CurriculumInput{Title: "no url", SourceURL: "   "})
	require.NoError(t, err)
	assert.Nil(t, c.SourceURL)

	_, err = r.GetCurriculum("nope")
	assert.ErrorIs(t, err, ErrUnknownCurriculum)
}

func TestListCurricula_NewestFirst(t *testing.T) {
	r := NewRegistry(newTestGraph(t), WithClock(stepClock()))
	for _, title := range []string{"one", "two"} {
		_, err := r.CreateCurriculum(CurriculumInput{Title: title})
		require.NoError(t, err)
	}
	list := r.ListCurricula()
	require.Len(t, list, 2)
	assert.Equal(t, "two", list[0].Title)
	assert.Equal(t, "one", list[1].Title)
}

func TestRegistry_RevalidatesAgainstLiveGraph(t *testing.T) {
	g := newTestGraph(t)
	r := NewRegistry(g)

	require.NoError(t, g.RemoveNode("C"))
	_, err := r.CreateSession(SessionInput{Name: "late", LinkedConcepts: []string{"C"}})
	assert.ErrorIs(t, err, graph.ErrUnknownNode)
}
