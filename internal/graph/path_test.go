package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/wonder/internal/keys"
)

func TestShortestPath_Chain(t *testing.T) {
	s := newChain(t)
	path, err := s.ShortestPath("A", "C")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, names(path))
}

func TestShortestPath_SameNode(t *testing.T) {
	s := newChain(t)
	path, err := s.ShortestPath("b", "B")
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, names(path))
}

func TestShortestPath_DirectionMatters(t *testing.T) {
	s := newChain(t)
	_, err := s.ShortestPath("C", "A")
	assert.ErrorIs(t, err, ErrNoPath)
}

func TestShortestPath_UnknownEndpoint(t *testing.T) {
	s := newChain(t)
	_, err := s.ShortestPath("A", "Z")
	assert.ErrorIs(t, err, ErrUnknownNode)
	_, err = s.ShortestPath("Z", "A")
	assert.ErrorIs(t, err, ErrUnknownNode)
}

func TestShortestPath_PrefersFewestHops(t *testing.T) {
	s := NewStore()
	for _, n := range []string{"Fundamentals", "Python", "REST APIs", "FastAPI", "Deploy"} {
		s.AddNode(Node{Name: n})
	}
	edges := [][2]string{
		{"Fundamentals", "Python"},
		{"Python", "FastAPI"},
		{"Fundamentals", "REST APIs"},
		{"REST APIs", "FastAPI"},
		{"FastAPI", "Deploy"},
		{"Fundamentals", "Deploy"},
	}
	for _, e := range edges {
		require.NoError(t, s.AddRelationship(e[0], e[1]))
	}

	path, err := s.ShortestPath("fundamentals", "deploy")
	require.NoError(t, err)
	assert.Equal(t, []string{"Fundamentals", "Deploy"}, names(path))

	path, err = s.ShortestPath("Fundamentals", "FastAPI")
	require.NoError(t, err)
	require.Len(t, path, 3)
	assertRealPath(t, s, path, "Fundamentals", "FastAPI")

	// Repeated calls break ties identically.
	again, err := s.ShortestPath("Fundamentals", "FastAPI")
	require.NoError(t, err)
	assert.Equal(t, names(path), names(again))
}

func TestShortestPath_EveryReachablePairIsARealPath(t *testing.T) {
	s := NewStore()
	nodes := []string{"a", "b", "c", "d", "e", "f"}
	for _, n := range nodes {
		s.AddNode(Node{Name: n})
	}
	for _, e := range [][2]string{{"a", "b"}, {"b", "c"}, {"a", "d"}, {"d", "c"}, {"c", "e"}, {"e", "b"}} {
		require.NoError(t, s.AddRelationship(e[0], e[1]))
	}

	for _, start := range nodes {
		for _, goal := range nodes {
			path, err := s.ShortestPath(start, goal)
			if err != nil {
				assert.ErrorIs(t, err, ErrNoPath, "%s -> %s", start, goal)
				continue
			}
			assertRealPath(t, s, path, start, goal)
		}
	}

	_, err := s.ShortestPath("a", "f")
	assert.ErrorIs(t, err, ErrNoPath)
}

func assertRealPath(t *testing.T, s *Store, path []Node, start, goal string) {
	t.Helper()
	require.NotEmpty(t, path)
	assert.Equal(t, keys.Of(start), path[0].Key())
	assert.Equal(t, keys.Of(goal), path[len(path)-1].Key())

	edges := make(map[[2]keys.Key]bool)
	for _, r := range s.ListRelationships() {
		edges[[2]keys.Key{r.Source.Key(), r.Target.Key()}] = true
	}
	for i := 1; i < len(path); i++ {
		assert.True(t, edges[[2]keys.Key{path[i-1].Key(), path[i].Key()}],
			"%s -> %s is not an edge", path[i-1].Name, path[i].Name)
	}
}
