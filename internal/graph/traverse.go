package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/abhisek/wonder/internal/keys"
)

// Prerequisites returns every transitive prerequisite of name in breadth-first,
// first-seen order. The first entry is the nearest prerequisite; quiz
// generation relies on that ordering.
func (s *Store) Prerequisites(name string) ([]Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key := keys.Of(name)
	if _, ok := s.nodes[key]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownNode, name)
	}
	return s.prerequisites(key), nil
}

// Dependents returns the concepts that directly depend on name, sorted by
// display name. Unlike Prerequisites this is not transitive.
func (s *Store) Dependents(name string) ([]Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key := keys.Of(name)
	if _, ok := s.nodes[key]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownNode, name)
	}
	return s.dependents(key), nil
}

// DirectPrerequisites returns the concepts name builds on directly, sorted by
// display name.
func (s *Store) DirectPrerequisites(name string) ([]Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key := keys.Of(name)
	if _, ok := s.nodes[key]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownNode, name)
	}
	return byName(s.nodeList(sortedKeys(s.reverse[key]))), nil
}

func (s *Store) prerequisites(key keys.Key) []Node {
	visited := make(map[keys.Key]bool)
	var order []keys.Key

	frontier := sortedKeys(s.reverse[key])
	for len(frontier) > 0 {
		current := frontier[0]
		frontier = frontier[1:]
		if visited[current] {
			continue
		}
		visited[current] = true
		order = append(order, current)
		for _, parent := range sortedKeys(s.reverse[current]) {
			if !visited[parent] {
				frontier = append(frontier, parent)
			}
		}
	}
	return s.nodeList(order)
}

func (s *Store) dependents(key keys.Key) []Node {
	return byName(s.nodeList(sortedKeys(s.edges[key])))
}

func byName(nodes []Node) []Node {
	sort.SliceStable(nodes, func(i, j int) bool {
		return strings.ToLower(nodes[i].Name) < strings.ToLower(nodes[j].Name)
	})
	return nodes
}
