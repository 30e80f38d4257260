package graph

import (
	"fmt"
	"strings"

	"github.com/abhisek/wonder/internal/keys"
)

// Roots returns all concepts with no prerequisites, sorted by display name.
func (s *Store) Roots() []Node {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []Node
	for key, n := range s.nodes {
		if len(s.reverse[key]) == 0 {
			result = append(result, n.clone())
		}
	}
	sortNodes(result)
	return result
}

// TopologicalOrder returns the concepts in a valid study order (Kahn's
// algorithm, ties broken by key). Concepts caught in a cycle are omitted.
func (s *Store) TopologicalOrder() []Node {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, _ := s.kahn()
	return s.nodeList(order)
}

// Validate checks the graph for structural issues: index drift between the
// forward and reverse edge sets, and prerequisite cycles. It returns one
// combined error describing every problem found, or nil.
func (s *Store) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var errs []string

	for src, targets := range s.edges {
		for tgt := range targets {
			if _, ok := s.nodes[tgt]; !ok {
				errs = append(errs, fmt.Sprintf("concept %q references nonexistent dependent %q", src, tgt))
				continue
			}
			if _, ok := s.reverse[tgt][src]; !ok {
				errs = append(errs, fmt.Sprintf("edge %q -> %q missing from reverse index", src, tgt))
			}
		}
	}
	for tgt, sources := range s.reverse {
		for src := range sources {
			if _, ok := s.edges[src][tgt]; !ok {
				errs = append(errs, fmt.Sprintf("reverse edge %q -> %q missing from forward index", src, tgt))
			}
		}
	}

	if _, cyclic := s.kahn(); len(cyclic) > 0 {
		names := make([]string, 0, len(cyclic))
		for _, n := range s.nodeList(cyclic) {
			names = append(names, n.Name)
		}
		errs = append(errs, fmt.Sprintf("cycle detected involving concepts: %s", strings.Join(names, ", ")))
	}

	if len(errs) > 0 {
		return fmt.Errorf("concept graph validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// kahn returns the topological order and the keys left over because they sit
// on or behind a cycle. Callers must hold the lock.
func (s *Store) kahn() (order, cyclic []keys.Key) {
	inDegree := make(map[keys.Key]int, len(s.nodes))
	all := make(keySet, len(s.nodes))
	for key := range s.nodes {
		inDegree[key] = len(s.reverse[key])
		all[key] = struct{}{}
	}

	var queue []keys.Key
	for _, key := range sortedKeys(all) {
		if inDegree[key] == 0 {
			queue = append(queue, key)
		}
	}

	for len(queue) > 0 {
		key := queue[0]
		queue = queue[1:]
		order = append(order, key)
		for _, dep := range sortedKeys(s.edges[key]) {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}

	for _, key := range sortedKeys(all) {
		if inDegree[key] > 0 {
			cyclic = append(cyclic, key)
		}
	}
	return order, cyclic
}
