// Package graph holds the in-memory concept graph and its traversal algorithms.
package graph

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/abhisek/wonder/internal/keys"
)

type keySet map[keys.Key]struct{}

// Store holds the concept graph: nodes, prerequisite edges and the mirrored
// reverse index. All methods are safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	nodes   map[keys.Key]*Node
	edges   map[keys.Key]keySet // source -> targets
	reverse map[keys.Key]keySet // target -> sources
}

// NewStore creates an empty graph.
func NewStore() *Store {
	return &Store{
		nodes:   make(map[keys.Key]*Node),
		edges:   make(map[keys.Key]keySet),
		reverse: make(map[keys.Key]keySet),
	}
}

// AddNode inserts a node or merges it into the existing node with the same key.
// A non-empty description overwrites; tags are unioned.
func (s *Store) AddNode(node Node) Node {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := node.Key()
	existing, ok := s.nodes[key]
	if !ok {
		n := Node{
			Name:        strings.TrimSpace(node.Name),
			Description: node.Description,
			Tags:        keys.Tags(node.Tags),
		}
		s.nodes[key] = &n
		s.edges[key] = make(keySet)
		s.reverse[key] = make(keySet)
		return n.clone()
	}

	if node.Description != "" {
		existing.Description = node.Description
	}
	if len(node.Tags) > 0 {
		existing.Tags = keys.Union(existing.Tags, keys.Tags(node.Tags))
	}
	return existing.clone()
}

// AddRelationship records that target depends on source. Adding an existing
// edge is a no-op.
func (s *Store) AddRelationship(source, target string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	src, tgt, err := s.endpoints(source, target)
	if err != nil {
		return err
	}
	s.edges[src][tgt] = struct{}{}
	s.reverse[tgt][src] = struct{}{}
	return nil
}

// RemoveRelationship deletes the edge source -> target.
func (s *Store) RemoveRelationship(source, target string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	src, tgt, err := s.endpoints(source, target)
	if err != nil {
		return err
	}
	if _, ok := s.edges[src][tgt]; !ok {
		return fmt.Errorf("%w: %s -> %s", ErrUnknownEdge, source, target)
	}
	delete(s.edges[src], tgt)
	delete(s.reverse[tgt], src)
	return nil
}

// RemoveNode deletes a node after detaching every edge that touches it.
func (s *Store) RemoveNode(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := keys.Of(name)
	if _, ok := s.nodes[key]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownNode, name)
	}
	for pred := range s.reverse[key] {
		delete(s.edges[pred], key)
	}
	for succ := range s.edges[key] {
		delete(s.reverse[succ], key)
	}
	delete(s.edges, key)
	delete(s.reverse, key)
	delete(s.nodes, key)
	return nil
}

// GetNode returns the node for name, if present.
func (s *Store) GetNode(name string) (Node, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.nodes[keys.Of(name)]
	if !ok {
		return Node{}, false
	}
	return n.clone(), true
}

// Lookup returns the node for name or ErrUnknownNode.
func (s *Store) Lookup(name string) (Node, error) {
	n, ok := s.GetNode(name)
	if !ok {
		return Node{}, fmt.Errorf("%w: %q", ErrUnknownNode, name)
	}
	return n, nil
}

// Len returns the number of nodes.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.nodes)
}

// ListNodes returns all nodes sorted case-insensitively by display name.
func (s *Store) ListNodes() []Node {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Node, 0, len(s.nodes))
	for _, n := range s.nodes {
		result = append(result, n.clone())
	}
	sortNodes(result)
	return result
}

// ListRelationships returns every edge sorted by (source, target), case-insensitive.
func (s *Store) ListRelationships() []Relationship {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []Relationship
	for src, targets := range s.edges {
		for tgt := range targets {
			result = append(result, Relationship{
				Source: s.nodes[src].clone(),
				Target: s.nodes[tgt].clone(),
			})
		}
	}
	sort.Slice(result, func(i, j int) bool {
		si, sj := strings.ToLower(result[i].Source.Name), strings.ToLower(result[j].Source.Name)
		if si != sj {
			return si < sj
		}
		return strings.ToLower(result[i].Target.Name) < strings.ToLower(result[j].Target.Name)
	})
	return result
}

// Resolve maps concept names to their canonical display names, dropping
// duplicates while keeping first-occurrence order. Every name that does not
// resolve is reported in a single *UnknownConceptsError.
func (s *Store) Resolve(names []string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var missing []string
	resolved := make([]string, 0, len(names))
	seen := make(map[keys.Key]bool, len(names))
	for _, name := range names {
		key := keys.Of(name)
		n, ok := s.nodes[key]
		if !ok {
			missing = append(missing, name)
			continue
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		resolved = append(resolved, n.Name)
	}
	if len(missing) > 0 {
		return nil, newUnknownConceptsError(missing)
	}
	return resolved, nil
}

// Detail returns a node together with its prerequisites and dependents.
func (s *Store) Detail(name string) (NodeDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key := keys.Of(name)
	n, ok := s.nodes[key]
	if !ok {
		return NodeDetail{}, fmt.Errorf("%w: %q", ErrUnknownNode, name)
	}
	return NodeDetail{
		Node:          n.clone(),
		Prerequisites: s.prerequisites(key),
		Dependents:    s.dependents(key),
	}, nil
}

// endpoints resolves both edge endpoints. Callers must hold the lock.
func (s *Store) endpoints(source, target string) (keys.Key, keys.Key, error) {
	src, tgt := keys.Of(source), keys.Of(target)
	if _, ok := s.nodes[src]; !ok {
		return "", "", fmt.Errorf("%w: source %q", ErrUnknownNode, source)
	}
	if _, ok := s.nodes[tgt]; !ok {
		return "", "", fmt.Errorf("%w: target %q", ErrUnknownNode, target)
	}
	return src, tgt, nil
}

func (s *Store) nodeList(ks []keys.Key) []Node {
	result := make([]Node, 0, len(ks))
	for _, k := range ks {
		result = append(result, s.nodes[k].clone())
	}
	return result
}

// sortedKeys returns the members of set in ascending key order, which gives
// traversals a deterministic sibling order.
func sortedKeys(set keySet) []keys.Key {
	out := make([]keys.Key, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func sortNodes(nodes []Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return strings.ToLower(nodes[i].Name) < strings.ToLower(nodes[j].Name)
	})
}
