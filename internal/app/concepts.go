package app

import (
	"context"

	"github.com/abhisek/wonder/internal/graph"
	"github.com/abhisek/wonder/internal/store"
)

// AddConcept inserts or merges a concept.
func (e *Engine) AddConcept(ctx context.Context, node graph.Node) graph.Node {
	stored := e.graph.AddNode(node)
	e.log.Debug("concept added", "concept", stored.Name, "tags", stored.Tags)
	e.record("concept", func(j store.EventRepo) error {
		return j.AppendConceptEvent(ctx, store.ConceptEventData{Action: store.ConceptAdded, Concept: stored.Name})
	})
	return stored
}

// AddRelationship records that source must be learned before target.
func (e *Engine) AddRelationship(ctx context.Context, source, target string) error {
	if err := e.graph.AddRelationship(source, target); err != nil {
		return err
	}
	e.logEdge(ctx, store.RelationshipAdded, source, target)
	return nil
}

// RemoveRelationship deletes the edge source -> target.
func (e *Engine) RemoveRelationship(ctx context.Context, source, target string) error {
	if err := e.graph.RemoveRelationship(source, target); err != nil {
		return err
	}
	e.logEdge(ctx, store.RelationshipRemoved, source, target)
	return nil
}

// RemoveConcept deletes a concept and every edge touching it.
func (e *Engine) RemoveConcept(ctx context.Context, name string) error {
	n, err := e.graph.Lookup(name)
	if err != nil {
		return err
	}
	if err := e.graph.RemoveNode(n.Name); err != nil {
		return err
	}
	e.log.Debug("concept removed", "concept", n.Name)
	e.record("concept", func(j store.EventRepo) error {
		return j.AppendConceptEvent(ctx, store.ConceptEventData{Action: store.ConceptRemoved, Concept: n.Name})
	})
	return nil
}

func (e *Engine) logEdge(ctx context.Context, action, source, target string) {
	// Prefer display names; keep the raw input if a node vanished meanwhile.
	if n, ok := e.graph.GetNode(source); ok {
		source = n.Name
	}
	if n, ok := e.graph.GetNode(target); ok {
		target = n.Name
	}
	e.log.Debug("relationship "+action, "source", source, "target", target)
	e.record("relationship", func(j store.EventRepo) error {
		return j.AppendConceptEvent(ctx, store.ConceptEventData{Action: action, Concept: source, Target: target})
	})
}

// Concepts lists every concept sorted by name.
func (e *Engine) Concepts() []graph.Node {
	return e.graph.ListNodes()
}

// Concept returns a concept with its transitive prerequisites and direct
// dependents.
func (e *Engine) Concept(name string) (graph.NodeDetail, error) {
	return e.graph.Detail(name)
}

// Relationships lists every edge.
func (e *Engine) Relationships() []graph.Relationship {
	return e.graph.ListRelationships()
}

// ShortestPath returns the fewest-hop learning path from start to goal.
func (e *Engine) ShortestPath(start, goal string) ([]graph.Node, error) {
	return e.graph.ShortestPath(start, goal)
}

// Prerequisites returns every transitive prerequisite of name.
func (e *Engine) Prerequisites(name string) ([]graph.Node, error) {
	return e.graph.Prerequisites(name)
}

// DirectPrerequisites returns the concepts name builds on directly.
func (e *Engine) DirectPrerequisites(name string) ([]graph.Node, error) {
	return e.graph.DirectPrerequisites(name)
}

// Dependents returns the concepts that directly build on name.
func (e *Engine) Dependents(name string) ([]graph.Node, error) {
	return e.graph.Dependents(name)
}
