package graph

import "github.com/abhisek/wonder/internal/keys"

// Node represents a single concept in the knowledge graph.
type Node struct {
	Name        string
	Description string
	Tags        []string
}

// Key returns the canonical identity of the node.
func (n Node) Key() keys.Key {
	return keys.Of(n.Name)
}

func (n Node) clone() Node {
	n.Tags = append([]string(nil), n.Tags...)
	return n
}

// Relationship is a directed prerequisite edge: Target depends on Source.
type Relationship struct {
	Source Node
	Target Node
}

// NodeDetail bundles a node with its resolved neighbourhood.
type NodeDetail struct {
	Node          Node
	Prerequisites []Node
	Dependents    []Node
}
