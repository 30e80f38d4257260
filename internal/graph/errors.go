package graph

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrUnknownNode is returned when a referenced concept is not in the graph.
	ErrUnknownNode = errors.New("unknown concept")

	// ErrUnknownEdge is returned when removing a relationship that does not exist.
	ErrUnknownEdge = errors.New("unknown relationship")

	// ErrNoPath is returned when the goal is unreachable from the start concept.
	ErrNoPath = errors.New("no learning path")
)

// blankPlaceholder stands in for empty names in batch errors.
const blankPlaceholder = "(blank)"

// UnknownConceptsError lists every linked concept that failed to resolve.
type UnknownConceptsError struct {
	Names []string
}

func newUnknownConceptsError(missing []string) *UnknownConceptsError {
	set := make(map[string]struct{}, len(missing))
	for _, m := range missing {
		name := strings.TrimSpace(m)
		if name == "" {
			name = blankPlaceholder
		}
		set[name] = struct{}{}
	}
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)
	return &UnknownConceptsError{Names: names}
}

func (e *UnknownConceptsError) Error() string {
	return fmt.Sprintf("unknown concepts: %s", strings.Join(e.Names, ", "))
}

// Is reports UnknownConceptsError as a batch form of ErrUnknownNode.
func (e *UnknownConceptsError) Is(target error) bool {
	return target == ErrUnknownNode
}
