package graph

import (
	"fmt"

	"github.com/abhisek/wonder/internal/keys"
)

// ShortestPath returns the concepts on a shortest learning path from start to
// goal, both inclusive. Neighbours are explored in key order so ties resolve
// the same way on every call.
func (s *Store) ShortestPath(start, goal string) ([]Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	startKey, goalKey, err := s.endpoints(start, goal)
	if err != nil {
		return nil, err
	}

	parents := map[keys.Key]keys.Key{startKey: ""}
	queue := []keys.Key{startKey}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current == goalKey {
			break
		}
		for _, next := range sortedKeys(s.edges[current]) {
			if _, seen := parents[next]; seen {
				continue
			}
			parents[next] = current
			queue = append(queue, next)
		}
	}

	if _, ok := parents[goalKey]; !ok {
		return nil, fmt.Errorf("%w between %q and %q", ErrNoPath,
			s.nodes[startKey].Name, s.nodes[goalKey].Name)
	}

	var path []keys.Key
	for k := goalKey; ; k = parents[k] {
		path = append(path, k)
		if k == startKey {
			break
		}
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return s.nodeList(path), nil
}
