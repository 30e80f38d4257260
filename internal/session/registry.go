// Package session tracks learning sessions and uploaded curricula. Both are
// named groupings of concepts validated against the live concept graph.
package session

import (
	"errors"
	"sort"
	"sync"
	"time"
)

var (
	ErrUnknownSession    = errors.New("unknown session")
	ErrUnknownCurriculum = errors.New("unknown curriculum")
	ErrEmptyName         = errors.New("session name cannot be empty")
	ErrEmptyTitle        = errors.New("curriculum title cannot be empty")
)

// ConceptResolver maps concept names to canonical display names, failing with
// a batch error that lists every unknown name.
type ConceptResolver interface {
	Resolve(names []string) ([]string, error)
}

// Registry stores sessions and curricula. All methods are safe for concurrent use.
type Registry struct {
	concepts ConceptResolver
	now      func() time.Time

	mu        sync.RWMutex
	seq       int64
	sessions  map[string]*entry[LearningSession]
	curricula map[string]*entry[Curriculum]
}

// entry pairs a record with its insertion sequence so listings stay stable
// when two records share a timestamp.
type entry[T any] struct {
	seq   int64
	value T
}

// Option configures a Registry.
type Option func(*Registry)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

// NewRegistry creates an empty registry backed by the given concept resolver.
func NewRegistry(concepts ConceptResolver, opts ...Option) *Registry {
	r := &Registry{
		concepts:  concepts,
		now:       func() time.Time { return time.Now().UTC() },
		sessions:  make(map[string]*entry[LearningSession]),
		curricula: make(map[string]*entry[Curriculum]),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// newestFirst orders entries by timestamp then insertion order, most recent first.
func newestFirst[T any](entries []*entry[T], at func(T) time.Time) []T {
	sort.Slice(entries, func(i, j int) bool {
		ti, tj := at(entries[i].value), at(entries[j].value)
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return entries[i].seq > entries[j].seq
	})
	out := make([]T, len(entries))
	for i, e := range entries {
		out[i] = e.value
	}
	return out
}
