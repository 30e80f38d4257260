package share

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/wonder/internal/graph"
	"github.com/abhisek/wonder/internal/keys"
)

// ConceptLookup resolves a concept name to its stored node.
type ConceptLookup interface {
	GetNode(name string) (graph.Node, bool)
}

type entry struct {
	seq   int64
	share IdeaShare
}

// Registry stores idea shares. It is safe for concurrent use.
type Registry struct {
	concepts ConceptLookup
	now      func() time.Time

	mu     sync.RWMutex
	seq    int64
	shares map[string]*entry
}

// Option configures a Registry.
type Option func(*Registry)

// WithClock overrides the creation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

// NewRegistry creates an empty share registry.
func NewRegistry(concepts ConceptLookup, opts ...Option) *Registry {
	r := &Registry{
		concepts: concepts,
		now:      func() time.Time { return time.Now().UTC() },
		shares:   make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Publish validates in and stores a new share. Nothing is stored on error.
func (r *Registry) Publish(in PublishInput) (IdeaShare, error) {
	author := strings.TrimSpace(in.Author)
	title := strings.TrimSpace(in.Title)
	summary := strings.TrimSpace(in.Summary)
	switch {
	case author == "":
		return IdeaShare{}, ErrEmptyAuthor
	case title == "":
		return IdeaShare{}, ErrEmptyTitle
	case summary == "":
		return IdeaShare{}, ErrEmptySummary
	}

	tags := keys.Tags(in.Tags)
	if len(tags) == 0 {
		return IdeaShare{}, ErrNoTags
	}

	vis, err := ParseVisibility(in.Visibility)
	if err != nil {
		return IdeaShare{}, err
	}

	var linked []string
	seen := make(map[keys.Key]bool)
	for _, name := range in.LinkedConcepts {
		if strings.TrimSpace(name) == "" {
			continue
		}
		n, ok := r.concepts.GetNode(name)
		if !ok {
			return IdeaShare{}, fmt.Errorf("%w: %s", ErrUnknownConcept, name)
		}
		if seen[n.Key()] {
			continue
		}
		seen[n.Key()] = true
		linked = append(linked, n.Name)
	}

	s := IdeaShare{
		ID:                uuid.NewString(),
		Author:            author,
		Title:             title,
		Summary:           summary,
		Tags:              tags,
		LinkedConcepts:    linked,
		Visibility:        vis,
		AuthorizedHandles: keys.Handles(in.AuthorizedHandles),
		CreatedAt:         r.now(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	r.shares[s.ID] = &entry{seq: r.seq, share: s}
	return s.clone(), nil
}

// Get returns the share with the given id regardless of visibility.
func (r *Registry) Get(id string) (IdeaShare, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.shares[id]
	if !ok {
		return IdeaShare{}, fmt.Errorf("%w: %s", ErrUnknownShare, id)
	}
	return e.share.clone(), nil
}

// List returns the shares viewer may see, newest first. An empty viewer sees
// only public shares.
func (r *Registry) List(viewer string) []IdeaShare {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.visible(keys.Handle(viewer))
}

// Authorize grants additional handles access to a share. Existing grants are
// never removed.
func (r *Registry) Authorize(id string, handles []string) (IdeaShare, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.shares[id]
	if !ok {
		return IdeaShare{}, fmt.Errorf("%w: %s", ErrUnknownShare, id)
	}
	e.share.AuthorizedHandles = keys.Union(e.share.AuthorizedHandles, keys.Handles(handles))
	return e.share.clone(), nil
}

// Len returns the number of stored shares.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.shares)
}

// visible must be called with r.mu held.
func (r *Registry) visible(viewer string) []IdeaShare {
	var out []*entry
	for _, e := range r.shares {
		if canSee(e.share, viewer) {
			out = append(out, e)
		}
	}
	sortEntries(out)

	shares := make([]IdeaShare, len(out))
	for i, e := range out {
		shares[i] = e.share.clone()
	}
	return shares
}

func canSee(s IdeaShare, viewer string) bool {
	if s.Visibility == Public {
		return true
	}
	if viewer == "" {
		return false
	}
	if keys.Handle(s.Author) == viewer {
		return true
	}
	if s.Visibility != Connections {
		return false
	}
	for _, h := range s.AuthorizedHandles {
		if h == viewer {
			return true
		}
	}
	return false
}

func sortEntries(es []*entry) {
	sort.Slice(es, func(i, j int) bool {
		a, b := es[i].share.CreatedAt, es[j].share.CreatedAt
		if !a.Equal(b) {
			return a.After(b)
		}
		return es[i].seq > es[j].seq
	})
}
