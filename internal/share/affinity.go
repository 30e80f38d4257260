package share

import (
	"math"
	"sort"

	"github.com/abhisek/wonder/internal/keys"
)

// DefaultAffinityLimit is used when a non-positive limit is requested.
const DefaultAffinityLimit = 5

// Affinity ranks the shares visible to viewer by how much their tags overlap
// with the viewer's interests. The interest set is the union of tags on the
// viewer's own shares, or of all public shares when the viewer has published
// nothing. The viewer's own shares are never returned.
func (r *Registry) Affinity(viewer string, limit int) ([]Match, error) {
	handle := keys.Handle(viewer)
	if handle == "" {
		return nil, ErrEmptyViewer
	}
	if limit <= 0 {
		limit = DefaultAffinityLimit
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	interests := r.tagsBy(func(s IdeaShare) bool { return keys.Handle(s.Author) == handle })
	if len(interests) == 0 {
		interests = r.tagsBy(func(s IdeaShare) bool { return s.Visibility == Public })
	}

	type scored struct {
		Match
		order int
	}
	var candidates []scored
	for i, s := range r.visible(handle) {
		if keys.Handle(s.Author) == handle {
			continue
		}
		shared := keys.Intersect(s.Tags, interests)
		complementary := keys.Subtract(s.Tags, interests)
		if len(shared) == 0 && len(complementary) == 0 {
			continue
		}
		candidates = append(candidates, scored{
			Match: Match{
				Share:             s,
				Affinity:          ratio(len(shared), len(shared)+len(complementary)),
				SharedTags:        shared,
				ComplementaryTags: complementary,
			},
			order: i,
		})
	}

	// visible is already newest first, so equal scores keep that order.
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Affinity != candidates[j].Affinity {
			return candidates[i].Affinity > candidates[j].Affinity
		}
		return candidates[i].order < candidates[j].order
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	out := make([]Match, len(candidates))
	for i, c := range candidates {
		out[i] = c.Match
	}
	return out, nil
}

// CompareHandles returns the tags both handles have published under and the
// tags only one of them has.
func (r *Registry) CompareHandles(a, b string) Comparison {
	ha, hb := keys.Handle(a), keys.Handle(b)

	r.mu.RLock()
	defer r.mu.RUnlock()
	tagsA := r.tagsBy(func(s IdeaShare) bool { return keys.Handle(s.Author) == ha })
	tagsB := r.tagsBy(func(s IdeaShare) bool { return keys.Handle(s.Author) == hb })

	return Comparison{
		Shared:   keys.Intersect(tagsA, tagsB),
		Distinct: keys.SymmetricDifference(tagsA, tagsB),
	}
}

// tagsBy must be called with r.mu held.
func (r *Registry) tagsBy(match func(IdeaShare) bool) []string {
	var tags []string
	for _, e := range r.shares {
		if match(e.share) {
			tags = keys.Union(tags, e.share.Tags)
		}
	}
	return tags
}

func ratio(overlap, breadth int) float64 {
	if breadth == 0 {
		return 0
	}
	return math.Round(float64(overlap)/float64(breadth)*1000) / 1000
}
