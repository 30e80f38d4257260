// Package keys derives the case-insensitive identifiers shared by every store:
// concept keys, tag labels and author handles.
package keys

import (
	"sort"
	"strings"
)

// Key is the canonical, case-insensitive identity of a concept.
type Key string

// Of returns the canonical key for a concept display name.
func Of(name string) Key {
	return Key(strings.ToLower(strings.TrimSpace(name)))
}

// String returns the key as a plain string.
func (k Key) String() string { return string(k) }

// Handle normalizes an author or viewer handle.
func Handle(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}

// Tags trims, lowercases, drops empty labels, deduplicates and sorts.
func Tags(in []string) []string {
	set := make(map[string]struct{}, len(in))
	for _, t := range in {
		if n := Handle(t); n != "" {
			set[n] = struct{}{}
		}
	}
	return sorted(set)
}

// Handles applies the tag rule to a list of handles.
func Handles(in []string) []string {
	return Tags(in)
}

// Union returns the sorted union of two label sets.
func Union(a, b []string) []string {
	set := make(map[string]struct{}, len(a)+len(b))
	for _, s := range a {
		set[s] = struct{}{}
	}
	for _, s := range b {
		set[s] = struct{}{}
	}
	return sorted(set)
}

// Intersect returns the sorted labels present in both a and b.
func Intersect(a, b []string) []string {
	in := toSet(b)
	set := make(map[string]struct{})
	for _, s := range a {
		if _, ok := in[s]; ok {
			set[s] = struct{}{}
		}
	}
	return sorted(set)
}

// Subtract returns the sorted labels of a that are not in b.
func Subtract(a, b []string) []string {
	out := toSet(b)
	set := make(map[string]struct{})
	for _, s := range a {
		if _, ok := out[s]; !ok {
			set[s] = struct{}{}
		}
	}
	return sorted(set)
}

// SymmetricDifference returns the sorted labels present in exactly one of a and b.
func SymmetricDifference(a, b []string) []string {
	return Union(Subtract(a, b), Subtract(b, a))
}

func toSet(in []string) map[string]struct{} {
	set := make(map[string]struct{}, len(in))
	for _, s := range in {
		set[s] = struct{}{}
	}
	return set
}

func sorted(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
