// Package share holds visibility-scoped idea shares and ranks them for a
// viewer by tag overlap.
package share

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrUnknownShare      = errors.New("unknown share")
	ErrUnknownConcept    = errors.New("unknown concept for share")
	ErrEmptyAuthor       = errors.New("author handle is required")
	ErrEmptyTitle        = errors.New("title is required")
	ErrEmptySummary      = errors.New("summary is required")
	ErrEmptyViewer       = errors.New("viewer handle required for affinity lookup")
	ErrNoTags            = errors.New("at least one tag is required to anchor the share")
	ErrInvalidVisibility = errors.New("visibility must be public, connections, or private")
)

// Visibility is the access tier of a share.
type Visibility string

const (
	Public      Visibility = "public"
	Connections Visibility = "connections"
	Private     Visibility = "private"
)

// ParseVisibility accepts any casing of the three tiers. An unset (empty)
// value means Public; surrounding whitespace is not trimmed.
func ParseVisibility(s string) (Visibility, error) {
	if s == "" {
		return Public, nil
	}
	v := Visibility(strings.ToLower(s))
	switch v {
	case Public, Connections, Private:
		return v, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidVisibility, s)
}

// IdeaShare is a published snapshot of someone's knowledge focus. Only
// AuthorizedHandles changes after creation, and it only grows.
type IdeaShare struct {
	ID                string
	Author            string
	Title             string
	Summary           string
	Tags              []string
	LinkedConcepts    []string
	Visibility        Visibility
	AuthorizedHandles []string
	CreatedAt         time.Time
}

func (s IdeaShare) clone() IdeaShare {
	s.Tags = append([]string(nil), s.Tags...)
	s.LinkedConcepts = append([]string(nil), s.LinkedConcepts...)
	s.AuthorizedHandles = append([]string(nil), s.AuthorizedHandles...)
	return s
}

// PublishInput holds the fields needed to publish a share.
type PublishInput struct {
	Author            string
	Title             string
	Summary           string
	Tags              []string
	LinkedConcepts    []string
	Visibility        string
	AuthorizedHandles []string
}

// Match pairs a candidate share with its affinity to a viewer.
type Match struct {
	Share             IdeaShare
	Affinity          float64
	SharedTags        []string
	ComplementaryTags []string
}

// Comparison contrasts the interests of two handles.
type Comparison struct {
	Shared   []string
	Distinct []string
}
