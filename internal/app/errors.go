package app

import (
	"errors"

	"github.com/abhisek/wonder/internal/graph"
	"github.com/abhisek/wonder/internal/quiz"
	"github.com/abhisek/wonder/internal/session"
	"github.com/abhisek/wonder/internal/share"
)

// Kind is the adapter-facing category of an engine error.
type Kind int

const (
	KindNone Kind = iota
	KindNotFound
	KindInvalid
	KindConflict
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindNotFound:
		return "not found"
	case KindInvalid:
		return "invalid"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

var notFound = []error{
	graph.ErrUnknownNode,
	graph.ErrUnknownEdge,
	session.ErrUnknownSession,
	session.ErrUnknownCurriculum,
	quiz.ErrUnknownConcept,
	quiz.ErrUnknownQuestion,
	share.ErrUnknownShare,
	share.ErrUnknownConcept,
}

var invalid = []error{
	session.ErrEmptyName,
	session.ErrEmptyTitle,
	quiz.ErrIndexOutOfRange,
	share.ErrEmptyAuthor,
	share.ErrEmptyTitle,
	share.ErrEmptySummary,
	share.ErrEmptyViewer,
	share.ErrNoTags,
	share.ErrInvalidVisibility,
}

// Classify maps err onto a Kind. Unrecognized errors are KindInternal.
func Classify(err error) Kind {
	if err == nil {
		return KindNone
	}
	if errors.Is(err, graph.ErrNoPath) || errors.Is(err, ErrJournalDisabled) {
		return KindConflict
	}
	for _, target := range notFound {
		if errors.Is(err, target) {
			return KindNotFound
		}
	}
	for _, target := range invalid {
		if errors.Is(err, target) {
			return KindInvalid
		}
	}
	return KindInternal
}
