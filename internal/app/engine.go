// Package app wires the concept graph and the registries layered on it into a
// single service context. Mutations are logged and written to the activity
// journal on a best-effort basis.
package app

import (
	"context"
	"errors"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/abhisek/wonder/internal/graph"
	"github.com/abhisek/wonder/internal/quiz"
	"github.com/abhisek/wonder/internal/session"
	"github.com/abhisek/wonder/internal/share"
	"github.com/abhisek/wonder/internal/store"
)

// ErrJournalDisabled is returned by journal reads when no journal is attached.
var ErrJournalDisabled = errors.New("activity journal is disabled")

// Options configures an Engine. The zero value is usable.
type Options struct {
	// Logger receives debug records for mutations and warnings for journal
	// failures. Nil discards everything.
	Logger *log.Logger

	// Journal records mutations. Nil disables journaling.
	Journal store.EventRepo

	// Rand drives quiz shuffling. Nil seeds from the clock.
	Rand *rand.Rand

	// Clock stamps sessions, curricula, questions and shares.
	Clock func() time.Time
}

// Engine owns every store for one process.
type Engine struct {
	graph    *graph.Store
	sessions *session.Registry
	quizzes  *quiz.Generator
	shares   *share.Registry

	log     *log.Logger
	journal store.EventRepo
}

// New creates an Engine with empty stores.
func New(opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	g := graph.NewStore()

	var (
		sessionOpts []session.Option
		quizOpts    []quiz.Option
		shareOpts   []share.Option
	)
	if opts.Clock != nil {
		sessionOpts = append(sessionOpts, session.WithClock(opts.Clock))
		quizOpts = append(quizOpts, quiz.WithClock(opts.Clock))
		shareOpts = append(shareOpts, share.WithClock(opts.Clock))
	}
	if opts.Rand != nil {
		quizOpts = append(quizOpts, quiz.WithRand(opts.Rand))
	}

	return &Engine{
		graph:    g,
		sessions: session.NewRegistry(g, sessionOpts...),
		quizzes:  quiz.New(g, quizOpts...),
		shares:   share.NewRegistry(g, shareOpts...),
		log:      logger,
		journal:  opts.Journal,
	}
}

// Graph exposes the concept graph for read-only traversal.
func (e *Engine) Graph() *graph.Store {
	return e.graph
}

// Logger returns the engine's logger.
func (e *Engine) Logger() *log.Logger {
	return e.log
}

// AttachJournal starts journaling later mutations. Call it before the engine
// is shared between goroutines.
func (e *Engine) AttachJournal(j store.EventRepo) {
	e.journal = j
}

// record writes to the journal if one is attached. A failed write is logged
// and never fails the caller.
func (e *Engine) record(what string, write func(store.EventRepo) error) {
	if e.journal == nil {
		return
	}
	if err := write(e.journal); err != nil {
		e.log.Warn("journal write failed", "event", what, "err", err)
	}
}

// Journal returns recorded events, newest first.
func (e *Engine) Journal(ctx context.Context, opts store.QueryOpts) ([]store.Event, error) {
	if e.journal == nil {
		return nil, ErrJournalDisabled
	}
	return e.journal.QueryEvents(ctx, opts)
}

// QuizAccuracy returns the journaled share of correct answers for concept.
func (e *Engine) QuizAccuracy(ctx context.Context, concept string) (float64, error) {
	if e.journal == nil {
		return 0, ErrJournalDisabled
	}
	n, err := e.graph.Lookup(concept)
	if err != nil {
		return 0, err
	}
	return e.journal.QuizAccuracy(ctx, n.Name)
}
