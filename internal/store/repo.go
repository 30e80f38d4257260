package store

import (
	"context"
	"encoding/json"
	"time"
)

// Kind groups journal events by the registry that produced them.
type Kind string

const (
	KindConcept Kind = "concept"
	KindSession Kind = "session"
	KindQuiz    Kind = "quiz"
	KindShare   Kind = "share"
)

// Journal actions.
const (
	ConceptAdded        = "added"
	ConceptRemoved      = "removed"
	RelationshipAdded   = "linked"
	RelationshipRemoved = "unlinked"

	SessionCreated    = "created"
	SessionUpdated    = "updated"
	CurriculumCreated = "curriculum_created"

	QuizGenerated = "generated"
	QuizGraded    = "graded"

	SharePublished  = "published"
	ShareAuthorized = "authorized"
)

// QueryOpts configures event queries with filtering and pagination.
// Results are always newest first.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	Kind    Kind      // exact kind, empty for all
	Subject string    // exact subject, empty for all
	After   int64     // sequence > After
	Before  int64     // sequence < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
}

// Event is a journal row as read back.
type Event struct {
	Sequence  int64
	Timestamp time.Time
	Kind      Kind
	Action    string
	Subject   string
	Correct   *bool
	Payload   json.RawMessage
}

// ConceptEventData records a graph mutation. Target is set only for
// relationship events.
type ConceptEventData struct {
	Action  string `json:"action"`
	Concept string `json:"concept"`
	Target  string `json:"target,omitempty"`
}

// SessionEventData records a session or curriculum change.
type SessionEventData struct {
	Action   string   `json:"action"`
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Status   string   `json:"status,omitempty"`
	Concepts []string `json:"concepts,omitempty"`
}

// QuizEventData records question generation or grading.
type QuizEventData struct {
	Action     string `json:"action"`
	QuestionID string `json:"question_id"`
	Concept    string `json:"concept"`
	Template   string `json:"template"`
	Selected   int    `json:"selected"`
	Correct    bool   `json:"correct"`
}

// ShareEventData records a share publication or grant.
type ShareEventData struct {
	Action     string   `json:"action"`
	ShareID    string   `json:"share_id"`
	Author     string   `json:"author"`
	Visibility string   `json:"visibility"`
	Handles    []string `json:"handles,omitempty"`
}

// EventRepo provides append and query access to the activity journal.
type EventRepo interface {
	AppendConceptEvent(ctx context.Context, data ConceptEventData) error
	AppendSessionEvent(ctx context.Context, data SessionEventData) error
	AppendQuizEvent(ctx context.Context, data QuizEventData) error
	AppendShareEvent(ctx context.Context, data ShareEventData) error

	// QueryEvents returns events matching opts, newest first.
	QueryEvents(ctx context.Context, opts QueryOpts) ([]Event, error)

	// QuizAccuracy returns the fraction of graded answers for concept that
	// were correct, or 0 when none were graded.
	QuizAccuracy(ctx context.Context, concept string) (float64, error)
}
