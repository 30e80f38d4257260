// Package quiz derives multiple-choice questions from the concept graph and
// grades answers against an immutable answer key.
package quiz

import (
	"errors"
	"time"
)

var (
	ErrUnknownConcept  = errors.New("unknown concept")
	ErrUnknownQuestion = errors.New("unknown quiz question")
	ErrIndexOutOfRange = errors.New("selected answer is out of range")
)

const (
	// ChoiceCount is the number of options on every question.
	ChoiceCount = 4

	// DefaultCount is used when a non-positive question count is requested.
	DefaultCount = 3

	// MaxCount caps the number of questions returned by one Generate call.
	MaxCount = 10
)

// Template identifies how a question was derived from the graph.
type Template string

const (
	TemplateDescription  Template = "description"
	TemplatePrerequisite Template = "prerequisite"
	TemplateDependent    Template = "dependent"
	TemplateAssociation  Template = "association"
)

// Question is a generated multiple-choice item tied to a concept.
type Question struct {
	ID       string
	Concept  string
	Template Template
	Prompt   string

	// Choices holds ChoiceCount distinct options in display order.
	Choices []string

	// CorrectIndex is fixed at generation time and never recomputed.
	CorrectIndex int

	CreatedAt time.Time
}

func (q Question) clone() Question {
	q.Choices = append([]string(nil), q.Choices...)
	return q
}

// Result is the outcome of grading one answer.
type Result struct {
	Correct  bool
	Question Question
}
