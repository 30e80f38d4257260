package app

import (
	"context"

	"github.com/abhisek/wonder/internal/quiz"
	"github.com/abhisek/wonder/internal/store"
)

// GenerateQuiz builds up to count questions about concept.
func (e *Engine) GenerateQuiz(ctx context.Context, concept string, count int) ([]quiz.Question, error) {
	qs, err := e.quizzes.Generate(concept, count)
	if err != nil {
		return nil, err
	}
	e.log.Debug("quiz generated", "concept", concept, "questions", len(qs))
	for _, q := range qs {
		e.record("quiz", func(j store.EventRepo) error {
			return j.AppendQuizEvent(ctx, store.QuizEventData{
				Action:     store.QuizGenerated,
				QuestionID: q.ID,
				Concept:    q.Concept,
				Template:   string(q.Template),
			})
		})
	}
	return qs, nil
}

// GradeAnswer checks a selected choice against the stored answer key.
func (e *Engine) GradeAnswer(ctx context.Context, questionID string, selected int) (quiz.Result, error) {
	res, err := e.quizzes.Grade(questionID, selected)
	if err != nil {
		return quiz.Result{}, err
	}
	q := res.Question
	e.log.Debug("answer graded", "question", q.ID, "concept", q.Concept, "correct", res.Correct)
	e.record("quiz", func(j store.EventRepo) error {
		return j.AppendQuizEvent(ctx, store.QuizEventData{
			Action:     store.QuizGraded,
			QuestionID: q.ID,
			Concept:    q.Concept,
			Template:   string(q.Template),
			Selected:   selected,
			Correct:    res.Correct,
		})
	})
	return res, nil
}

// Question returns a previously generated question.
func (e *Engine) Question(id string) (quiz.Question, error) {
	return e.quizzes.Question(id)
}
