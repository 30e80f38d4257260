package summary

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wonder/internal/quiz"
	"github.com/abhisek/wonder/internal/router"
)

type fakeAccuracy struct {
	acc float64
	err error
}

func (f fakeAccuracy) QuizAccuracy(context.Context, string) (float64, error) {
	return f.acc, f.err
}

func testResults() []quiz.Result {
	q := func(tpl quiz.Template, correct int) quiz.Question {
		return quiz.Question{
			ID:           string(tpl),
			Concept:      "Algebra",
			Template:     tpl,
			Choices:      []string{"w", "x", "y", "z"},
			CorrectIndex: correct,
		}
	}
	return []quiz.Result{
		{Correct: true, Question: q(quiz.TemplateDescription, 0)},
		{Correct: false, Question: q(quiz.TemplatePrerequisite, 2)},
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(nil, "Algebra", testResults())
	if s.Title() != "Quiz Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Quiz Summary")
	}
}

func TestSummaryScreen_Score(t *testing.T) {
	s := New(nil, "Algebra", testResults())
	correct, total := s.Score()
	if correct != 1 || total != 2 {
		t.Errorf("Score = %d/%d, want 1/2", correct, total)
	}
	if !strings.Contains(s.View(80, 24), "1/2") {
		t.Error("expected score in view")
	}
}

func TestSummaryScreen_NilEngineHasNoInit(t *testing.T) {
	if cmd := New(nil, "Algebra", nil).Init(); cmd != nil {
		t.Error("expected nil Init command without an engine")
	}
}

func TestSummaryScreen_LifetimeAccuracy(t *testing.T) {
	s := New(fakeAccuracy{acc: 0.75}, "Algebra", testResults())
	s.Update(s.Init()())
	if !strings.Contains(s.View(80, 24), "All-time accuracy on Algebra: 75%") {
		t.Error("expected lifetime accuracy line")
	}
}

func TestSummaryScreen_LifetimeHiddenOnError(t *testing.T) {
	s := New(fakeAccuracy{err: errors.New("journal disabled")}, "Algebra", testResults())
	s.Update(s.Init()())
	if strings.Contains(s.View(80, 24), "All-time") {
		t.Error("lifetime line should be hidden when the journal errors")
	}
}

func TestSummaryScreen_Navigation(t *testing.T) {
	for _, k := range []tea.KeyPressMsg{{Code: tea.KeyEnter}, {Code: tea.KeyEscape}} {
		s := New(nil, "Algebra", testResults())
		_, cmd := s.Update(k)
		if cmd == nil {
			t.Fatalf("expected a command on %s", k.String())
		}
		if _, ok := cmd().(router.PopScreenMsg); !ok {
			t.Errorf("expected PopScreenMsg on %s", k.String())
		}
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	if hints := New(nil, "Algebra", nil).KeyHints(); len(hints) != 2 {
		t.Errorf("KeyHints length = %d, want 2", len(hints))
	}
}
