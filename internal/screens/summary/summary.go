// Package summary shows how a finished quiz went.
package summary

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wonder/internal/quiz"
	"github.com/abhisek/wonder/internal/router"
	"github.com/abhisek/wonder/internal/ui/components"
	"github.com/abhisek/wonder/internal/ui/layout"
	"github.com/abhisek/wonder/internal/ui/theme"
)

// Engine reports lifetime accuracy for a concept.
type Engine interface {
	QuizAccuracy(ctx context.Context, concept string) (float64, error)
}

type accuracyMsg struct {
	Accuracy float64
	Err      error
}

// Screen displays quiz results.
type Screen struct {
	engine  Engine
	concept string
	results []quiz.Result
	keys    components.KeyMap

	lifetime    float64
	hasLifetime bool
}

var _ router.Screen = (*Screen)(nil)
var _ router.KeyHintProvider = (*Screen)(nil)

// New creates a summary of results for concept. engine may be nil.
func New(engine Engine, concept string, results []quiz.Result) *Screen {
	return &Screen{
		engine:  engine,
		concept: concept,
		results: results,
		keys:    components.DefaultKeyMap,
	}
}

func (s *Screen) Init() tea.Cmd {
	if s.engine == nil {
		return nil
	}
	engine, concept := s.engine, s.concept
	return func() tea.Msg {
		acc, err := engine.QuizAccuracy(context.Background(), concept)
		return accuracyMsg{Accuracy: acc, Err: err}
	}
}

func (s *Screen) Title() string {
	return "Quiz Summary"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	done := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "done"))
	return components.Hints(done, s.keys.Back)
}

// Score returns correct answers and total questions.
func (s *Screen) Score() (correct, total int) {
	for _, r := range s.results {
		if r.Correct {
			correct++
		}
	}
	return correct, len(s.results)
}

func (s *Screen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case accuracyMsg:
		// Without a journal the lifetime line stays hidden.
		if msg.Err == nil {
			s.lifetime = msg.Accuracy
			s.hasLifetime = true
		}
	case tea.KeyMsg:
		if key.Matches(msg, s.keys.Select, s.keys.Back) {
			return s, router.Pop
		}
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	var b strings.Builder

	b.WriteString(center.Render(theme.Title.Render("Quiz complete: " + s.concept)))
	b.WriteString("\n\n")

	correct, total := s.Score()
	pct := 0.0
	if total > 0 {
		pct = float64(correct) / float64(total)
	}
	b.WriteString(center.Render(theme.Body.Render(
		fmt.Sprintf("Correct: %d/%d        Accuracy: %.0f%%", correct, total, pct*100))))
	b.WriteString("\n")
	if s.hasLifetime {
		b.WriteString(center.Render(theme.Dim.Render(
			fmt.Sprintf("All-time accuracy on %s: %.0f%%", s.concept, s.lifetime*100))))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, r := range s.results {
		mark, style := "✓", theme.Correct
		if !r.Correct {
			mark, style = "✗", theme.Incorrect
		}
		answer := r.Question.Choices[r.Question.CorrectIndex]
		line := fmt.Sprintf("%s %d. %s  %s", style.Render(mark), i+1, r.Question.Template, theme.Dim.Render(answer))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")
	}

	return b.String()
}
