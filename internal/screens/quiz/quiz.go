// Package quiz is the screen that walks through a generated quiz one
// question at a time.
package quiz

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	wq "github.com/abhisek/wonder/internal/quiz"
	"github.com/abhisek/wonder/internal/router"
	"github.com/abhisek/wonder/internal/screens/summary"
	"github.com/abhisek/wonder/internal/ui/components"
	"github.com/abhisek/wonder/internal/ui/layout"
	"github.com/abhisek/wonder/internal/ui/theme"
)

// Engine generates and grades questions.
type Engine interface {
	GenerateQuiz(ctx context.Context, concept string, count int) ([]wq.Question, error)
	GradeAnswer(ctx context.Context, questionID string, selected int) (wq.Result, error)
	summary.Engine
}

type quizReadyMsg struct {
	Questions []wq.Question
	Err       error
}

type answerGradedMsg struct {
	Result wq.Result
	Err    error
}

// Screen runs one quiz.
type Screen struct {
	engine  Engine
	concept string
	count   int
	keys    components.KeyMap

	ready     bool
	questions []wq.Question
	current   int
	choice    components.MultiChoice
	results   []wq.Result
	errMsg    string
}

var _ router.Screen = (*Screen)(nil)
var _ router.KeyHintProvider = (*Screen)(nil)

// New creates a quiz screen about concept.
func New(engine Engine, concept string, count int) *Screen {
	return &Screen{
		engine:  engine,
		concept: concept,
		count:   count,
		keys:    components.DefaultKeyMap,
	}
}

func (s *Screen) Init() tea.Cmd {
	engine, concept, count := s.engine, s.concept, s.count
	return func() tea.Msg {
		qs, err := engine.GenerateQuiz(context.Background(), concept, count)
		return quizReadyMsg{Questions: qs, Err: err}
	}
}

func (s *Screen) Title() string {
	return "Quiz: " + s.concept
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.awaitingNext() {
		next := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next"))
		return components.Hints(next, s.keys.Back)
	}
	return components.Hints(s.keys.Up, s.keys.Down, s.keys.Select, s.keys.Back)
}

func (s *Screen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quizReadyMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.ready = true
		s.questions = msg.Questions
		s.current = 0
		s.loadQuestion()
		return s, nil

	case answerGradedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.choice.Reveal(msg.Result.Question.CorrectIndex)
		s.results = append(s.results, msg.Result)
		return s, nil

	case tea.KeyMsg:
		if key.Matches(msg, s.keys.Back) {
			return s, router.Pop
		}
		if s.errMsg != "" || len(s.questions) == 0 {
			return s, nil
		}
		if s.awaitingNext() {
			if key.Matches(msg, s.keys.Select) {
				return s.advance()
			}
			return s, nil
		}
		if s.choice.Submitted {
			// Waiting for the grade.
			return s, nil
		}

		var cmd tea.Cmd
		s.choice, cmd = s.choice.Update(msg)
		if s.choice.Submitted {
			return s, s.grade(s.questions[s.current].ID, s.choice.ChosenIndex)
		}
		return s, cmd
	}
	return s, nil
}

func (s *Screen) grade(id string, selected int) tea.Cmd {
	engine := s.engine
	return func() tea.Msg {
		res, err := engine.GradeAnswer(context.Background(), id, selected)
		return answerGradedMsg{Result: res, Err: err}
	}
}

func (s *Screen) advance() (router.Screen, tea.Cmd) {
	if s.current+1 >= len(s.questions) {
		done := summary.New(s.engine, s.concept, s.results)
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: done} }
	}
	s.current++
	s.loadQuestion()
	return s, nil
}

func (s *Screen) loadQuestion() {
	if s.current >= len(s.questions) {
		return
	}
	q := s.questions[s.current]
	s.choice = components.NewMultiChoice(q.Prompt, q.Choices)
}

func (s *Screen) awaitingNext() bool {
	return s.choice.Submitted && s.choice.Revealed()
}

func (s *Screen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Incorrect.Render("Could not run quiz: "+s.errMsg))
	}
	if !s.ready {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("Preparing questions..."))
	}
	if len(s.questions) == 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("No questions for this concept."))
	}

	var b strings.Builder
	bar := components.ProgressBar{
		Label: "Question",
		Done:  len(s.results),
		Total: len(s.questions),
		Width: min(width-4, 60),
	}
	b.WriteString(bar.View())
	b.WriteString("\n\n")
	b.WriteString(s.choice.View())

	if s.awaitingNext() {
		b.WriteString("\n")
		if s.choice.IsCorrect() {
			b.WriteString(theme.Correct.Render("Correct!"))
		} else {
			b.WriteString(theme.Incorrect.Render(fmt.Sprintf("Not quite. The answer was %c.", 'A'+s.results[len(s.results)-1].Question.CorrectIndex)))
		}
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}
