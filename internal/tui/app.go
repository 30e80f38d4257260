// Package tui runs the interactive concept explorer.
package tui

import (
	"context"
	"fmt"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wonder/internal/router"
	"github.com/abhisek/wonder/internal/screens/explore"
	"github.com/abhisek/wonder/internal/screens/history"
	"github.com/abhisek/wonder/internal/screens/quiz"
	"github.com/abhisek/wonder/internal/screens/welcome"
	"github.com/abhisek/wonder/internal/ui/components"
	"github.com/abhisek/wonder/internal/ui/layout"
)

// Engine is everything the screens need.
type Engine interface {
	explore.Engine
	quiz.Engine
	history.Engine
}

// Options tunes the explorer.
type Options struct {
	// QuizCount is the number of questions per quiz.
	QuizCount int

	// Splash shows the welcome animation before the explorer.
	Splash bool
}

// Model is the root Bubble Tea model.
type Model struct {
	engine Engine
	router *router.Router
	keys   components.KeyMap
	width  int
	height int

	// exitOnPop quits instead of ignoring a pop at the bottom of the stack.
	exitOnPop bool
}

// NewModel creates a model with the explore screen at the root.
func NewModel(engine Engine, opts Options) Model {
	home := func() router.Screen {
		return explore.New(engine, explore.Routes{
			Quiz: func(concept string) router.Screen {
				return quiz.New(engine, concept, opts.QuizCount)
			},
			History: func() router.Screen {
				return history.New(engine)
			},
		})
	}

	var root router.Screen
	if opts.Splash {
		root = welcome.New(home)
	} else {
		root = home()
	}
	return Model{
		engine: engine,
		router: router.New(root),
		keys:   components.DefaultKeyMap,
	}
}

// NewQuizModel creates a model that runs a single quiz and exits when the
// user leaves it.
func NewQuizModel(engine Engine, concept string, quizCount int) Model {
	return Model{
		engine:    engine,
		router:    router.New(quiz.New(engine, concept, quizCount)),
		keys:      components.DefaultKeyMap,
		exitOnPop: true,
	}
}

func (m Model) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}

	case router.PopScreenMsg:
		if m.exitOnPop && m.router.Depth() == 1 {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m Model) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	if active.Title() == "" {
		// Full-screen splash.
		return active.View(m.width, m.height)
	}

	status := fmt.Sprintf("%d concepts", len(m.engine.Concepts()))
	header := layout.RenderHeader(active.Title(), status, m.width)

	hints := m.router.KeyHints()
	if hints == nil {
		hints = components.Hints(m.keys.Back, m.keys.Quit)
	}
	footer := layout.RenderFooter(hints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the explorer and blocks until the user quits or ctx is done.
func Run(ctx context.Context, engine Engine, opts Options) error {
	return run(ctx, NewModel(engine, opts))
}

// RunQuiz runs one quiz about concept.
func RunQuiz(ctx context.Context, engine Engine, concept string, quizCount int) error {
	return run(ctx, NewQuizModel(engine, concept, quizCount))
}

func run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
