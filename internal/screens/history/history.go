// Package history lists recent activity from the journal.
package history

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wonder/internal/app"
	"github.com/abhisek/wonder/internal/router"
	"github.com/abhisek/wonder/internal/store"
	"github.com/abhisek/wonder/internal/ui/components"
	"github.com/abhisek/wonder/internal/ui/layout"
	"github.com/abhisek/wonder/internal/ui/theme"
)

// Limit is how many events the screen loads.
const Limit = 50

// Engine reads the journal.
type Engine interface {
	Journal(ctx context.Context, opts store.QueryOpts) ([]store.Event, error)
}

type historyLoadedMsg struct {
	Events []store.Event
	Err    error
}

// Screen displays journal events, newest first. Enter expands an event to
// show its payload.
type Screen struct {
	engine   Engine
	keys     components.KeyMap
	events   []store.Event
	selected int
	expanded map[int64]bool
	loaded   bool
	disabled bool
	errMsg   string
}

var _ router.Screen = (*Screen)(nil)
var _ router.KeyHintProvider = (*Screen)(nil)

// New creates a history screen.
func New(engine Engine) *Screen {
	return &Screen{
		engine:   engine,
		keys:     components.DefaultKeyMap,
		expanded: make(map[int64]bool),
	}
}

func (s *Screen) Init() tea.Cmd {
	engine := s.engine
	return func() tea.Msg {
		events, err := engine.Journal(context.Background(), store.QueryOpts{Limit: Limit})
		return historyLoadedMsg{Events: events, Err: err}
	}
}

func (s *Screen) Title() string {
	return "History"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	details := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details"))
	return components.Hints(s.keys.Up, s.keys.Down, details, s.keys.Back)
}

func (s *Screen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		s.loaded = true
		switch {
		case errors.Is(msg.Err, app.ErrJournalDisabled):
			s.disabled = true
		case msg.Err != nil:
			s.errMsg = msg.Err.Error()
		default:
			s.events = msg.Events
		}
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, s.keys.Back):
			return s, router.Pop
		case key.Matches(msg, s.keys.Up):
			if s.selected > 0 {
				s.selected--
			}
		case key.Matches(msg, s.keys.Down):
			if s.selected < len(s.events)-1 {
				s.selected++
			}
		case key.Matches(msg, s.keys.Select):
			if s.selected < len(s.events) {
				seq := s.events[s.selected].Sequence
				s.expanded[seq] = !s.expanded[seq]
			}
		}
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	switch {
	case s.errMsg != "":
		return center.Render("\n\n" + theme.Incorrect.Render("Error: "+s.errMsg))
	case !s.loaded:
		return center.Render("\n\n" + theme.Dim.Render("Loading history..."))
	case s.disabled:
		return center.Render("\n\n" + theme.Hint.Render("The activity journal is off. Start wonder with --db to record history."))
	case len(s.events) == 0:
		return center.Render("\n\n" + theme.Hint.Render("Nothing recorded yet."))
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, e := range s.events {
		line := fmt.Sprintf("%s  %-8s %-10s %s%s",
			e.Timestamp.Local().Format("Jan 02 15:04"), e.Kind, e.Action, e.Subject, outcome(e))
		if i == s.selected {
			b.WriteString(theme.Selected.Render("▸ " + line))
		} else {
			b.WriteString("  " + theme.Unselected.Render(line))
		}
		b.WriteString("\n")

		if s.expanded[e.Sequence] {
			b.WriteString(theme.Dim.Render(indentJSON(e.Payload)))
			b.WriteString("\n")
		}
	}
	return lipgloss.NewStyle().Padding(0, 2).Render(b.String())
}

func outcome(e store.Event) string {
	if e.Correct == nil {
		return ""
	}
	if *e.Correct {
		return "  ✓"
	}
	return "  ✗"
}

func indentJSON(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "    ", "  "); err != nil {
		return "    " + string(raw)
	}
	return "    " + buf.String()
}
