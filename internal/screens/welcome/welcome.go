// Package welcome is the splash shown before the explorer.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wonder/internal/router"
	"github.com/abhisek/wonder/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	edgesAt      = 400 * time.Millisecond
	bannerAt     = 1000 * time.Millisecond
	totalDur     = 3000 * time.Millisecond
)

// nodes are drawn first, the edges between them fade in after edgesAt.
var (
	graphNodes = []string{
		"      ●        ",
		"               ",
		"  ●         ●  ",
		"               ",
		"      ●        ",
	}
	graphEdges = []string{
		"      ●        ",
		"    ╱   ╲      ",
		"  ●───────●    ",
		"    ╲   ╱      ",
		"      ●        ",
	}
)

type tickMsg time.Time

// Screen animates briefly and then replaces itself with the screen from
// next. A key press skips ahead once the banner is visible.
type Screen struct {
	next         func() router.Screen
	elapsed      time.Duration
	transitioned bool
}

var _ router.Screen = (*Screen)(nil)

// New creates a splash that hands over to next().
func New(next func() router.Screen) *Screen {
	return &Screen{next: next}
}

func (w *Screen) Title() string {
	return ""
}

func (w *Screen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *Screen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		w.elapsed += tickInterval
		if w.elapsed >= totalDur {
			return w, w.transition()
		}
		return w, tick()

	case tea.KeyPressMsg:
		if w.elapsed >= bannerAt {
			return w, w.transition()
		}
	}
	return w, nil
}

func (w *Screen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (w *Screen) View(width, height int) string {
	art := graphNodes
	if w.elapsed >= edgesAt {
		art = graphEdges
	}
	sections := []string{theme.Tag.Render(strings.Join(art, "\n"))}

	if w.elapsed >= bannerAt {
		sections = append(sections,
			"",
			RenderBanner(width),
			"",
			theme.Body.Bold(true).Render("Every concept has a path."),
			"",
			theme.Hint.Render("press any key to continue"),
		)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
