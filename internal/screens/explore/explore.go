// Package explore is the home screen: a filterable list of concepts with a
// detail panel for the one under the cursor.
package explore

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wonder/internal/graph"
	"github.com/abhisek/wonder/internal/keys"
	"github.com/abhisek/wonder/internal/router"
	"github.com/abhisek/wonder/internal/ui/components"
	"github.com/abhisek/wonder/internal/ui/layout"
	"github.com/abhisek/wonder/internal/ui/theme"
)

// Engine is the read side of the concept graph.
type Engine interface {
	Concepts() []graph.Node
	Concept(name string) (graph.NodeDetail, error)
	DirectPrerequisites(name string) ([]graph.Node, error)
}

// Routes builds the screens explore can open. A nil History hides the
// history key.
type Routes struct {
	Quiz    func(concept string) router.Screen
	History func() router.Screen
}

const listWidth = 32

// Screen lists concepts.
type Screen struct {
	engine  Engine
	routes  Routes
	keys    components.KeyMap
	history key.Binding

	all    []graph.Node
	menu   components.Menu
	filter components.TextInput
}

var _ router.Screen = (*Screen)(nil)
var _ router.KeyHintProvider = (*Screen)(nil)

// New creates the explore screen.
func New(engine Engine, routes Routes) *Screen {
	s := &Screen{
		engine:  engine,
		routes:  routes,
		keys:    components.DefaultKeyMap,
		history: key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "history")),
		menu:    components.NewMenu(nil),
		filter:  components.NewTextInput("name or tag", 40),
	}
	s.history.SetEnabled(routes.History != nil)
	s.Refresh()
	return s
}

// Refresh reloads concepts from the engine and reapplies the filter.
func (s *Screen) Refresh() {
	s.all = s.engine.Concepts()
	s.applyFilter(s.filter.Value())
}

func (s *Screen) applyFilter(q string) {
	items := make([]components.MenuItem, 0, len(s.all))
	for _, n := range s.all {
		if !matches(n, q) {
			continue
		}
		name := n.Name
		items = append(items, components.MenuItem{
			Label:  name,
			Detail: strings.Join(n.Tags, ", "),
			Action: func() tea.Cmd { return router.Push(s.routes.Quiz(name)) },
		})
	}
	s.menu.SetItems(items)
}

// matches is a case-insensitive substring test on name and tags.
func matches(n graph.Node, q string) bool {
	q = keys.Of(q).String()
	if q == "" {
		return true
	}
	if strings.Contains(keys.Of(n.Name).String(), q) {
		return true
	}
	for _, t := range n.Tags {
		if strings.Contains(keys.Of(t).String(), q) {
			return true
		}
	}
	return false
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Title() string {
	return "Explore"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.filter.Focused() {
		apply := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply"))
		reset := key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear"))
		return components.Hints(apply, reset)
	}
	quiz := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "quiz"))
	return components.Hints(s.keys.Up, s.keys.Down, quiz, s.keys.Filter, s.history, s.keys.Quit)
}

func (s *Screen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if s.filter.Focused() {
			var cmd tea.Cmd
			s.filter, cmd = s.filter.Update(msg)
			return s, cmd
		}
		return s, nil
	}

	if s.filter.Focused() {
		switch {
		case key.Matches(kmsg, s.keys.Back):
			s.filter.Reset()
			s.filter.Blur()
			s.applyFilter("")
			return s, nil
		case key.Matches(kmsg, s.keys.Select):
			s.filter.Blur()
			return s, nil
		}
		var cmd tea.Cmd
		s.filter, cmd = s.filter.Update(msg)
		s.applyFilter(s.filter.Value())
		return s, cmd
	}

	switch {
	case key.Matches(kmsg, s.keys.Filter):
		return s, s.filter.Focus()
	case key.Matches(kmsg, s.history):
		return s, router.Push(s.routes.History())
	}
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *Screen) View(width, height int) string {
	left := s.filter.View() + "\n\n"
	if len(s.menu.Items) == 0 {
		left += theme.Hint.Render("No matching concepts")
	} else {
		left += s.menu.View(max(height-4, 1))
	}
	listPanel := theme.Panel.
		Width(listWidth).
		Height(max(height-2, 1)).
		Render(left)

	detailPanel := theme.ActivePanel.
		Width(max(width-listWidth-4, 20)).
		Height(max(height-2, 1)).
		Render(s.renderDetail())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPanel, detailPanel)
}

func (s *Screen) renderDetail() string {
	item, ok := s.menu.Current()
	if !ok {
		return theme.Hint.Render("Select a concept")
	}
	d, err := s.engine.Concept(item.Label)
	if err != nil {
		return theme.Incorrect.Render(err.Error())
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render(d.Node.Name))
	b.WriteString("\n")
	if len(d.Node.Tags) > 0 {
		b.WriteString(theme.Tag.Render(strings.Join(d.Node.Tags, " · ")))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if d.Node.Description != "" {
		b.WriteString(theme.Body.Render(d.Node.Description))
		b.WriteString("\n\n")
	}

	direct, err := s.engine.DirectPrerequisites(d.Node.Name)
	if err != nil {
		return theme.Incorrect.Render(err.Error())
	}
	b.WriteString(section("Builds on", direct))
	b.WriteString(section("Leads to", d.Dependents))

	// d.Prerequisites is the full closure.
	if len(d.Prerequisites) > len(direct) {
		b.WriteString(theme.Dim.Render(fmt.Sprintf("%d concepts to learn first in total", len(d.Prerequisites))))
		b.WriteString("\n")
	}
	return b.String()
}

func section(title string, nodes []graph.Node) string {
	if len(nodes) == 0 {
		return ""
	}
	names := make([]string, len(nodes))
	for i, n := range nodes {
		names[i] = n.Name
	}
	return theme.Dim.Render(title+": ") + theme.Body.Render(strings.Join(names, ", ")) + "\n"
}
