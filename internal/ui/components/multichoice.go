package components

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wonder/internal/ui/theme"
)

// MultiChoice lets the user pick one of a fixed set of options. It does not
// know the answer: the caller grades the choice and passes the correct
// index to Reveal.
type MultiChoice struct {
	Prompt      string
	Options     []string
	Selected    int
	Submitted   bool
	ChosenIndex int

	correctIndex int
	keys         KeyMap
}

// NewMultiChoice creates a multiple-choice component.
func NewMultiChoice(prompt string, options []string) MultiChoice {
	return MultiChoice{
		Prompt:       prompt,
		Options:      options,
		ChosenIndex:  -1,
		correctIndex: -1,
		keys:         DefaultKeyMap,
	}
}

// Update moves the cursor and submits on select. Keys are ignored once
// submitted.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || m.Submitted {
		return m, nil
	}

	switch {
	case key.Matches(kmsg, m.keys.Up):
		if m.Selected > 0 {
			m.Selected--
		}
	case key.Matches(kmsg, m.keys.Down):
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case key.Matches(kmsg, m.keys.Select):
		if len(m.Options) > 0 {
			m.Submitted = true
			m.ChosenIndex = m.Selected
		}
	}
	return m, nil
}

// Reveal marks which option was correct.
func (m *MultiChoice) Reveal(correctIndex int) {
	m.correctIndex = correctIndex
}

// Revealed reports whether Reveal has been called.
func (m MultiChoice) Revealed() bool {
	return m.correctIndex >= 0
}

// IsCorrect returns true if the revealed answer matches the choice.
func (m MultiChoice) IsCorrect() bool {
	return m.Submitted && m.Revealed() && m.ChosenIndex == m.correctIndex
}

// View renders the prompt followed by labelled options.
func (m MultiChoice) View() string {
	var b strings.Builder
	b.WriteString(theme.Body.Bold(true).Render(m.Prompt))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !m.Submitted {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%c)  %s", prefix, 'A'+i, opt)

		switch {
		case m.Revealed() && i == m.correctIndex:
			line = theme.Correct.Render(line)
		case m.Submitted && i == m.ChosenIndex:
			if m.Revealed() {
				line = theme.Incorrect.Render(line)
			} else {
				line = theme.Selected.Render(line)
			}
		case m.Submitted:
			line = theme.Dim.Render(line)
		case i == m.Selected:
			line = theme.Selected.Render(line)
		default:
			line = theme.Unselected.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
