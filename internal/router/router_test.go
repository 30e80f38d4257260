package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wonder/internal/ui/layout"
)

// stubScreen is a minimal screen for testing.
type stubScreen struct {
	title   string
	initRan bool
	got     []tea.Msg
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}

func (s *stubScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	s.got = append(s.got, msg)
	return s, nil
}

func (s *stubScreen) View(int, int) string { return s.title }
func (s *stubScreen) Title() string        { return s.title }

type hintedScreen struct{ stubScreen }

func (h *hintedScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "q", Description: "Quit"}}
}

func TestPush(t *testing.T) {
	r := New(&stubScreen{title: "first"})

	s2 := &stubScreen{title: "second"}
	r.Push(s2)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run on pushed screen")
	}
}

func TestPopNoopAtBottom(t *testing.T) {
	r := New(&stubScreen{title: "first"})
	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after pop at bottom, got %d", r.Depth())
	}
}

func TestNavigationMessages(t *testing.T) {
	root := &stubScreen{title: "root"}
	r := New(root)

	r.Update(PushScreenMsg{Screen: &stubScreen{title: "a"}})
	r.Update(PushScreenMsg{Screen: &stubScreen{title: "b"}})
	if r.Depth() != 3 {
		t.Fatalf("expected depth 3, got %d", r.Depth())
	}

	r.Update(PopScreenMsg{})
	if r.Active().Title() != "a" {
		t.Errorf("expected active 'a' after pop, got %q", r.Active().Title())
	}

	c := &stubScreen{title: "c"}
	r.Update(ReplaceScreenMsg{Screen: c})
	if r.Depth() != 2 || r.Active().Title() != "c" || !c.initRan {
		t.Errorf("replace: depth=%d active=%q init=%v", r.Depth(), r.Active().Title(), c.initRan)
	}

	r.Update(PopToRootMsg{})
	if r.Depth() != 1 || r.Active() != Screen(root) {
		t.Errorf("expected only root after PopToRoot, depth=%d", r.Depth())
	}
}

func TestCommandHelpers(t *testing.T) {
	s := &stubScreen{title: "pushed"}
	msg := Push(s)()
	push, ok := msg.(PushScreenMsg)
	if !ok || push.Screen != Screen(s) {
		t.Errorf("Push() produced %T", msg)
	}
	if _, ok := Pop().(PopScreenMsg); !ok {
		t.Error("Pop() should produce PopScreenMsg")
	}
	if _, ok := PopToRoot().(PopToRootMsg); !ok {
		t.Error("PopToRoot() should produce PopToRootMsg")
	}
}

func TestUpdateForwardsToActive(t *testing.T) {
	root := &stubScreen{title: "root"}
	r := New(root)
	top := &stubScreen{title: "top"}
	r.Push(top)

	r.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if len(top.got) != 1 || len(root.got) != 0 {
		t.Errorf("expected only the active screen to receive the key, top=%d root=%d", len(top.got), len(root.got))
	}
	if r.View(80, 24) != "top" {
		t.Errorf("View = %q, want 'top'", r.View(80, 24))
	}
}

func TestKeyHints(t *testing.T) {
	r := New(&stubScreen{title: "plain"})
	if r.KeyHints() != nil {
		t.Error("plain screen should have no hints")
	}
	r.Push(&hintedScreen{stubScreen{title: "hinted"}})
	if hints := r.KeyHints(); len(hints) != 1 || hints[0].Key != "q" {
		t.Errorf("KeyHints = %v", hints)
	}
}
