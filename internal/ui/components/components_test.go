package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

type chosenMsg string

func choose(s string) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg { return chosenMsg(s) }
	}
}

func TestMenuSkipsDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "locked", Disabled: true},
		{Label: "a", Action: choose("a")},
		{Label: "locked", Disabled: true},
		{Label: "b", Action: choose("b")},
	})
	if m.Selected != 1 {
		t.Fatalf("expected first enabled item selected, got %d", m.Selected)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 3 {
		t.Fatalf("expected selection to skip disabled item, got %d", m.Selected)
	}

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected command on enter")
	}
	if got := cmd(); got != chosenMsg("b") {
		t.Errorf("expected chosenMsg b, got %v", got)
	}
}

func TestMenuSetItemsKeepsSelection(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "a"}, {Label: "b"}, {Label: "c"}})
	m.Selected = 2
	m.SetItems([]MenuItem{{Label: "a"}, {Label: "b"}, {Label: "c2"}})
	if m.Selected != 2 {
		t.Errorf("expected selection kept, got %d", m.Selected)
	}

	m.SetItems([]MenuItem{{Label: "a"}})
	if m.Selected != 0 {
		t.Errorf("expected selection clamped, got %d", m.Selected)
	}
}

func TestMenuViewMarksSelection(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "first", Detail: "40%"}, {Label: "second"}})
	view := m.View()
	if !strings.Contains(view, "▸ first") {
		t.Errorf("expected selected marker, got %q", view)
	}
	if !strings.Contains(view, "40%") {
		t.Errorf("expected detail text, got %q", view)
	}
}

func TestProgressBarFilled(t *testing.T) {
	tests := []struct {
		percent int
		want    int
	}{
		{0, 0},
		{33, 6},
		{50, 10},
		{100, 20},
		{150, 20},
		{-5, 0},
	}
	for _, tt := range tests {
		p := NewProgressBar("", tt.percent, true, 0)
		if got := p.Filled(20); got != tt.want {
			t.Errorf("Filled(20) at %d%% = %d, want %d", tt.percent, got, tt.want)
		}
	}
}

func TestProgressBarShowsPercent(t *testing.T) {
	view := NewProgressBar("Go Basics", 40, true, 40).View()
	if !strings.Contains(view, "40%") {
		t.Errorf("expected percent label, got %q", view)
	}
}

func TestButtonPress(t *testing.T) {
	b := Button{Label: "Mark complete"}
	cmd := b.Press(choose("done"))
	if cmd == nil || cmd() != chosenMsg("done") {
		t.Fatal("expected press to run the action")
	}

	b.Busy = true
	if b.Press(choose("done")) != nil {
		t.Error("busy button must ignore presses")
	}
	if !strings.Contains(b.View(), "Mark complete") {
		t.Error("expected label in view")
	}
}

func TestCardKeepsContentWidth(t *testing.T) {
	if ContentWidth(200) != 72 || ContentWidth(10) != 20 {
		t.Errorf("content width not clamped: %d %d", ContentWidth(200), ContentWidth(10))
	}
	if !strings.Contains(Card("Variables", ContentWidth(80)), "Variables") {
		t.Error("expected card to render its content")
	}
}
