package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/learnpath/internal/ui/theme"
)

// Button is a screen's single call to action. A busy button is dimmed and
// ignores presses.
type Button struct {
	Label string
	Busy  bool
}

// Press runs action unless the button is busy.
func (b Button) Press(action func() tea.Cmd) tea.Cmd {
	if b.Busy || action == nil {
		return nil
	}
	return action()
}

func (b Button) View() string {
	label := "▸ " + b.Label
	if b.Busy {
		return theme.ButtonInactive.Render(label)
	}
	return theme.ButtonActive.Render(label)
}
