package booting

import (
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnpath/internal/screen"
	"github.com/abhisek/learnpath/internal/ui/theme"
)

// BootScreen is shown while the session and flags load. It lives outside
// the router so nothing is mounted until the first real stack is chosen.
type BootScreen struct {
	spinner spinner.Model
}

var _ screen.Screen = (*BootScreen)(nil)

// New creates a BootScreen.
func New() *BootScreen {
	return &BootScreen{
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Primary)),
		),
	}
}

func (b *BootScreen) Init() tea.Cmd {
	return b.spinner.Tick
}

func (b *BootScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	b.spinner, cmd = b.spinner.Update(msg)
	return b, cmd
}

func (b *BootScreen) View(width, height int) string {
	content := b.spinner.View() + " " + theme.Hint.Render("Loading your progress…")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (b *BootScreen) Title() string {
	return ""
}
