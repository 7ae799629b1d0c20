package login

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnpath/internal/screen"
	"github.com/abhisek/learnpath/internal/ui/components"
	"github.com/abhisek/learnpath/internal/ui/layout"
	"github.com/abhisek/learnpath/internal/ui/theme"
)

const maxNameLen = 32

// SubmitMsg asks the app to sign in as Name.
type SubmitMsg struct {
	Name string
}

// FailedMsg reports a sign-in failure back to the screen.
type FailedMsg struct {
	Err error
}

// LoginScreen asks for the learner's name.
type LoginScreen struct {
	input   components.TextInput
	pending bool
	errText string
}

var _ screen.Screen = (*LoginScreen)(nil)

// New creates a LoginScreen.
func New() *LoginScreen {
	return &LoginScreen{
		input: components.NewTextInput("your name", maxNameLen),
	}
}

func (l *LoginScreen) Init() tea.Cmd {
	return l.input.Init()
}

func (l *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case FailedMsg:
		l.pending = false
		l.errText = msg.Err.Error()
		l.input.Submit(false)
		return l, nil

	case tea.KeyMsg:
		if l.pending {
			return l, nil
		}
		if msg.String() == "enter" {
			return l, l.submit()
		}
	}

	var cmd tea.Cmd
	l.input, cmd = l.input.Update(msg)
	if _, ok := msg.(tea.KeyMsg); ok {
		l.errText = ""
	}
	return l, cmd
}

func (l *LoginScreen) submit() tea.Cmd {
	name := l.input.TrimmedValue()
	if name == "" {
		l.errText = "Please enter a name."
		l.input.Submit(false)
		return nil
	}
	l.pending = true
	l.input.Submit(true)
	return func() tea.Msg { return SubmitMsg{Name: name} }
}

// Pending reports whether a sign-in is in flight.
func (l *LoginScreen) Pending() bool {
	return l.pending
}

func (l *LoginScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Sign in"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (l *LoginScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	if cw > 48 {
		cw = 48
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render("Who's learning today?"))
	b.WriteString("\n\n")
	b.WriteString(theme.Subtitle.Render("Use the same name next time to keep your progress."))
	b.WriteString("\n\n")
	b.WriteString(l.input.View())
	switch {
	case l.pending:
		b.WriteString("\n\n" + theme.Hint.Render("Signing in…"))
	case l.errText != "":
		b.WriteString("\n\n" + theme.ErrorText.Render(l.errText))
	}

	card := components.Card(b.String(), cw)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (l *LoginScreen) Title() string {
	return "Sign in"
}
