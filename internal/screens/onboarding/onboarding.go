package onboarding

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnpath/internal/catalog"
	"github.com/abhisek/learnpath/internal/screen"
	"github.com/abhisek/learnpath/internal/ui/components"
	"github.com/abhisek/learnpath/internal/ui/theme"
)

// DoneMsg is emitted once with the track the learner chose to start with.
type DoneMsg struct {
	TrackID string
}

// OnboardingScreen greets a new learner and asks for a first track.
type OnboardingScreen struct {
	name   string
	tracks []catalog.Track
	menu   components.Menu
	done   bool
}

var _ screen.Screen = (*OnboardingScreen)(nil)

// New creates an OnboardingScreen for the learner called name.
func New(name string, cat *catalog.Catalog) *OnboardingScreen {
	o := &OnboardingScreen{name: name, tracks: cat.Tracks()}

	items := make([]components.MenuItem, 0, len(o.tracks))
	for _, t := range o.tracks {
		id := t.ID
		items = append(items, components.MenuItem{
			Label:  t.Name,
			Detail: fmt.Sprintf("%d lessons", len(cat.Items(id))),
			Action: func() tea.Cmd { return o.choose(id) },
		})
	}
	o.menu = components.NewMenu(items)
	return o
}

func (o *OnboardingScreen) choose(trackID string) tea.Cmd {
	if o.done {
		return nil
	}
	o.done = true
	return func() tea.Msg { return DoneMsg{TrackID: trackID} }
}

func (o *OnboardingScreen) Init() tea.Cmd {
	return nil
}

func (o *OnboardingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	o.menu, cmd = o.menu.Update(msg)
	return o, cmd
}

func (o *OnboardingScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Title.Render(fmt.Sprintf("Welcome, %s!", o.name)))
	b.WriteString("\n\n")
	b.WriteString(theme.Subtitle.Render("Pick a track to start with. You can switch any time."))
	b.WriteString("\n\n")

	if len(o.tracks) == 0 {
		b.WriteString(theme.Hint.Render("No tracks are available yet."))
	} else {
		b.WriteString(o.menu.View())
		if o.menu.Selected >= 0 && o.menu.Selected < len(o.tracks) {
			b.WriteString("\n" + theme.Hint.Width(cw-4).Render(o.tracks[o.menu.Selected].Description))
		}
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, components.Card(b.String(), cw))
}

func (o *OnboardingScreen) Title() string {
	return "Get started"
}
