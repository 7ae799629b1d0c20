package slides

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnpath/internal/screen"
	"github.com/abhisek/learnpath/internal/ui/layout"
	"github.com/abhisek/learnpath/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	revealDur    = 600 * time.Millisecond
)

// Slide is one page of the intro.
type Slide struct {
	Heading string
	Body    string
}

// DefaultSlides is the intro shown to first-time visitors.
var DefaultSlides = []Slide{
	{
		Heading: "Learn one step at a time",
		Body:    "Every track is a short path of lessons.\nFinish one and the next unlocks.",
	},
	{
		Heading: "Climb the levels",
		Body:    "Tracks start at beginner and work up\nthrough intermediate to advanced.",
	},
	{
		Heading: "Pick up where you left off",
		Body:    "Your progress is saved on this machine,\nso you can stop whenever you like.",
	},
}

// DoneMsg is emitted once when the learner finishes or skips the slides.
type DoneMsg struct{}

type tickMsg time.Time

// SlidesScreen is the pre-auth intro carousel.
type SlidesScreen struct {
	slides  []Slide
	page    int
	elapsed time.Duration // since the current page appeared
	done    bool
}

var _ screen.Screen = (*SlidesScreen)(nil)

// New creates a SlidesScreen over the given slides.
func New(slides []Slide) *SlidesScreen {
	return &SlidesScreen{slides: slides}
}

func (s *SlidesScreen) Title() string {
	return ""
}

func (s *SlidesScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (s *SlidesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if s.elapsed < revealDur {
			s.elapsed += tickInterval
			return s, tick()
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "s":
			return s, s.finish()
		case "left", "h":
			if s.page > 0 {
				s.page--
				return s, s.restartReveal()
			}
		case "right", "l", "enter", "space":
			if s.page < len(s.slides)-1 {
				s.page++
				return s, s.restartReveal()
			}
			return s, s.finish()
		}
	}
	return s, nil
}

// restartReveal resets the fade-in. A tick is only scheduled when the
// previous reveal has already stopped ticking.
func (s *SlidesScreen) restartReveal() tea.Cmd {
	stopped := s.elapsed >= revealDur
	s.elapsed = 0
	if stopped {
		return tick()
	}
	return nil
}

func (s *SlidesScreen) finish() tea.Cmd {
	if s.done {
		return nil
	}
	s.done = true
	return func() tea.Msg { return DoneMsg{} }
}

// Page returns the index of the visible slide.
func (s *SlidesScreen) Page() int {
	return s.page
}

func (s *SlidesScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Page"},
		{Key: "S", Description: "Skip"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *SlidesScreen) View(width, height int) string {
	var sections []string
	sections = append(sections, RenderBanner(width), "")

	if len(s.slides) > 0 {
		slide := s.slides[s.page]
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render(slide.Heading))

		// Body fades in after the heading.
		if s.elapsed >= revealDur/2 {
			sections = append(sections, "", theme.Subtitle.Render(slide.Body))
		}
	}

	sections = append(sections, "", s.renderDots())

	next := "press enter to continue"
	if s.page == len(s.slides)-1 {
		next = "press enter to get started"
	}
	sections = append(sections, "", theme.Hint.Render(next))

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *SlidesScreen) renderDots() string {
	dots := make([]string, len(s.slides))
	for i := range s.slides {
		if i == s.page {
			dots[i] = lipgloss.NewStyle().Foreground(theme.Primary).Render("●")
		} else {
			dots[i] = lipgloss.NewStyle().Foreground(theme.Border).Render("○")
		}
	}
	return strings.Join(dots, " ") + theme.Hint.Render(fmt.Sprintf("  %d/%d", s.page+1, len(s.slides)))
}
