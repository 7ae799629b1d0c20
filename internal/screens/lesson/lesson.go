package lesson

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnpath/internal/catalog"
	"github.com/abhisek/learnpath/internal/progress"
	"github.com/abhisek/learnpath/internal/progression"
	"github.com/abhisek/learnpath/internal/router"
	"github.com/abhisek/learnpath/internal/screen"
	"github.com/abhisek/learnpath/internal/ui/components"
	"github.com/abhisek/learnpath/internal/ui/layout"
	"github.com/abhisek/learnpath/internal/ui/theme"
)

// LessonRoute identifies the lesson to open. Order and Level locate the item
// inside its track; ItemID disambiguates duplicate orders when known.
type LessonRoute struct {
	TrackID   string
	TrackName string
	ItemID    string
	Order     int
	Level     catalog.Level

	// LevelUp is set when the learner arrived by continuing into a higher
	// level, and shows the level-up banner.
	LevelUp bool
}

// RouteFor builds the route for item in track.
func RouteFor(track catalog.Track, item catalog.ContentItem) LessonRoute {
	return LessonRoute{
		TrackID:   track.ID,
		TrackName: track.Name,
		ItemID:    item.ID,
		Order:     item.Order,
		Level:     item.Level,
	}
}

type lastReadSavedMsg struct{ err error }

type completedMsg struct{ err error }

// LessonScreen shows one lesson and lets the learner complete it and move on.
type LessonScreen struct {
	ctx      context.Context
	cat      *catalog.Catalog
	progress *progress.Store
	route    LessonRoute

	item     catalog.ContentItem
	found    bool
	cont     progression.Continuation
	complete bool
	saving   bool
	errText  string
	scroll   int
}

var _ screen.Screen = (*LessonScreen)(nil)

// New creates a LessonScreen for route. Progress writes run under ctx.
func New(ctx context.Context, cat *catalog.Catalog, prog *progress.Store, route LessonRoute) *LessonScreen {
	l := &LessonScreen{ctx: ctx, cat: cat, progress: prog, route: route}

	items := cat.Items(route.TrackID)
	l.item, l.found = resolve(items, route)
	if l.found {
		l.cont = progression.Continue(items, l.item)
		l.complete = prog.IsComplete(l.item.ID)
	}
	return l
}

func resolve(items []catalog.ContentItem, route LessonRoute) (catalog.ContentItem, bool) {
	for _, it := range progression.Sorted(items) {
		if route.ItemID != "" {
			if it.ID == route.ItemID {
				return it, true
			}
			continue
		}
		if it.Order == route.Order {
			return it, true
		}
	}
	return catalog.ContentItem{}, false
}

// Item returns the resolved lesson.
func (l *LessonScreen) Item() (catalog.ContentItem, bool) {
	return l.item, l.found
}

func (l *LessonScreen) Init() tea.Cmd {
	if !l.found {
		return nil
	}
	ctx, prog, route, item := l.ctx, l.progress, l.route, l.item
	return func() tea.Msg {
		err := prog.SetLastRead(ctx, route.TrackID, item.ID, route.TrackName, item.Title)
		return lastReadSavedMsg{err: err}
	}
}

func (l *LessonScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case lastReadSavedMsg:
		if msg.err != nil {
			l.errText = "Could not save your place."
		}
		return l, nil

	case completedMsg:
		l.saving = false
		if msg.err != nil {
			l.errText = "Could not save progress. Try again."
			return l, nil
		}
		l.complete = true
		l.errText = ""
		return l, nil

	case tea.KeyMsg:
		if !l.found {
			return l, nil
		}
		switch msg.String() {
		case "c":
			return l, l.markComplete()
		case "enter":
			return l, l.button().Press(l.activate)
		case "up", "k":
			if l.scroll > 0 {
				l.scroll--
			}
		case "down", "j":
			l.scroll++
		}
	}
	return l, nil
}

func (l *LessonScreen) markComplete() tea.Cmd {
	if l.complete || l.saving {
		return nil
	}
	l.saving = true
	ctx, prog, trackID, itemID := l.ctx, l.progress, l.route.TrackID, l.item.ID
	return func() tea.Msg {
		return completedMsg{err: prog.MarkItemComplete(ctx, trackID, itemID)}
	}
}

// activate is the button action: complete the lesson first, then move on.
func (l *LessonScreen) activate() tea.Cmd {
	if !l.complete {
		return l.markComplete()
	}
	return l.next()
}

// next replaces this lesson with its successor, or goes back to the track
// when there is none.
func (l *LessonScreen) next() tea.Cmd {
	if l.cont.Next == nil {
		return func() tea.Msg { return router.PopScreenMsg{} }
	}
	route := LessonRoute{
		TrackID:   l.route.TrackID,
		TrackName: l.route.TrackName,
		ItemID:    l.cont.Next.ID,
		Order:     l.cont.Next.Order,
		Level:     l.cont.Next.Level,
		LevelUp:   l.cont.LevelUp,
	}
	nextScreen := New(l.ctx, l.cat, l.progress, route)
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: nextScreen}
	}
}

func (l *LessonScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "↑↓", Description: "Scroll"}}
	if l.complete {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Continue"})
	} else {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Complete"})
	}
	return append(hints,
		layout.KeyHint{Key: "Esc", Description: "Back"},
		layout.KeyHint{Key: "Ctrl+C", Description: "Quit"},
	)
}

func (l *LessonScreen) View(width, height int) string {
	if !l.found {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("This lesson is no longer available."))
	}

	cw := components.ContentWidth(width)
	var top []string

	if l.route.LevelUp {
		top = append(top, theme.LevelUp.Render(fmt.Sprintf("Level up! You've reached %s", l.item.Level.DisplayName())), "")
	}
	top = append(top,
		theme.Title.Render(l.item.Title),
		theme.Subtitle.Render(fmt.Sprintf("%s · %d min · lesson %d", l.item.Level.DisplayName(), l.item.EstimatedMinutes, l.item.Order)),
		"",
	)
	if l.item.Summary != "" && !layout.IsShort(height) {
		top = append(top, theme.Hint.Width(cw).Render(l.item.Summary), "")
	}

	bottom := []string{"", l.renderStatus()}
	if l.errText != "" {
		bottom = append(bottom, theme.ErrorText.Render(l.errText))
	}
	bottom = append(bottom, "", l.button().View())

	headerText := strings.Join(top, "\n")
	footerText := strings.Join(bottom, "\n")
	bodyHeight := height - lipgloss.Height(headerText) - lipgloss.Height(footerText)
	body := l.renderBody(cw, bodyHeight)

	content := lipgloss.JoinVertical(lipgloss.Center, headerText, body, footerText)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, content)
}

func (l *LessonScreen) renderBody(cw, height int) string {
	if height <= 0 {
		return ""
	}
	lines := strings.Split(theme.Body.Width(cw).Render(strings.TrimSpace(l.item.Body)), "\n")
	maxScroll := max(len(lines)-height, 0)
	if l.scroll > maxScroll {
		l.scroll = maxScroll
	}
	end := min(l.scroll+height, len(lines))
	return strings.Join(lines[l.scroll:end], "\n")
}

func (l *LessonScreen) renderStatus() string {
	if !l.complete {
		return theme.Active.Render(progression.StatusActive.Icon() + " In progress")
	}
	s := theme.Completed.Render(progression.StatusCompleted.Icon() + " Completed")
	if l.cont.Next != nil {
		s += theme.Hint.Render("  Next: " + l.cont.Next.Title)
		if l.cont.LevelUp {
			s += theme.Active.Render(fmt.Sprintf("  ↑ %s", l.cont.Next.Level.DisplayName()))
		}
	}
	return s
}

func (l *LessonScreen) button() components.Button {
	label := "Mark complete"
	switch {
	case l.saving:
		label = "Saving…"
	case l.complete && l.cont.Next != nil:
		label = "Continue →"
	case l.complete:
		label = "Back to track"
	}
	return components.Button{Label: label, Busy: l.saving}
}

func (l *LessonScreen) Title() string {
	return l.route.TrackName
}
