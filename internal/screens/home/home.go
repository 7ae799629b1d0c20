package home

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
	"github.com/abhisek/learnpath/internal/screens/lesson"
	"github.com/abhisek/learnpath/internal/screens/track"
	"github.com/abhisek/learnpath/internal/ui/components"
	"github.com/abhisek/learnpath/internal/ui/theme"
)

// SignOutMsg asks the app to end the session.
type SignOutMsg struct{}

// HomeScreen is the root of the main stack: a continue shortcut, every
// track with its progress, and account actions.
type HomeScreen struct {
	ctx      context.Context
	cat      *catalog.Catalog
	progress *progress.Store
	learner  string

	menu      components.Menu
	summaries []progression.TrackSummary
	// trackRow maps menu index to summaries index; -1 for other rows.
	trackRow []int
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a HomeScreen for the learner called learner. ctx bounds the
// storage work of the screens it opens.
func New(ctx context.Context, cat *catalog.Catalog, prog *progress.Store, learner string) *HomeScreen {
	h := &HomeScreen{ctx: ctx, cat: cat, progress: prog, learner: learner}
	h.menu = components.NewMenu(nil)
	h.refresh()
	return h
}

// refresh rebuilds the menu from current progress. Progress changes on
// other screens, so this runs before every update and render.
func (h *HomeScreen) refresh() {
	h.summaries = progression.Summarize(h.cat, h.progress.Completed())

	var items []components.MenuItem
	var rows []int

	if item, route, ok := h.continueTarget(); ok {
		items = append(items, components.MenuItem{
			Label:  "Continue: " + item.Title,
			Detail: route.TrackName,
			Action: func() tea.Cmd {
				return pushCmd(lesson.New(h.ctx, h.cat, h.progress, route))
			},
		})
		rows = append(rows, -1)
	}

	for i, sum := range h.summaries {
		t := sum.Track
		items = append(items, components.MenuItem{
			Label:  t.Name,
			Detail: trackDetail(sum.View),
			Action: func() tea.Cmd {
				return pushCmd(track.New(h.ctx, h.cat, h.progress, t))
			},
		})
		rows = append(rows, i)
	}

	items = append(items,
		components.MenuItem{Label: "Sign out", Action: func() tea.Cmd {
			return func() tea.Msg { return SignOutMsg{} }
		}},
		components.MenuItem{Label: "Quit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	)
	rows = append(rows, -1, -1)

	h.menu.SetItems(items)
	h.trackRow = rows
}

// continueTarget resolves the last-read lesson against the catalog.
func (h *HomeScreen) continueTarget() (catalog.ContentItem, lesson.LessonRoute, bool) {
	lr, ok := h.progress.LastRead()
	if !ok {
		return catalog.ContentItem{}, lesson.LessonRoute{}, false
	}
	item, ok := h.cat.Item(lr.ItemID)
	if !ok || item.TrackID != lr.TrackID {
		return catalog.ContentItem{}, lesson.LessonRoute{}, false
	}
	t, ok := h.cat.Track(lr.TrackID)
	if !ok {
		t = catalog.Track{ID: lr.TrackID, Name: lr.TrackName}
	}
	return item, lesson.RouteFor(t, item), true
}

func trackDetail(v progression.View) string {
	switch {
	case v.TotalCount == 0:
		return "coming soon"
	case v.Finished():
		return "complete"
	}
	return fmt.Sprintf("%d%% · %d/%d", v.PercentComplete, v.CompletedCount, v.TotalCount)
}

func pushCmd(s screen.Screen) tea.Cmd {
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: s}
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		h.refresh()
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	h.refresh()
	cw := components.ContentWidth(width)

	total, done := 0, 0
	for _, s := range h.summaries {
		total += s.View.TotalCount
		done += s.View.CompletedCount
	}

	var b strings.Builder
	greeting := "Welcome back!"
	if h.learner != "" {
		greeting = fmt.Sprintf("Welcome back, %s!", h.learner)
	}
	b.WriteString(theme.Title.Render(greeting))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("%d of %d lessons completed", done, total)))
	b.WriteString("\n\n")
	b.WriteString(h.menu.View())

	if sel := h.menu.Selected; sel >= 0 && sel < len(h.trackRow) && h.trackRow[sel] >= 0 {
		sum := h.summaries[h.trackRow[sel]]
		b.WriteString("\n")
		b.WriteString(components.NewProgressBar(sum.Track.Name, sum.View.PercentComplete, true, cw-4).View())
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, components.Card(b.String(), cw))
}

func (h *HomeScreen) Title() string {
	return "Home"
}
