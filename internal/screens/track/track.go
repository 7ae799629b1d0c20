package track

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
	"github.com/abhisek/learnpath/internal/ui/components"
	"github.com/abhisek/learnpath/internal/ui/layout"
	"github.com/abhisek/learnpath/internal/ui/theme"
)

// TrackScreen lists a track's lessons with their progression status.
type TrackScreen struct {
	ctx      context.Context
	cat      *catalog.Catalog
	progress *progress.Store
	track    catalog.Track

	cursor       int
	scrollOffset int
	notice       string
}

var _ screen.Screen = (*TrackScreen)(nil)

// New creates a TrackScreen with the cursor on the active lesson.
func New(ctx context.Context, cat *catalog.Catalog, prog *progress.Store, t catalog.Track) *TrackScreen {
	s := &TrackScreen{ctx: ctx, cat: cat, progress: prog, track: t}
	if v := s.view(); v.ActiveIndex >= 0 {
		s.cursor = v.ActiveIndex
	}
	return s
}

// view recomputes progression from the current completed set.
func (s *TrackScreen) view() progression.View {
	return progression.Compute(s.track.ID, s.cat.Items(s.track.ID), s.progress.Completed())
}

func (s *TrackScreen) Init() tea.Cmd {
	return nil
}

func (s *TrackScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	v := s.view()
	switch kmsg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
		s.notice = ""
	case "down", "j":
		if s.cursor < len(v.Items)-1 {
			s.cursor++
		}
		s.notice = ""
	case "enter":
		return s, s.open(v)
	}
	return s, nil
}

func (s *TrackScreen) open(v progression.View) tea.Cmd {
	if s.cursor < 0 || s.cursor >= len(v.Items) {
		return nil
	}
	row := v.Items[s.cursor]
	if row.Status == progression.StatusLocked {
		if active, ok := v.Active(); ok {
			s.notice = fmt.Sprintf("Finish %q to unlock this lesson.", active.Title)
		}
		return nil
	}
	s.notice = ""
	next := lesson.New(s.ctx, s.cat, s.progress, lesson.RouteFor(s.track, row.Item))
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: next}
	}
}

// Cursor returns the highlighted row.
func (s *TrackScreen) Cursor() int {
	return s.cursor
}

func (s *TrackScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "Esc", Description: "Back"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *TrackScreen) View(width, height int) string {
	v := s.view()
	cw := components.ContentWidth(width)

	var top []string
	if s.track.Description != "" && !layout.IsShort(height) {
		top = append(top, theme.Hint.Width(cw).Render(s.track.Description), "")
	}
	top = append(top,
		components.NewProgressBar(
			fmt.Sprintf("%d/%d lessons", v.CompletedCount, v.TotalCount),
			v.PercentComplete, true, cw,
		).View(),
		renderMilestone(v),
		"",
	)

	if v.TotalCount == 0 {
		top = append(top, theme.Hint.Render("No lessons in this track yet."))
		return lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(top, "\n"))
	}

	var bottom []string
	if s.notice != "" {
		bottom = append(bottom, "", theme.ErrorText.Render(s.notice))
	}

	listHeight := height - 2 - len(top) - len(bottom)
	s.adjustScroll(listHeight)

	var rows []string
	for i := s.scrollOffset; i < len(v.Items) && len(rows) < listHeight; i++ {
		rows = append(rows, renderRow(v.Items[i], i == s.cursor, cw))
	}

	lines := append(top, rows...)
	lines = append(lines, bottom...)
	return lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(lines, "\n"))
}

func (s *TrackScreen) adjustScroll(visible int) {
	if visible <= 0 {
		return
	}
	if s.cursor < s.scrollOffset {
		s.scrollOffset = s.cursor
	}
	if s.cursor >= s.scrollOffset+visible {
		s.scrollOffset = s.cursor - visible + 1
	}
}

func renderMilestone(v progression.View) string {
	switch {
	case v.TotalCount == 0:
		return ""
	case v.Finished():
		return theme.Completed.Render("Track complete!")
	}
	n := progression.LessonsToMilestone(v, v.ActiveIndex)
	if n == 0 {
		return theme.Hint.Render("Final lesson: finish it to complete the track.")
	}
	return theme.Hint.Render(fmt.Sprintf("%d lesson to your next milestone.", n))
}

func renderRow(row progression.ItemStatus, selected bool, cw int) string {
	style := theme.Locked
	switch row.Status {
	case progression.StatusCompleted:
		style = theme.Completed
	case progression.StatusActive:
		style = theme.Active
	}

	cursor := "  "
	if selected {
		cursor = theme.Selected.Render("▸ ")
	}

	title := style.Render(fmt.Sprintf("%s %d. %s", row.Status.Icon(), row.Item.Order, row.Item.Title))
	meta := theme.Hint.Render(fmt.Sprintf("%s · %d min", row.Item.Level.DisplayName(), row.Item.EstimatedMinutes))

	gap := cw - lipgloss.Width(cursor) - lipgloss.Width(title) - lipgloss.Width(meta)
	if gap < 2 {
		gap = 2
	}
	return cursor + title + strings.Repeat(" ", gap) + meta
}

func (s *TrackScreen) Title() string {
	return s.track.Name
}
