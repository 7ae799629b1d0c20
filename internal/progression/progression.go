package progression

import (
	"cmp"
	"math"
	"slices"

	"github.com/abhisek/learnpath/internal/catalog"
)

// Status is a lesson's position in linear progression.
type Status int

const (
	StatusLocked    Status = iota // after the active lesson
	StatusActive                  // first lesson not yet completed
	StatusCompleted               // in the completed set
)

// Icon returns the display icon for a status.
func (s Status) Icon() string {
	switch s {
	case StatusLocked:
		return "🔒"
	case StatusActive:
		return "▶"
	case StatusCompleted:
		return "✅"
	default:
		return "?"
	}
}

// Label returns the display label for a status.
func (s Status) Label() string {
	switch s {
	case StatusLocked:
		return "Locked"
	case StatusActive:
		return "Up next"
	case StatusCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

func (s Status) String() string {
	switch s {
	case StatusLocked:
		return "locked"
	case StatusActive:
		return "active"
	case StatusCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// ItemStatus pairs a lesson with its computed status.
type ItemStatus struct {
	Item   catalog.ContentItem
	Status Status
}

// View is the derived progress of one track.
type View struct {
	TrackID         string
	Items           []ItemStatus // sorted by Order
	CompletedCount  int
	TotalCount      int
	PercentComplete int // 0-100
	ActiveIndex     int // -1 when the track is empty or finished
}

// Active returns the active lesson, if any.
func (v View) Active() (catalog.ContentItem, bool) {
	if v.ActiveIndex < 0 || v.ActiveIndex >= len(v.Items) {
		return catalog.ContentItem{}, false
	}
	return v.Items[v.ActiveIndex].Item, true
}

// Finished reports whether every lesson in a non-empty track is completed.
func (v View) Finished() bool {
	return v.TotalCount > 0 && v.CompletedCount == v.TotalCount
}

// Sorted returns a copy of items ordered by Order. The sort is stable, so
// duplicate orders keep their catalog order.
func Sorted(items []catalog.ContentItem) []catalog.ContentItem {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b catalog.ContentItem) int {
		return cmp.Compare(a.Order, b.Order)
	})
	return sorted
}

// Compute builds the view for one track.
func Compute(trackID string, items []catalog.ContentItem, completed map[string]bool) View {
	sorted := Sorted(items)
	v := View{
		TrackID:     trackID,
		Items:       make([]ItemStatus, len(sorted)),
		TotalCount:  len(sorted),
		ActiveIndex: -1,
	}

	for i, it := range sorted {
		if completed[it.ID] {
			v.CompletedCount++
			continue
		}
		if v.ActiveIndex < 0 {
			v.ActiveIndex = i
		}
	}

	for i, it := range sorted {
		st := StatusLocked
		switch {
		case completed[it.ID]:
			st = StatusCompleted
		case i == v.ActiveIndex:
			st = StatusActive
		}
		v.Items[i] = ItemStatus{Item: it, Status: st}
	}

	v.PercentComplete = Percent(v.CompletedCount, v.TotalCount)
	return v
}

// Percent returns round(100*completed/total), or 0 for an empty track.
func Percent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}

// NextItem returns the lesson whose order is exactly currentOrder+1.
// It ignores completion and stops at gaps: with orders 1,2,4 there is no
// successor of 2.
func NextItem(items []catalog.ContentItem, currentOrder int) (catalog.ContentItem, bool) {
	for _, it := range Sorted(items) {
		if it.Order == currentOrder+1 {
			return it, true
		}
	}
	return catalog.ContentItem{}, false
}

// IsLevelUp reports whether moving from current to next is a step up in
// difficulty. Moves back down, and moves into beginner, never count.
func IsLevelUp(current, next catalog.Level) bool {
	if next != catalog.LevelIntermediate && next != catalog.LevelAdvanced {
		return false
	}
	return next.Rank() > current.Rank()
}

// Continuation is what the lesson screen offers after finishing a lesson.
type Continuation struct {
	Next    *catalog.ContentItem
	LevelUp bool
}

// Continue looks up the successor of current and whether it levels up.
func Continue(items []catalog.ContentItem, current catalog.ContentItem) Continuation {
	next, ok := NextItem(items, current.Order)
	if !ok {
		return Continuation{}
	}
	return Continuation{
		Next:    &next,
		LevelUp: IsLevelUp(current.Level, next.Level),
	}
}

// LessonsToMilestone is the count shown in the "lessons to your next
// milestone" line. It is 1 unless index is the last lesson (or out of range).
func LessonsToMilestone(v View, index int) int {
	if index < 0 || index >= len(v.Items)-1 {
		return 0
	}
	return 1
}

// TrackSummary is one row of the per-track overview.
type TrackSummary struct {
	Track catalog.Track
	View  View
}

// Summarize computes views for every track in catalog display order.
func Summarize(c *catalog.Catalog, completed map[string]bool) []TrackSummary {
	tracks := c.Tracks()
	out := make([]TrackSummary, 0, len(tracks))
	for _, t := range tracks {
		out = append(out, TrackSummary{
			Track: t,
			View:  Compute(t.ID, c.Items(t.ID), completed),
		})
	}
	return out
}
