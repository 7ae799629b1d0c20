package catalog

import (
	"fmt"
	"slices"
)

// IssueKind classifies a tolerated data problem in a track.
type IssueKind int

const (
	IssueDuplicateOrder IssueKind = iota // two items share an order value
	IssueOrderGap                        // orders skip a value; successor lookup stops there
	IssueEmptyTrack                      // a listed track has no items
)

// Issue describes a problem that the progression rules tolerate
// but an author probably wants to fix.
type Issue struct {
	TrackID string
	Kind    IssueKind
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.TrackID, i.Message)
}

// Validate inspects every track for duplicate or gapped order values.
// None of these are fatal; they are reported as warnings.
func Validate(c *Catalog) []Issue {
	var issues []Issue
	for _, t := range c.tracks {
		issues = append(issues, validateTrack(t.ID, c.byTrack[t.ID])...)
	}
	return issues
}

func validateTrack(trackID string, items []ContentItem) []Issue {
	if len(items) == 0 {
		return []Issue{{TrackID: trackID, Kind: IssueEmptyTrack, Message: "track has no items"}}
	}

	var issues []Issue
	seen := make(map[int]string, len(items))
	orders := make([]int, 0, len(items))
	for _, it := range items {
		if prev, ok := seen[it.Order]; ok {
			issues = append(issues, Issue{
				TrackID: trackID,
				Kind:    IssueDuplicateOrder,
				Message: fmt.Sprintf("items %q and %q share order %d", prev, it.ID, it.Order),
			})
			continue
		}
		seen[it.Order] = it.ID
		orders = append(orders, it.Order)
	}

	slices.Sort(orders)
	for i := 1; i < len(orders); i++ {
		if orders[i] != orders[i-1]+1 {
			issues = append(issues, Issue{
				TrackID: trackID,
				Kind:    IssueOrderGap,
				Message: fmt.Sprintf("order jumps from %d to %d", orders[i-1], orders[i]),
			})
		}
	}
	return issues
}
