package catalog

import (
	"errors"
	"fmt"
)

// ErrUnknownLevel is returned when a level name is not recognized.
var ErrUnknownLevel = errors.New("unknown level")

// Level is the difficulty of a content item.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// AllLevels returns the levels from easiest to hardest.
func AllLevels() []Level {
	return []Level{LevelBeginner, LevelIntermediate, LevelAdvanced}
}

// ParseLevel converts a level name into a Level.
func ParseLevel(s string) (Level, error) {
	for _, l := range AllLevels() {
		if string(l) == s {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLevel, s)
}

// Rank orders levels by difficulty. Unknown levels rank -1.
func (l Level) Rank() int {
	switch l {
	case LevelBeginner:
		return 0
	case LevelIntermediate:
		return 1
	case LevelAdvanced:
		return 2
	default:
		return -1
	}
}

// DisplayName returns a human-readable name for a level.
func (l Level) DisplayName() string {
	switch l {
	case LevelBeginner:
		return "Beginner"
	case LevelIntermediate:
		return "Intermediate"
	case LevelAdvanced:
		return "Advanced"
	default:
		return string(l)
	}
}

// Track is an ordered curriculum for one subject.
type Track struct {
	ID          string
	Name        string
	Description string
}

// ContentItem is a single lesson in a track. Items are read-only once loaded.
type ContentItem struct {
	ID               string
	TrackID          string
	Order            int
	Level            Level
	Title            string
	EstimatedMinutes int
	Summary          string
	Body             string
}
