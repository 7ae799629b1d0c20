package store

import (
	"context"
	"time"
)

// KVRepo is a flat string key-value space for flags and session records.
type KVRepo interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Clear removes every key.
	Clear(ctx context.Context) error
}

// CompletedItem records that a lesson was finished.
type CompletedItem struct {
	TrackID     string
	ItemID      string
	CompletedAt time.Time
}

// LastRead records the lesson the learner most recently opened.
type LastRead struct {
	TrackID   string
	ItemID    string
	TrackName string
	Title     string
	ReadAt    time.Time
}

// ProgressRepo persists one learner's lesson completions and last-read
// pointer.
type ProgressRepo interface {
	// MarkComplete records a completion. Recording the same item twice
	// keeps the first timestamp.
	MarkComplete(ctx context.Context, trackID, itemID string, at time.Time) error

	// Completed returns every completion, oldest first.
	Completed(ctx context.Context) ([]CompletedItem, error)

	// SetLastRead overwrites the last-read pointer.
	SetLastRead(ctx context.Context, lr LastRead) error

	// LastRead returns the last-read pointer, or nil if none was written.
	LastRead(ctx context.Context) (*LastRead, error)

	// Reset deletes the learner's completions and last-read pointer.
	Reset(ctx context.Context) error
}
