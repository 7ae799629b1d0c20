package progress

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/learnpath/internal/store"
)

// LastRead points at the lesson the learner most recently opened.
type LastRead struct {
	TrackID   string
	ItemID    string
	TrackName string
	Title     string
	At        time.Time
}

// Snapshot is a copy of the learner's progress.
type Snapshot struct {
	CompletedItemIDs map[string]bool
	LastRead         *LastRead
}

// Store keeps one learner's progress snapshot in memory and writes through
// to a repository. A failed write leaves the in-memory snapshot unchanged.
type Store struct {
	mu        sync.RWMutex
	repo      store.ProgressRepo
	log       *zap.Logger
	now       func() time.Time
	completed map[string]string // item id -> track id
	lastRead  *LastRead
}

// NewStore creates an empty progress store. repo may be nil, in which case
// progress lives only for the process lifetime.
func NewStore(repo store.ProgressRepo, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		repo:      repo,
		log:       log,
		now:       time.Now,
		completed: make(map[string]string),
	}
}

// Load replaces the in-memory snapshot with the persisted one. On failure
// the current snapshot is kept.
func (s *Store) Load(ctx context.Context) error {
	s.mu.RLock()
	repo := s.repo
	s.mu.RUnlock()
	if repo == nil {
		return nil
	}

	items, err := repo.Completed(ctx)
	if err != nil {
		return fmt.Errorf("load completed items: %w", err)
	}
	lr, err := repo.LastRead(ctx)
	if err != nil {
		return fmt.Errorf("load last read: %w", err)
	}

	completed := make(map[string]string, len(items))
	for _, it := range items {
		completed[it.ItemID] = it.TrackID
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.repo != repo {
		// Switched to another learner while loading.
		return nil
	}
	s.completed = completed
	s.lastRead = nil
	if lr != nil {
		s.lastRead = &LastRead{
			TrackID:   lr.TrackID,
			ItemID:    lr.ItemID,
			TrackName: lr.TrackName,
			Title:     lr.Title,
			At:        lr.ReadAt,
		}
	}
	s.log.Debug("progress loaded", zap.Int("completed", len(completed)))
	return nil
}

// Switch points the store at another learner's repository and loads their
// progress. The previous learner's snapshot is dropped first, so a failed
// load leaves the store empty rather than showing someone else's progress.
// A nil repo gives an empty, memory-only store.
func (s *Store) Switch(ctx context.Context, repo store.ProgressRepo) error {
	s.mu.Lock()
	s.repo = repo
	s.completed = make(map[string]string)
	s.lastRead = nil
	s.mu.Unlock()

	return s.Load(ctx)
}

// MarkItemComplete records a completed lesson. Completing an item twice is
// a no-op.
func (s *Store) MarkItemComplete(ctx context.Context, trackID, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, done := s.completed[itemID]; done {
		return nil
	}

	if s.repo != nil {
		if err := s.repo.MarkComplete(ctx, trackID, itemID, s.now()); err != nil {
			s.log.Warn("mark complete failed", zap.String("item", itemID), zap.Error(err))
			return err
		}
	}
	s.completed[itemID] = trackID
	return nil
}

// SetLastRead overwrites the last-read pointer.
func (s *Store) SetLastRead(ctx context.Context, trackID, itemID, trackName, title string) error {
	lr := LastRead{
		TrackID:   trackID,
		ItemID:    itemID,
		TrackName: trackName,
		Title:     title,
		At:        s.now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.repo != nil {
		err := s.repo.SetLastRead(ctx, store.LastRead{
			TrackID:   lr.TrackID,
			ItemID:    lr.ItemID,
			TrackName: lr.TrackName,
			Title:     lr.Title,
			ReadAt:    lr.At,
		})
		if err != nil {
			s.log.Warn("set last read failed", zap.String("item", itemID), zap.Error(err))
			return err
		}
	}
	s.lastRead = &lr
	return nil
}

// IsComplete reports whether itemID has been completed.
func (s *Store) IsComplete(itemID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.completed[itemID]
	return ok
}

// Completed returns a copy of the completed set.
func (s *Store) Completed() map[string]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]bool, len(s.completed))
	for id := range s.completed {
		out[id] = true
	}
	return out
}

// CompletedInTrack counts completed items recorded against trackID.
func (s *Store) CompletedInTrack(trackID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, t := range s.completed {
		if t == trackID {
			n++
		}
	}
	return n
}

// LastRead returns the last-read pointer, if any.
func (s *Store) LastRead() (LastRead, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastRead == nil {
		return LastRead{}, false
	}
	return *s.lastRead, true
}

// Snapshot returns a copy of the current progress.
func (s *Store) Snapshot() Snapshot {
	snap := Snapshot{CompletedItemIDs: s.Completed()}
	if lr, ok := s.LastRead(); ok {
		snap.LastRead = &lr
	}
	return snap
}

// Reset clears all progress, persisted and in memory.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.repo != nil {
		if err := s.repo.Reset(ctx); err != nil {
			return fmt.Errorf("reset progress: %w", err)
		}
	}
	clear(s.completed)
	s.lastRead = nil
	return nil
}

