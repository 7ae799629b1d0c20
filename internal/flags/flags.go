package flags

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// KeySlidesShown is set once the pre-auth slides were completed or skipped.
const KeySlidesShown = "onboarding_slides_shown"

// OnboardingDoneKey is the per-user flag for finished post-auth onboarding.
func OnboardingDoneKey(userID string) string {
	return "onboarding_done:" + userID
}

// trueValue is the stored form of a set flag. Unset flags are absent.
const trueValue = "true"

// Backend is the string key-value space flags are stored in.
type Backend interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Store reads and writes durable boolean flags.
type Store struct {
	backend Backend
	log     *zap.Logger
}

// New creates a flag store over backend.
func New(backend Backend, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{backend: backend, log: log}
}

// Get returns the flag value. ok is false when the flag was never set.
// Any stored value other than "true" reads as false.
func (s *Store) Get(ctx context.Context, key string) (value, ok bool, err error) {
	raw, ok, err := s.backend.Get(ctx, key)
	if err != nil {
		return false, false, fmt.Errorf("read flag %q: %w", key, err)
	}
	if !ok {
		return false, false, nil
	}
	return raw == trueValue, true, nil
}

// Set writes the flag. Setting false removes the key.
func (s *Store) Set(ctx context.Context, key string, value bool) error {
	var err error
	if value {
		err = s.backend.Set(ctx, key, trueValue)
	} else {
		err = s.backend.Delete(ctx, key)
	}
	if err != nil {
		return fmt.Errorf("write flag %q: %w", key, err)
	}
	return nil
}

// IsSet reads the flag and falls back to false on any error.
func (s *Store) IsSet(ctx context.Context, key string) bool {
	v, _, err := s.Get(ctx, key)
	if err != nil {
		s.log.Warn("flag read failed, using default", zap.String("key", key), zap.Error(err))
		return false
	}
	return v
}
