package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/learnpath/internal/flags"
)

// ErrEmptyName is returned when signing in without a name.
var ErrEmptyName = errors.New("auth: name is required")

const (
	keyCurrentUser = "session_user"
	keyUserPrefix  = "user:"
)

// User is a signed-in learner.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// KV is the string key-value space the session is stored in.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Session is a local, offline sign-in. Learners are identified by name;
// signing in again with the same name returns the same user.
type Session struct {
	kv    KV
	flags *flags.Store
	log   *zap.Logger
	now   func() time.Time
}

// NewSession creates a session over kv. Per-user onboarding state is kept
// in fl.
func NewSession(kv KV, fl *flags.Store, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{kv: kv, flags: fl, log: log, now: time.Now}
}

// Current returns the signed-in user, or nil when signed out.
func (s *Session) Current(ctx context.Context) (*User, error) {
	raw, ok, err := s.kv.Get(ctx, keyCurrentUser)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var u User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		// A corrupt record is treated as signed out.
		s.log.Warn("discarding unreadable session", zap.Error(err))
		return nil, nil
	}
	return &u, nil
}

// SignIn signs in the learner called name, creating them on first use.
func (s *Session) SignIn(ctx context.Context, name string) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	userKey := keyUserPrefix + strings.ToLower(name)
	u, err := s.lookup(ctx, userKey)
	if err != nil {
		return nil, err
	}
	if u == nil {
		u = &User{ID: uuid.NewString(), Name: name, CreatedAt: s.now().UTC()}
		if err := s.put(ctx, userKey, u); err != nil {
			return nil, err
		}
		s.log.Info("created learner", zap.String("user_id", u.ID))
	}

	if err := s.put(ctx, keyCurrentUser, u); err != nil {
		return nil, err
	}
	return u, nil
}

// SignOut clears the current session. Learner records are kept.
func (s *Session) SignOut(ctx context.Context) error {
	if err := s.kv.Delete(ctx, keyCurrentUser); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	return nil
}

// OnboardingDone reports whether userID finished post-auth onboarding.
func (s *Session) OnboardingDone(ctx context.Context, userID string) (bool, error) {
	done, _, err := s.flags.Get(ctx, flags.OnboardingDoneKey(userID))
	return done, err
}

// CompleteOnboarding marks post-auth onboarding as finished for userID.
func (s *Session) CompleteOnboarding(ctx context.Context, userID string) error {
	return s.flags.Set(ctx, flags.OnboardingDoneKey(userID), true)
}

func (s *Session) lookup(ctx context.Context, key string) (*User, error) {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("read learner: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var u User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, fmt.Errorf("decode learner: %w", err)
	}
	return &u, nil
}

func (s *Session) put(ctx context.Context, key string, u *User) error {
	b, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode learner: %w", err)
	}
	if err := s.kv.Set(ctx, key, string(b)); err != nil {
		return fmt.Errorf("write learner: %w", err)
	}
	return nil
}
