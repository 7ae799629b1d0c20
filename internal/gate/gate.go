package gate

import (
	"context"

	"go.uber.org/zap"

	"github.com/abhisek/learnpath/internal/auth"
	"github.com/abhisek/learnpath/internal/flags"
)

// State is the top-level screen stack that should be mounted.
type State int

const (
	StateBooting            State = iota // auth or slides flag still resolving; nothing mounted
	StatePreAuthSlides                   // signed out, intro slides not yet seen
	StatePreAuthLogin                    // signed out, slides seen
	StatePostAuthOnboarding              // signed in, onboarding unfinished
	StateMain                            // signed in and onboarded
)

func (s State) String() string {
	switch s {
	case StateBooting:
		return "booting"
	case StatePreAuthSlides:
		return "pre-auth-slides"
	case StatePreAuthLogin:
		return "pre-auth-login"
	case StatePostAuthOnboarding:
		return "post-auth-onboarding"
	case StateMain:
		return "main"
	default:
		return "unknown"
	}
}

// Inputs are everything the gate decides from.
type Inputs struct {
	AuthLoading    bool
	User           *auth.User
	OnboardingDone bool
	SlidesShown    *bool // nil until the persisted flag has been read
}

// Evaluate maps inputs to a state. Rules are checked in priority order.
func Evaluate(in Inputs) State {
	switch {
	case in.AuthLoading || in.SlidesShown == nil:
		return StateBooting
	case in.User == nil:
		if *in.SlidesShown {
			return StatePreAuthLogin
		}
		return StatePreAuthSlides
	case !in.OnboardingDone:
		return StatePostAuthOnboarding
	default:
		return StateMain
	}
}

// Navigator is the navigation controller the gate can reset.
type Navigator interface {
	// Mounted reports whether a navigation stack exists to reset.
	Mounted() bool

	// ResetTo discards history and mounts the root of s.
	ResetTo(s State)
}

// FlagStore is the persisted flag surface the gate needs.
type FlagStore interface {
	IsSet(ctx context.Context, key string) bool
	Set(ctx context.Context, key string, value bool) error
}

// Transition describes the result of feeding an event to the gate.
type Transition struct {
	From State
	To   State

	// Reset is true when the gate reset navigation history itself.
	Reset bool

	// Replace asks the caller to swap the current screen instead of
	// pushing, so the previous screen is not reachable with back.
	Replace bool
}

// Changed reports whether the state moved.
func (t Transition) Changed() bool {
	return t.From != t.To
}

// Gate is the navigation state machine. It is not safe for concurrent use;
// drive it from the UI update loop.
type Gate struct {
	in    Inputs
	state State
	nav   Navigator
	flags FlagStore
	log   *zap.Logger

	prevUser *auth.User
}

// New creates a gate in the booting state with auth still loading.
func New(fl FlagStore, log *zap.Logger) *Gate {
	if log == nil {
		log = zap.NewNop()
	}
	return &Gate{
		in:    Inputs{AuthLoading: true},
		state: StateBooting,
		flags: fl,
		log:   log,
	}
}

// Mount attaches the navigation controller used for login resets.
func (g *Gate) Mount(nav Navigator) {
	g.nav = nav
}

// State returns the current state.
func (g *Gate) State() State {
	return g.state
}

// Inputs returns a copy of the current inputs.
func (g *Gate) Inputs() Inputs {
	return g.in
}

// AuthResolved ends the auth loading phase with the restored session.
func (g *Gate) AuthResolved(user *auth.User, onboardingDone bool) Transition {
	next := g.in
	next.AuthLoading = false
	next.User = user
	next.OnboardingDone = user != nil && onboardingDone
	return g.apply(next)
}

// SetUser handles a sign-in or sign-out.
func (g *Gate) SetUser(user *auth.User, onboardingDone bool) Transition {
	next := g.in
	next.User = user
	next.OnboardingDone = user != nil && onboardingDone
	return g.apply(next)
}

// SetOnboardingDone handles the end (or reset) of post-auth onboarding.
func (g *Gate) SetOnboardingDone(done bool) Transition {
	next := g.in
	next.OnboardingDone = done
	return g.apply(next)
}

// NeedsSlidesFlag reports whether the caller should read the persisted
// slides flag now. It stays false until auth has resolved.
func (g *Gate) NeedsSlidesFlag() bool {
	return !g.in.AuthLoading && g.in.SlidesShown == nil
}

// ReadSlidesShown reads the persisted flag, defaulting to false on error.
// It does not touch gate state, so it may run off the update loop.
func (g *Gate) ReadSlidesShown(ctx context.Context) bool {
	return g.flags.IsSet(ctx, flags.KeySlidesShown)
}

// SetSlidesShown applies the result of ReadSlidesShown.
func (g *Gate) SetSlidesShown(shown bool) Transition {
	next := g.in
	next.SlidesShown = &shown
	return g.apply(next)
}

// ResolveSlidesShown reads the flag and applies it in one step. It is a
// no-op while auth is loading.
func (g *Gate) ResolveSlidesShown(ctx context.Context) Transition {
	if g.in.AuthLoading {
		return Transition{From: g.state, To: g.state}
	}
	return g.SetSlidesShown(g.ReadSlidesShown(ctx))
}

// PersistSlidesShown writes the slides flag. Failures are logged and
// otherwise ignored. Like ReadSlidesShown it leaves gate state alone.
func (g *Gate) PersistSlidesShown(ctx context.Context) {
	if err := g.flags.Set(ctx, flags.KeySlidesShown, true); err != nil {
		g.log.Warn("could not persist slides flag", zap.Error(err))
	}
}

// SlidesCompleted marks the slides as seen. The returned transition asks
// for a replace so the slides drop out of history.
func (g *Gate) SlidesCompleted() Transition {
	t := g.SetSlidesShown(true)
	t.Replace = t.Changed()
	return t
}

// CompleteSlides persists the flag and then marks the slides as seen.
func (g *Gate) CompleteSlides(ctx context.Context) Transition {
	g.PersistSlidesShown(ctx)
	return g.SlidesCompleted()
}

func (g *Gate) apply(next Inputs) Transition {
	login := g.prevUser == nil && next.User != nil && next.OnboardingDone

	g.in = next
	g.prevUser = next.User

	t := Transition{From: g.state, To: Evaluate(next)}
	g.state = t.To

	if login && t.To == StateMain {
		t.Reset = g.resetToMain()
	}
	if t.Changed() {
		g.log.Debug("gate transition",
			zap.Stringer("from", t.From),
			zap.Stringer("to", t.To),
			zap.Bool("reset", t.Reset))
	}
	return t
}

// resetToMain clears history down to the main root. It is attempted once
// per login; an unmounted navigator means the reset is skipped for good.
func (g *Gate) resetToMain() bool {
	if g.nav == nil || !g.nav.Mounted() {
		g.log.Debug("navigator not mounted, skipping login reset")
		return false
	}
	g.nav.ResetTo(StateMain)
	return true
}
