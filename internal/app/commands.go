package app

import (
	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/learnpath/internal/auth"
	"github.com/abhisek/learnpath/internal/screens/login"
	"github.com/abhisek/learnpath/internal/store"
)

// Storage work runs in commands, off the update loop, and reports back with
// these messages.
type (
	authResolvedMsg struct {
		user           *auth.User
		onboardingDone bool
	}
	slidesFlagMsg struct {
		shown bool
	}
	slidesPersistedMsg struct{}
	signedInMsg        struct {
		user           *auth.User
		onboardingDone bool
	}
	onboardedMsg struct {
		trackID string
	}
	signedOutMsg struct{}
)

// loadAuth restores the saved session. Read failures start signed out.
func (m AppModel) loadAuth() tea.Cmd {
	ctx, sess, log := m.ctx, m.session, m.log
	return func() tea.Msg {
		user, err := sess.Current(ctx)
		if err != nil {
			log.Warn("could not restore session", zap.Error(err))
			user = nil
		}
		m.switchProgress(user)
		if user == nil {
			return authResolvedMsg{}
		}
		return authResolvedMsg{user: user, onboardingDone: onboardingDone(m, user)}
	}
}

// switchProgress loads the progress of user, or empties it when signed out.
// A load failure is logged and the learner starts from an empty snapshot.
func (m AppModel) switchProgress(user *auth.User) {
	var repo store.ProgressRepo
	if user != nil && m.progressFor != nil {
		repo = m.progressFor(user.ID)
	}
	if err := m.progress.Switch(m.ctx, repo); err != nil {
		m.log.Warn("could not load progress", zap.Error(err))
	}
}

func onboardingDone(m AppModel, user *auth.User) bool {
	done, err := m.session.OnboardingDone(m.ctx, user.ID)
	if err != nil {
		m.log.Warn("could not read onboarding flag", zap.String("user_id", user.ID), zap.Error(err))
		return false
	}
	return done
}

func (m AppModel) readSlidesFlag() tea.Cmd {
	ctx, g := m.ctx, m.gate
	return func() tea.Msg {
		return slidesFlagMsg{shown: g.ReadSlidesShown(ctx)}
	}
}

func (m AppModel) persistSlides() tea.Cmd {
	ctx, g := m.ctx, m.gate
	return func() tea.Msg {
		g.PersistSlidesShown(ctx)
		return slidesPersistedMsg{}
	}
}

func (m AppModel) signIn(name string) tea.Cmd {
	return func() tea.Msg {
		user, err := m.session.SignIn(m.ctx, name)
		if err != nil {
			m.log.Warn("sign in failed", zap.Error(err))
			return login.FailedMsg{Err: err}
		}
		m.log.Info("signed in", zap.String("user_id", user.ID))
		m.switchProgress(user)
		return signedInMsg{user: user, onboardingDone: onboardingDone(m, user)}
	}
}

// completeOnboarding persists the flag best effort; the learner moves on
// either way.
func (m AppModel) completeOnboarding(trackID string) tea.Cmd {
	user := m.screens.user
	return func() tea.Msg {
		if user != nil {
			if err := m.session.CompleteOnboarding(m.ctx, user.ID); err != nil {
				m.log.Warn("could not persist onboarding", zap.String("user_id", user.ID), zap.Error(err))
			}
		}
		return onboardedMsg{trackID: trackID}
	}
}

func (m AppModel) signOut() tea.Cmd {
	return func() tea.Msg {
		if err := m.session.SignOut(m.ctx); err != nil {
			m.log.Warn("sign out failed", zap.Error(err))
		}
		m.switchProgress(nil)
		return signedOutMsg{}
	}
}
