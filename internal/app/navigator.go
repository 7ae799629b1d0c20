package app

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/learnpath/internal/auth"
	"github.com/abhisek/learnpath/internal/catalog"
	"github.com/abhisek/learnpath/internal/gate"
	"github.com/abhisek/learnpath/internal/progress"
	"github.com/abhisek/learnpath/internal/router"
	"github.com/abhisek/learnpath/internal/screen"
	"github.com/abhisek/learnpath/internal/screens/booting"
	"github.com/abhisek/learnpath/internal/screens/home"
	"github.com/abhisek/learnpath/internal/screens/login"
	"github.com/abhisek/learnpath/internal/screens/onboarding"
	"github.com/abhisek/learnpath/internal/screens/placeholder"
	"github.com/abhisek/learnpath/internal/screens/slides"
	"github.com/abhisek/learnpath/internal/screens/track"
)

// navigator lets the gate reset the router. The root's Init command is held
// until the update loop collects it.
type navigator struct {
	router  *router.Router
	screens *screenFactory
	pending tea.Cmd
}

var _ gate.Navigator = (*navigator)(nil)

func (n *navigator) Mounted() bool {
	return n.router.Mounted()
}

func (n *navigator) ResetTo(s gate.State) {
	n.pending = n.router.Reset(n.screens.root(s))
}

func (n *navigator) takePending() tea.Cmd {
	cmd := n.pending
	n.pending = nil
	return cmd
}

// screenFactory builds stack roots and shared screens.
type screenFactory struct {
	ctx      context.Context
	cat      *catalog.Catalog
	progress *progress.Store
	slides   []slides.Slide
	user     *auth.User
}

func (f *screenFactory) learnerName() string {
	if f.user == nil {
		return ""
	}
	return f.user.Name
}

// root returns the first screen of the stack for s.
func (f *screenFactory) root(s gate.State) screen.Screen {
	switch s {
	case gate.StatePreAuthSlides:
		return slides.New(f.slides)
	case gate.StatePreAuthLogin:
		return login.New()
	case gate.StatePostAuthOnboarding:
		return onboarding.New(f.learnerName(), f.cat)
	case gate.StateMain:
		return home.New(f.ctx, f.cat, f.progress, f.learnerName())
	default:
		return booting.New()
	}
}

func (f *screenFactory) track(id string) screen.Screen {
	t, ok := f.cat.Track(id)
	if !ok {
		return placeholder.New("Track", "That track is no longer available.")
	}
	return track.New(f.ctx, f.cat, f.progress, t)
}
