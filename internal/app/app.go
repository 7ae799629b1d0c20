package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/learnpath/internal/auth"
	"github.com/abhisek/learnpath/internal/catalog"
	"github.com/abhisek/learnpath/internal/flags"
	"github.com/abhisek/learnpath/internal/gate"
	"github.com/abhisek/learnpath/internal/progress"
	"github.com/abhisek/learnpath/internal/router"
	"github.com/abhisek/learnpath/internal/screen"
	"github.com/abhisek/learnpath/internal/screens/booting"
	"github.com/abhisek/learnpath/internal/screens/home"
	"github.com/abhisek/learnpath/internal/screens/login"
	"github.com/abhisek/learnpath/internal/screens/onboarding"
	"github.com/abhisek/learnpath/internal/screens/slides"
	"github.com/abhisek/learnpath/internal/store"
	"github.com/abhisek/learnpath/internal/ui/layout"
)

// Options holds the services the app needs. They are built by the caller.
type Options struct {
	Catalog  *catalog.Catalog
	Progress *progress.Store
	Session  *auth.Session
	Flags    *flags.Store
	Logger   *zap.Logger

	// ProgressFor returns the progress repository of a learner. Progress is
	// switched to it on sign-in. Nil keeps progress in memory only.
	ProgressFor func(userID string) store.ProgressRepo
}

// AppModel is the root Bubble Tea model. The gate picks which stack is
// mounted; the router owns navigation inside it.
type AppModel struct {
	ctx     context.Context
	gate    *gate.Gate
	router  *router.Router
	nav     *navigator
	boot    *booting.BootScreen
	screens *screenFactory
	session *auth.Session
	log     *zap.Logger

	progress    *progress.Store
	progressFor func(userID string) store.ProgressRepo

	width  int
	height int
}

// newAppModel creates an AppModel in the booting state.
func newAppModel(ctx context.Context, opts Options) AppModel {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := router.New(nil)
	prog := opts.Progress
	if prog == nil {
		prog = progress.NewStore(nil, log.Named("progress"))
	}

	screens := &screenFactory{
		ctx:      ctx,
		cat:      opts.Catalog,
		progress: prog,
		slides:   slides.DefaultSlides,
	}
	nav := &navigator{router: r, screens: screens}

	g := gate.New(opts.Flags, log.Named("gate"))
	g.Mount(nav)

	return AppModel{
		ctx:     ctx,
		gate:    g,
		router:  r,
		nav:     nav,
		boot:    booting.New(),
		screens: screens,
		session: opts.Session,
		log:     log,

		progress:    prog,
		progressFor: opts.ProgressFor,
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.boot.Init(), m.loadAuth())
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}

	case authResolvedMsg:
		m.screens.user = msg.user
		cmd := m.apply(m.gate.AuthResolved(msg.user, msg.onboardingDone))
		if m.gate.NeedsSlidesFlag() {
			cmd = tea.Batch(cmd, m.readSlidesFlag())
		}
		return m, cmd

	case slidesFlagMsg:
		return m, m.apply(m.gate.SetSlidesShown(msg.shown))

	case slides.DoneMsg:
		return m, m.persistSlides()

	case slidesPersistedMsg:
		return m, m.apply(m.gate.SlidesCompleted())

	case login.SubmitMsg:
		return m, m.signIn(msg.Name)

	case signedInMsg:
		m.screens.user = msg.user
		return m, m.apply(m.gate.SetUser(msg.user, msg.onboardingDone))

	case onboarding.DoneMsg:
		return m, m.completeOnboarding(msg.TrackID)

	case onboardedMsg:
		cmd := m.apply(m.gate.SetOnboardingDone(true))
		if m.gate.State() == gate.StateMain && msg.trackID != "" {
			first := m.screens.track(msg.trackID)
			cmd = tea.Batch(cmd, func() tea.Msg { return router.PushScreenMsg{Screen: first} })
		}
		return m, cmd

	case home.SignOutMsg:
		return m, m.signOut()

	case signedOutMsg:
		m.screens.user = nil
		return m, m.apply(m.gate.SetUser(nil, false))
	}

	if m.gate.State() == gate.StateBooting {
		_, cmd := m.boot.Update(msg)
		return m, cmd
	}
	return m, m.router.Update(msg)
}

// apply mounts the stack for the gate's new state. A reset done by the gate
// itself only needs its pending Init command collected.
func (m AppModel) apply(t gate.Transition) tea.Cmd {
	if t.Reset {
		return m.nav.takePending()
	}
	if !t.Changed() {
		return nil
	}
	if t.To == gate.StateBooting {
		m.router.Unmount()
		return m.boot.Init()
	}

	root := m.screens.root(t.To)
	if t.Replace {
		return m.router.Replace(root)
	}
	return m.router.Reset(root)
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if frame := m.render(); frame != "" {
		v.SetContent(frame)
	}
	return v
}

// render draws the full frame, or "" before the first window size arrives.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	var active screen.Screen = m.boot
	if m.gate.State() != gate.StateBooting && m.router.Active() != nil {
		active = m.router.Active()
	}

	header := layout.RenderHeader(active.Title(), m.screens.learnerName(), m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := active.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return p.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(newAppModel(ctx, opts), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
