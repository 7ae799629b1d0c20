package lesson

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/learnpath/internal/catalog"
	"github.com/abhisek/learnpath/internal/progress"
	"github.com/abhisek/learnpath/internal/router"
	"github.com/abhisek/learnpath/internal/store"
)

var track = catalog.Track{ID: "go", Name: "Go Basics"}

func testCatalog() *catalog.Catalog {
	return catalog.New([]catalog.Track{track}, []catalog.ContentItem{
		{ID: "a", TrackID: "go", Order: 1, Level: catalog.LevelBeginner, Title: "Hello", EstimatedMinutes: 5, Body: "Print something."},
		{ID: "b", TrackID: "go", Order: 2, Level: catalog.LevelBeginner, Title: "Variables", EstimatedMinutes: 7, Body: "Declare things."},
		{ID: "c", TrackID: "go", Order: 3, Level: catalog.LevelIntermediate, Title: "Interfaces", EstimatedMinutes: 9, Body: "Abstract things."},
	})
}

// run executes cmd and feeds its message back into the screen.
func run(t *testing.T, l *LessonScreen, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg := cmd()
	l.Update(msg)
	return msg
}

func TestInitSetsLastRead(t *testing.T) {
	cat := testCatalog()
	prog := progress.NewStore(nil, nil)
	item, _ := cat.Item("b")
	l := New(context.Background(), cat, prog, RouteFor(track, item))

	run(t, l, l.Init())

	lr, ok := prog.LastRead()
	if !ok {
		t.Fatal("expected last read to be set")
	}
	if lr.ItemID != "b" || lr.TrackName != "Go Basics" || lr.Title != "Variables" {
		t.Errorf("unexpected last read: %+v", lr)
	}
}

func TestResolveByOrderWithoutID(t *testing.T) {
	l := New(context.Background(), testCatalog(), progress.NewStore(nil, nil), LessonRoute{TrackID: "go", TrackName: "Go Basics", Order: 3})
	item, ok := l.Item()
	if !ok || item.ID != "c" {
		t.Fatalf("expected item c, got %+v (found=%v)", item, ok)
	}
}

func TestCompleteThenContinue(t *testing.T) {
	cat := testCatalog()
	prog := progress.NewStore(nil, nil)
	item, _ := cat.Item("a")
	l := New(context.Background(), cat, prog, RouteFor(track, item))

	_, cmd := l.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	run(t, l, cmd)
	if !prog.IsComplete("a") {
		t.Fatal("expected lesson a to be complete")
	}
	if !strings.Contains(l.View(80, 30), "Continue") {
		t.Error("expected continue button after completing")
	}

	_, cmd = l.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected continue command")
	}
	replace, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	next := replace.Screen.(*LessonScreen)
	if got, _ := next.Item(); got.ID != "b" {
		t.Errorf("expected next lesson b, got %q", got.ID)
	}
	if next.route.LevelUp {
		t.Error("beginner to beginner is not a level-up")
	}
}

func TestContinueIntoHigherLevelShowsBanner(t *testing.T) {
	cat := testCatalog()
	prog := progress.NewStore(nil, nil)
	ctx := context.Background()
	_ = prog.MarkItemComplete(ctx, "go", "a")
	_ = prog.MarkItemComplete(ctx, "go", "b")

	item, _ := cat.Item("b")
	l := New(context.Background(), cat, prog, RouteFor(track, item))
	if !strings.Contains(l.View(80, 30), "Interfaces") {
		t.Error("expected next lesson title in status")
	}

	_, cmd := l.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	next := cmd().(router.ReplaceScreenMsg).Screen.(*LessonScreen)
	if !next.route.LevelUp {
		t.Fatal("expected level-up route")
	}
	if !strings.Contains(next.View(80, 30), "Level up!") {
		t.Error("expected level-up banner")
	}
}

func TestLastLessonGoesBack(t *testing.T) {
	cat := testCatalog()
	prog := progress.NewStore(nil, nil)
	_ = prog.MarkItemComplete(context.Background(), "go", "c")

	item, _ := cat.Item("c")
	l := New(context.Background(), cat, prog, RouteFor(track, item))

	_, cmd := l.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Fatalf("expected PopScreenMsg, got %T", cmd())
	}
}

func TestMarkCompleteIgnoredWhileSaving(t *testing.T) {
	cat := testCatalog()
	item, _ := cat.Item("a")
	l := New(context.Background(), cat, progress.NewStore(nil, nil), RouteFor(track, item))

	_, first := l.Update(tea.KeyPressMsg{Code: 'c', Text: "c"})
	if first == nil {
		t.Fatal("expected save command")
	}
	if _, again := l.Update(tea.KeyPressMsg{Code: 'c', Text: "c"}); again != nil {
		t.Error("expected no second save while the first is in flight")
	}
}

func TestUnknownLessonIsInert(t *testing.T) {
	l := New(context.Background(), testCatalog(), progress.NewStore(nil, nil), LessonRoute{TrackID: "go", ItemID: "gone"})
	if l.Init() != nil {
		t.Error("expected no last-read write for a missing lesson")
	}
	if _, cmd := l.Update(tea.KeyPressMsg{Code: tea.KeyEnter}); cmd != nil {
		t.Error("expected no command for a missing lesson")
	}
	if !strings.Contains(l.View(80, 24), "no longer available") {
		t.Error("expected missing-lesson message")
	}
}

// ctxRepo fails writes whose context is already done.
type ctxRepo struct{ writes int }

func (r *ctxRepo) MarkComplete(ctx context.Context, _, _ string, _ time.Time) error {
	r.writes++
	return ctx.Err()
}

func (r *ctxRepo) SetLastRead(ctx context.Context, _ store.LastRead) error {
	r.writes++
	return ctx.Err()
}

func (r *ctxRepo) Completed(context.Context) ([]store.CompletedItem, error) { return nil, nil }
func (r *ctxRepo) LastRead(context.Context) (*store.LastRead, error)       { return nil, nil }
func (r *ctxRepo) Reset(context.Context) error                             { return nil }

func TestWritesUseScreenContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repo := &ctxRepo{}
	cat := testCatalog()
	item, _ := cat.Item("a")
	l := New(ctx, cat, progress.NewStore(repo, nil), RouteFor(track, item))

	run(t, l, l.Init())
	if !strings.Contains(l.View(80, 30), "Could not save your place.") {
		t.Error("expected last-read write to see the cancelled context")
	}

	_, cmd := l.Update(tea.KeyPressMsg{Code: 'c', Text: "c"})
	run(t, l, cmd)
	if !strings.Contains(l.View(80, 30), "Could not save progress.") {
		t.Error("expected completion write to see the cancelled context")
	}
	if repo.writes != 2 {
		t.Errorf("expected 2 writes, got %d", repo.writes)
	}
}

func TestContinueKeepsContext(t *testing.T) {
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "app")

	cat := testCatalog()
	prog := progress.NewStore(nil, nil)
	_ = prog.MarkItemComplete(ctx, "go", "a")
	item, _ := cat.Item("a")
	l := New(ctx, cat, prog, RouteFor(track, item))

	_, cmd := l.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	next := cmd().(router.ReplaceScreenMsg).Screen.(*LessonScreen)
	if next.ctx.Value(key{}) != "app" {
		t.Error("expected the next lesson to inherit the screen context")
	}
}
