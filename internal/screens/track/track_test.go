package track

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/learnpath/internal/catalog"
	"github.com/abhisek/learnpath/internal/progress"
	"github.com/abhisek/learnpath/internal/router"
	"github.com/abhisek/learnpath/internal/screens/lesson"
)

var goTrack = catalog.Track{ID: "go", Name: "Go Basics", Description: "Syntax and types."}

func testCatalog() *catalog.Catalog {
	return catalog.New([]catalog.Track{goTrack, {ID: "empty", Name: "Empty"}}, []catalog.ContentItem{
		{ID: "a", TrackID: "go", Order: 1, Level: catalog.LevelBeginner, Title: "Hello"},
		{ID: "b", TrackID: "go", Order: 2, Level: catalog.LevelBeginner, Title: "Variables"},
		{ID: "c", TrackID: "go", Order: 3, Level: catalog.LevelIntermediate, Title: "Interfaces"},
	})
}

func TestCursorStartsOnActive(t *testing.T) {
	prog := progress.NewStore(nil, nil)
	_ = prog.MarkItemComplete(context.Background(), "go", "a")

	s := New(context.Background(), testCatalog(), prog, goTrack)
	if s.Cursor() != 1 {
		t.Errorf("expected cursor on active lesson 1, got %d", s.Cursor())
	}
}

func TestOpenActiveLesson(t *testing.T) {
	s := New(context.Background(), testCatalog(), progress.NewStore(nil, nil), goTrack)

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected push command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	l := push.Screen.(*lesson.LessonScreen)
	if item, _ := l.Item(); item.ID != "a" {
		t.Errorf("expected lesson a, got %q", item.ID)
	}
}

func TestLockedLessonDoesNotOpen(t *testing.T) {
	s := New(context.Background(), testCatalog(), progress.NewStore(nil, nil), goTrack)
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})

	if _, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter}); cmd != nil {
		t.Fatal("locked lesson should not open")
	}
	if !strings.Contains(s.View(80, 24), `Finish "Hello" to unlock`) {
		t.Error("expected unlock notice")
	}
}

func TestCompletedLessonReopens(t *testing.T) {
	prog := progress.NewStore(nil, nil)
	_ = prog.MarkItemComplete(context.Background(), "go", "a")
	s := New(context.Background(), testCatalog(), prog, goTrack)
	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})

	if _, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter}); cmd == nil {
		t.Error("completed lesson should open")
	}
}

func TestViewReflectsProgress(t *testing.T) {
	prog := progress.NewStore(nil, nil)
	s := New(context.Background(), testCatalog(), prog, goTrack)

	view := s.View(80, 24)
	for _, want := range []string{"0/3 lessons", "0%", "1 lesson to your next milestone", "Hello", "Interfaces"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	_ = prog.MarkItemComplete(context.Background(), "go", "a")
	if !strings.Contains(s.View(80, 24), "33%") {
		t.Error("expected view to pick up new completions")
	}

	_ = prog.MarkItemComplete(context.Background(), "go", "b")
	if !strings.Contains(s.View(80, 24), "Final lesson") {
		t.Error("expected final-lesson milestone text")
	}

	_ = prog.MarkItemComplete(context.Background(), "go", "c")
	if !strings.Contains(s.View(80, 24), "Track complete!") {
		t.Error("expected completion text")
	}
}

func TestEmptyTrack(t *testing.T) {
	s := New(context.Background(), testCatalog(), progress.NewStore(nil, nil), catalog.Track{ID: "empty", Name: "Empty"})
	if !strings.Contains(s.View(80, 24), "No lessons") {
		t.Error("expected empty-track message")
	}
	if _, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter}); cmd != nil {
		t.Error("expected no command for an empty track")
	}
}
