package slides

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
)

func press(s *SlidesScreen, code rune) tea.Cmd {
	_, cmd := s.Update(tea.KeyPressMsg{Code: code})
	return cmd
}

func sendTicks(s *SlidesScreen, n int) {
	for i := 0; i < n; i++ {
		s.Update(tickMsg(time.Now()))
	}
}

func isDone(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(DoneMsg)
	return ok
}

func TestAdvanceThroughSlides(t *testing.T) {
	s := New(DefaultSlides)

	for i := 1; i < len(DefaultSlides); i++ {
		if isDone(press(s, tea.KeyEnter)) {
			t.Fatalf("slides finished early at page %d", i)
		}
		if s.Page() != i {
			t.Errorf("expected page %d, got %d", i, s.Page())
		}
	}

	if !isDone(press(s, tea.KeyEnter)) {
		t.Fatal("expected DoneMsg on the last slide")
	}
}

func TestBackDoesNotGoBelowFirst(t *testing.T) {
	s := New(DefaultSlides)
	press(s, tea.KeyLeft)
	if s.Page() != 0 {
		t.Errorf("expected page 0, got %d", s.Page())
	}
	press(s, tea.KeyRight)
	press(s, tea.KeyLeft)
	if s.Page() != 0 {
		t.Errorf("expected page 0 after back, got %d", s.Page())
	}
}

func TestSkipFinishesOnce(t *testing.T) {
	s := New(DefaultSlides)

	if !isDone(press(s, 's')) {
		t.Fatal("expected skip to finish the slides")
	}
	if cmd := press(s, 's'); cmd != nil {
		t.Error("second skip should not produce a command")
	}
	press(s, tea.KeyEnter)
	press(s, tea.KeyEnter)
	if isDone(press(s, tea.KeyEnter)) {
		t.Error("DoneMsg emitted twice")
	}
}

func TestBodyRevealsAfterTicks(t *testing.T) {
	s := New(DefaultSlides)
	first := strings.Split(DefaultSlides[0].Body, "\n")[0]

	if strings.Contains(s.View(80, 24), first) {
		t.Error("body should not be visible before the reveal")
	}
	sendTicks(s, int(revealDur/tickInterval))
	if !strings.Contains(s.View(80, 24), first) {
		t.Error("body should be visible after the reveal")
	}
}

func TestTicksStopAfterReveal(t *testing.T) {
	s := New(DefaultSlides)
	sendTicks(s, int(revealDur/tickInterval))
	if _, cmd := s.Update(tickMsg(time.Now())); cmd != nil {
		t.Error("expected ticking to stop once revealed")
	}
	if cmd := press(s, tea.KeyRight); cmd == nil {
		t.Error("expected a new tick when the next page starts revealing")
	}
}

func TestViewShowsBannerAndPager(t *testing.T) {
	s := New(DefaultSlides)
	view := s.View(80, 24)
	if !strings.Contains(view, DefaultSlides[0].Heading) {
		t.Error("expected heading in view")
	}
	if !strings.Contains(view, "1/3") {
		t.Error("expected pager in view")
	}
}

func TestTitleEmpty(t *testing.T) {
	if New(DefaultSlides).Title() != "" {
		t.Error("expected empty title")
	}
}
