package viz

import (
	"bytes"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/san-kum/sortviz/internal/config"
	"github.com/san-kum/sortviz/internal/session"
)

const waitDuration = 3 * time.Second

func waitForContains(tb testing.TB, tm *teatest.TestModel, substr string) {
	tb.Helper()
	teatest.WaitFor(
		tb,
		tm.Output(),
		func(bts []byte) bool { return bytes.Contains(bts, []byte(substr)) },
		teatest.WithDuration(waitDuration),
	)
}

func newTestApp(t *testing.T, delayMs int) (*session.Session, *teatest.TestModel) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Length = 12
	cfg.StepDelayMs = delayMs
	cfg.Seed = 3
	s, err := session.New(cfg)
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	tm := teatest.NewTestModel(t, NewApp(s), teatest.WithInitialTermSize(120, 30))
	return s, tm
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func quit(t *testing.T, tm *teatest.TestModel) App {
	t.Helper()
	tm.Send(keyRunes("q"))
	return tm.FinalModel(t, teatest.WithFinalTimeout(waitDuration)).(App)
}

func TestAppSortsOnEnter(t *testing.T) {
	s, tm := newTestApp(t, 0)
	waitForContains(t, tm, "IDLE")

	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	waitForContains(t, tm, "DONE")

	final := quit(t, tm)
	if final.run == nil || final.run.Err() != nil {
		t.Fatalf("expected a completed run, got %v", final.run)
	}
	if !s.Display().Values().IsSorted() {
		t.Errorf("values not sorted: %v", s.Display().Values())
	}
	frame := s.Frame()
	if frame.Settled() != frame.Len() {
		t.Errorf("expected all settled, got %d/%d", frame.Settled(), frame.Len())
	}
}

func TestAppSelectsAlgorithm(t *testing.T) {
	s, tm := newTestApp(t, 0)
	waitForContains(t, tm, "SELECTION")

	tm.Send(tea.KeyMsg{Type: tea.KeyTab})
	waitForContains(t, tm, "BUBBLE")

	tm.Send(keyRunes("6"))
	waitForContains(t, tm, "HEAP")

	tm.Send(tea.KeyMsg{Type: tea.KeyShiftTab})
	waitForContains(t, tm, "QUICK")

	quit(t, tm)
	if s.Algorithm() != "quick" {
		t.Errorf("expected quick, got %s", s.Algorithm())
	}
}

func TestAppStop(t *testing.T) {
	_, tm := newTestApp(t, 50)
	waitForContains(t, tm, "IDLE")

	tm.Send(keyRunes(" "))
	waitForContains(t, tm, "RUNNING")

	tm.Send(keyRunes("s"))
	waitForContains(t, tm, "STOPPED")
	quit(t, tm)
}

func TestAppRegenerateAndTheme(t *testing.T) {
	_, tm := newTestApp(t, 0)
	waitForContains(t, tm, "classic")

	tm.Send(keyRunes("t"))
	waitForContains(t, tm, "retro")

	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	waitForContains(t, tm, "DONE")

	tm.Send(keyRunes("g"))
	waitForContains(t, tm, "IDLE")

	final := quit(t, tm)
	if final.run != nil {
		t.Error("regenerate should clear the run")
	}
}
