package tui

import (
	"bytes"
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

func TestConfettiStaysInBounds(t *testing.T) {
	c := NewConfetti(40, 10, rand.New(rand.NewSource(1)))
	if c.Len() < 60 {
		t.Fatalf("expected at least 60 particles, got %d", c.Len())
	}
	for i := 0; i < 500; i++ {
		c.Tick()
	}

	out := ansi.Strip(c.Render(40, 10))
	lines := strings.Split(out, "\n")
	if len(lines) != 10 {
		t.Fatalf("expected 10 rows, got %d", len(lines))
	}
	for i, line := range lines {
		if n := len([]rune(line)); n != 40 {
			t.Errorf("row %d has %d cells, want 40", i, n)
		}
	}
}

func TestConfettiRenderEmpty(t *testing.T) {
	c := NewConfetti(10, 5, rand.New(rand.NewSource(1)))
	if got := c.Render(0, 5); got != "" {
		t.Errorf("expected empty render for zero width, got %q", got)
	}
}

func TestCelebrationPlaybackDone(t *testing.T) {
	playErr := errors.New("device busy")
	c := NewCelebration(context.Background(), "Happy Birthday!", time.Second, func(context.Context) error {
		return playErr
	})

	c.Init()
	msg := c.playCmd()()
	_, cmd := c.Update(msg)
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg after playback")
	}
	if !errors.Is(c.Err(), playErr) {
		t.Errorf("expected playback error, got %v", c.Err())
	}
	if c.View() != "" {
		t.Error("expected empty view once done")
	}
}

func TestCelebrationQuitCancelsPlayback(t *testing.T) {
	var played context.Context
	c := NewCelebration(context.Background(), "hi", time.Second, func(ctx context.Context) error {
		played = ctx
		<-ctx.Done()
		return ctx.Err()
	})
	c.Init()

	done := make(chan struct{})
	go func() {
		c.playCmd()()
		close(done)
	}()

	_, cmd := c.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("playback not cancelled")
	}
	if played == nil || played.Err() == nil {
		t.Error("expected playback context to be cancelled")
	}
	if !errors.Is(c.Err(), ErrInterrupted) {
		t.Errorf("expected ErrInterrupted, got %v", c.Err())
	}
}

func TestCelebrationView(t *testing.T) {
	c := NewCelebration(context.Background(), "Happy Birthday!", 10*time.Second, func(context.Context) error { return nil })
	c.Init()
	c.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	c.Update(frameMsg(c.started.Add(5 * time.Second)))

	plain := ansi.Strip(c.View())
	if !strings.Contains(plain, "Happy Birthday!") {
		t.Error("expected message in view")
	}
	if !strings.Contains(plain, "50%") {
		t.Errorf("expected 50%% progress, got:\n%s", plain)
	}
	if lines := strings.Count(plain, "\n") + 1; lines != 20 {
		t.Errorf("expected view to fill 20 rows, got %d", lines)
	}
}

func TestProgressClamped(t *testing.T) {
	c := &Celebration{duration: time.Second, elapsed: 3 * time.Second}
	if c.progress() != 1 {
		t.Errorf("expected progress clamped to 1, got %v", c.progress())
	}
	c.duration = 0
	if c.progress() != 0 {
		t.Errorf("expected 0 for unknown duration, got %v", c.progress())
	}
}

func TestPrinterPlain(t *testing.T) {
	var buf bytes.Buffer
	p := NewPlainPrinter(&buf)
	p.Title("Birthday")
	p.Step(StepDone, "wallpaper set", "macos")
	p.Step(StepSkipped, "celebration", "")
	p.Field("config", "/tmp/config.yaml")

	out := buf.String()
	if strings.Contains(out, "\x1b[") {
		t.Error("plain printer must not emit ANSI codes")
	}
	for _, want := range []string{"Birthday\n", "  ✓ wallpaper set  macos\n", "  ○ celebration\n", "config:      /tmp/config.yaml"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
