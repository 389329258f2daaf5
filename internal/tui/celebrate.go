package tui

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const frameInterval = 50 * time.Millisecond

// ErrInterrupted is returned when the user quits before playback finishes.
var ErrInterrupted = errors.New("celebration interrupted")

// PlayFunc plays the song, returning when playback ends or ctx is cancelled.
type PlayFunc func(ctx context.Context) error

type frameMsg time.Time

type playDoneMsg struct{ err error }

// Celebration shows confetti and the birthday message while the song plays.
type Celebration struct {
	message  string
	duration time.Duration
	play     PlayFunc

	ctx    context.Context
	cancel context.CancelFunc

	confetti *Confetti
	width    int
	height   int
	started  time.Time
	elapsed  time.Duration

	done        bool
	interrupted bool
	err         error
}

// NewCelebration creates the model. duration is the song length and drives
// the progress bar.
func NewCelebration(ctx context.Context, message string, duration time.Duration, play PlayFunc) *Celebration {
	ctx, cancel := context.WithCancel(ctx)
	return &Celebration{
		message:  message,
		duration: duration,
		play:     play,
		ctx:      ctx,
		cancel:   cancel,
		confetti: NewConfetti(80, 24, rand.New(rand.NewSource(time.Now().UnixNano()))),
		width:    80,
		height:   24,
	}
}

// Init starts the animation and playback.
func (c *Celebration) Init() tea.Cmd {
	c.started = time.Now()
	return tea.Batch(tickFrame(), c.playCmd())
}

func tickFrame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (c *Celebration) playCmd() tea.Cmd {
	ctx, play := c.ctx, c.play
	return func() tea.Msg {
		return playDoneMsg{err: play(ctx)}
	}
}

// Update handles input, animation frames and playback completion.
func (c *Celebration) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		c.width, c.height = msg.Width, msg.Height
		c.confetti.SetSize(msg.Width, msg.Height)
		return c, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			c.interrupted = true
			c.cancel()
			return c, tea.Quit
		}
		return c, nil

	case frameMsg:
		if c.done {
			return c, nil
		}
		c.elapsed = time.Time(msg).Sub(c.started)
		c.confetti.Tick()
		return c, tickFrame()

	case playDoneMsg:
		c.done = true
		c.err = msg.err
		c.cancel()
		return c, tea.Quit
	}
	return c, nil
}

// View renders confetti behind a centered message panel and a progress bar.
func (c *Celebration) View() string {
	if c.done {
		return ""
	}

	panel := messagePanelStyle.Render(c.message)
	bar := renderProgressBar(c.progress(), min(40, max(10, c.width-10)))
	footer := SubtitleStyle.Render("q to stop")
	content := lipgloss.JoinVertical(lipgloss.Center, panel, "", bar, footer)

	contentHeight := lipgloss.Height(content)
	confettiHeight := c.height - contentHeight
	if confettiHeight < 0 {
		confettiHeight = 0
	}
	top := confettiHeight / 2

	var b strings.Builder
	if top > 0 {
		b.WriteString(c.confetti.Render(c.width, top))
		b.WriteByte('\n')
	}
	b.WriteString(lipgloss.PlaceHorizontal(c.width, lipgloss.Center, content))
	if rest := confettiHeight - top; rest > 0 {
		b.WriteByte('\n')
		b.WriteString(c.confetti.Render(c.width, rest))
	}
	return b.String()
}

// progress returns the played fraction in [0, 1].
func (c *Celebration) progress() float64 {
	if c.duration <= 0 {
		return 0
	}
	p := float64(c.elapsed) / float64(c.duration)
	return max(0, min(1, p))
}

// Err returns the playback error, or ErrInterrupted if the user quit.
func (c *Celebration) Err() error {
	if c.interrupted && !c.done {
		return ErrInterrupted
	}
	return c.err
}

// renderProgressBar renders a fill bar with a percentage.
func renderProgressBar(fraction float64, width int) string {
	filled := int(fraction * float64(width))
	bar := progressBarFillStyle.Render(strings.Repeat("█", filled)) +
		progressBarEmptyStyle.Render(strings.Repeat("░", width-filled))
	return fmt.Sprintf("%s %3.0f%%", bar, fraction*100)
}

// RunCelebration shows the celebration full screen until playback finishes.
func RunCelebration(ctx context.Context, message string, duration time.Duration, play PlayFunc) error {
	model := NewCelebration(ctx, message, duration, play)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run celebration: %w", err)
	}
	return model.Err()
}
