package tui

import (
	"math/rand"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// confettiChars mixes music notes in with the usual confetti shapes.
var confettiChars = []string{"♪", "♫", "♬", "♩", "✦", "★", "●", "◆", "♥", "✧"}

var confettiColors = []lipgloss.Color{
	SuccessColor,
	PrimaryColor,
	WarningColor,
	ErrorColor,
	PinkColor,
	GoldColor,
	lipgloss.Color("#FF8C00"), // Dark orange
}

// Particle is a single falling glyph.
type Particle struct {
	x, y   float64
	vx, vy float64
	char   string
	color  lipgloss.Color
	life   int
}

// Confetti animates particles falling across a width x height cell grid.
type Confetti struct {
	particles []Particle
	width     int
	height    int
	rng       *rand.Rand
}

// NewConfetti creates a confetti system with particles spread across the
// screen, some already mid-fall so the first frame is not empty.
func NewConfetti(width, height int, rng *rand.Rand) *Confetti {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	c := &Confetti{width: width, height: height, rng: rng}

	c.particles = make([]Particle, 60+rng.Intn(40))
	for i := range c.particles {
		c.particles[i] = c.spawn()
		c.particles[i].y = rng.Float64()*float64(height+10) - float64(height/2)
	}
	return c
}

// SetSize updates the bounds to match the current screen size.
func (c *Confetti) SetSize(width, height int) {
	c.width = width
	c.height = height
}

// spawn returns a fresh particle just above the top edge.
func (c *Confetti) spawn() Particle {
	return Particle{
		x:     c.rng.Float64() * float64(c.width),
		y:     -c.rng.Float64() * float64(c.height/3+1),
		vx:    (c.rng.Float64() - 0.5) * 0.6,
		vy:    0.2 + c.rng.Float64()*0.4,
		char:  confettiChars[c.rng.Intn(len(confettiChars))],
		color: confettiColors[c.rng.Intn(len(confettiColors))],
		life:  80 + c.rng.Intn(120),
	}
}

// Tick advances all particles by one frame, respawning expired ones at the top.
func (c *Confetti) Tick() {
	for i := range c.particles {
		p := &c.particles[i]
		p.x += p.vx
		p.y += p.vy
		p.life--

		if p.life <= 0 || p.y >= float64(c.height) {
			c.particles[i] = c.spawn()
		}
	}
}

// Render draws the particles onto a width x height grid.
func (c *Confetti) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	grid := make([][]string, height)
	for i := range grid {
		grid[i] = make([]string, width)
		for j := range grid[i] {
			grid[i][j] = " "
		}
	}

	for i := range c.particles {
		p := &c.particles[i]
		px, py := int(p.x), int(p.y)
		if px >= 0 && px < width && py >= 0 && py < height {
			grid[py][px] = lipgloss.NewStyle().Foreground(p.color).Render(p.char)
		}
	}

	var b strings.Builder
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			b.WriteString(grid[y][x])
		}
		if y < height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Len returns the number of live particles.
func (c *Confetti) Len() int {
	return len(c.particles)
}
