// Package wallpaper composites a message onto a background image and installs
// the result as the desktop wallpaper.
package wallpaper

import (
	"image"
	"image/color"
	"runtime"
	"time"

	"github.com/minicodemonkey/birthday/internal/logger"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// ShadowOffset is the drop shadow displacement in pixels, applied on both axes.
const ShadowOffset = 3

// ComposeOptions configures Compose.
type ComposeOptions struct {
	Background      string     // optional image path
	Canvas          CanvasSpec // used when Background is empty or unloadable
	FontPaths       []string   // overrides DefaultFontPaths when non-empty
	SkipSystemFonts bool       // render with the built-in font only
	FontSize        float64    // defaults to FontSize
}

// CreateOptions configures Create.
type CreateOptions struct {
	ComposeOptions
	OutputDir string           // defaults to the current directory
	Now       func() time.Time // defaults to time.Now
}

// Compose returns the background canvas with message centered on it in white
// over a black drop shadow.
func Compose(message string, opts ComposeOptions) (*image.RGBA, error) {
	canvas := baseCanvas(opts)

	size := opts.FontSize
	if size <= 0 {
		size = FontSize
	}
	var candidates []string
	if !opts.SkipSystemFonts {
		candidates = opts.FontPaths
		if len(candidates) == 0 {
			candidates = DefaultFontPaths(runtime.GOOS)
		}
	}
	face, source := LoadFace(candidates, size)
	defer face.Close()
	logger.Debug("font selected", logger.String("font", source))

	DrawMessage(canvas, face, message)
	return canvas, nil
}

// Create composes the wallpaper and writes it to a uniquely named PNG in the
// output directory, returning its path.
func Create(message string, opts CreateOptions) (string, error) {
	img, err := Compose(message, opts.ComposeOptions)
	if err != nil {
		return "", err
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	path, err := Save(img, opts.OutputDir, now())
	if err != nil {
		return "", err
	}
	return path, nil
}

func baseCanvas(opts ComposeOptions) *image.RGBA {
	if opts.Background != "" {
		img, err := LoadBackground(opts.Background)
		if err == nil {
			return img
		}
		logger.Warn("background unreadable, generating canvas", logger.String("path", opts.Background), logger.Err(err))
	}
	spec := opts.Canvas
	if spec.Width <= 0 || spec.Height <= 0 {
		spec.Width, spec.Height = DefaultCanvas.Width, DefaultCanvas.Height
	}
	return NewCanvas(spec)
}

// Layout returns the box message occupies when centered on a w x h canvas.
func Layout(face font.Face, message string, w, h int) image.Rectangle {
	b, _ := font.BoundString(face, message)
	tw := (b.Max.X - b.Min.X).Ceil()
	th := (b.Max.Y - b.Min.Y).Ceil()
	x := (w - tw) / 2
	y := (h - th) / 2
	return image.Rect(x, y, x+tw, y+th)
}

// DrawMessage draws message centered on dst: shadow first, then the text.
func DrawMessage(dst *image.RGBA, face font.Face, message string) image.Rectangle {
	bounds := dst.Bounds()
	box := Layout(face, message, bounds.Dx(), bounds.Dy()).Add(bounds.Min)

	// Dot is the baseline origin; shift it so the ink box starts at box.Min.
	b, _ := font.BoundString(face, message)
	dot := fixed.P(box.Min.X, box.Min.Y).Sub(b.Min)

	drawText(dst, face, message, dot.Add(fixed.P(ShadowOffset, ShadowOffset)), color.Black)
	drawText(dst, face, message, dot, color.White)
	return box
}

func drawText(dst *image.RGBA, face font.Face, message string, dot fixed.Point26_6, c color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  dot,
	}
	d.DrawString(message)
}
