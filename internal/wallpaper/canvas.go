package wallpaper

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Canvas styles for the generated fallback background.
const (
	StyleSolid    = "solid"
	StyleGradient = "gradient"
)

// CanvasSpec describes the background generated when no asset can be loaded.
type CanvasSpec struct {
	Width  int
	Height int
	Style  string
	Color  string // solid fill, hex
	Top    string // gradient start, hex
	Bottom string // gradient end, hex
}

// DefaultCanvas is a black 2560x1600 canvas.
var DefaultCanvas = CanvasSpec{Width: 2560, Height: 1600, Style: StyleSolid, Color: "#000000"}

// LoadBackground decodes an image file into an RGBA canvas at its native size.
func LoadBackground(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst, nil
}

// NewCanvas generates a background from spec. Unknown styles render solid and
// unparseable colors fall back to black.
func NewCanvas(spec CanvasSpec) *image.RGBA {
	w, h := spec.Width, spec.Height
	if w <= 0 || h <= 0 {
		w, h = DefaultCanvas.Width, DefaultCanvas.Height
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	if spec.Style == StyleGradient {
		top, bottom := hexColor(spec.Top), hexColor(spec.Bottom)
		for y := 0; y < h; y++ {
			t := 0.0
			if h > 1 {
				t = float64(y) / float64(h-1)
			}
			row := rgba(top.BlendRgb(bottom, t))
			draw.Draw(img, image.Rect(0, y, w, y+1), image.NewUniform(row), image.Point{}, draw.Src)
		}
		return img
	}

	draw.Draw(img, img.Bounds(), image.NewUniform(rgba(hexColor(spec.Color))), image.Point{}, draw.Src)
	return img
}

func hexColor(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}
	}
	return c
}

func rgba(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
