package wallpaper

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func builtinOnly(spec CanvasSpec) ComposeOptions {
	return ComposeOptions{Canvas: spec, SkipSystemFonts: true}
}

func TestLayoutCentered(t *testing.T) {
	face, source := LoadFace(nil, FontSize)
	defer face.Close()
	if source != BuiltinFont {
		t.Fatalf("expected built-in font, got %s", source)
	}

	canvases := [][2]int{{2560, 1600}, {1920, 1080}, {801, 601}, {300, 200}}
	messages := []string{"Happy Birthday!", "A", "Happy Birthday, Grace Hopper!!", "ygq"}
	for _, c := range canvases {
		for _, msg := range messages {
			box := Layout(face, msg, c[0], c[1])
			cx2 := box.Min.X + box.Max.X // twice the center, avoids halves
			cy2 := box.Min.Y + box.Max.Y
			if d := cx2 - c[0]; d < -2 || d > 2 {
				t.Errorf("%dx%d %q: horizontal center off by %.1f px", c[0], c[1], msg, float64(d)/2)
			}
			if d := cy2 - c[1]; d < -2 || d > 2 {
				t.Errorf("%dx%d %q: vertical center off by %.1f px", c[0], c[1], msg, float64(d)/2)
			}
		}
	}
}

func TestComposeDrawsTextAndShadow(t *testing.T) {
	gray := color.RGBA{0x80, 0x80, 0x80, 0xff}
	// Straight-edged glyphs keep the fully covered pixels flush with the box.
	img, err := Compose("HIIH", builtinOnly(CanvasSpec{Width: 1200, Height: 600, Style: StyleSolid, Color: "#808080"}))
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 1200 || img.Bounds().Dy() != 600 {
		t.Fatalf("unexpected size %v", img.Bounds())
	}

	var white, black int
	minX, minY, maxX, maxY := 1<<30, 1<<30, -1, -1
	for y := 0; y < 600; y++ {
		for x := 0; x < 1200; x++ {
			c := img.RGBAAt(x, y)
			switch {
			case c.R == 0xff && c.G == 0xff && c.B == 0xff:
				white++
				minX, minY = min(minX, x), min(minY, y)
				maxX, maxY = max(maxX, x), max(maxY, y)
			case c.R == 0 && c.G == 0 && c.B == 0:
				black++
			}
		}
	}
	if white == 0 {
		t.Fatal("no white text pixels drawn")
	}
	if black == 0 {
		t.Fatal("no black shadow pixels drawn")
	}

	// Fully covered pixels sit inside the measured box, so their extent is
	// centered within a couple of pixels of anti-aliasing.
	if d := (minX + maxX + 1) - 1200; d < -4 || d > 4 {
		t.Errorf("text ink horizontally off-center: x=[%d,%d]", minX, maxX)
	}
	if d := (minY + maxY + 1) - 600; d < -4 || d > 4 {
		t.Errorf("text ink vertically off-center: y=[%d,%d]", minY, maxY)
	}

	if c := img.RGBAAt(0, 0); c != gray {
		t.Errorf("corner pixel changed: %v", c)
	}
}

func TestShadowOffset(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 400, 200))
	face, _ := LoadFace(nil, 40)
	defer face.Close()

	// On a white canvas only the shadow is visible.
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	box := DrawMessage(img, face, "Hi")

	found := false
	for y := box.Min.Y; y < box.Max.Y+ShadowOffset && !found; y++ {
		for x := box.Min.X; x < box.Max.X+ShadowOffset; x++ {
			if c := img.RGBAAt(x, y); c.R == 0 && c.G == 0 && c.B == 0 {
				found = true
				if x < box.Min.X+ShadowOffset || y < box.Min.Y+ShadowOffset {
					t.Errorf("shadow pixel (%d,%d) not offset from box %v", x, y, box)
				}
				break
			}
		}
	}
	if !found {
		t.Error("expected shadow pixels")
	}
}

func TestComposeUsesBackgroundResolution(t *testing.T) {
	dir := t.TempDir()
	bg := image.NewRGBA(image.Rect(0, 0, 640, 360))
	for i := range bg.Pix {
		bg.Pix[i] = 0x40
	}
	path := filepath.Join(dir, "wallpaper_basic.png")
	var buf bytes.Buffer
	if err := png.Encode(&buf, bg); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	opts := builtinOnly(DefaultCanvas)
	opts.Background = path
	img, err := Compose("Happy Birthday!", opts)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 640 || img.Bounds().Dy() != 360 {
		t.Errorf("expected 640x360, got %v", img.Bounds())
	}
}

func TestComposeUnreadableBackgroundFallsBack(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "broken.png")
	if err := os.WriteFile(bad, []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}

	for _, bg := range []string{bad, filepath.Join(dir, "missing.png")} {
		opts := builtinOnly(CanvasSpec{Width: 320, Height: 240})
		opts.Background = bg
		img, err := Compose("hi", opts)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", bg, err)
		}
		if img.Bounds().Dx() != 320 || img.Bounds().Dy() != 240 {
			t.Errorf("%s: expected fallback canvas, got %v", bg, img.Bounds())
		}
	}
}

func TestComposeMissingFontsFallBack(t *testing.T) {
	dir := t.TempDir()
	junk := filepath.Join(dir, "junk.ttf")
	if err := os.WriteFile(junk, []byte("not a font"), 0644); err != nil {
		t.Fatal(err)
	}

	face, source := LoadFace([]string{filepath.Join(dir, "missing.ttf"), junk}, FontSize)
	defer face.Close()
	if source != BuiltinFont {
		t.Errorf("expected built-in fallback, got %s", source)
	}
}

func TestNewCanvasGradient(t *testing.T) {
	img := NewCanvas(CanvasSpec{Width: 10, Height: 101, Style: StyleGradient, Top: "#000000", Bottom: "#ffffff"})
	top, mid, bottom := img.RGBAAt(5, 0), img.RGBAAt(5, 50), img.RGBAAt(5, 100)
	if top.R != 0 || bottom.R != 0xff {
		t.Errorf("unexpected gradient ends %v %v", top, bottom)
	}
	if mid.R < 0x7e || mid.R > 0x81 {
		t.Errorf("unexpected gradient midpoint %v", mid)
	}
	for y := 1; y < 101; y++ {
		if img.RGBAAt(0, y).R < img.RGBAAt(0, y-1).R {
			t.Fatalf("gradient not monotonic at row %d", y)
		}
	}
}

func TestNewCanvasDefaults(t *testing.T) {
	img := NewCanvas(CanvasSpec{Color: "not-a-color"})
	if img.Bounds().Dx() != 2560 || img.Bounds().Dy() != 1600 {
		t.Errorf("expected default size, got %v", img.Bounds())
	}
	if c := img.RGBAAt(10, 10); c != (color.RGBA{0, 0, 0, 0xff}) {
		t.Errorf("expected black, got %v", c)
	}
}

func TestCreateIdenticalContentDistinctNames(t *testing.T) {
	dir := t.TempDir()
	fixed := time.Unix(1700000000, 0)
	opts := CreateOptions{
		ComposeOptions: builtinOnly(CanvasSpec{Width: 400, Height: 300}),
		OutputDir:      dir,
		Now:            func() time.Time { return fixed },
	}

	first, err := Create("Happy Birthday!", opts)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Create("Happy Birthday!", opts)
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Fatalf("expected distinct file names, both %s", first)
	}

	a, b := decodePNG(t, first), decodePNG(t, second)
	if !a.Bounds().Eq(b.Bounds()) {
		t.Fatalf("bounds differ: %v vs %v", a.Bounds(), b.Bounds())
	}
	for y := 0; y < a.Bounds().Dy(); y++ {
		for x := 0; x < a.Bounds().Dx(); x++ {
			if a.At(x, y) != b.At(x, y) {
				t.Fatalf("pixel (%d,%d) differs", x, y)
			}
		}
	}
}

func TestCreateWriteFailure(t *testing.T) {
	opts := CreateOptions{
		ComposeOptions: builtinOnly(CanvasSpec{Width: 100, Height: 100}),
		OutputDir:      filepath.Join(t.TempDir(), "does", "not", "exist"),
	}
	if _, err := Create("hi", opts); err == nil {
		t.Error("expected write error")
	}
}

func decodePNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	return img
}
