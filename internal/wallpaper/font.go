package wallpaper

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/minicodemonkey/birthday/internal/logger"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontSize is the point size the message is rendered at.
const FontSize = 80

// BuiltinFont is the source name reported when no font file could be loaded.
const BuiltinFont = "builtin:goregular"

// DefaultFontPaths returns the font files probed on goos, in order.
// The Kaiti/PingFang entries cover CJK messages.
func DefaultFontPaths(goos string) []string {
	switch goos {
	case "darwin":
		return []string{
			"/System/Library/Fonts/PingFang.ttc",
			"/Library/Fonts/Kaiti.ttc",
			"/System/Library/Fonts/Supplemental/Kaiti.ttc",
			"/System/Library/Fonts/Helvetica.ttc",
		}
	case "windows":
		return []string{
			"C:/Windows/Fonts/simkai.ttf",
			"C:/Windows/Fonts/SIMKAI.TTF",
			"C:/Windows/Fonts/kaiti.ttf",
			"C:/Windows/Fonts/simsun.ttc",
			"C:/Windows/Fonts/msyh.ttc",
		}
	default:
		return []string{
			"/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttc",
			"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
			"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		}
	}
}

// LoadFace returns a face for the first loadable candidate, or the built-in Go
// font when none load. The returned name identifies the source. Callers should
// Close the face.
func LoadFace(candidates []string, size float64) (font.Face, string) {
	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		face, err := loadFontFile(path, size)
		if err != nil {
			logger.Warn("skipping unusable font", logger.String("path", path), logger.Err(err))
			continue
		}
		return face, path
	}

	face, err := builtinFace(size)
	if err != nil {
		logger.Warn("built-in font unavailable, using bitmap font", logger.Err(err))
		return basicfont.Face7x13, "builtin:basic7x13"
	}
	return face, BuiltinFont
}

func loadFontFile(path string, size float64) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f *opentype.Font
	if strings.EqualFold(filepath.Ext(path), ".ttc") {
		coll, err := opentype.ParseCollection(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse font collection: %w", err)
		}
		if coll.NumFonts() == 0 {
			return nil, fmt.Errorf("empty font collection")
		}
		if f, err = coll.Font(0); err != nil {
			return nil, err
		}
	} else if f, err = opentype.Parse(data); err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}

	return newFace(f, size)
}

func builtinFace(size float64) (font.Face, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	return newFace(f, size)
}

func newFace(f *opentype.Font, size float64) (font.Face, error) {
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
