package wallpaper

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minicodemonkey/birthday/internal/logger"
)

const (
	outputPrefix = "birthday_wallpaper_"
	outputSuffix = ".png"

	// MaxAge is how long a transient wallpaper may linger before Cleanup removes it.
	MaxAge = time.Hour
)

// OutputName returns a unique file name: birthday_wallpaper_<unix>_<8 hex>.png
func OutputName(now time.Time) string {
	return fmt.Sprintf("%s%d_%s%s", outputPrefix, now.Unix(), uuid.NewString()[:8], outputSuffix)
}

// IsOutputName reports whether name looks like a file written by Save.
func IsOutputName(name string) bool {
	return strings.HasPrefix(name, outputPrefix) && strings.HasSuffix(name, outputSuffix)
}

// Save encodes img as PNG into a new uniquely named file in dir.
func Save(img image.Image, dir string, now time.Time) (string, error) {
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, OutputName(now))
	if err := WritePNG(img, path, false); err != nil {
		return "", err
	}
	return path, nil
}

// WritePNG encodes img to path. Unless overwrite is set the file must not exist.
func WritePNG(img image.Image, path string, overwrite bool) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return fmt.Errorf("failed to write wallpaper %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("failed to encode wallpaper %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write wallpaper %s: %w", path, err)
	}
	return nil
}

// Cleanup removes transient wallpapers in dir last modified more than maxAge
// before now. Individual removal failures are logged and skipped.
func Cleanup(dir string, maxAge time.Duration, now time.Time) (int, error) {
	if dir == "" {
		dir = "."
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	removed := 0
	cutoff := now.Add(-maxAge)
	for _, e := range entries {
		if e.IsDir() || !IsOutputName(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if err := os.Remove(path); err != nil {
			logger.Warn("failed to remove stale wallpaper", logger.String("path", path), logger.Err(err))
			continue
		}
		removed++
	}
	return removed, nil
}
