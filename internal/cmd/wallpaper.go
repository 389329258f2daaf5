package cmd

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/minicodemonkey/birthday/internal/config"
	"github.com/minicodemonkey/birthday/internal/logger"
	"github.com/minicodemonkey/birthday/internal/paths"
	"github.com/minicodemonkey/birthday/internal/preview"
	"github.com/minicodemonkey/birthday/internal/tui"
	"github.com/minicodemonkey/birthday/internal/wallpaper"
)

// WallpaperOptions contains configuration for the wallpaper command.
type WallpaperOptions struct {
	BaseDir  string
	Config   *config.Config
	Strategy wallpaper.Strategy // default: wallpaper.ForPlatform
	Printer  *tui.Printer
	Now      func() time.Time
}

// RunWallpaper composes and sets the wallpaper without playing the song.
// Unlike the full run, a failure to set it is returned as an error.
func RunWallpaper(ctx context.Context, opts WallpaperOptions) error {
	baseDir, err := resolveBaseDir(opts.BaseDir)
	if err != nil {
		return err
	}
	cfg := resolveConfig(opts.Config, baseDir)
	out := resolvePrinter(opts.Printer)
	if opts.Strategy == nil {
		opts.Strategy = wallpaper.ForPlatform(runtime.GOOS, wallpaper.ExecRunner{})
	}

	if !setWallpaper(ctx, cfg, baseDir, opts.Strategy, opts.Now, out) {
		return errors.New("wallpaper was not set")
	}
	return nil
}

// PreviewOptions contains configuration for the preview command.
type PreviewOptions struct {
	BaseDir string
	Config  *config.Config
	Watch   bool // re-render whenever the config or background changes
	Printer *tui.Printer

	// Load reloads the config while watching (default: config.Load + ApplyEnv).
	Load preview.LoadFunc
}

// RunPreview renders the wallpaper to birthday_preview.png without setting it.
// With Watch it keeps re-rendering until ctx is cancelled.
func RunPreview(ctx context.Context, opts PreviewOptions) error {
	baseDir, err := resolveBaseDir(opts.BaseDir)
	if err != nil {
		return err
	}
	out := resolvePrinter(opts.Printer)

	if !opts.Watch {
		cfg := resolveConfig(opts.Config, baseDir)
		_, err := renderPreview(cfg, baseDir, out)
		return err
	}

	load := opts.Load
	if load == nil {
		load = func() (*config.Config, error) {
			cfg, err := config.Load(baseDir)
			config.ApplyEnv(baseDir, cfg)
			return cfg, err
		}
	}
	w, err := preview.NewWatcher(baseDir, load)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Stop()
	if err := w.Start(); err != nil {
		return fmt.Errorf("failed to watch %s: %w", baseDir, err)
	}
	out.Step(tui.StepInfo, "watching for changes", baseDir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events():
			if !ok {
				return nil
			}
			if ev.Error != nil {
				logger.Warn("preview reload failed", logger.Err(ev.Error))
				out.Step(tui.StepFailed, "reload failed", ev.Error.Error())
				continue
			}
			if _, err := renderPreview(ev.Config, baseDir, out); err != nil {
				logger.Error("preview render failed", logger.Err(err))
			}
		}
	}
}

// renderPreview composes the wallpaper into the fixed preview file.
func renderPreview(cfg *config.Config, baseDir string, out *tui.Printer) (string, error) {
	img, err := wallpaper.Compose(cfg.Message, composeOptions(cfg, baseDir))
	if err != nil {
		return "", err
	}
	path := paths.PreviewPath(baseDir)
	if err := wallpaper.WritePNG(img, path, true); err != nil {
		out.Step(tui.StepFailed, "preview not written", err.Error())
		return "", err
	}
	out.Step(tui.StepDone, "preview rendered", fmt.Sprintf("%s (%dx%d)", path, img.Bounds().Dx(), img.Bounds().Dy()))
	return path, nil
}

// CleanupOptions contains configuration for the cleanup command.
type CleanupOptions struct {
	BaseDir string
	Config  *config.Config
	MaxAge  time.Duration // default: wallpaper.MaxAge
	Printer *tui.Printer
	Now     func() time.Time
}

// RunCleanup removes transient wallpapers older than MaxAge.
func RunCleanup(opts CleanupOptions) error {
	baseDir, err := resolveBaseDir(opts.BaseDir)
	if err != nil {
		return err
	}
	cfg := resolveConfig(opts.Config, baseDir)
	out := resolvePrinter(opts.Printer)
	if opts.MaxAge <= 0 {
		opts.MaxAge = wallpaper.MaxAge
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	dir := outputDir(cfg, baseDir)
	removed, err := wallpaper.Cleanup(dir, opts.MaxAge, opts.Now())
	if err != nil {
		return fmt.Errorf("failed to clean %s: %w", dir, err)
	}
	if removed == 0 {
		out.Step(tui.StepSkipped, "no stale wallpapers", dir)
		return nil
	}
	out.Step(tui.StepDone, "removed stale wallpapers", fmt.Sprintf("%d file(s) in %s", removed, dir))
	return nil
}
