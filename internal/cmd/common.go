// Package cmd provides the CLI command implementations for birthday.
// Each command takes an XxxOptions struct and is safe to call from tests
// with injected players, wallpaper strategies and printers.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/minicodemonkey/birthday/internal/config"
	"github.com/minicodemonkey/birthday/internal/logger"
	"github.com/minicodemonkey/birthday/internal/paths"
	"github.com/minicodemonkey/birthday/internal/tui"
	"github.com/minicodemonkey/birthday/internal/wallpaper"
)

// resolveBaseDir returns dir, or the current directory when dir is empty.
func resolveBaseDir(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}
	return cwd, nil
}

// resolveConfig returns cfg, or loads it from baseDir with env overrides.
// A malformed config file is reported and replaced by the defaults.
func resolveConfig(cfg *config.Config, baseDir string) *config.Config {
	if cfg != nil {
		return cfg
	}
	cfg, err := config.Load(baseDir)
	if err != nil {
		logger.Warn("using default config", logger.Err(err))
	}
	config.ApplyEnv(baseDir, cfg)
	return cfg
}

func resolvePrinter(p *tui.Printer) *tui.Printer {
	if p != nil {
		return p
	}
	return tui.NewPrinter(os.Stdout)
}

// outputDir returns the directory transient wallpapers are written to.
func outputDir(cfg *config.Config, baseDir string) string {
	if cfg.OutputDir == "" {
		return baseDir
	}
	if filepath.IsAbs(cfg.OutputDir) {
		return cfg.OutputDir
	}
	return filepath.Join(baseDir, cfg.OutputDir)
}

// backgroundPath returns the first existing background candidate, or "".
func backgroundPath(cfg *config.Config, baseDir string) string {
	path, ok := paths.FirstExisting(paths.BackgroundCandidates(cfg.Background, baseDir))
	if !ok {
		logger.Debug("no background asset found, generating canvas")
		return ""
	}
	return path
}

// composeOptions maps the config onto compositor options.
func composeOptions(cfg *config.Config, baseDir string) wallpaper.ComposeOptions {
	return wallpaper.ComposeOptions{
		Background: backgroundPath(cfg, baseDir),
		Canvas: wallpaper.CanvasSpec{
			Width:  cfg.Canvas.Width,
			Height: cfg.Canvas.Height,
			Style:  cfg.Canvas.Style,
			Color:  cfg.Canvas.Color,
			Top:    cfg.Canvas.Top,
			Bottom: cfg.Canvas.Bottom,
		},
		FontPaths: cfg.FontPaths,
	}
}
