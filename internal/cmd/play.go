package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/minicodemonkey/birthday/internal/audio"
	"github.com/minicodemonkey/birthday/internal/config"
	"github.com/minicodemonkey/birthday/internal/logger"
	"github.com/minicodemonkey/birthday/internal/melody"
	"github.com/minicodemonkey/birthday/internal/tui"
	"github.com/minicodemonkey/birthday/internal/wallpaper"
)

// PlayOptions contains configuration for the full birthday run.
type PlayOptions struct {
	BaseDir   string         // Directory holding config and assets (default: current directory)
	Config    *config.Config // Effective config (default: loaded from BaseDir)
	Celebrate bool           // Show the confetti screen during playback when on a terminal
	Printer   *tui.Printer   // Status output (default: stdout)

	SelectPlayer func(backend string) (audio.Player, error) // default: audio.Select
	Strategy     wallpaper.Strategy                         // default: wallpaper.ForPlatform
	Now          func() time.Time                           // default: time.Now
}

// RunPlay runs the whole program: sweep stale wallpapers, compose and set the
// birthday wallpaper, then synthesize and play the song.
//
// No playback backend is fatal and checked before anything else runs. Every
// later step is best-effort: failures are reported and the run continues.
func RunPlay(ctx context.Context, opts PlayOptions) error {
	baseDir, err := resolveBaseDir(opts.BaseDir)
	if err != nil {
		return err
	}
	cfg := resolveConfig(opts.Config, baseDir)
	out := resolvePrinter(opts.Printer)
	if opts.SelectPlayer == nil {
		opts.SelectPlayer = audio.Select
	}
	if opts.Strategy == nil {
		opts.Strategy = wallpaper.ForPlatform(runtime.GOOS, wallpaper.ExecRunner{})
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	player, err := opts.SelectPlayer(cfg.Audio.Backend)
	if err != nil {
		return fmt.Errorf("failed to open audio output: %w", err)
	}
	logger.Info("audio backend selected", logger.String("backend", player.Name()))

	out.Title("🎂 Happy Birthday")

	dir := outputDir(cfg, baseDir)
	if removed, err := wallpaper.Cleanup(dir, wallpaper.MaxAge, opts.Now()); err != nil {
		logger.Warn("stale wallpaper sweep failed", logger.String("dir", dir), logger.Err(err))
	} else if removed > 0 {
		out.Step(tui.StepDone, "removed stale wallpapers", fmt.Sprintf("%d file(s)", removed))
	}

	setWallpaper(ctx, cfg, baseDir, opts.Strategy, opts.Now, out)

	return playSong(ctx, cfg, player, opts.Celebrate, out)
}

// setWallpaper composes and applies the wallpaper, reporting but never
// returning failures.
func setWallpaper(ctx context.Context, cfg *config.Config, baseDir string, s wallpaper.Strategy, now func() time.Time, out *tui.Printer) bool {
	path, err := wallpaper.Create(cfg.Message, wallpaper.CreateOptions{
		ComposeOptions: composeOptions(cfg, baseDir),
		OutputDir:      outputDir(cfg, baseDir),
		Now:            now,
	})
	if err != nil {
		logger.Error("failed to create wallpaper", logger.Err(err))
		out.Step(tui.StepFailed, "wallpaper not created", err.Error())
		return false
	}

	ok := wallpaper.Apply(ctx, s, path, wallpaper.ApplyOptions{
		DeleteAfter: !cfg.KeepWallpaper,
		SettleDelay: wallpaper.SettleDelayFor(runtime.GOOS),
	})
	if !ok {
		out.Step(tui.StepFailed, "wallpaper not set", s.Name())
		return false
	}
	out.Step(tui.StepDone, "wallpaper set", s.Name())
	return true
}

// playSong synthesizes the melody and plays it. Only a synthesis error is
// returned; playback failures are reported.
func playSong(ctx context.Context, cfg *config.Config, player audio.Player, celebrate bool, out *tui.Printer) error {
	wave, err := melody.Synthesize(melody.HappyBirthday, cfg.BPM)
	if err != nil {
		return fmt.Errorf("failed to synthesize song: %w", err)
	}
	logger.Debug("song synthesized",
		logger.Int("bpm", cfg.BPM),
		logger.Int("samples", len(wave.Samples)),
		logger.Duration("duration", wave.Duration()))

	play := func(ctx context.Context) error { return player.Play(ctx, wave) }

	if celebrate && out.Styled() && tui.IsTerminal(os.Stdin) {
		err = tui.RunCelebration(ctx, cfg.Message, wave.Duration(), play)
	} else {
		out.Step(tui.StepInfo, "playing", fmt.Sprintf("%s, %s at %d bpm", player.Name(), wave.Duration().Round(time.Millisecond), cfg.BPM))
		err = play(ctx)
	}

	switch {
	case errors.Is(err, tui.ErrInterrupted), errors.Is(err, context.Canceled):
		out.Step(tui.StepSkipped, "playback stopped", "")
	case err != nil:
		logger.Error("playback failed", logger.String("backend", player.Name()), logger.Err(err))
		out.Step(tui.StepFailed, "playback failed", err.Error())
	default:
		out.Step(tui.StepDone, "song played", "")
	}
	return nil
}
