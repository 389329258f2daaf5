package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/minicodemonkey/birthday/internal/config"
	"github.com/minicodemonkey/birthday/internal/logger"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	dir           string
	logLevel      string
	logFile       string
	bpm           int
	message       string
	background    string
	backend       string
	keepWallpaper bool
}

// app holds state resolved once in PersistentPreRunE.
type app struct {
	flags globalFlags
	cfg   *config.Config
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newRootCmd(&app{}).ExecuteContext(ctx)
	logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	var celebrate bool

	root := &cobra.Command{
		Use:   "birthday",
		Short: "Play Happy Birthday and set a birthday wallpaper",
		Long: `birthday composes your message onto a wallpaper, sets it as the desktop
background, then plays a synthesized "Happy Birthday".

Settings come from config.yaml (or config.json) in the working directory or
next to the binary, overridden by BIRTHDAY_* variables and .env.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPlay(cmd.Context(), celebrate)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.flags.dir, "dir", "C", "", "directory holding config and assets (default: current directory)")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn or error")
	pf.StringVar(&a.flags.logFile, "log-file", "", "also write JSON logs to this rotated file")
	pf.IntVar(&a.flags.bpm, "bpm", 0, "tempo in beats per minute")
	pf.StringVarP(&a.flags.message, "message", "m", "", "message drawn on the wallpaper")
	pf.StringVar(&a.flags.background, "background", "", "background image path")
	pf.StringVar(&a.flags.backend, "audio", "", "audio backend: auto, oto or command")
	pf.BoolVar(&a.flags.keepWallpaper, "keep-wallpaper", false, "keep the generated wallpaper file after setting it")
	root.Flags().BoolVar(&celebrate, "celebrate", false, "show confetti in the terminal while the song plays")

	root.AddCommand(
		a.exportCmd(),
		a.wallpaperCmd(),
		a.previewCmd(),
		a.cleanupCmd(),
		a.configCmd(),
		a.pathsCmd(),
		a.packCmd(),
	)
	return root
}

// setup resolves the base directory, loads the config, applies environment
// and flag overrides, then initializes logging.
func (a *app) setup(cmd *cobra.Command) error {
	if a.flags.dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
		a.flags.dir = cwd
	}

	cfg, loadErr := config.Load(a.flags.dir)
	config.ApplyEnv(a.flags.dir, cfg)

	flags := cmd.Flags()
	if flags.Changed("bpm") {
		if a.flags.bpm <= 0 {
			return errors.New("--bpm must be positive")
		}
		cfg.BPM = a.flags.bpm
	}
	if flags.Changed("message") && a.flags.message != "" {
		cfg.Message = a.flags.message
	}
	if flags.Changed("background") {
		cfg.Background = a.flags.background
	}
	if flags.Changed("audio") {
		cfg.Audio.Backend = a.flags.backend
	}
	if flags.Changed("keep-wallpaper") {
		cfg.KeepWallpaper = a.flags.keepWallpaper
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = a.flags.logLevel
	}
	if flags.Changed("log-file") {
		cfg.Log.File = a.flags.logFile
	}

	if err := logger.Init(logger.Config{Level: cfg.Log.Level, OutputPath: cfg.Log.File}); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	if loadErr != nil {
		logger.Warn("config unreadable, using defaults", logger.Err(loadErr))
	} else if cfg.Source != "" {
		logger.Debug("config loaded", logger.String("path", cfg.Source))
	}

	a.cfg = cfg
	return nil
}
