package wallpaper

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/minicodemonkey/birthday/internal/logger"
)

// Runner executes an external command and returns its trimmed stdout.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return "", fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("%s: %w", name, err)
	}
	return strings.TrimSpace(string(output)), nil
}

// Strategy installs an image as the desktop wallpaper.
type Strategy interface {
	Name() string
	// Set reports whether the wallpaper was installed. path is absolute.
	Set(ctx context.Context, path string) bool
}

// ForPlatform returns the strategy for goos.
func ForPlatform(goos string, run Runner) Strategy {
	switch goos {
	case "darwin":
		return &MacOS{run: run}
	case "windows":
		return &Windows{run: run, setAPI: systemParametersWallpaper, setRegistry: registryWallpaper}
	default:
		return &POSIX{run: run}
	}
}

// MacOS drives System Events through osascript.
type MacOS struct {
	run Runner
}

func (s *MacOS) Name() string { return "macos" }

func (s *MacOS) Set(ctx context.Context, path string) bool {
	script := fmt.Sprintf(`tell application "System Events"
	tell every desktop
		set picture to %q
	end tell
end tell`, path)
	if _, err := s.run.Run(ctx, "osascript", "-e", script); err != nil {
		logger.Warn("osascript failed to set wallpaper", logger.Err(err))
		return false
	}

	verify := `tell application "System Events"
	tell desktop 1
		get picture
	end tell
end tell`
	current, err := s.run.Run(ctx, "osascript", "-e", verify)
	if err != nil {
		// The set command succeeded; an unreadable setting is not a failure.
		logger.Debug("could not verify wallpaper", logger.Err(err))
		return true
	}
	if strings.Contains(current, path) || strings.HasSuffix(current, filepath.Base(path)) {
		return true
	}
	logger.Warn("wallpaper verification mismatch", logger.String("current", current), logger.String("want", path))
	return false
}

// Windows calls SystemParametersInfoW, falling back to the registry value and
// a per-user settings refresh.
type Windows struct {
	run         Runner
	setAPI      func(path string) error
	setRegistry func(path string) error
}

func (s *Windows) Name() string { return "windows" }

func (s *Windows) Set(ctx context.Context, path string) bool {
	err := s.setAPI(path)
	if err == nil {
		return true
	}
	logger.Warn("SystemParametersInfoW failed, writing registry", logger.Err(err))

	if err := s.setRegistry(path); err != nil {
		logger.Warn("failed to write wallpaper registry value", logger.Err(err))
		return false
	}
	if _, err := s.run.Run(ctx, "RUNDLL32.EXE", "user32.dll,UpdatePerUserSystemParameters"); err != nil {
		logger.Warn("failed to refresh desktop settings", logger.Err(err))
		return false
	}
	return true
}

// POSIX tries the GNOME settings, then feh, then nitrogen.
type POSIX struct {
	run Runner
}

func (s *POSIX) Name() string { return "posix" }

// Commands returns the commands Set tries, in order.
func (s *POSIX) Commands(path string) [][]string {
	return [][]string{
		{"gsettings", "set", "org.gnome.desktop.background", "picture-uri", "file://" + path},
		{"feh", "--bg-scale", path},
		{"nitrogen", "--set-scaled", path},
	}
}

func (s *POSIX) Set(ctx context.Context, path string) bool {
	for _, c := range s.Commands(path) {
		if _, err := s.run.Run(ctx, c[0], c[1:]...); err != nil {
			logger.Debug("wallpaper command failed", logger.String("command", c[0]), logger.Err(err))
			continue
		}
		return true
	}
	return false
}

// ApplyOptions configures Apply.
type ApplyOptions struct {
	DeleteAfter bool
	// SettleDelay is waited after a successful set before the file is removed.
	SettleDelay time.Duration
}

// SettleDelayFor returns the wait before deleting a freshly set wallpaper on goos.
func SettleDelayFor(goos string) time.Duration {
	if goos == "darwin" {
		return time.Second
	}
	return 0
}

// Apply sets path as the wallpaper with s and, when DeleteAfter is set, removes
// the file afterwards whether or not the set succeeded.
func Apply(ctx context.Context, s Strategy, path string, opts ApplyOptions) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		logger.Warn("failed to resolve wallpaper path", logger.String("path", path), logger.Err(err))
		return false
	}
	if _, err := os.Stat(abs); err != nil {
		logger.Warn("wallpaper file missing", logger.String("path", abs), logger.Err(err))
		return false
	}

	ok := s.Set(ctx, abs)
	if ok {
		logger.Info("wallpaper set", logger.String("strategy", s.Name()), logger.String("path", abs))
	} else {
		logger.Warn("failed to set wallpaper", logger.String("strategy", s.Name()))
	}

	if opts.DeleteAfter {
		if ok && opts.SettleDelay > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(opts.SettleDelay):
			}
		}
		if err := os.Remove(abs); err != nil && !os.IsNotExist(err) {
			logger.Warn("failed to remove wallpaper file", logger.String("path", abs), logger.Err(err))
		}
	}
	return ok
}
