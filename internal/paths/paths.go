// Package paths resolves the files birthday reads and writes: config, .env,
// the background asset and transient output images.
package paths

import (
	"os"
	"path/filepath"
)

const (
	// BackgroundName is the default background asset shipped next to the binary.
	BackgroundName = "wallpaper_basic.png"
	// PreviewName is the fixed file the preview command renders into.
	PreviewName = "birthday_preview.png"
)

// ConfigNames are the config file names probed in each directory, in order.
var ConfigNames = []string{"config.yaml", "config.yml", "config.json"}

// executableDir returns the directory holding the running binary, or "" if unknown.
var executableDir = func() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}

// SetExecutableDir overrides the executable directory used by all path functions.
// Intended for testing. Returns a restore function.
func SetExecutableDir(dir string) func() {
	old := executableDir
	executableDir = func() string { return dir }
	return func() { executableDir = old }
}

// ExecutableDir returns the directory holding the running binary.
func ExecutableDir() string {
	return executableDir()
}

// searchDirs returns baseDir followed by the executable directory, without duplicates.
func searchDirs(baseDir string) []string {
	dirs := []string{baseDir}
	if exe := executableDir(); exe != "" {
		if abs, err := filepath.Abs(baseDir); err != nil || abs != exe {
			dirs = append(dirs, exe)
		}
	}
	return dirs
}

// ConfigCandidates returns the config file locations probed by config.Load, in order.
func ConfigCandidates(baseDir string) []string {
	var out []string
	for _, dir := range searchDirs(baseDir) {
		for _, name := range ConfigNames {
			out = append(out, filepath.Join(dir, name))
		}
	}
	return out
}

// ConfigPath returns the file config.Save writes to: <baseDir>/config.yaml.
func ConfigPath(baseDir string) string {
	return filepath.Join(baseDir, ConfigNames[0])
}

// EnvPath returns <baseDir>/.env
func EnvPath(baseDir string) string {
	return filepath.Join(baseDir, ".env")
}

// BackgroundCandidates returns the background asset locations in priority order:
// the explicit path (if any), then next to the executable, then baseDir.
func BackgroundCandidates(explicit, baseDir string) []string {
	var out []string
	if explicit != "" {
		if !filepath.IsAbs(explicit) {
			explicit = filepath.Join(baseDir, explicit)
		}
		out = append(out, explicit)
	}
	if exe := executableDir(); exe != "" {
		out = append(out, filepath.Join(exe, BackgroundName))
	}
	return append(out, filepath.Join(baseDir, BackgroundName))
}

// PreviewPath returns <baseDir>/birthday_preview.png
func PreviewPath(baseDir string) string {
	return filepath.Join(baseDir, PreviewName)
}

// FirstExisting returns the first candidate that exists as a regular file.
func FirstExisting(candidates []string) (string, bool) {
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && info.Mode().IsRegular() {
			return c, true
		}
	}
	return "", false
}
