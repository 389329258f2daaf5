package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/minicodemonkey/birthday/internal/paths"
	"gopkg.in/yaml.v3"
)

const (
	DefaultBPM     = 90
	DefaultMessage = "🎉 生日快乐歌播放完成！Happy Birthday! 🎂"

	DefaultCanvasWidth  = 2560
	DefaultCanvasHeight = 1600
)

// Config holds the settings for one run.
type Config struct {
	BPM     int    `yaml:"bpm"`
	Message string `yaml:"message"`

	Background    string       `yaml:"background,omitempty"`
	OutputDir     string       `yaml:"outputDir,omitempty"`
	FontPaths     []string     `yaml:"fontPaths,omitempty"`
	KeepWallpaper bool         `yaml:"keepWallpaper,omitempty"`
	Canvas        CanvasConfig `yaml:"canvas"`
	Audio         AudioConfig  `yaml:"audio"`
	Log           LogConfig    `yaml:"log"`

	// Source is the file the config was read from, empty for defaults.
	Source string `yaml:"-"`
}

// CanvasConfig describes the background generated when no asset is available.
type CanvasConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Style  string `yaml:"style"` // solid or gradient
	Color  string `yaml:"color"`
	Top    string `yaml:"top"`
	Bottom string `yaml:"bottom"`
}

// AudioConfig selects the playback backend.
type AudioConfig struct {
	Backend string `yaml:"backend"` // auto, oto or command
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file,omitempty"`
}

// Default returns the hardcoded fallback config.
func Default() *Config {
	return &Config{
		BPM:     DefaultBPM,
		Message: DefaultMessage,
		Canvas: CanvasConfig{
			Width:  DefaultCanvasWidth,
			Height: DefaultCanvasHeight,
			Style:  "solid",
			Color:  "#000000",
			Top:    "#1E1E2E",
			Bottom: "#45475A",
		},
		Audio: AudioConfig{Backend: "auto"},
		Log:   LogConfig{Level: "info"},
	}
}

// Load reads the first config file found in baseDir or next to the executable.
// Returns Default() when no file exists (no error). A malformed file also yields
// Default(), together with the parse error so the caller can report it.
func Load(baseDir string) (*Config, error) {
	path, ok := paths.FirstExisting(paths.ConfigCandidates(baseDir))
	if !ok {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads a single config file. JSON files parse as YAML.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.Source = path
	cfg.normalize()

	return cfg, nil
}

// Save writes the config to <baseDir>/config.yaml.
func Save(baseDir string, cfg *Config) error {
	path := paths.ConfigPath(baseDir)

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// ApplyEnv loads <baseDir>/.env (if present) into the process environment and
// applies BIRTHDAY_* overrides. Variables already set in the environment win
// over the .env file.
func ApplyEnv(baseDir string, cfg *Config) {
	_ = godotenv.Load(paths.EnvPath(baseDir))

	cfg.BPM = envInt("BIRTHDAY_BPM", cfg.BPM)
	cfg.Message = envStr("BIRTHDAY_MESSAGE", cfg.Message)
	cfg.Background = envStr("BIRTHDAY_BACKGROUND", cfg.Background)
	cfg.Audio.Backend = envStr("BIRTHDAY_AUDIO_BACKEND", cfg.Audio.Backend)
	cfg.Log.Level = envStr("BIRTHDAY_LOG_LEVEL", cfg.Log.Level)
	cfg.normalize()
}

// normalize replaces out-of-range values with their defaults.
func (c *Config) normalize() {
	def := Default()
	if c.BPM <= 0 {
		c.BPM = def.BPM
	}
	if c.Message == "" {
		c.Message = def.Message
	}
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		c.Canvas.Width, c.Canvas.Height = def.Canvas.Width, def.Canvas.Height
	}
	if c.Canvas.Style != "solid" && c.Canvas.Style != "gradient" {
		c.Canvas.Style = def.Canvas.Style
	}
	if c.Audio.Backend == "" {
		c.Audio.Backend = def.Audio.Backend
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
