package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/minicodemonkey/birthday/internal/paths"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.BPM != 90 {
		t.Errorf("expected bpm 90, got %d", cfg.BPM)
	}
	if cfg.Message != "🎉 生日快乐歌播放完成！Happy Birthday! 🎂" {
		t.Errorf("unexpected default message %q", cfg.Message)
	}
	if cfg.Canvas.Width != 2560 || cfg.Canvas.Height != 1600 {
		t.Errorf("unexpected canvas %dx%d", cfg.Canvas.Width, cfg.Canvas.Height)
	}
}

func TestLoadNonExistent(t *testing.T) {
	restore := paths.SetExecutableDir(t.TempDir())
	defer restore()

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BPM != DefaultBPM || cfg.Message != DefaultMessage {
		t.Errorf("expected defaults, got %+v", cfg)
	}
	if cfg.Source != "" {
		t.Errorf("expected empty source, got %q", cfg.Source)
	}
}

func TestLoadJSON(t *testing.T) {
	restore := paths.SetExecutableDir(t.TempDir())
	defer restore()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{"bpm": 120, "message": "Happy Birthday!"}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.BPM != 120 {
		t.Errorf("expected bpm 120, got %d", cfg.BPM)
	}
	if cfg.Message != "Happy Birthday!" {
		t.Errorf("expected message %q, got %q", "Happy Birthday!", cfg.Message)
	}
	if cfg.Source != path {
		t.Errorf("expected source %q, got %q", path, cfg.Source)
	}
	// Unset fields keep their defaults
	if cfg.Canvas.Width != DefaultCanvasWidth {
		t.Errorf("expected default canvas width, got %d", cfg.Canvas.Width)
	}
}

func TestLoadMalformed(t *testing.T) {
	restore := paths.SetExecutableDir(t.TempDir())
	defer restore()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{"bpm": 12`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err == nil {
		t.Error("expected parse error")
	}
	if cfg == nil || cfg.BPM != DefaultBPM || cfg.Message != DefaultMessage {
		t.Errorf("expected defaults on malformed file, got %+v", cfg)
	}
}

func TestLoadNormalizes(t *testing.T) {
	restore := paths.SetExecutableDir(t.TempDir())
	defer restore()

	dir := t.TempDir()
	data := "bpm: -4\nmessage: \"\"\ncanvas:\n  width: 0\n  style: plaid\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BPM != DefaultBPM {
		t.Errorf("expected bpm fallback, got %d", cfg.BPM)
	}
	if cfg.Message != DefaultMessage {
		t.Errorf("expected message fallback, got %q", cfg.Message)
	}
	if cfg.Canvas.Width != DefaultCanvasWidth || cfg.Canvas.Style != "solid" {
		t.Errorf("expected canvas fallback, got %+v", cfg.Canvas)
	}
}

func TestLoadPrefersYAMLOverJSON(t *testing.T) {
	restore := paths.SetExecutableDir(t.TempDir())
	defer restore()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{"bpm": 100}`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("bpm: 110\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BPM != 110 {
		t.Errorf("expected config.yaml to win, got bpm %d", cfg.BPM)
	}
}

func TestLoadFromExecutableDir(t *testing.T) {
	exeDir := t.TempDir()
	restore := paths.SetExecutableDir(exeDir)
	defer restore()

	if err := os.WriteFile(filepath.Join(exeDir, "config.json"), []byte(`{"bpm": 75}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BPM != 75 {
		t.Errorf("expected bpm from executable dir, got %d", cfg.BPM)
	}
}

func TestSaveAndLoad(t *testing.T) {
	restore := paths.SetExecutableDir(t.TempDir())
	defer restore()

	dir := t.TempDir()

	cfg := Default()
	cfg.BPM = 100
	cfg.Message = "Happy Birthday, Ada!"
	cfg.Canvas.Style = "gradient"
	cfg.FontPaths = []string{"/fonts/a.ttf"}

	if err := Save(dir, cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.BPM != 100 {
		t.Errorf("expected bpm 100, got %d", loaded.BPM)
	}
	if loaded.Message != "Happy Birthday, Ada!" {
		t.Errorf("unexpected message %q", loaded.Message)
	}
	if loaded.Canvas.Style != "gradient" {
		t.Errorf("expected gradient style, got %q", loaded.Canvas.Style)
	}
	if len(loaded.FontPaths) != 1 || loaded.FontPaths[0] != "/fonts/a.ttf" {
		t.Errorf("unexpected font paths %v", loaded.FontPaths)
	}
}

func TestApplyEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("BIRTHDAY_MESSAGE=From dotenv\nBIRTHDAY_BPM=80\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("BIRTHDAY_BPM", "140")
	t.Setenv("BIRTHDAY_MESSAGE", "")
	t.Setenv("BIRTHDAY_LOG_LEVEL", "debug")

	cfg := Default()
	ApplyEnv(dir, cfg)

	// Existing environment wins over .env
	if cfg.BPM != 140 {
		t.Errorf("expected bpm 140, got %d", cfg.BPM)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected log level debug, got %q", cfg.Log.Level)
	}
}

func TestApplyEnvInvalidBPM(t *testing.T) {
	t.Setenv("BIRTHDAY_BPM", "fast")

	cfg := Default()
	ApplyEnv(t.TempDir(), cfg)
	if cfg.BPM != DefaultBPM {
		t.Errorf("expected default bpm, got %d", cfg.BPM)
	}
}
