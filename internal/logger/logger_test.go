package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"loud", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.name); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestInitConsoleAndFile(t *testing.T) {
	restore := SetLogger(zap.NewNop())
	defer restore()

	var console bytes.Buffer
	logPath := filepath.Join(t.TempDir(), "logs", "birthday.log")
	if err := Init(Config{Level: "warn", OutputPath: logPath, Console: &console}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	Info("hidden")
	Warn("font missing", String("path", "/fonts/x.ttf"))
	Sync()

	out := console.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "font missing") || !strings.Contains(out, "/fonts/x.ttf") {
		t.Errorf("expected warning in console output, got %q", out)
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"font missing"`) {
		t.Errorf("expected JSON entry in log file, got %q", string(data))
	}
}
