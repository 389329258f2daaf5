package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/minicodemonkey/birthday/internal/paths"
)

func TestSetupAppliesFlags(t *testing.T) {
	defer paths.SetExecutableDir(t.TempDir())()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("bpm: 100\nmessage: from file\n"), 0644); err != nil {
		t.Fatal(err)
	}

	a := &app{}
	root := newRootCmd(a)
	root.SetArgs([]string{"cleanup", "--dir", dir, "--bpm", "150", "--keep-wallpaper", "--audio", "command"})
	if err := root.Execute(); err != nil {
		t.Fatalf("Execute() returned error: %v", err)
	}

	if a.cfg.BPM != 150 {
		t.Errorf("expected bpm 150 from flag, got %d", a.cfg.BPM)
	}
	if a.cfg.Message != "from file" {
		t.Errorf("expected message from file, got %q", a.cfg.Message)
	}
	if !a.cfg.KeepWallpaper {
		t.Error("expected --keep-wallpaper to be applied")
	}
	if a.cfg.Audio.Backend != "command" {
		t.Errorf("expected audio backend override, got %q", a.cfg.Audio.Backend)
	}
}

func TestSetupRejectsBadTempo(t *testing.T) {
	defer paths.SetExecutableDir(t.TempDir())()
	root := newRootCmd(&app{})
	root.SetArgs([]string{"cleanup", "--dir", t.TempDir(), "--bpm", "0"})
	if err := root.Execute(); err == nil {
		t.Error("expected error for non-positive --bpm")
	}
}

func TestSetupMalformedConfigFallsBack(t *testing.T) {
	defer paths.SetExecutableDir(t.TempDir())()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("bpm: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}

	a := &app{}
	root := newRootCmd(a)
	root.SetArgs([]string{"cleanup", "--dir", dir})
	if err := root.Execute(); err != nil {
		t.Fatalf("Execute() returned error: %v", err)
	}
	if a.cfg.BPM != 90 {
		t.Errorf("expected default bpm, got %d", a.cfg.BPM)
	}
}

func TestSubcommands(t *testing.T) {
	root := newRootCmd(&app{})
	want := []string{"cleanup", "config", "export", "pack", "paths", "preview", "wallpaper"}
	for _, name := range want {
		c, _, err := root.Find([]string{name})
		if err != nil || c.Name() != name {
			t.Errorf("missing subcommand %q", name)
		}
	}
}
