package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/minicodemonkey/birthday/internal/audio"
	"github.com/minicodemonkey/birthday/internal/config"
	"github.com/minicodemonkey/birthday/internal/melody"
	"github.com/minicodemonkey/birthday/internal/tui"
)

// DefaultExportName is the file written by export when no output is given.
const DefaultExportName = "happy_birthday.wav"

// ExportOptions contains configuration for the export command.
type ExportOptions struct {
	BaseDir string         // Directory holding config (default: current directory)
	Config  *config.Config // Effective config (default: loaded from BaseDir)
	Output  string         // WAV path, relative to BaseDir (default: happy_birthday.wav)
	Printer *tui.Printer
}

// RunExport synthesizes the song and writes it as a 16-bit mono WAV file.
func RunExport(opts ExportOptions) error {
	baseDir, err := resolveBaseDir(opts.BaseDir)
	if err != nil {
		return err
	}
	cfg := resolveConfig(opts.Config, baseDir)
	out := resolvePrinter(opts.Printer)

	path := opts.Output
	if path == "" {
		path = DefaultExportName
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}

	wave, err := melody.Synthesize(melody.HappyBirthday, cfg.BPM)
	if err != nil {
		return fmt.Errorf("failed to synthesize song: %w", err)
	}
	if err := audio.WriteWAV(path, wave); err != nil {
		return err
	}

	out.Step(tui.StepDone, "song exported", fmt.Sprintf("%s (%s at %d bpm)", path, wave.Duration(), cfg.BPM))
	return nil
}
