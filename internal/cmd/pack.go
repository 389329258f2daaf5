package cmd

import (
	"context"

	"github.com/minicodemonkey/birthday/internal/release"
	"github.com/minicodemonkey/birthday/internal/tui"
)

// PackOptions contains configuration for the pack command.
type PackOptions struct {
	BaseDir   string // project directory with config.yaml and the background asset
	OutputDir string // default: BaseDir
	GOOS      string // default: host OS
	GOARCH    string // default: host architecture
	Printer   *tui.Printer

	Build release.BuildFunc // default: release.GoBuild
}

// RunPack builds a release archive for one platform.
func RunPack(ctx context.Context, opts PackOptions) error {
	baseDir, err := resolveBaseDir(opts.BaseDir)
	if err != nil {
		return err
	}
	out := resolvePrinter(opts.Printer)

	archive, err := release.Pack(ctx, release.Options{
		SourceDir: baseDir,
		OutputDir: opts.OutputDir,
		GOOS:      opts.GOOS,
		GOARCH:    opts.GOARCH,
		Build:     opts.Build,
	})
	if err != nil {
		out.Step(tui.StepFailed, "packaging failed", err.Error())
		return err
	}

	out.Step(tui.StepDone, "release packed", archive)
	entries, err := release.Entries(archive)
	if err != nil {
		return err
	}
	for _, e := range entries {
		out.Field("file", e)
	}
	return nil
}
