package main

import (
	"context"

	"github.com/minicodemonkey/birthday/internal/cmd"
	"github.com/spf13/cobra"
)

func (a *app) runPlay(ctx context.Context, celebrate bool) error {
	return cmd.RunPlay(ctx, cmd.PlayOptions{
		BaseDir:   a.flags.dir,
		Config:    a.cfg,
		Celebrate: celebrate,
	})
}

func (a *app) exportCmd() *cobra.Command {
	var output string
	c := &cobra.Command{
		Use:   "export [file.wav]",
		Short: "Write the song to a WAV file instead of playing it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			if len(args) == 1 {
				output = args[0]
			}
			return cmd.RunExport(cmd.ExportOptions{BaseDir: a.flags.dir, Config: a.cfg, Output: output})
		},
	}
	return c
}

func (a *app) wallpaperCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "wallpaper",
		Short: "Compose and set the wallpaper without playing the song",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return cmd.RunWallpaper(c.Context(), cmd.WallpaperOptions{BaseDir: a.flags.dir, Config: a.cfg})
		},
	}
}

func (a *app) previewCmd() *cobra.Command {
	var watch bool
	c := &cobra.Command{
		Use:   "preview",
		Short: "Render the wallpaper to birthday_preview.png without setting it",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return cmd.RunPreview(c.Context(), cmd.PreviewOptions{BaseDir: a.flags.dir, Config: a.cfg, Watch: watch})
		},
	}
	c.Flags().BoolVarP(&watch, "watch", "w", false, "re-render when the config or background changes")
	return c
}

func (a *app) cleanupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup",
		Short: "Remove generated wallpapers older than an hour",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return cmd.RunCleanup(cmd.CleanupOptions{BaseDir: a.flags.dir, Config: a.cfg})
		},
	}
}

func (a *app) configCmd() *cobra.Command {
	var initFlag, force bool
	c := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return cmd.RunConfig(cmd.ConfigOptions{BaseDir: a.flags.dir, Config: a.cfg, Init: initFlag, Force: force})
		},
	}
	c.Flags().BoolVar(&initFlag, "init", false, "write a commented default config.yaml")
	c.Flags().BoolVar(&force, "force", false, "with --init, overwrite an existing config.yaml")
	return c
}

func (a *app) pathsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Show where config, background and fonts are looked up",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return cmd.RunPaths(cmd.PathsOptions{BaseDir: a.flags.dir, Config: a.cfg})
		},
	}
}

func (a *app) packCmd() *cobra.Command {
	var opts cmd.PackOptions
	c := &cobra.Command{
		Use:   "pack",
		Short: "Build a release archive (binary or .app bundle, config, background, README)",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			opts.BaseDir = a.flags.dir
			return cmd.RunPack(c.Context(), opts)
		},
	}
	c.Flags().StringVarP(&opts.OutputDir, "output", "o", "", "directory for the archive (default: --dir)")
	c.Flags().StringVar(&opts.GOOS, "os", "", "target OS (default: host)")
	c.Flags().StringVar(&opts.GOARCH, "arch", "", "target architecture (default: host)")
	return c
}
