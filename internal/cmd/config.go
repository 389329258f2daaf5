package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/minicodemonkey/birthday/embed"
	"github.com/minicodemonkey/birthday/internal/config"
	"github.com/minicodemonkey/birthday/internal/paths"
	"github.com/minicodemonkey/birthday/internal/tui"
	"gopkg.in/yaml.v3"
)

// ConfigOptions contains configuration for the config command.
type ConfigOptions struct {
	BaseDir string
	Config  *config.Config
	Init    bool      // write the commented default config.yaml instead of printing
	Force   bool      // with Init, overwrite an existing config.yaml
	Out     io.Writer // default: stdout
	Color   *bool     // syntax highlight (default: when stdout is a terminal)
}

// RunConfig prints the effective config as YAML, or writes the default
// config file with Init.
func RunConfig(opts ConfigOptions) error {
	baseDir, err := resolveBaseDir(opts.BaseDir)
	if err != nil {
		return err
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	if opts.Init {
		return initConfig(baseDir, opts.Force, opts.Out)
	}

	cfg := resolveConfig(opts.Config, baseDir)
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	source := cfg.Source
	if source == "" {
		source = "built-in defaults"
	}
	text := fmt.Sprintf("# source: %s\n%s", source, data)

	color := tui.IsTerminal(os.Stdout)
	if opts.Color != nil {
		color = *opts.Color
	}
	if !color {
		_, err := io.WriteString(opts.Out, text)
		return err
	}
	if err := quick.Highlight(opts.Out, text, "yaml", "terminal256", "monokai"); err != nil {
		return fmt.Errorf("failed to highlight config: %w", err)
	}
	return nil
}

func initConfig(baseDir string, force bool, out io.Writer) error {
	path := paths.ConfigPath(baseDir)
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
	}
	if err := os.WriteFile(path, []byte(embed.GetDefaultConfig()), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	fmt.Fprintf(out, "Wrote %s\n", path)
	return nil
}
