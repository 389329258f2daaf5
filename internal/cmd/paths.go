package cmd

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/charmbracelet/x/term"
	"github.com/minicodemonkey/birthday/internal/config"
	"github.com/minicodemonkey/birthday/internal/logger"
	"github.com/minicodemonkey/birthday/internal/paths"
	"github.com/minicodemonkey/birthday/internal/tui"
	"github.com/minicodemonkey/birthday/internal/wallpaper"
)

// PathsOptions contains configuration for the paths command.
type PathsOptions struct {
	BaseDir string
	Config  *config.Config
	Out     io.Writer // default: stdout
	Render  *bool     // render markdown for the terminal (default: when stdout is a terminal)
}

// RunPaths prints every location birthday probes and which one it would use.
func RunPaths(opts PathsOptions) error {
	baseDir, err := resolveBaseDir(opts.BaseDir)
	if err != nil {
		return err
	}
	cfg := resolveConfig(opts.Config, baseDir)
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	report := PathsReport(cfg, baseDir)

	render := tui.IsTerminal(os.Stdout)
	if opts.Render != nil {
		render = *opts.Render
	}
	if render {
		report = renderReport(report, terminalWidth())
	}
	_, err = io.WriteString(opts.Out, report)
	return err
}

// renderReport styles the report for the terminal, keeping the plain
// markdown when rendering fails.
func renderReport(report string, width int) string {
	r, err := tui.NewReportRenderer(width)
	if err == nil {
		var out string
		if out, err = r.Render(report); err == nil {
			return out
		}
	}
	logger.Warn("printing unstyled paths report", logger.Err(err))
	return report
}

func terminalWidth() int {
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil {
		return w
	}
	return 0
}

// PathsReport builds the markdown path report.
func PathsReport(cfg *config.Config, baseDir string) string {
	var b strings.Builder

	b.WriteString("# birthday paths\n\n")
	fmt.Fprintf(&b, "- **Working directory:** `%s`\n", baseDir)
	fmt.Fprintf(&b, "- **Executable directory:** `%s`\n", orNone(paths.ExecutableDir()))
	fmt.Fprintf(&b, "- **Platform:** %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(&b, "- **Output directory:** `%s`\n\n", outputDir(cfg, baseDir))

	writeCandidates(&b, "Config", paths.ConfigCandidates(baseDir))
	writeCandidates(&b, "Environment", []string{paths.EnvPath(baseDir)})
	writeCandidates(&b, "Background", paths.BackgroundCandidates(cfg.Background, baseDir))

	fonts := cfg.FontPaths
	if len(fonts) == 0 {
		fonts = wallpaper.DefaultFontPaths(runtime.GOOS)
	}
	writeCandidates(&b, "Fonts", fonts)

	face, source := wallpaper.LoadFace(fonts, wallpaper.FontSize)
	face.Close()
	fmt.Fprintf(&b, "Font in use: `%s`\n", source)

	return b.String()
}

// writeCandidates writes a table of candidates, marking the first existing one.
func writeCandidates(b *strings.Builder, title string, candidates []string) {
	selected, _ := paths.FirstExisting(candidates)

	fmt.Fprintf(b, "## %s\n\n| # | Path | Status |\n|---|---|---|\n", title)
	for i, c := range candidates {
		status := "missing"
		if _, err := os.Stat(c); err == nil {
			status = "found"
		}
		if c == selected {
			status = "**selected**"
		}
		fmt.Fprintf(b, "| %d | `%s` | %s |\n", i+1, c, status)
	}
	b.WriteString("\n")
}

func orNone(s string) string {
	if s == "" {
		return "(unknown)"
	}
	return s
}
