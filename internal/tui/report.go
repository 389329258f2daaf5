package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
)

const defaultReportWidth = 100

// ReportRenderer turns the markdown diagnostics of `birthday paths` into
// terminal output in the birthday palette.
type ReportRenderer struct {
	width int
	term  *glamour.TermRenderer
}

// NewReportRenderer builds a renderer that wraps at width columns.
// A non-positive width uses 100.
func NewReportRenderer(width int) (*ReportRenderer, error) {
	if width <= 0 {
		width = defaultReportWidth
	}
	term, err := glamour.NewTermRenderer(
		glamour.WithStyles(reportStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create report renderer: %w", err)
	}
	return &ReportRenderer{width: width, term: term}, nil
}

// Width returns the wrap width.
func (r *ReportRenderer) Width() int { return r.width }

// Render renders one report, trimmed to end in a single newline.
func (r *ReportRenderer) Render(report string) (string, error) {
	out, err := r.term.Render(report)
	if err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return strings.TrimSpace(out) + "\n", nil
}

// reportStyle is glamour's dark theme, flush left, with headings in pink and
// bold text (the selected candidates) in gold.
func reportStyle() ansi.StyleConfig {
	s := styles.DarkStyleConfig

	margin := uint(0)
	s.Document.Margin = &margin
	s.Document.BlockPrefix = ""
	s.Document.BlockSuffix = ""

	pink, gold := string(PinkColor), string(GoldColor)
	s.Heading.Color = &pink
	s.H1.Color = &pink
	s.H1.BackgroundColor = nil
	s.Strong.Color = &gold
	return s
}
