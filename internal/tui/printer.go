package tui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/x/term"
)

// Printer writes pipeline status lines, styled when attached to a terminal.
type Printer struct {
	w     io.Writer
	color bool
}

// NewPrinter returns a Printer for f, styling output only if f is a terminal.
func NewPrinter(f *os.File) *Printer {
	return &Printer{w: f, color: IsTerminal(f)}
}

// NewPlainPrinter returns a Printer that never styles its output.
func NewPlainPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// IsTerminal reports whether f is an interactive terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(f.Fd())
}

// Styled reports whether output is styled.
func (p *Printer) Styled() bool {
	return p.color
}

// Title prints a heading.
func (p *Printer) Title(text string) {
	if p.color {
		text = TitleStyle.Render(text)
	}
	fmt.Fprintln(p.w, text)
}

// Step prints one step outcome with an optional muted detail.
func (p *Printer) Step(status StepStatus, text, detail string) {
	icon := plainIcon(status)
	if p.color {
		icon = GetStepIcon(status)
		if detail != "" {
			detail = detailStyle.Render(detail)
		}
	}
	if detail != "" {
		fmt.Fprintf(p.w, "  %s %s  %s\n", icon, text, detail)
		return
	}
	fmt.Fprintf(p.w, "  %s %s\n", icon, text)
}

// Field prints an aligned "label: value" line.
func (p *Printer) Field(label, value string) {
	label = fmt.Sprintf("%-12s", label+":")
	if p.color {
		label = labelStyle.Render(label)
	}
	fmt.Fprintf(p.w, "  %s %s\n", label, value)
}

// Panel prints text inside a bordered box, or as-is without a terminal.
func (p *Printer) Panel(text string) {
	if p.color {
		text = panelStyle.Render(text)
	}
	fmt.Fprintln(p.w, text)
}
