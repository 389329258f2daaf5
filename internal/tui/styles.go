// Package tui provides the terminal output for birthday: styled status
// lines, the confetti celebration shown during playback and markdown reports.
package tui

import "github.com/charmbracelet/lipgloss"

// Color palette - consistent colors used throughout the output
var (
	PrimaryColor = lipgloss.Color("#00D7FF") // Cyan - headings, running states
	SuccessColor = lipgloss.Color("#5AF78E") // Green - completed steps
	WarningColor = lipgloss.Color("#F3F99D") // Yellow - skipped steps, fallbacks
	ErrorColor   = lipgloss.Color("#FF5C57") // Red - failures
	MutedColor   = lipgloss.Color("#6C7086") // Gray - details
	BorderColor  = lipgloss.Color("#45475A") // Dark gray - borders

	TextColor       = lipgloss.Color("#CDD6F4")
	TextBrightColor = lipgloss.Color("#FFFFFF")

	PinkColor = lipgloss.Color("#FF6AC1")
	GoldColor = lipgloss.Color("#FFD700")
)

// Panel styles
var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 2)

	// Celebration message panel
	messagePanelStyle = lipgloss.NewStyle().
				Border(lipgloss.DoubleBorder()).
				BorderForeground(PinkColor).
				Foreground(TextBrightColor).
				Bold(true).
				Padding(1, 4)
)

// Title and label styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)

	labelStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(MutedColor)
)

// Progress bar styles
var (
	progressBarFillStyle  = lipgloss.NewStyle().Foreground(SuccessColor)
	progressBarEmptyStyle = lipgloss.NewStyle().Foreground(MutedColor)
)

// Step status styles
var (
	stepDoneStyle    = lipgloss.NewStyle().Foreground(SuccessColor)
	stepSkippedStyle = lipgloss.NewStyle().Foreground(WarningColor)
	stepFailedStyle  = lipgloss.NewStyle().Foreground(ErrorColor)
	stepInfoStyle    = lipgloss.NewStyle().Foreground(PrimaryColor)
	detailStyle      = lipgloss.NewStyle().Foreground(MutedColor)
)

// Status icons
const (
	IconDone    = "✓"
	IconSkipped = "○"
	IconFailed  = "✗"
	IconInfo    = "♪"
)

// StepStatus is the outcome of one pipeline step.
type StepStatus int

const (
	StepDone StepStatus = iota
	StepSkipped
	StepFailed
	StepInfo
)

// GetStepIcon returns the styled icon for a step outcome.
func GetStepIcon(status StepStatus) string {
	switch status {
	case StepDone:
		return stepDoneStyle.Render(IconDone)
	case StepSkipped:
		return stepSkippedStyle.Render(IconSkipped)
	case StepFailed:
		return stepFailedStyle.Render(IconFailed)
	default:
		return stepInfoStyle.Render(IconInfo)
	}
}

// plainIcon is the unstyled icon used when output is not a terminal.
func plainIcon(status StepStatus) string {
	switch status {
	case StepDone:
		return IconDone
	case StepSkipped:
		return IconSkipped
	case StepFailed:
		return IconFailed
	default:
		return IconInfo
	}
}
