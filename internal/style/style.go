// Package style holds the terminal styles used by CLI output.
package style

import "github.com/charmbracelet/lipgloss"

var (
	// Bold marks headings and summary prefixes.
	Bold = lipgloss.NewStyle().Bold(true)

	// Dim is for secondary detail.
	Dim = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "245", Dark: "241"})

	Success = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	Warning = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	Error   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

// Icons prefixed to per-item status lines.
const (
	IconOK   = "✓"
	IconWarn = "⚠"
	IconFail = "✗"
)

// OK renders a success line prefix.
func OK() string { return Success.Render(IconOK) }

// Warn renders a warning line prefix.
func Warn() string { return Warning.Render(IconWarn) }

// Fail renders a failure line prefix.
func Fail() string { return Error.Render(IconFail) }
