package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/driftline-labs/lakesearch/internal/core/domain"
)

// Styles for human-readable command output. lipgloss degrades to plain
// text when stdout is not a terminal, so these are safe to use
// unconditionally.
var (
	styleName   = lipgloss.NewStyle().Bold(true)
	styleMuted  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")) // Medium gray
	styleError  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8")) // Red
	styleOK     = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1")) // Green
	styleWarn   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF")) // Yellow
	styleFile   = lipgloss.NewStyle().Foreground(lipgloss.Color("#06B6D4")) // Cyan
	stylePkg    = lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED")) // Purple
	styleHeader = lipgloss.NewStyle().Bold(true).Underline(true)
)

// typeBadge renders a short classification tag for a result.
func typeBadge(t domain.ResultType) string {
	switch t {
	case domain.ResultFile:
		return styleFile.Render("[file]")
	case domain.ResultPackage:
		return stylePkg.Render("[package]")
	case domain.ResultPackageEntry:
		return stylePkg.Render("[entry]")
	}
	return styleMuted.Render("[?]")
}

// statusBadge renders a backend status with a matching colour.
func statusBadge(s domain.BackendStatus) string {
	switch s {
	case domain.StatusAvailable:
		return styleOK.Render(string(s))
	case domain.StatusUnavailable, domain.StatusNotRegistered:
		return styleMuted.Render(string(s))
	case domain.StatusTimeout:
		return styleWarn.Render(string(s))
	case domain.StatusError:
		return styleError.Render(string(s))
	}
	return string(s)
}
