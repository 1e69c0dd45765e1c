package ui

import "github.com/charmbracelet/lipgloss"

var (
	primary = lipgloss.Color("#7C3AED")
	success = lipgloss.Color("#10B981")
	danger  = lipgloss.Color("#EF4444")
	muted   = lipgloss.Color("#6B7280")
	text    = lipgloss.Color("#F9FAFB")
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(primary).MarginBottom(1)

	buttonStyle = lipgloss.NewStyle().
			Foreground(text).
			Background(primary).
			Padding(0, 1)
	disabledButtonStyle = buttonStyle.Background(muted)

	errorBoxStyle = lipgloss.NewStyle().
			Foreground(danger).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(danger).
			Padding(0, 1)

	taskStyle         = lipgloss.NewStyle().PaddingLeft(2)
	selectedTaskStyle = lipgloss.NewStyle().PaddingLeft(1).Bold(true).Foreground(primary)
	metaStyle         = lipgloss.NewStyle().Foreground(muted).PaddingLeft(2)
	deleteStyle       = lipgloss.NewStyle().Foreground(danger)

	confirmStyle = lipgloss.NewStyle().Bold(true).Foreground(danger)
	successToast = lipgloss.NewStyle().Foreground(text).Background(success).Padding(0, 1)
	errorToast   = lipgloss.NewStyle().Foreground(text).Background(danger).Padding(0, 1)
	helpStyle    = lipgloss.NewStyle().Foreground(muted).MarginTop(1)
)
