package tui

import "github.com/charmbracelet/lipgloss"

var (
	appStyle        = lipgloss.NewStyle().Padding(1, 2)
	titleStyle      = lipgloss.NewStyle().Bold(true)
	helpStyle       = lipgloss.NewStyle().Faint(true)
	errorStyle      = lipgloss.NewStyle().Bold(true)
	overlayBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)

	toastSuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	toastErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	toastInfoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	toastWarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)
