package ui

import (
	"github.com/charmbracelet/lipgloss"
)

const (
	TrumpIcon  = "👑"
	WinnerIcon = "🏆"
	BackIcon   = "🂠"
)

var (
	docStyle     = lipgloss.NewStyle().Margin(1, 2)
	redStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#CD0000")).Background(lipgloss.Color("#FFFFFF")).Bold(true)
	blackStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("#FFFFFF")).Bold(true)
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("25")).Bold(true)
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true).Render
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	promptStyle  = lipgloss.NewStyle().MarginTop(1)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	currentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
)
