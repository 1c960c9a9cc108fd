package ui

import "github.com/charmbracelet/lipgloss"

// Common UI styles
var (
	FocusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	BlurredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	TitleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	HelpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// Card styles
var (
	CardStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	RedCardStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// Game elements styles
var (
	PotStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)
	PhaseStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("140")).Bold(true)
	WinnerStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	FoldedPlayerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	CurrentPlayerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)
)
