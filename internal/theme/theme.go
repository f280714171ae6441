package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Header        *lipgloss.Style
	Item          *lipgloss.Style
	SelectedItem  *lipgloss.Style
	Indicator     *lipgloss.Style
	Yanked        *lipgloss.Style
	Installed     *lipgloss.Style
	DetailLabel   *lipgloss.Style
	DetailValue   *lipgloss.Style
	Link          *lipgloss.Style
	Progress      *lipgloss.Style
	Error         *lipgloss.Style
	Info          *lipgloss.Style
	ModeNormal    *lipgloss.Style
	ModeCommand   *lipgloss.Style
	CommandPrompt *lipgloss.Style
	Footer        *lipgloss.Style
}

var defaultStyles = Styles{
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Item: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	SelectedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	Indicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
	),
	Yanked: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Strikethrough(true),
	),
	Installed: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("40")),
	),
	DetailLabel: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	DetailValue: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	),
	Link: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Underline(true),
	),
	Progress: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Italic(true),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	ModeNormal: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33")).Bold(true),
	),
	ModeCommand: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("34")).Bold(true),
	),
	CommandPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
