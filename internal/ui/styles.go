package ui

import "github.com/charmbracelet/lipgloss"

// Styles contains all the style definitions for the UI
type Styles struct {
	Title       lipgloss.Style
	Slot        lipgloss.Style
	Header      lipgloss.Style
	Dim         lipgloss.Style
	Status      lipgloss.Style
	StatusError lipgloss.Style
	MapPanel    lipgloss.Style
	MapFocused  lipgloss.Style
	MapNotice   lipgloss.Style
	Scroll      lipgloss.Style
	Help        lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")),
		Slot:        lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Header:      lipgloss.NewStyle().MarginBottom(1),
		Dim:         lipgloss.NewStyle().Faint(true),
		Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		MapPanel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")),
		MapFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("214")),
		MapNotice: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Scroll:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Help:      lipgloss.NewStyle().Faint(true),
	}
}
