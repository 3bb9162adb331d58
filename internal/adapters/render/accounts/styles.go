package accounts

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title  lipgloss.Style
	header lipgloss.Style
	active lipgloss.Style
	name   lipgloss.Style
	marker lipgloss.Style
	avatar lipgloss.Style
	empty  lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:  lipgloss.NewStyle().Bold(true),
		header: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		active: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		name:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		marker: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		avatar: lipgloss.NewStyle().Faint(true),
		empty:  lipgloss.NewStyle().Faint(true),
	}
}
