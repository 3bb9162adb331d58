package code

import "github.com/charmbracelet/lipgloss"

type styles struct {
	code    lipgloss.Style
	account lipgloss.Style
	meta    lipgloss.Style
	warning lipgloss.Style
	help    lipgloss.Style
}

func newStyles() styles {
	return styles{
		code: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2),
		account: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		meta:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		warning: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		help:    lipgloss.NewStyle().Faint(true),
	}
}
