package dashboard

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title     lipgloss.Style
	header    lipgloss.Style
	statValue lipgloss.Style
	statLabel lipgloss.Style
	money     lipgloss.Style
	detail    lipgloss.Style
	faint     lipgloss.Style
	empty     lipgloss.Style
	pending   lipgloss.Style
	approved  lipgloss.Style
	cancelled lipgloss.Style
	section   lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:     lipgloss.NewStyle().Bold(true),
		header:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		statValue: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		statLabel: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		money:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		detail:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		faint:     lipgloss.NewStyle().Faint(true),
		empty:     lipgloss.NewStyle().Faint(true),
		pending:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		approved:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		cancelled: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		section:   lipgloss.NewStyle().MarginTop(1),
	}
}
