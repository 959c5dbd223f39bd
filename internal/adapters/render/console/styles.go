package console

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title   lipgloss.Style
	header  lipgloss.Style
	notice  lipgloss.Style
	warning lipgloss.Style
	err     lipgloss.Style
	errKind lipgloss.Style
	result  lipgloss.Style
	lineNo  lipgloss.Style
	current lipgloss.Style
	command lipgloss.Style
	usage   lipgloss.Style
	name    lipgloss.Style
	url     lipgloss.Style
	empty   lipgloss.Style
	spinner lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title:   r.NewStyle().Bold(true),
		header:  r.NewStyle().Foreground(lipgloss.Color("241")),
		notice:  r.NewStyle().Foreground(lipgloss.Color("245")),
		warning: r.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		err:     r.NewStyle().Foreground(lipgloss.Color("203")),
		errKind: r.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		result:  r.NewStyle().Foreground(lipgloss.Color("252")),
		lineNo:  r.NewStyle().Foreground(lipgloss.Color("238")),
		current: r.NewStyle().Bold(true).Foreground(lipgloss.Color("159")),
		command: r.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		usage:   r.NewStyle().Foreground(lipgloss.Color("250")),
		name:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		url:     r.NewStyle().Foreground(lipgloss.Color("252")),
		empty:   r.NewStyle().Faint(true),
		spinner: r.NewStyle().Foreground(lipgloss.Color("69")),
	}
}
