package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	defaultRow lipgloss.Style
	errorLabel lipgloss.Style
	success    lipgloss.Style
	warning    lipgloss.Style
	title      lipgloss.Style
	muted      lipgloss.Style
}

// newStyles binds styles to w so color is only emitted on a terminal.
func newStyles(w io.Writer, color bool) styles {
	r := lipgloss.NewRenderer(w)
	if !color {
		plain := r.NewStyle()
		return styles{plain, plain, plain, plain, plain, plain}
	}
	return styles{
		defaultRow: r.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
		errorLabel: r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		success:    r.NewStyle().Foreground(lipgloss.Color("10")),
		warning:    r.NewStyle().Underline(true).Foreground(lipgloss.Color("9")),
		title:      r.NewStyle().Bold(true),
		muted:      r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}
