// Package styles renders the CLI's human-readable output.
package styles

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colors used on the CLI's text output.
type Theme struct {
	FgBase  lipgloss.Color // Values
	FgMuted lipgloss.Color // Labels
	Primary lipgloss.Color // Headings
	Error   lipgloss.Color // Red - errors
	Warning lipgloss.Color // Yellow/orange - warnings
}

var defaultTheme = Theme{
	FgBase:  lipgloss.Color("#c0c0c0"),
	FgMuted: lipgloss.Color("#808080"),
	Primary: lipgloss.Color("#a78bfa"),
	Error:   lipgloss.Color("#ff5555"),
	Warning: lipgloss.Color("#f1a208"),
}

// T returns the default theme.
func T() *Theme {
	return &defaultTheme
}

// Styles contains lipgloss styles bound to one output.
type Styles struct {
	Value   lipgloss.Style
	Label   lipgloss.Style
	Title   lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
}

// For builds styles whose color profile is detected from w, so that
// redirected output stays plain.
func (t *Theme) For(w io.Writer) *Styles {
	r := lipgloss.NewRenderer(w)
	return &Styles{
		Value:   r.NewStyle().Foreground(t.FgBase),
		Label:   r.NewStyle().Foreground(t.FgMuted),
		Title:   r.NewStyle().Foreground(t.Primary).Bold(true),
		Error:   r.NewStyle().Foreground(t.Error).Bold(true),
		Warning: r.NewStyle().Foreground(t.Warning),
	}
}

// Field renders "label: value".
func (s *Styles) Field(label, value string) string {
	return s.Label.Render(label+":") + " " + s.Value.Render(value)
}
