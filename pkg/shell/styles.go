package shell

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorBanner = lipgloss.Color("#06B6D4") // cyan
	colorPrompt = lipgloss.Color("#8B5CF6") // violet
	colorResult = lipgloss.Color("#10B981") // emerald
	colorWarn   = lipgloss.Color("#F59E0B") // amber
	colorError  = lipgloss.Color("#EF4444") // red
	colorMuted  = lipgloss.Color("#94A3B8")
)

type styles struct {
	banner  lipgloss.Style
	version lipgloss.Style
	prompt  lipgloss.Style
	result  lipgloss.Style
	warn    lipgloss.Style
	err     lipgloss.Style
}

// newStyles binds the shell styles to out. The renderer drops colors when
// out is not a terminal.
func newStyles(out io.Writer, color bool) styles {
	r := lipgloss.NewRenderer(out)
	if !color {
		plain := r.NewStyle()
		return styles{plain, plain, plain, plain, plain, plain}
	}
	return styles{
		banner:  r.NewStyle().Foreground(colorBanner).Bold(true),
		version: r.NewStyle().Foreground(colorMuted).Italic(true),
		prompt:  r.NewStyle().Foreground(colorPrompt).Bold(true),
		result:  r.NewStyle().Foreground(colorResult),
		warn:    r.NewStyle().Foreground(colorWarn),
		err:     r.NewStyle().Foreground(colorError).Bold(true),
	}
}
