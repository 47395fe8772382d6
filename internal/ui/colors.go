package ui

import "github.com/charmbracelet/lipgloss"

const (
	colorBrand   = lipgloss.Color("#FF0033")
	colorText    = lipgloss.Color("#FFFFFF")
	colorOK      = lipgloss.Color("#2BA640")
	colorError   = lipgloss.Color("#CC0000")
	colorWarning = lipgloss.Color("#FFA500")
	colorMuted   = lipgloss.Color("#717171")
)

// palette holds the named [lipgloss.Style] values shared by the views.
type palette struct {
	title   lipgloss.Style
	spinner lipgloss.Style
	ok      lipgloss.Style
	err     lipgloss.Style
	warn    lipgloss.Style
	count   lipgloss.Style
	help    lipgloss.Style
}

var styles = palette{
	title:   fg(colorText).Background(colorBrand).Bold(true).Padding(0, 1).MarginBottom(1),
	spinner: fg(colorBrand),
	ok:      fg(colorOK).Bold(true),
	err:     fg(colorError).Bold(true),
	warn:    fg(colorWarning),
	count:   fg(colorMuted),
	help:    fg(colorMuted).Italic(true),
}

func fg(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}
