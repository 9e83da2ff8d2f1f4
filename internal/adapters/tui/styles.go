package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Palette
var (
	ColorText      = lipgloss.Color("252")
	ColorBorder    = lipgloss.Color("240")
	ColorHighlight = lipgloss.Color("25")
	ColorAccent    = lipgloss.Color("220")
	ColorError     = lipgloss.Color("196")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText)

	HintStyle = lipgloss.NewStyle().
			Foreground(ColorBorder).
			Italic(true)

	AccentStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	// CurrentPageStyle marks the current page in the pagination window.
	CurrentPageStyle = lipgloss.NewStyle().
				Foreground(ColorText).
				Background(ColorHighlight).
				Bold(true)
)

// ApplyTableStyles sets the header and selection look of t.
func ApplyTableStyles(t *table.Model) {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorBorder).
		BorderBottom(true).
		Bold(true).
		Foreground(ColorText)
	s.Selected = s.Selected.
		Foreground(ColorText).
		Background(ColorHighlight).
		Bold(true)
	t.SetStyles(s)
}

// NewSpinner returns the loading spinner.
func NewSpinner() spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = AccentStyle
	return s
}
