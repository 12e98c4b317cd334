package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"

	"tableflip.dev/things/pkg/task"
)

// Theme centralizes Lip Gloss styles for the task UI.
type Theme struct {
	Dark bool

	Title    lipgloss.Style
	Date     lipgloss.Style
	Section  lipgloss.Style
	Cursor   lipgloss.Style
	Todo     lipgloss.Style
	Done     lipgloss.Style
	Archived lipgloss.Style
	Faint    lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
	Panel    lipgloss.Style
	Overlay  lipgloss.Style

	Personal lipgloss.Style
	Business lipgloss.Style

	barFrom string
	barTo   string
	barRest string
}

// DetectTheme picks the palette matching the terminal background.
func DetectTheme() Theme {
	return DefaultTheme(termenv.HasDarkBackground())
}

// DefaultTheme returns the built-in dark or light palette.
func DefaultTheme(dark bool) Theme {
	fg, faint, accent := "252", "243", "212"
	from, to, rest := "#f25d94", "#5fd7a7", "#3a3a3a"
	if !dark {
		fg, faint, accent = "235", "246", "163"
		from, to, rest = "#d7005f", "#008f5a", "#d0d0d0"
	}

	return Theme{
		Dark:     dark,
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(accent)),
		Date:     lipgloss.NewStyle().Foreground(lipgloss.Color(faint)),
		Section:  lipgloss.NewStyle().Bold(true).Underline(true),
		Cursor:   lipgloss.NewStyle().Foreground(lipgloss.Color(accent)).Bold(true),
		Todo:     lipgloss.NewStyle().Foreground(lipgloss.Color(fg)),
		Done:     lipgloss.NewStyle().Foreground(lipgloss.Color(faint)).Strikethrough(true),
		Archived: lipgloss.NewStyle().Foreground(lipgloss.Color(faint)).Italic(true),
		Faint:    lipgloss.NewStyle().Foreground(lipgloss.Color(faint)),
		Status:   lipgloss.NewStyle().Foreground(lipgloss.Color(faint)),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(faint)).
			Padding(0, 1),
		Overlay: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(accent)).
			Padding(1, 2),
		Personal: lipgloss.NewStyle().Foreground(lipgloss.Color("213")),
		Business: lipgloss.NewStyle().Foreground(lipgloss.Color("80")),
		barFrom:  from,
		barTo:    to,
		barRest:  rest,
	}
}

// Category styles a category marker.
func (t Theme) Category(c task.Category) lipgloss.Style {
	if c == task.Business {
		return t.Business
	}
	return t.Personal
}

// Bar renders percent as a width-cell bar whose filled part fades from the
// start to the end colour.
func (t Theme) Bar(percent, width int) string {
	if width <= 0 {
		return ""
	}
	percent = min(max(percent, 0), 100)
	filled := percent * width / 100

	from, err := colorful.Hex(t.barFrom)
	if err != nil {
		from = colorful.Color{R: 1, G: 0.4, B: 0.6}
	}
	to, err := colorful.Hex(t.barTo)
	if err != nil {
		to = colorful.Color{R: 0.4, G: 0.8, B: 0.6}
	}

	var b strings.Builder
	for i := 0; i < filled; i++ {
		step := 0.0
		if width > 1 {
			step = float64(i) / float64(width-1)
		}
		c := from.BlendLab(to, step).Clamped()
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render("█"))
	}
	rest := lipgloss.NewStyle().Foreground(lipgloss.Color(t.barRest))
	b.WriteString(rest.Render(strings.Repeat("░", width-filled)))
	return b.String()
}
