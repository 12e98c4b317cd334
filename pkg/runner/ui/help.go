package ui

import (
	_ "embed"
	"strings"

	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss/v2"
)

//go:embed help.md
var helpMarkdown string

// helpModel renders the Glamour-based help overlay inside a bordered viewport.
type helpModel struct {
	viewport viewport.Model
	width    int
	height   int
	style    string

	frame lipgloss.Style
	err   error
}

func newHelp(width, height int, dark bool) *helpModel {
	vp := viewport.New(
		viewport.WithWidth(max(width, 1)),
		viewport.WithHeight(max(height, 1)),
	)
	vp.MouseWheelEnabled = true
	style := "dark"
	if !dark {
		style = "light"
	}
	h := &helpModel{
		viewport: vp,
		style:    style,
		frame:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()),
	}
	h.SetSize(width, height)
	return h
}

func (h *helpModel) Update(msg tea.Msg) tea.Cmd {
	vp, cmd := h.viewport.Update(msg)
	h.viewport = vp
	return cmd
}

func (h *helpModel) View() string {
	body := h.viewport.View()
	if body == "" && h.err != nil {
		body = "help unavailable: " + h.err.Error()
	}
	return h.frame.Width(h.width).Height(h.height).Render(body)
}

// SetSize re-renders the markdown to fit the new bounds.
func (h *helpModel) SetSize(width, height int) {
	width, height = max(width, 32), max(height, 8)
	if h.width == width && h.height == height {
		return
	}
	h.width, h.height = width, height

	innerWidth := max(width-h.frame.GetHorizontalFrameSize(), 1)
	innerHeight := max(height-h.frame.GetVerticalFrameSize(), 1)
	h.viewport.SetWidth(innerWidth)
	h.viewport.SetHeight(innerHeight)

	h.render(innerWidth)
}

func (h *helpModel) render(wrap int) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(h.style),
		glamour.WithWordWrap(max(wrap, 10)),
	)
	if err != nil {
		h.err = err
		h.viewport.SetContent("help unavailable: " + err.Error())
		return
	}

	content, err := renderer.Render(strings.TrimSpace(helpMarkdown))
	if err != nil {
		h.err = err
		h.viewport.SetContent("help unavailable: " + err.Error())
		return
	}

	h.err = nil
	h.viewport.SetContent(content)
	h.viewport.SetYOffset(0)
}
