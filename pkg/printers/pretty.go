// Package printers renders tasks and statistics for the command line.
package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/things/pkg/glyph"
	"tableflip.dev/things/pkg/task"
	"tableflip.dev/things/pkg/tracker"
)

type PrettyPrint struct {
	ShowID bool
	// Out defaults to color.Output.
	Out io.Writer
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " task")
	default:
		_, _ = c.Fprintln(pp.out(), " tasks")
	}
}

// Tasks prints one row per task: status, category, title and, with ShowID,
// the id.
func (pp *PrettyPrint) Tasks(tasks ...task.Task) {
	if len(tasks) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)

	tbl := uitable.New()
	tbl.Separator = " "
	for _, t := range tasks {
		row := []interface{}{}
		if pp.ShowID {
			row = append(row, y.Sprint(t.ID))
		}
		row = append(row,
			categoryColor(t.Category).Sprint(glyph.Category(t.Category).Symbol),
			glyph.Status(t.Status).Symbol,
			pp.titleFor(t),
		)
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

func (pp *PrettyPrint) titleFor(t task.Task) string {
	switch t.Status {
	case task.Completed:
		return color.New(color.Faint, color.CrossedOut).Sprint(t.Title)
	case task.Archived:
		return color.New(color.Faint, color.Italic).Sprint(t.Title)
	}
	return t.Title
}

// Task prints every field of a single task.
func (pp *PrettyPrint) Task(t task.Task) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("ID"), t.ID)
	tbl.AddRow(bold.Sprint("Title"), t.Title)
	tbl.AddRow(bold.Sprint("Category"), categoryColor(t.Category).Sprint(t.Category))
	tbl.AddRow(bold.Sprint("Status"), fmt.Sprintf("%s %s", glyph.Status(t.Status).Symbol, t.Status))
	tbl.AddRow(bold.Sprint("Created"), t.CreatedAt.Display())
	if t.CompletedAt != nil {
		tbl.AddRow(bold.Sprint("Completed"), t.CompletedAt.Display())
	}
	if t.ArchivedAt != nil {
		tbl.AddRow(bold.Sprint("Archived"), t.ArchivedAt.Display())
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Summary prints category counts and completion figures.
func (pp *PrettyPrint) Summary(sum tracker.Summary) {
	bold := color.New(color.Bold)

	pp.Title("Categories")
	cats := uitable.New()
	cats.Separator = "  "
	for _, c := range task.Categories() {
		cats.AddRow(categoryColor(c).Sprint(glyph.Category(c).Symbol), strings.Title(string(c)), sum.Stats.Count(c))
	}
	_, _ = fmt.Fprintln(pp.out(), cats)
	pp.NewLine()

	pp.Title("Completion")
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Total Tasks:"), sum.Total)
	for _, f := range task.Filters() {
		tbl.AddRow(bold.Sprint(f.Title()+":"), sum.Count(f))
	}
	tbl.AddRow(bold.Sprint("Completion Rate:"), fmt.Sprintf("%d%%", sum.CompletionRate))
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.out(), tbl)
	_, _ = fmt.Fprintln(pp.out(), ProgressBar(sum.CompletionRate, 30))
	pp.NewLine()
}

// Report prints completed tasks grouped by category, then the count of tasks
// added over the same window.
func (pp *PrettyPrint) Report(window string, r tracker.Report) {
	pp.TitleWithCount("Completed in the last "+window, r.Total)
	for _, sec := range r.Completed {
		_, _ = categoryColor(sec.Category).Fprintf(pp.out(), "%s %s\n", glyph.Category(sec.Category).Symbol, strings.Title(string(sec.Category)))
		pp.Tasks(sec.Tasks...)
	}
	if r.Total == 0 {
		pp.NewLine()
	}
	_, _ = color.New(color.Faint).Fprintf(pp.out(), "Added: %d, since %s\n", r.Added, r.Since.Local().Format("Mon Jan 2 15:04"))
}

// ProgressBar draws a fixed-width bar for a 0-100 percentage.
func ProgressBar(percent, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := percent * width / 100
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

func categoryColor(c task.Category) *color.Color {
	switch c {
	case task.Personal:
		return color.New(color.FgHiMagenta)
	case task.Business:
		return color.New(color.FgHiCyan)
	}
	return color.New(color.Faint)
}
