// Package picker asks the user to choose a task when a command was run
// without an id.
package picker

import (
	"errors"
	"io"
	"strings"

	"github.com/manifoldco/promptui"

	"tableflip.dev/things/pkg/glyph"
	"tableflip.dev/things/pkg/task"
)

// ErrNothingToPick is returned when there are no candidate tasks.
var ErrNothingToPick = errors.New("no tasks to choose from")

// Item is one selectable row.
type Item struct {
	ID       string
	Title    string
	Status   string
	Category string
}

// Items projects tasks into selectable rows.
func Items(tasks []task.Task) []Item {
	items := make([]Item, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, Item{
			ID:       t.ID,
			Title:    t.Title,
			Status:   glyph.Status(t.Status).Symbol,
			Category: string(t.Category),
		})
	}
	return items
}

// Searcher matches input against the title and id, ignoring case and spaces.
func Searcher(items []Item) func(input string, index int) bool {
	return func(input string, index int) bool {
		it := items[index]
		name := squash(it.Title + it.ID)
		return strings.Contains(name, squash(input))
	}
}

func squash(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "")
}

// Task runs a select prompt over tasks and returns the chosen id.
func Task(label string, tasks []task.Task, in io.Reader, out io.Writer) (string, error) {
	if len(tasks) == 0 {
		return "", ErrNothingToPick
	}
	items := Items(tasks)

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ .Status }} {{ .Title | bold }} {{ .Category | cyan }}",
		Inactive: "   {{ .Status }} {{ .Title }} {{ .Category | faint }}",
		Selected: "{{ .Status }} {{ .Title | bold }}",
		Details: `
--------- Task ----------
id: {{ .ID }}
`,
	}

	prompt := promptui.Select{
		HideHelp:  true,
		Label:     label,
		Items:     items,
		Templates: templates,
		Size:      10,
		Searcher:  Searcher(items),
		Stdin:     io.NopCloser(in),
		Stdout:    nopWriteCloser{out},
	}

	i, _, err := prompt.Run()
	if err != nil {
		return "", err
	}
	return items[i].ID, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
