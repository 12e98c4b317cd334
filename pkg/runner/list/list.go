// Package list provides the runner logic for printing tasks under a filter.
package list

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/things/pkg/printers"
	"tableflip.dev/things/pkg/task"
	"tableflip.dev/things/pkg/tracker"
)

// List prints the tasks matching Filter, split into open and completed
// sections.
type List struct {
	Filter task.Filter
	ShowID bool
	// JSON prints the matching tasks as a JSON array instead.
	JSON bool

	Store *tracker.Store
	Out   io.Writer
}

func (n *List) Do(ctx context.Context) error {
	if n.Store == nil {
		return errors.New("can not list, no store")
	}
	if n.Filter == "" {
		n.Filter = task.All
	}
	n.Store.SetFilter(n.Filter)

	filtered := n.Store.Filtered()
	if n.JSON {
		b, err := json.Marshal(filtered)
		if err != nil {
			return err
		}
		out := n.Out
		if out == nil {
			out = color.Output
		}
		_, _ = fmt.Fprintln(out, string(b))
		return nil
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	pp.TitleWithCount(n.Filter.Title(), len(filtered))
	pp.NewLine()

	if n.Filter == task.ArchivedOnly {
		pp.Tasks(filtered...)
		return nil
	}
	for _, section := range []task.Filter{task.TodosOnly, task.CompletedOnly} {
		tasks := tracker.FilterTasks(filtered, section)
		if len(tasks) == 0 && n.Filter != task.All {
			continue
		}
		pp.Title(sectionTitle(section))
		pp.Tasks(tasks...)
	}
	return nil
}

func sectionTitle(f task.Filter) string {
	if f == task.CompletedOnly {
		return "Completed"
	}
	return "Todo"
}
