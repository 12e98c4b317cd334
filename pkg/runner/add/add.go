// Package add provides the runner logic for creating tasks.
package add

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/things/pkg/printers"
	"tableflip.dev/things/pkg/task"
	"tableflip.dev/things/pkg/tracker"
)

// Add creates a task and prints the open tasks afterwards.
type Add struct {
	Title    string
	Category task.Category
	ShowID   bool

	Store *tracker.Store
	Out   io.Writer
}

// Do executes the add operation.
func (n *Add) Do(ctx context.Context) error {
	if n.Store == nil {
		return errors.New("can not add, no store")
	}
	if n.Category == "" {
		n.Category = task.Personal
	}

	if _, ok := n.Store.Add(n.Title, n.Category); !ok {
		return errors.New("task title can not be empty")
	}
	if err := n.Store.Err(); err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	todos := tracker.FilterTasks(n.Store.Tasks(), task.TodosOnly)
	pp.TitleWithCount(task.TodosOnly.Title(), len(todos))
	pp.Tasks(todos...)
	return nil
}
