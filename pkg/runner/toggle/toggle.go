// Package toggle provides the runner logic for flipping a task between todo
// and completed.
package toggle

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/things/pkg/printers"
	"tableflip.dev/things/pkg/task"
	"tableflip.dev/things/pkg/tracker"
)

// Toggle completes an open task or reopens a completed one.
type Toggle struct {
	ID string

	Store *tracker.Store
	Out   io.Writer
}

// Do executes the toggle for the configured task ID.
func (n *Toggle) Do(ctx context.Context) error {
	if n.Store == nil {
		return errors.New("can not toggle, no store")
	}
	t, ok := n.Store.Get(n.ID)
	if !ok {
		return fmt.Errorf("no task with id %q", n.ID)
	}
	if t.Status == task.Archived {
		return fmt.Errorf("task %q is archived", n.ID)
	}

	n.Store.Toggle(n.ID)
	if err := n.Store.Err(); err != nil {
		return err
	}

	t, _ = n.Store.Get(n.ID)
	pp := printers.PrettyPrint{ShowID: true, Out: n.Out}
	pp.Tasks(t)
	return nil
}
