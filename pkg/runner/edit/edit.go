// Package edit provides the runner logic for changing a task's title or
// category.
package edit

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/things/pkg/printers"
	"tableflip.dev/things/pkg/task"
	"tableflip.dev/things/pkg/tracker"
)

type Edit struct {
	ID       string
	Title    *string
	Category *task.Category

	Store *tracker.Store
	Out   io.Writer
}

func (n *Edit) Do(ctx context.Context) error {
	if n.Store == nil {
		return errors.New("can not edit, no store")
	}
	if _, ok := n.Store.Get(n.ID); !ok {
		return fmt.Errorf("no task with id %q", n.ID)
	}
	if n.Title == nil && n.Category == nil {
		return errors.New("nothing to change, use --title or --category")
	}

	if n.Title != nil {
		if _, ok := task.NormalizeTitle(*n.Title); !ok {
			return errors.New("task title can not be empty")
		}
	}
	if n.Category != nil && !n.Category.Valid() {
		return fmt.Errorf("unknown category %q", *n.Category)
	}

	changed := n.Store.Update(n.ID, tracker.Patch{Title: n.Title, Category: n.Category})
	if err := n.Store.Err(); err != nil {
		return err
	}

	t, _ := n.Store.Get(n.ID)
	pp := printers.PrettyPrint{ShowID: true, Out: n.Out}
	if changed {
		pp.Title("Updated")
	} else {
		pp.Title("Unchanged")
	}
	pp.Task(t)
	return nil
}
