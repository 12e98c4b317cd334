// Package archive provides the runner logic for archiving tasks.
package archive

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/things/pkg/printers"
	"tableflip.dev/things/pkg/tracker"
)

// Archive moves a task out of the active lists.
type Archive struct {
	ID string

	Store *tracker.Store
	Out   io.Writer
}

func (n *Archive) Do(ctx context.Context) error {
	if n.Store == nil {
		return errors.New("can not archive, no store")
	}
	if !n.Store.Archive(n.ID) {
		return fmt.Errorf("no task with id %q", n.ID)
	}
	if err := n.Store.Err(); err != nil {
		return err
	}

	t, _ := n.Store.Get(n.ID)
	pp := printers.PrettyPrint{ShowID: true, Out: n.Out}
	pp.Tasks(t)
	return nil
}
