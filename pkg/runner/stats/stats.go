// Package stats provides the runner logic for printing task counts.
package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/things/pkg/printers"
	"tableflip.dev/things/pkg/tracker"
)

type Stats struct {
	JSON bool

	Store *tracker.Store
	Out   io.Writer
}

func (n *Stats) Do(ctx context.Context) error {
	if n.Store == nil {
		return errors.New("can not count, no store")
	}
	sum := n.Store.Summary()

	if n.JSON {
		b, err := json.Marshal(sum)
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

	pp := printers.PrettyPrint{Out: n.Out}
	pp.Summary(sum)
	return nil
}
