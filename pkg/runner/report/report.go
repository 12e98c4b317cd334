// Package report prints the tasks completed within a recent window.
package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/things/pkg/printers"
	"tableflip.dev/things/pkg/timeutil"
	"tableflip.dev/things/pkg/tracker"
)

type Report struct {
	// Window is a compact duration such as 1w or 3d; empty means one week.
	Window string
	JSON   bool

	Store *tracker.Store
	Out   io.Writer
	Now   func() time.Time
}

func (n *Report) Do(ctx context.Context) error {
	if n.Store == nil {
		return errors.New("can not report, no store")
	}
	window, label, err := timeutil.ParseWindow(n.Window)
	if err != nil {
		return err
	}
	now := time.Now
	if n.Now != nil {
		now = n.Now
	}
	until := now()
	r := n.Store.Report(until.Add(-window), until)

	if n.JSON {
		b, err := json.Marshal(r)
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
	pp.Report(label, r)
	return nil
}
