// Package info reports where tasks are stored.
package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/things/pkg/store"
	"tableflip.dev/things/pkg/tracker"
)

type Info struct {
	Config store.Config
	Store  *tracker.Store
	Out    io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if override := os.Getenv("THINGS_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(out, "THINGS_CONFIG_PATH found on env, using", override)
	} else {
		_, _ = fmt.Fprintln(out, "THINGS_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	_, _ = fmt.Fprintln(out, "Config.path:", n.Config.BasePath())
	_, _ = fmt.Fprintln(out, "Config.slot:", n.Config.Slot())

	if n.Store == nil {
		return fmt.Errorf("failed to open the task store")
	}

	sum := n.Store.Summary()
	_, _ = fmt.Fprintf(out, "Tasks: %d (%d archived)\n", sum.Total, sum.Archived)
	return nil
}
