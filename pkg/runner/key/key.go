// Package key provides CLI helpers to display the task legend.
package key

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/things/pkg/glyph"
)

// Key prints a glyph legend describing statuses and categories.
type Key struct {
	Out io.Writer
}

// Do renders the status and category keys.
func (k *Key) Do(ctx context.Context) error {
	_, _ = fmt.Fprintln(k.out(), "")
	k.Key(ctx, "Status", glyph.StatusGlyphs())
	_, _ = fmt.Fprintln(k.out(), "")
	k.Key(ctx, "Category", glyph.CategoryGlyphs())
	_, _ = fmt.Fprintln(k.out(), "")
	return nil
}

// Key renders one glyph table under the given heading.
func (k *Key) Key(_ context.Context, heading string, glyfs []glyph.Glyph) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint(heading), bold.Sprint("Meaning"))
	for _, v := range glyfs {
		tbl.AddRow(v.Symbol, v.Meaning)
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(k.out(), tbl)
}

func (k *Key) out() io.Writer {
	if k.Out == nil {
		return color.Output
	}
	return k.Out
}
