// Package remove provides the runner logic for deleting tasks.
package remove

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"

	"tableflip.dev/things/pkg/tracker"
)

// Remove deletes a task, asking for confirmation unless Yes is set.
type Remove struct {
	ID  string
	Yes bool

	// Confirm asks the user; defaults to a promptui confirmation.
	Confirm func(label string) (bool, error)

	Store *tracker.Store
	Out   io.Writer
}

// Do executes the delete for the configured task ID.
func (n *Remove) Do(ctx context.Context) error {
	if n.Store == nil {
		return errors.New("can not delete, no store")
	}
	t, ok := n.Store.Get(n.ID)
	if !ok {
		return fmt.Errorf("no task with id %q", n.ID)
	}

	if !n.Yes {
		confirm := n.Confirm
		if confirm == nil {
			confirm = PromptConfirm
		}
		yes, err := confirm(fmt.Sprintf("Delete %q", t.Title))
		if err != nil {
			return err
		}
		if !yes {
			_, _ = fmt.Fprintln(n.out(), "Kept", t.Title)
			return nil
		}
	}

	n.Store.Delete(n.ID)
	if err := n.Store.Err(); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(n.out(), "Deleted", t.Title)
	return nil
}

func (n *Remove) out() io.Writer {
	if n.Out == nil {
		return color.Output
	}
	return n.Out
}

// PromptConfirm asks a yes/no question on the terminal.
func PromptConfirm(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
