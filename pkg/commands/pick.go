package commands

import (
	"errors"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"tableflip.dev/things/pkg/picker"
	"tableflip.dev/things/pkg/task"
)

// optionalID accepts zero or one task id.
func optionalID(id *string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) > 1 {
			return errors.New("accepts a single task id")
		}
		if len(args) == 1 {
			*id = args[0]
		}
		return nil
	}
}

// resolveID returns id, or prompts for one when it is empty and stdin is a
// terminal. keep narrows the candidates; nil keeps every task.
func resolveID(cmd *cobra.Command, ws *workspace, id, label string, keep func(task.Task) bool) (string, error) {
	if id != "" {
		return id, nil
	}
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return "", errors.New("requires a task id")
	}
	var candidates []task.Task
	for _, t := range ws.tasks.Tasks() {
		if keep == nil || keep(t) {
			candidates = append(candidates, t)
		}
	}
	return picker.Task(label, candidates, cmd.InOrStdin(), cmd.OutOrStdout())
}

func notArchived(t task.Task) bool {
	return t.Status != task.Archived
}
