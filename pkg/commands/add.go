package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/things/pkg/commands/options"
	"tableflip.dev/things/pkg/runner/add"
	"tableflip.dev/things/pkg/task"
)

func addAdd(topLevel *cobra.Command) {
	co := &options.CategoryOptions{}
	io := &options.IDOptions{}
	var title string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task",
		Example: `
things add call the plumber
things add -c business send the invoice
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a task title")
			}
			title = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			category, err := co.GetCategory(task.Personal)
			if err != nil {
				return output.HandleError(err)
			}
			ws, err := openWorkspace(ctxOf(cmd))
			if err != nil {
				return output.HandleError(err)
			}
			a := add.Add{
				Title:    title,
				Category: category,
				ShowID:   io.ShowID,
				Store:    ws.tasks,
			}
			err = a.Do(ctxOf(cmd))
			return output.HandleError(err)
		},
	}

	options.AddCategoryArgs(cmd, co, string(task.Personal))
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
