package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/things/pkg/commands/options"
	"tableflip.dev/things/pkg/runner/remove"
)

func addDelete(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	yo := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:     "delete",
		Aliases: []string{"rm"},
		Short:   "Delete a task",
		Example: `
things delete <task id>
things delete --yes <task id>
`,
		Args:              optionalID(&io.ID),
		ValidArgsFunction: taskIDCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ws, err := openWorkspace(ctxOf(cmd))
			if err != nil {
				return output.HandleError(err)
			}
			id, err := resolveID(cmd, ws, io.ID, "Delete which task", nil)
			if err != nil {
				return output.HandleError(err)
			}
			s := remove.Remove{
				ID:    id,
				Yes:   yo.Yes,
				Store: ws.tasks,
			}
			err = s.Do(ctxOf(cmd))
			return output.HandleError(err)
		},
	}

	options.AddConfirmArgs(cmd, yo)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
