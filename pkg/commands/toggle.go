package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/things/pkg/commands/options"
	"tableflip.dev/things/pkg/runner/toggle"
)

func addToggle(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "toggle",
		Aliases: []string{"complete", "done"},
		Short:   "Complete a task, or reopen a completed one",
		Example: `
things toggle <task id>
`,
		Args:              optionalID(&io.ID),
		ValidArgsFunction: taskIDCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ws, err := openWorkspace(ctxOf(cmd))
			if err != nil {
				return output.HandleError(err)
			}
			id, err := resolveID(cmd, ws, io.ID, "Toggle which task", notArchived)
			if err != nil {
				return output.HandleError(err)
			}
			s := toggle.Toggle{
				ID:    id,
				Store: ws.tasks,
			}
			err = s.Do(ctxOf(cmd))
			return output.HandleError(err)
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
