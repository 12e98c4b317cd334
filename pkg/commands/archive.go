package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/things/pkg/commands/options"
	"tableflip.dev/things/pkg/runner/archive"
)

func addArchive(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Archive a task",
		Example: `
things archive <task id>
`,
		Args:              optionalID(&io.ID),
		ValidArgsFunction: taskIDCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ws, err := openWorkspace(ctxOf(cmd))
			if err != nil {
				return output.HandleError(err)
			}
			id, err := resolveID(cmd, ws, io.ID, "Archive which task", notArchived)
			if err != nil {
				return output.HandleError(err)
			}
			s := archive.Archive{
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
