package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/things/pkg/commands/options"
	"tableflip.dev/things/pkg/runner/stats"
)

func addStats(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Task counts per category and filter, with the completion rate",
		Example: `
things stats
things stats --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ws, err := openWorkspace(ctxOf(cmd))
			if err != nil {
				return output.HandleError(err)
			}
			s := stats.Stats{
				JSON:  output.JSON,
				Store: ws.tasks,
			}
			err = s.Do(ctxOf(cmd))
			return output.HandleError(err)
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
