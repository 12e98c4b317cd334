package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/things/pkg/commands/options"
	"tableflip.dev/things/pkg/runner/report"
)

func addReport(topLevel *cobra.Command) {
	var window string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Tasks completed in a recent window, grouped by category",
		Example: `
things report
things report --window 3d
things report -w 2w --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ws, err := openWorkspace(ctxOf(cmd))
			if err != nil {
				return output.HandleError(err)
			}
			r := report.Report{
				Window: window,
				JSON:   output.JSON,
				Store:  ws.tasks,
			}
			err = r.Do(ctxOf(cmd))
			return output.HandleError(err)
		},
	}

	cmd.Flags().StringVarP(&window, "window", "w", "1w", "How far back to look, e.g. 12h, 3d, 2w.")
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
