package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/things/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Where tasks are stored and how many there are.",
		Example: `
things info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ws, err := openWorkspace(ctxOf(cmd))
			if err != nil {
				return output.HandleError(err)
			}
			s := info.Info{
				Config: ws.config,
				Store:  ws.tasks,
			}
			err = s.Do(ctxOf(cmd))
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
