package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/things/pkg/commands/options"
	"tableflip.dev/things/pkg/runner/list"
)

func addList(topLevel *cobra.Command) {
	fo := &options.FilterOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Example: `
things list
things list -f archived --show-id
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			filter, err := fo.GetFilter()
			if err != nil {
				return output.HandleError(err)
			}
			ws, err := openWorkspace(ctxOf(cmd))
			if err != nil {
				return output.HandleError(err)
			}
			l := list.List{
				Filter: filter,
				ShowID: io.ShowID,
				JSON:   output.JSON,
				Store:  ws.tasks,
			}
			err = l.Do(ctxOf(cmd))
			return output.HandleError(err)
		},
	}

	options.AddFilterArgs(cmd, fo)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
