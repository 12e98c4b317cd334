package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/things/pkg/commands/options"
	"tableflip.dev/things/pkg/runner/edit"
)

func addEdit(topLevel *cobra.Command) {
	co := &options.CategoryOptions{}
	var id, title string

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Change the title or category of a task",
		Example: `
things edit <task id> --title "call the electrician"
things edit <task id> -c business
`,
		Args:              optionalID(&id),
		ValidArgsFunction: taskIDCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			var e edit.Edit
			if cmd.Flags().Changed("title") {
				e.Title = &title
			}
			if cmd.Flags().Changed("category") {
				c, err := co.GetCategory("")
				if err != nil {
					return output.HandleError(err)
				}
				e.Category = &c
			}

			ws, err := openWorkspace(ctxOf(cmd))
			if err != nil {
				return output.HandleError(err)
			}
			e.ID, err = resolveID(cmd, ws, id, "Edit which task", nil)
			if err != nil {
				return output.HandleError(err)
			}
			e.Store = ws.tasks
			err = e.Do(ctxOf(cmd))
			return output.HandleError(err)
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "New title.")
	options.AddCategoryArgs(cmd, co, "")
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
