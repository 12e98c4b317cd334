package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/things/pkg/store"
	"tableflip.dev/things/pkg/task"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(things completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(things completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletionV2(os.Stdout, true)
		},
	}

	topLevel.AddCommand(cmd)
}

// taskIDCompletions offers task ids described by their titles. It reads the
// slot directly so completing never writes the sample tasks.
func taskIDCompletions(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	p, err := store.Load(cfg)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	tasks, err := p.Load(context.Background())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return describeIDs(tasks), cobra.ShellCompDirectiveNoFileComp
}

func describeIDs(tasks []task.Task) []string {
	ids := make([]string, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, fmt.Sprintf("%s\t%s (%s)", t.ID, t.Title, t.Status))
	}
	return ids
}
