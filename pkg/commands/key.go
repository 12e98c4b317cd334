package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/things/pkg/runner/key"
)

func addKey(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Print the status and category symbols",
		Example: `
things key
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			k := key.Key{}
			err := k.Do(ctxOf(cmd))
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
