package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/things/pkg/commands/options"
	"tableflip.dev/things/pkg/store"
	"tableflip.dev/things/pkg/tracker"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
)

var (
	output = &options.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "things",
		Short: base.Wrap80("Keep track of personal and business tasks on the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addKey(topLevel)
	addAdd(topLevel)
	addEdit(topLevel)
	addToggle(topLevel)
	addArchive(topLevel)
	addDelete(topLevel)
	addList(topLevel)
	addStats(topLevel)
	addReport(topLevel)
	addInfo(topLevel)
	addMCP(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}

// workspace is what a command needs to touch the task list.
type workspace struct {
	config      store.Config
	persistence store.Persistence
	tasks       *tracker.Store
}

func openWorkspace(ctx context.Context) (*workspace, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	p, err := store.Load(cfg)
	if err != nil {
		return nil, err
	}
	s, err := tracker.Open(ctx, p)
	if err != nil {
		return nil, err
	}
	return &workspace{config: cfg, persistence: p, tasks: s}, nil
}

func ctxOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
