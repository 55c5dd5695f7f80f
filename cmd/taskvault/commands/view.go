package commands

import (
	"github.com/spf13/cobra"
	"github.com/taskvault/taskvault/cmd/taskvault/opts"
	"gitlab.com/tozd/go/errors"
)

// NewViewCmd creates a new view command
func NewViewCmd(ro *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view <id>",
		Short: "Show the full details of one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			t, err := ro.Store.Get(ctx, args[0])
			if err != nil {
				return errors.Errorf("getting task: %w", err)
			}

			ro.Renderer.TaskDetail(t)
			return nil
		},
	}

	return cmd
}
