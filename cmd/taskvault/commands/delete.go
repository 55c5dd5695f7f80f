package commands

import (
	"github.com/spf13/cobra"
	"github.com/taskvault/taskvault/cmd/taskvault/opts"
	"gitlab.com/tozd/go/errors"
)

// NewDeleteCmd creates a new delete command
func NewDeleteCmd(ro *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Long: `Delete removes a task from the store and records a DELETE audit entry
carrying the last-known snapshot of the removed record.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			deleted, err := ro.Store.Delete(ctx, args[0], ro.Actor)
			if err != nil {
				return errors.Errorf("deleting task: %w", err)
			}
			if !deleted {
				return errors.Errorf("task %s not found", args[0])
			}

			ro.UserLogger.LogTaskChange(opts.TaskChange{
				Type: opts.TaskDeleted,
				ID:   args[0],
			})
			return nil
		},
	}

	return cmd
}
