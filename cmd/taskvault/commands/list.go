package commands

import (
	"github.com/spf13/cobra"
	"github.com/taskvault/taskvault/cmd/taskvault/opts"
	"github.com/taskvault/taskvault/pkg/store"
	"github.com/taskvault/taskvault/pkg/task"
	"gitlab.com/tozd/go/errors"
)

// NewListCmd creates a new list command
func NewListCmd(ro *opts.RootOpts) *cobra.Command {
	var (
		status   string
		priority string
		assignee string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks, optionally filtered",
		Long: `List prints all tasks matching every supplied filter, in document order.
The assignee filter accepts glob patterns (e.g. "dev-*").`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			filter := store.ListFilter{Assignee: assignee}
			if status != "" {
				if !task.Status(status).IsValid() {
					return errors.Errorf("invalid status filter: %q", status)
				}
				filter.Status = task.Status(status)
			}
			if priority != "" {
				if !task.Priority(priority).IsValid() {
					return errors.Errorf("invalid priority filter: %q", priority)
				}
				filter.Priority = task.Priority(priority)
			}

			tasks, err := ro.Store.List(ctx, filter)
			if err != nil {
				return errors.Errorf("listing tasks: %w", err)
			}

			ro.Renderer.TaskTable(tasks)
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "filter by status")
	cmd.Flags().StringVar(&priority, "priority", "", "filter by priority")
	cmd.Flags().StringVar(&assignee, "assignee", "", "filter by assignee (glob patterns allowed)")

	return cmd
}
