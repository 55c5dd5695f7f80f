package commands

import (
	"github.com/spf13/cobra"
	"github.com/taskvault/taskvault/cmd/taskvault/opts"
	"github.com/taskvault/taskvault/pkg/task"
	"gitlab.com/tozd/go/errors"
)

// NewCreateCmd creates a new create command
func NewCreateCmd(ro *opts.RootOpts) *cobra.Command {
	var (
		status   string
		priority string
	)

	cmd := &cobra.Command{
		Use:   "create <title> <description> <assignee>",
		Short: "Create a new task",
		Long: `Create adds a new task to the store.
It will:
1. Validate the initial status and priority
2. Assign a fresh id and version 1
3. Persist the document with a new checksum
4. Record a CREATE audit entry with the full snapshot`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			t, err := task.New(args[0], args[1], args[2],
				task.WithStatus(task.Status(status)),
				task.WithPriority(task.Priority(priority)),
			)
			if err != nil {
				return errors.Errorf("building task: %w", err)
			}

			created, err := ro.Store.Create(ctx, t, ro.Actor)
			if err != nil {
				return errors.Errorf("creating task: %w", err)
			}

			ro.UserLogger.LogTaskChange(opts.TaskChange{
				Type:        opts.TaskCreated,
				ID:          created.ShortID(),
				Description: created.Title,
			})
			ro.Renderer.TaskDetail(created)

			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", string(task.StatusPending), "initial status (PENDING, IN_PROGRESS, DONE, CANCELLED)")
	cmd.Flags().StringVar(&priority, "priority", string(task.PriorityMedium), "priority (LOW, MEDIUM, HIGH, CRITICAL)")

	return cmd
}
