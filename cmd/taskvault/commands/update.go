package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/taskvault/taskvault/cmd/taskvault/opts"
	"github.com/taskvault/taskvault/pkg/task"
	"gitlab.com/tozd/go/errors"
)

// NewUpdateCmd creates a new update command
func NewUpdateCmd(ro *opts.RootOpts) *cobra.Command {
	var (
		title       string
		description string
		status      string
		priority    string
		assignee    string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update fields of an existing task",
		Long: `Update applies the supplied field changes to a task.
Fields whose proposed value differs from the current one bump the version
by 1 and produce an UPDATE audit entry; an update that changes nothing
writes nothing and is not audited.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			changes := map[task.Field]string{}
			if cmd.Flags().Changed("title") {
				changes[task.FieldTitle] = title
			}
			if cmd.Flags().Changed("description") {
				changes[task.FieldDescription] = description
			}
			if cmd.Flags().Changed("status") {
				changes[task.FieldStatus] = status
			}
			if cmd.Flags().Changed("priority") {
				changes[task.FieldPriority] = priority
			}
			if cmd.Flags().Changed("assignee") {
				changes[task.FieldAssignee] = assignee
			}

			if len(changes) == 0 {
				return errors.New("no fields to update specified")
			}

			before, err := ro.Store.Get(ctx, args[0])
			if err != nil {
				return errors.Errorf("getting task: %w", err)
			}
			versionBefore := before.Version

			updated, err := ro.Store.Update(ctx, args[0], ro.Actor, changes)
			if err != nil {
				return errors.Errorf("updating task: %w", err)
			}

			if updated.Version == versionBefore {
				ro.UserLogger.LogTaskChange(opts.TaskChange{
					Type:        opts.TaskUnchanged,
					ID:          updated.ShortID(),
					Description: "no fields changed",
				})
				return nil
			}

			ro.UserLogger.LogTaskChange(opts.TaskChange{
				Type:        opts.TaskUpdated,
				ID:          updated.ShortID(),
				Description: fmt.Sprintf("now v%d", updated.Version),
			})
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().StringVar(&status, "status", "", "new status")
	cmd.Flags().StringVar(&priority, "priority", "", "new priority")
	cmd.Flags().StringVar(&assignee, "assignee", "", "new assignee")

	return cmd
}
