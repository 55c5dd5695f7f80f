package commands

import (
	"github.com/spf13/cobra"
	"github.com/taskvault/taskvault/cmd/taskvault/opts"
	"github.com/taskvault/taskvault/pkg/audit"
	"gitlab.com/tozd/go/errors"
)

// NewHistoryCmd creates a new history command
func NewHistoryCmd(ro *opts.RootOpts) *cobra.Command {
	var (
		operation string
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "history <id>",
		Short: "Show the audit history of a task, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			filter := audit.Filter{RecordID: args[0], Limit: limit}
			if operation != "" {
				switch audit.Operation(operation) {
				case audit.OpCreate, audit.OpUpdate, audit.OpDelete:
					filter.Operation = audit.Operation(operation)
				default:
					return errors.Errorf("invalid operation filter: %q (use: CREATE, UPDATE, DELETE)", operation)
				}
			}

			entries, err := ro.Store.AuditLog().Query(ctx, filter)
			if err != nil {
				return errors.Errorf("querying history: %w", err)
			}

			ro.Renderer.History(args[0], entries)
			return nil
		},
	}

	cmd.Flags().StringVar(&operation, "operation", "", "filter by operation (CREATE, UPDATE, DELETE)")
	cmd.Flags().IntVar(&limit, "limit", 0, "limit the number of entries shown")

	return cmd
}
