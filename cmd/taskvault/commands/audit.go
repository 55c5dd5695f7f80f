package commands

import (
	"github.com/spf13/cobra"
	"github.com/taskvault/taskvault/cmd/taskvault/opts"
	"gitlab.com/tozd/go/errors"
)

// NewAuditCmd creates the audit maintenance command group
func NewAuditCmd(ro *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Audit log maintenance",
	}

	var force bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Truncate the audit log to empty",
		Long: `Clear irreversibly truncates the whole audit log. All history for every
task is lost. Intended for maintenance only; requires --force.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if !force {
				return errors.New("refusing to clear the audit log without --force")
			}

			if err := ro.Store.AuditLog().Clear(ctx); err != nil {
				return errors.Errorf("clearing audit log: %w", err)
			}

			ro.UserLogger.LogValidation(true, "Audit log cleared", nil)
			return nil
		},
	}
	clearCmd.Flags().BoolVar(&force, "force", false, "really truncate the audit log")

	cmd.AddCommand(clearCmd)
	return cmd
}
