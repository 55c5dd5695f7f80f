// Copyright 2025 the taskvault authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/taskvault/taskvault/cmd/taskvault/commands"
	"github.com/taskvault/taskvault/cmd/taskvault/opts"
	"github.com/taskvault/taskvault/pkg/store"
	"gitlab.com/tozd/go/errors"
)

func main() {
	ctx := log.Logger.WithContext(context.Background())

	// Filled in by PersistentPreRunE, after flags are parsed
	rootOpts := &opts.RootOpts{}

	rootCmd := &cobra.Command{
		Use:   "taskvault",
		Short: "A task store with checksummed persistence and an audit trail",
		Long: `taskvault keeps task records in a single checksummed JSON document and
records every mutation in an append-only audit log, so data corruption is
detected on read and every change is traceable to an operation and actor.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging()

			initialized, err := newRootOpts(cmd.Context())
			if err != nil {
				return errors.Errorf("initializing: %w", err)
			}
			*rootOpts = *initialized
			return nil
		},
	}

	addRootFlags(rootCmd)

	rootCmd.AddCommand(
		commands.NewCreateCmd(rootOpts),
		commands.NewListCmd(rootOpts),
		commands.NewViewCmd(rootOpts),
		commands.NewUpdateCmd(rootOpts),
		commands.NewDeleteCmd(rootOpts),
		commands.NewHistoryCmd(rootOpts),
		commands.NewAuditCmd(rootOpts),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		userLogger := opts.NewUserLogger(ctx)

		// Integrity failures are data-loss-risk events; report them loudly.
		var integrityErr *store.IntegrityError
		if errors.As(err, &integrityErr) {
			userLogger.LogIntegrityFailure(err)
		} else {
			userLogger.LogValidation(false, "Command failed", err)
		}
		os.Exit(1)
	}
}
