package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/worxco/secretops/internal/config"
	dserrors "github.com/worxco/secretops/internal/errors"
	"github.com/worxco/secretops/internal/runner"
	"github.com/worxco/secretops/internal/store"
)

func NewDeleteCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name> [prefix]",
		Short: "Schedule deletion of a secret",
		Long: `Schedule deletion of the secret stored under <prefix>/<name>.

The secret stays recoverable for the configured recovery window
(default 7 days). Requires typing "yes" at the confirmation prompt;
any other answer cancels without touching the store. Under --dry-run
the prompt is skipped and the delete call is only described.

Examples:
  secretops delete old-api-token
  secretops --dry-run delete old-api-token worxco/staging`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := ensureStore(ctx, cfg); err != nil {
				return err
			}

			prefix := cfg.EffectivePrefix(prefixArg(args, 1))
			id := store.Resolve(prefix, args[0])

			return deleteSecret(ctx, cfg, id)
		},
	}
}

// deleteSecret confirms interactively, then schedules deletion with
// the configured recovery window. Declining the prompt is a successful
// no-op, not an error.
func deleteSecret(ctx context.Context, cfg *config.Config, id string) error {
	window := cfg.RecoveryWindowDays
	cfg.Logger.Warn("This schedules deletion of %s (recoverable for %d days)", id, window)

	if cfg.Runner.DryRun() {
		fmt.Fprintln(cfg.Out, "[dry-run] confirmation prompt skipped")
	} else {
		answer, err := cfg.Prompter.ReadLine(`Type "yes" to confirm deletion: `)
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if answer != "yes" {
			fmt.Fprintln(cfg.Out, "Cancelled")
			return nil
		}
	}

	arn, err := runner.Capture(ctx, cfg.Runner, deleteCommand(id, window),
		func(ctx context.Context) (string, error) {
			return cfg.Store.Delete(ctx, id, window)
		})
	if err != nil {
		return dserrors.StoreError("delete", err)
	}
	if !cfg.Runner.DryRun() {
		fmt.Fprintf(cfg.Out, "Deletion scheduled: %s (recoverable for %d days)\n", arn, window)
	}
	return nil
}
