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

func NewGetCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "get <name> [prefix]",
		Short: "Print the current value of a secret",
		Long: `Retrieve the secret stored under <prefix>/<name> and print its
raw value to stdout.

The value is printed unmasked; redirect output with care.

Examples:
  secretops get db-password
  export DB_PASSWORD=$(secretops get db-password)
  secretops get ssh-keys/alice worxco/staging`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := ensureStore(ctx, cfg); err != nil {
				return err
			}

			prefix := cfg.EffectivePrefix(prefixArg(args, 1))
			id := store.Resolve(prefix, args[0])

			value, err := runner.Capture(ctx, cfg.Runner, getCommand(id),
				func(ctx context.Context) (string, error) {
					return cfg.Store.Get(ctx, id)
				})
			if err != nil {
				return dserrors.StoreError("get", err)
			}
			if !cfg.Runner.DryRun() {
				fmt.Fprintln(cfg.Out, value)
			}
			return nil
		},
	}
}
