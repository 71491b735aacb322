package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/worxco/secretops/internal/config"
	"github.com/worxco/secretops/internal/store"
)

func NewAddSecretCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "add-secret <name> <value> [prefix]",
		Short: "Create or update a secret with a literal value",
		Long: `Store a literal value under <prefix>/<name>.

If the secret already exists its value is updated, creating a new
version. Otherwise it is created with the description "Secret: <name>".

Examples:
  secretops add-secret db-password 'hunter2'
  secretops add-secret api-token "$TOKEN" worxco/staging
  secretops --dry-run add-secret db-password 'hunter2'`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := ensureStore(ctx, cfg); err != nil {
				return err
			}

			name, value := args[0], args[1]
			prefix := cfg.EffectivePrefix(prefixArg(args, 2))

			arn, err := addSecret(ctx, cfg, prefix, name, value)
			if err != nil {
				return err
			}
			if !cfg.Runner.DryRun() {
				fmt.Fprintln(cfg.Out, arn)
			}
			return nil
		},
	}
}

// addSecret stores a literal value under <prefix>/<name>.
func addSecret(ctx context.Context, cfg *config.Config, prefix, name, value string) (string, error) {
	id := store.Resolve(prefix, name)
	return upsertSecret(ctx, cfg, id, fmt.Sprintf("Secret: %s", name), value)
}
