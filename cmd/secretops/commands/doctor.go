package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/worxco/secretops/internal/config"
	"github.com/worxco/secretops/internal/preflight"
)

// storeValidator is implemented by stores that can probe their own
// reachability.
type storeValidator interface {
	Validate(ctx context.Context) error
}

func NewDoctorCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check tools, credentials, and store connectivity",
		Long: `Verify the environment is ready:

- Companion CLI tools on PATH (aws, jq) — advisory, the secretops
  binary talks to the store directly
- AWS credentials resolve to a valid caller identity
- The secret store is reachable

Under --dry-run only the tool check runs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if err := preflight.CheckTools("aws", "jq"); err != nil {
				cfg.Logger.Warn("%v (advisory: only needed for companion shell tooling)", err)
			} else {
				cfg.Logger.Info("Companion tools available: aws, jq")
			}

			if cfg.Runner.DryRun() {
				cfg.Logger.Info("Dry-run: skipping credential and store checks")
				return nil
			}

			identity, err := preflight.CheckCredentials(ctx, nil, cfg.Region, cfg.Profile)
			if err != nil {
				return err
			}
			cfg.Logger.Info("Credentials valid: %s (account %s)", identity.ARN, identity.Account)

			if err := ensureStore(ctx, cfg); err != nil {
				return err
			}
			if validator, ok := cfg.Store.(storeValidator); ok {
				if err := validator.Validate(ctx); err != nil {
					return fmt.Errorf("secret store unreachable: %w", err)
				}
				cfg.Logger.Info("Secret store reachable in %s", cfg.Region)
			}

			cfg.Logger.Info("All checks passed")
			return nil
		},
	}
}
