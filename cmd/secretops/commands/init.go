package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/worxco/secretops/internal/config"
	"github.com/worxco/secretops/internal/secure"
	"github.com/worxco/secretops/internal/store"
)

func NewInitCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "init [prefix]",
		Short: "Interactively seed the baseline secrets for an environment",
		Long: `Walk through the baseline secrets a new environment needs:

  1. Root password (prompted without echo) -> <prefix>/root-password
  2. Notification email                    -> <prefix>/notifications/email
  3. Any number of SSH public keys         -> <prefix>/ssh-keys/<label>

The SSH key loop ends at the first empty path. An unreadable path
reports an error and re-prompts. Under --dry-run no prompts occur; a
summary of what would be collected is printed instead.

Examples:
  secretops init
  secretops init worxco/staging`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := ensureStore(ctx, cfg); err != nil {
				return err
			}

			prefix := cfg.EffectivePrefix(prefixArg(args, 0))
			return runInit(ctx, cfg, prefix)
		},
	}
}

// runInit drives the four-stage interactive flow. Stages are
// independent: a failure aborts the run but earlier secrets stay in
// the store (no rollback).
func runInit(ctx context.Context, cfg *config.Config, prefix string) error {
	// Dry-run init is a declarative summary, not a simulated session:
	// the flow is interactive by nature and cannot be rehearsed
	// without prompting.
	if cfg.Runner.DryRun() {
		fmt.Fprintln(cfg.Out, "[dry-run] init would interactively collect and store:")
		fmt.Fprintf(cfg.Out, "  - %s (root password, prompted without echo)\n", store.Resolve(prefix, "root-password"))
		fmt.Fprintf(cfg.Out, "  - %s (notification email)\n", store.Resolve(prefix, "notifications/email"))
		fmt.Fprintf(cfg.Out, "  - %s for each provided public key file\n", store.Resolve(prefix, "ssh-keys/<label>"))
		return nil
	}

	fmt.Fprintf(cfg.Out, "Initializing secrets under %s\n", prefix)

	// Stage 1: root password, held in protected memory until stored.
	password, err := cfg.Prompter.ReadSecret("Root password: ")
	if err != nil {
		return fmt.Errorf("failed to read root password: %w", err)
	}
	buf := secure.NewBufferFromString(password)
	if err := buf.WithValue(func(value string) error {
		_, err := addSecret(ctx, cfg, prefix, "root-password", value)
		return err
	}); err != nil {
		return err
	}

	// Stage 2: notification email.
	email, err := cfg.Prompter.ReadLine("Notification email: ")
	if err != nil {
		return fmt.Errorf("failed to read notification email: %w", err)
	}
	if _, err := addSecret(ctx, cfg, prefix, "notifications/email", email); err != nil {
		return err
	}

	// Stage 3: SSH public keys until an empty path.
	keyCount := 0
	for {
		path, err := cfg.Prompter.ReadLine("Path to SSH public key (empty to finish): ")
		if err != nil {
			return fmt.Errorf("failed to read key path: %w", err)
		}
		if path == "" {
			break
		}
		if _, err := os.Stat(path); err != nil {
			cfg.Logger.Error("Cannot read %s: %v", path, err)
			continue
		}

		label, err := cfg.Prompter.ReadLine("Label for this key: ")
		if err != nil {
			return fmt.Errorf("failed to read key label: %w", err)
		}
		if _, err := addSSHKey(ctx, cfg, prefix, "ssh-keys/"+label, path); err != nil {
			return err
		}
		keyCount++
	}

	// Stage 4: summary.
	fmt.Fprintf(cfg.Out, "\nInitialized %d secrets under %s:\n", 2+keyCount, prefix)
	fmt.Fprintln(cfg.Out, "  - root password")
	fmt.Fprintln(cfg.Out, "  - notification email")
	fmt.Fprintf(cfg.Out, "  - %d SSH public key(s)\n", keyCount)
	return nil
}
