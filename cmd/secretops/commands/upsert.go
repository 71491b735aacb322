package commands

import (
	"context"
	"fmt"

	"github.com/worxco/secretops/internal/config"
	dserrors "github.com/worxco/secretops/internal/errors"
	"github.com/worxco/secretops/internal/runner"
	"github.com/worxco/secretops/internal/store"
)

// upsertSecret implements the describe-then-create-or-update sequence
// shared by add-secret and add-ssh-key. This is two store calls, not
// an atomic upsert: concurrent invocations against the same identity
// can race into a create conflict, which surfaces as the store's own
// error. Single-operator sequential usage is assumed.
//
// Under dry-run the describe probe returns an empty result, so the
// rendering always shows the create path. The secret value is rendered
// as a length, never verbatim.
func upsertSecret(ctx context.Context, cfg *config.Config, id, description, value string) (string, error) {
	meta, err := runner.Capture(ctx, cfg.Runner, describeCommand(id),
		func(ctx context.Context) (store.Metadata, error) {
			return cfg.Store.Describe(ctx, id)
		})
	if err != nil {
		return "", dserrors.StoreError("describe", err)
	}

	if meta.Exists {
		var version string
		arn, err := runner.Capture(ctx, cfg.Runner, updateCommand(id, len(value)),
			func(ctx context.Context) (string, error) {
				a, v, err := cfg.Store.Update(ctx, id, value)
				version = v
				return a, err
			})
		if err != nil {
			return "", dserrors.StoreError("update", err)
		}
		cfg.Logger.Info("Updated existing secret %s (new version %s)", id, version)
		return arn, nil
	}

	arn, err := runner.Capture(ctx, cfg.Runner, createCommand(id, description, len(value)),
		func(ctx context.Context) (string, error) {
			return cfg.Store.Create(ctx, id, description, value)
		})
	if err != nil {
		return "", dserrors.StoreError("create", err)
	}
	if !cfg.Runner.DryRun() {
		cfg.Logger.Info("Created secret %s", id)
	}
	return arn, nil
}

// Command renderings for dry-run output, in the shape of the
// equivalent AWS CLI invocations.

func describeCommand(id string) runner.Command {
	return runner.Command{
		Program: "aws",
		Args:    []string{"secretsmanager", "describe-secret", "--secret-id", id},
	}
}

func createCommand(id, description string, valueLen int) runner.Command {
	return runner.Command{
		Program: "aws",
		Args: []string{
			"secretsmanager", "create-secret",
			"--name", id,
			"--description", description,
			"--secret-string", fmt.Sprintf("(%d bytes)", valueLen),
		},
	}
}

func updateCommand(id string, valueLen int) runner.Command {
	return runner.Command{
		Program: "aws",
		Args: []string{
			"secretsmanager", "update-secret",
			"--secret-id", id,
			"--secret-string", fmt.Sprintf("(%d bytes)", valueLen),
		},
	}
}

func getCommand(id string) runner.Command {
	return runner.Command{
		Program: "aws",
		Args:    []string{"secretsmanager", "get-secret-value", "--secret-id", id},
	}
}

func listCommand() runner.Command {
	return runner.Command{
		Program: "aws",
		Args:    []string{"secretsmanager", "list-secrets"},
	}
}

func deleteCommand(id string, recoveryWindowDays int64) runner.Command {
	return runner.Command{
		Program: "aws",
		Args: []string{
			"secretsmanager", "delete-secret",
			"--secret-id", id,
			"--recovery-window-in-days", fmt.Sprintf("%d", recoveryWindowDays),
		},
	}
}
