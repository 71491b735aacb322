package commands

import (
	"context"

	"github.com/worxco/secretops/internal/config"
	"github.com/worxco/secretops/internal/preflight"
	"github.com/worxco/secretops/internal/store"
)

// ensureStore runs the credential preflight and builds the real store
// client on first use. Under dry-run the store is never touched, so
// both steps are skipped and offline rehearsal works without live
// credentials. Tests inject a fake store ahead of time.
func ensureStore(ctx context.Context, cfg *config.Config) error {
	if cfg.Runner.DryRun() || cfg.Store != nil {
		return nil
	}

	if _, err := preflight.CheckCredentials(ctx, nil, cfg.Region, cfg.Profile); err != nil {
		return err
	}

	st, err := store.NewSecretsManager(ctx, cfg.Region, cfg.Profile)
	if err != nil {
		return err
	}
	cfg.Store = st
	return nil
}

// prefixArg extracts the optional trailing prefix positional.
func prefixArg(args []string, at int) string {
	if len(args) > at {
		return args[at]
	}
	return ""
}
