package commands

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/worxco/secretops/internal/config"
	dserrors "github.com/worxco/secretops/internal/errors"
	"github.com/worxco/secretops/internal/runner"
	"github.com/worxco/secretops/internal/store"
)

func NewListCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "list [prefix]",
		Short: "List secrets under a prefix",
		Long: `Fetch all secrets in the account and list those whose name starts
with the effective prefix, in the order the store returned them.

Examples:
  secretops list
  secretops list worxco/staging`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := ensureStore(ctx, cfg); err != nil {
				return err
			}

			prefix := cfg.EffectivePrefix(prefixArg(args, 0))

			entries, err := runner.Capture(ctx, cfg.Runner, listCommand(),
				func(ctx context.Context) ([]store.Entry, error) {
					return cfg.Store.List(ctx)
				})
			if err != nil {
				return dserrors.StoreError("list", err)
			}
			if cfg.Runner.DryRun() {
				return nil
			}

			// Client-side filter; the store has no prefix query.
			matched := entries[:0:0]
			for _, entry := range entries {
				if strings.HasPrefix(entry.Name, prefix) {
					matched = append(matched, entry)
				}
			}

			if len(matched) == 0 {
				cfg.Logger.Info("No secrets found under prefix %s", prefix)
				return nil
			}

			w := tabwriter.NewWriter(cfg.Out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tDESCRIPTION\tLAST MODIFIED")
			for _, entry := range matched {
				description := entry.Description
				if description == "" {
					description = "-"
				}
				lastModified := "-"
				if !entry.LastModified.IsZero() {
					lastModified = entry.LastModified.Format("2006-01-02 15:04:05")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", entry.Name, description, lastModified)
			}
			return w.Flush()
		},
	}
}
