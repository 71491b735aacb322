package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/worxco/secretops/cmd/secretops/commands"
	"github.com/worxco/secretops/internal/config"
	"github.com/worxco/secretops/internal/logging"
	"github.com/worxco/secretops/internal/prompt"
	"github.com/worxco/secretops/internal/runner"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Global flags
	var (
		configFile string
		dryRun     bool
		noColor    bool
		debug      bool
	)

	cfg := &config.Config{}

	rootCmd := &cobra.Command{
		Use:   "secretops",
		Short: "Secret lifecycle manager for the worxco secret store",
		Long: `secretops manages the lifecycle of named secrets in AWS Secrets
Manager: create or update literal values and SSH public keys, read and
list them, schedule deletions, and seed a fresh environment.

With --dry-run every store call is described instead of executed, so a
command sequence can be rehearsed offline without live credentials.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Logger = logging.New(debug, noColor)
			cfg.Path = configFile
			cfg.DryRun = dryRun
			if err := cfg.Load(); err != nil {
				return err
			}
			cfg.Runner = runner.New(dryRun)
			cfg.Prompter = prompt.NewTerminal()
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "secretops.yaml", "Config file path")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Describe store calls instead of executing them")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(
		commands.NewAddSSHKeyCommand(cfg),
		commands.NewAddSecretCommand(cfg),
		commands.NewGetCommand(cfg),
		commands.NewListCommand(cfg),
		commands.NewDeleteCommand(cfg),
		commands.NewInitCommand(cfg),
		commands.NewDoctorCommand(cfg),
		commands.NewCompletionCommand(cfg),
	)

	return rootCmd.Execute()
}
