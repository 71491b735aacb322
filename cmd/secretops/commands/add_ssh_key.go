package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/worxco/secretops/internal/config"
	dserrors "github.com/worxco/secretops/internal/errors"
	"github.com/worxco/secretops/internal/store"
)

func NewAddSSHKeyCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "add-ssh-key <name> <key-file> [prefix]",
		Short: "Create or update an SSH public key secret from a file",
		Long: `Read a public key file and store its content under
<prefix>/<name>.

If the secret already exists its value is updated, creating a new
version. Otherwise it is created with the description
"SSH public key for <name>".

Examples:
  secretops add-ssh-key ssh-keys/alice ~/.ssh/alice.pub
  secretops add-ssh-key ssh-keys/deploy ./deploy.pub worxco/staging`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := ensureStore(ctx, cfg); err != nil {
				return err
			}

			name, keyFile := args[0], args[1]
			prefix := cfg.EffectivePrefix(prefixArg(args, 2))

			arn, err := addSSHKey(ctx, cfg, prefix, name, keyFile)
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

// addSSHKey reads the public key file and stores its content under
// <prefix>/<name>. An unreadable file is a validation failure; no
// store call is made.
func addSSHKey(ctx context.Context, cfg *config.Config, prefix, name, keyFile string) (string, error) {
	payload, err := readKeyFile(keyFile)
	if err != nil {
		return "", err
	}

	id := store.Resolve(prefix, name)
	return upsertSecret(ctx, cfg, id, fmt.Sprintf("SSH public key for %s", name), payload)
}

// readKeyFile loads the public key body. The content is treated as an
// opaque payload: no key-format validation happens locally, the store
// is authoritative.
func readKeyFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", dserrors.UserError{
			Message:    fmt.Sprintf("cannot read key file %s", path),
			Suggestion: "Check the path and file permissions. The file should be a public key (.pub)",
			Err:        err,
		}
	}
	return strings.TrimRight(string(data), "\n"), nil
}
