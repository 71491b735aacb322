// Package runner is the single choke point through which every call to
// the secret store passes. In dry-run mode the call is never made;
// instead a shell-escaped rendering of the equivalent CLI command is
// printed with a [dry-run] marker. This guarantees dry-run behavior is
// consistent across all commands instead of being reimplemented per
// handler.
package runner

import (
	"context"
	"fmt"
	"io"
	"os"

	"al.essio.dev/pkg/shellescape"
)

// Command describes the store call about to be made, rendered as the
// equivalent CLI invocation. Callers decide what appears in Args: value
// payloads are rendered as a length, never verbatim.
type Command struct {
	Program string
	Args    []string
}

// String renders the command with shell escaping applied to each
// argument.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Program
	}
	return c.Program + " " + shellescape.QuoteCommand(c.Args)
}

// Runner executes store calls, or describes them under dry-run.
type Runner struct {
	dryRun bool
	out    io.Writer
}

// New creates a runner writing dry-run renderings to stdout.
func New(dryRun bool) *Runner {
	return &Runner{dryRun: dryRun, out: os.Stdout}
}

// NewWithWriter creates a runner writing renderings to w (tests).
func NewWithWriter(dryRun bool, w io.Writer) *Runner {
	return &Runner{dryRun: dryRun, out: w}
}

// DryRun reports whether the runner is in dry-run mode.
func (r *Runner) DryRun() bool {
	return r.dryRun
}

// Do runs fn against the real store, or renders cmd and returns nil
// without invoking fn when dry-run is active.
func (r *Runner) Do(ctx context.Context, cmd Command, fn func(context.Context) error) error {
	if r.dryRun {
		r.render(cmd)
		return nil
	}
	return fn(ctx)
}

// Capture runs fn and returns its value, or renders cmd and returns the
// zero value without invoking fn when dry-run is active.
func Capture[T any](ctx context.Context, r *Runner, cmd Command, fn func(context.Context) (T, error)) (T, error) {
	if r.dryRun {
		r.render(cmd)
		var zero T
		return zero, nil
	}
	return fn(ctx)
}

func (r *Runner) render(cmd Command) {
	fmt.Fprintf(r.out, "[dry-run] %s\n", cmd.String())
}
