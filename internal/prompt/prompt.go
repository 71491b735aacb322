// Package prompt abstracts interactive terminal input so commands can
// be driven by scripted input in tests.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter gathers interactive input. ReadSecret must not echo the
// typed value.
type Prompter interface {
	ReadLine(prompt string) (string, error)
	ReadSecret(prompt string) (string, error)
}

// Terminal prompts on stderr and reads from stdin. Prompts go to
// stderr so secret values printed by commands stay clean on stdout.
type Terminal struct {
	in     *os.File
	out    io.Writer
	reader *bufio.Reader
}

// NewTerminal creates a prompter bound to the process terminal.
func NewTerminal() *Terminal {
	return &Terminal{
		in:     os.Stdin,
		out:    os.Stderr,
		reader: bufio.NewReader(os.Stdin),
	}
}

// ReadLine prompts and reads a single line, trimming the trailing
// newline and surrounding whitespace.
func (t *Terminal) ReadLine(prompt string) (string, error) {
	fmt.Fprint(t.out, prompt)
	line, err := t.reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// ReadSecret prompts and reads a line without echoing. When stdin is
// not a terminal (piped input), it falls back to a plain line read.
func (t *Terminal) ReadSecret(prompt string) (string, error) {
	fd := int(t.in.Fd())
	if !term.IsTerminal(fd) {
		return t.ReadLine(prompt)
	}

	fmt.Fprint(t.out, prompt)
	raw, err := term.ReadPassword(fd)
	fmt.Fprintln(t.out)
	if err != nil {
		return "", fmt.Errorf("failed to read secret input: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}
