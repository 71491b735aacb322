// Package errors defines user-facing error types for secretops.
//
// Three classes of failure terminate a command: preflight failures
// (missing tools or credentials), validation failures (bad arguments,
// unreadable files), and store failures (the remote secret store
// rejected a call). A declined confirmation prompt is not an error.
package errors

import (
	"fmt"
	"strings"
)

// UserError carries a message plus an optional actionable suggestion.
type UserError struct {
	Message    string
	Suggestion string
	Err        error
}

func (e UserError) Error() string {
	var parts []string

	if e.Message != "" {
		parts = append(parts, e.Message)
	} else if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}

	if e.Suggestion != "" {
		parts = append(parts, "\n  💡 Try: "+e.Suggestion)
	}

	return strings.Join(parts, "")
}

func (e UserError) Unwrap() error {
	return e.Err
}

// PreflightError reports missing external tools or unusable credentials.
// It is raised before any store interaction.
type PreflightError struct {
	Missing []string
	Message string
	Err     error
}

func (e PreflightError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("missing required tools: %s", strings.Join(e.Missing, ", "))
	}
	msg := "preflight check failed"
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e PreflightError) Unwrap() error {
	return e.Err
}

// StoreError wraps a failed secret store call with the operation name.
// The underlying store error text is propagated unchanged.
func StoreError(operation string, err error) error {
	return UserError{
		Message:    fmt.Sprintf("secret store error during %s", operation),
		Suggestion: storeSuggestion(err),
		Err:        err,
	}
}

// storeSuggestion maps common AWS Secrets Manager failures to next steps.
func storeSuggestion(err error) string {
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, "ResourceNotFoundException"):
		return "Verify the secret name and region. List secrets with: 'secretops list'"
	case strings.Contains(errStr, "AccessDenied"):
		return "Check IAM permissions for the secretsmanager actions this command needs"
	case strings.Contains(errStr, "credentials") || strings.Contains(errStr, "authorization"):
		return "Configure AWS credentials: 'aws configure' or set AWS_PROFILE"
	case strings.Contains(errStr, "ThrottlingException"):
		return "AWS rate limit exceeded. Wait a moment and re-run the command"
	case strings.Contains(errStr, "timeout"), strings.Contains(errStr, "no such host"), strings.Contains(errStr, "connection refused"):
		return "Unable to reach AWS. Check your network connection and region setting"
	}

	return ""
}
