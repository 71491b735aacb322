// Package store defines the secret store abstraction and its AWS
// Secrets Manager implementation.
package store

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Metadata reports whether a secret exists at an identity.
type Metadata struct {
	Exists bool
	ARN    string
}

// Entry is one secret in a store listing.
type Entry struct {
	Name         string
	Description  string
	LastModified time.Time
	ARN          string
}

// Store is the remote secret store contract. All calls are remote and
// fallible; errors propagate unchanged with no retry policy on top.
type Store interface {
	// Describe probes for an existing secret. A missing secret is not
	// an error: Metadata.Exists is false.
	Describe(ctx context.Context, id string) (Metadata, error)

	// Create stores a new secret and returns its resource identifier.
	Create(ctx context.Context, id, description, value string) (string, error)

	// Update replaces the value of an existing secret, creating a new
	// version. Returns the resource identifier and the new version id.
	Update(ctx context.Context, id, value string) (arn, version string, err error)

	// Get returns the current value of a secret.
	Get(ctx context.Context, id string) (string, error)

	// List returns every secret in the account, in store order.
	List(ctx context.Context) ([]Entry, error)

	// Delete schedules deletion with the given recovery window and
	// returns the resource identifier.
	Delete(ctx context.Context, id string, recoveryWindowDays int64) (string, error)
}

// Resolve builds the fully-qualified identity for a secret. It is a
// pure function: equal inputs always yield equal identities. The name
// may itself contain path segments (e.g. "ssh-keys/alice").
func Resolve(prefix, name string) string {
	prefix = strings.TrimSuffix(prefix, "/")
	name = strings.TrimPrefix(name, "/")
	if name == "" {
		return prefix
	}
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}

// NotFoundError indicates the store has no secret at the identity.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("secret not found: %s", e.Key)
}

// AuthError indicates the store rejected the caller's credentials.
type AuthError struct {
	Message string
}

func (e AuthError) Error() string {
	return e.Message
}
