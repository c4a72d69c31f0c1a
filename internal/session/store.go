// Package session persists COROS session tokens keyed by an opaque session
// ID, so MCP clients can resume a login across connections. Three backends:
// in-memory (stdio default), SQLite file, and Postgres for multi-user HTTP
// deployments.
package session

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no token exists for a session ID.
var ErrNotFound = errors.New("session not found")

// Store persists serialized session tokens.
type Store interface {
	// Put saves a token blob under the session ID, replacing any previous
	// value.
	Put(ctx context.Context, id, token string) error
	// Get returns the token for a session ID, or ErrNotFound.
	Get(ctx context.Context, id string) (string, error)
	// Delete removes a session. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error
	// Close releases backend resources.
	Close() error
}
