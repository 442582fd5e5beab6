package session

import (
	"context"
	"errors"
)

var (
	// ErrSessionNotFound is returned by Get when no session record exists for the key
	ErrSessionNotFound = errors.New("session not found")
	// ErrEmptySessionKey is returned for a memory seed entry without a key
	ErrEmptySessionKey = errors.New("session key cannot be empty")
	// ErrMissingTable is returned when the session table does not exist
	ErrMissingTable = errors.New("session table does not exist")
)

// Store is a read-only view over the session records written by the login service
type Store interface {
	// Get returns the value stored under key or ErrSessionNotFound
	Get(ctx context.Context, key string) (string, error)
	// Ping checks the backing store is reachable
	Ping(ctx context.Context) error
	// Close releases the underlying connections
	Close() error
}
