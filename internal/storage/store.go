// Package storage provides the key-value persistence abstraction used by
// the reading store and the alert manager.
package storage

import (
	"context"
	"errors"
)

// Keys used by the tracker.
const (
	KeyReadings        = "bp-readings"
	KeyDismissedAlerts = "dismissed-alerts"
)

// KV is a durable string key-value store.
type KV interface {
	// Get returns ErrNotFound when key has never been set.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error

	// Lifecycle
	Close() error
}

// ErrNotFound is returned when a record is not found.
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e ErrNotFound) Error() string {
	return e.Resource + " not found: " + e.ID
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	var nf ErrNotFound
	return errors.As(err, &nf)
}

// PersistenceError reports a failed read or write against the durable store.
type PersistenceError struct {
	Op  string // "load" or "save"
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return "persistence " + e.Op + " " + e.Key + ": " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// IsPersistence checks if an error is a persistence error.
func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
