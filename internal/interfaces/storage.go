package interfaces

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by KeyValueStorage.Get when the key is absent.
var ErrKeyNotFound = errors.New("key not found")

// StorageManager provides access to domain-specific storage interfaces.
// Implementations can be swapped (BadgerDB for deployments, memory for tests).
type StorageManager interface {
	KeyValueStorage() KeyValueStorage
	Close() error
}

// KeyValueStorage provides basic key-value operations.
type KeyValueStorage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
