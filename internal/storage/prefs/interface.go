package prefs

import (
	"context"
)

// Repository is the opaque key→value preference store. It carries no
// confidentiality guarantees; nothing secret may be written through it.
type Repository interface {
	// Get returns the value for key, or (nil, nil) when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set upserts the value for key.
	Set(ctx context.Context, key string, value []byte) error

	// Update atomically replaces the value for key with fn(old). fn receives
	// nil when the key is absent; an error from fn aborts the update.
	Update(ctx context.Context, key string, fn func(old []byte) ([]byte, error)) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// List returns all stored pairs.
	List(ctx context.Context) (map[string][]byte, error)

	// Clear removes every key in the namespace.
	Clear(ctx context.Context) error
}
