package secret

import "context"

// Store is the confidential key→string store. It stands in for an OS-backed
// secret store: values survive restarts, are sealed at rest, and are kept
// apart from the preference namespace. Values must never be logged.
type Store interface {
	// Get returns the value for key, or "" when the key is absent.
	Get(ctx context.Context, key string) (string, error)

	// Set writes the value for key, replacing any previous value.
	Set(ctx context.Context, key string, value string) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Clear removes every key in the namespace.
	Clear(ctx context.Context) error
}
