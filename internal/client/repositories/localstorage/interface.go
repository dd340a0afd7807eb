package localstorage

import "context"

// Repository stores string values by (origin, key). Every origin has its
// own namespace, like a browser's per-origin localStorage.
type Repository interface {
	// Get returns the value and true, or "" and false when the key is absent.
	Get(ctx context.Context, origin, key string) (string, bool, error)
	// Set inserts or overwrites a value.
	Set(ctx context.Context, origin, key, value string) error
	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, origin, key string) error
	// Keys lists the keys of an origin in lexical order.
	Keys(ctx context.Context, origin string) ([]string, error)
	// Clear removes every key of an origin.
	Clear(ctx context.Context, origin string) error
}
