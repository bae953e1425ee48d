package driven

import "context"

// ObjectStore is the durable key-addressed store all pipeline output
// lands in. The existence-check-then-write pattern on top of it is the
// pipeline's sole de-duplication mechanism, so Exists must be cheap.
type ObjectStore interface {
	// Put writes an object body with attached metadata tags.
	Put(ctx context.Context, key string, body []byte, contentType string, metadata map[string]string) error

	// Get retrieves an object body.
	// Returns domain.ErrNotFound if the key does not exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Exists reports whether an object exists at key.
	Exists(ctx context.Context, key string) (bool, error)

	// List returns the keys under a prefix.
	List(ctx context.Context, prefix string) ([]string, error)

	// Delete removes an object. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
