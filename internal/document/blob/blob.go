// Package blob abstracts durable object storage for uploaded documents.
package blob

import "context"

// Store uploads document bytes under a key and returns a public retrieval
// URL. Implementations must make Put safe to call concurrently.
type Store interface {
	Put(ctx context.Context, key, contentType string, data []byte) (url string, err error)
	Remove(ctx context.Context, key string) error
}
