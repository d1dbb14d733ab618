// Package storage provides the key-value persistence behind artifact
// traceability. Keys are artifact IDs or "file:line" strings; values are
// opaque blobs with last-write-wins semantics.
package storage

// Store is the minimal key-value contract trace persistence needs.
type Store interface {
	// Get returns the value for key. The second result is false when the
	// key is absent; absence is not an error.
	Get(key string) ([]byte, bool, error)

	// Set writes the value for key, replacing any previous value.
	Set(key string, value []byte) error

	// Delete removes key if present. Deleting an absent key is a no-op.
	Delete(key string) error

	// List returns all keys with the given prefix, sorted.
	List(prefix string) ([]string, error)

	Close() error
}
