// Package kv defines the key/value persistence port behind the session
// store, plus small backends: file (durable, default), memory (dev/tests)
// and redis (shared).
//
// The port is deliberately narrow: string keys, byte values, no TTL.
// Sessions never expire on their own; they are removed by an explicit
// clear.
package kv

// Store is the persistence port. Implementations must be safe for
// concurrent use.
type Store interface {
	// Get returns the value for key and whether it was present.
	// Backend read failures degrade to a miss.
	Get(key string) ([]byte, bool)

	// Set writes the value for key, overwriting any previous value.
	Set(key string, value []byte) error

	// Delete removes key. Deleting an absent key is a no-op.
	Delete(key string) error
}
