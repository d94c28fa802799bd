package storage

// Store is the key-value contract the dedup ledger is built on. Values are
// JSON-serialized strings; a missing key is simply absent from the Read
// result. Implementations must be safe for concurrent use even though the
// round model runs behaviours strictly sequentially.
type Store interface {
	// Read returns the values for the requested keys. Keys with no stored
	// value are omitted from the result.
	Read(keys []string) (map[string]string, error)

	// Write persists all given key-value pairs, overwriting previous values.
	Write(values map[string]string) error

	// Close releases the underlying resources.
	Close() error
}
