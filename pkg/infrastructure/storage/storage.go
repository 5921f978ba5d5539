package storage

// Store is a key-value container for JSON-serialized blobs under fixed
// keys. Last writer wins; there is no locking because the application is
// single-process by design.
type Store interface {
	// Get unmarshals the value under key into out and reports whether
	// the key was present.
	Get(key string, out any) (bool, error)
	Set(key string, v any) error
	Remove(key string) error
}
