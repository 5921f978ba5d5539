package storage

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// MemoryStore is the ephemeral scope: values live only for the lifetime
// of the process, the analog of session storage.
type MemoryStore struct {
	data map[string]json.RawMessage
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]json.RawMessage)}
}

func (s *MemoryStore) Get(key string, out any) (bool, error) {
	raw, ok := s.data[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, errors.Wrapf(err, "decode value for key %q", key)
	}
	return true, nil
}

func (s *MemoryStore) Set(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "encode value for key %q", key)
	}
	s.data[key] = raw
	return nil
}

func (s *MemoryStore) Remove(key string) error {
	delete(s.data, key)
	return nil
}
