package storage

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// FileStore is the durable scope: the whole key set is serialized to a
// single JSON file on every write, so state survives restarts. A missing
// file means an empty store.
type FileStore struct {
	path string
	data map[string]json.RawMessage
}

func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path, data: make(map[string]json.RawMessage)}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, errors.Wrapf(err, "read store file %s", path)
	}

	if err := json.Unmarshal(raw, &s.data); err != nil {
		return nil, errors.Wrapf(err, "parse store file %s", path)
	}
	return s, nil
}

func (s *FileStore) Get(key string, out any) (bool, error) {
	raw, ok := s.data[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, errors.Wrapf(err, "decode value for key %q", key)
	}
	return true, nil
}

func (s *FileStore) Set(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "encode value for key %q", key)
	}
	s.data[key] = raw
	return s.flush()
}

func (s *FileStore) Remove(key string) error {
	if _, ok := s.data[key]; !ok {
		return nil
	}
	delete(s.data, key)
	return s.flush()
}

func (s *FileStore) flush() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode store")
	}
	return errors.Wrapf(os.WriteFile(s.path, raw, 0666), "write store file %s", s.path)
}
