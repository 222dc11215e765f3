package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// LocalStore is the durable session file backing the cart and auth state,
// a key -> raw JSON document store with the same contract the browser's
// localStorage had: a missing or malformed file hydrates as empty and is
// never an error to the caller.
type LocalStore struct {
	mu   sync.Mutex
	path string
	data map[string]json.RawMessage
}

// OpenLocalStore loads the session file at path. Unreadable or malformed
// content is discarded and replaced on the next write.
func OpenLocalStore(path string) *LocalStore {
	s := &LocalStore{path: path, data: make(map[string]json.RawMessage)}
	raw, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	var data map[string]json.RawMessage
	if err := json.Unmarshal(raw, &data); err != nil || data == nil {
		return s
	}
	s.data = data
	return s
}

// Get returns the raw value stored under key.
func (s *LocalStore) Get(key string) (json.RawMessage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok
}

// Set marshals v and stores it under key, rewriting the session file.
func (s *LocalStore) Set(key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = raw
	return s.flushLocked()
}

// Delete removes key and rewrites the session file. Deleting an absent key
// still flushes, matching localStorage.removeItem.
func (s *LocalStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return s.flushLocked()
}

// flushLocked writes the whole document through a temp file and rename so a
// crash mid-write cannot leave a half-written session file behind.
func (s *LocalStore) flushLocked() error {
	raw, err := json.Marshal(s.data)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".session-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}
