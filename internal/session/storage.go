// Package session is the single source of truth for who is logged in. It
// holds the bearer token and the user snapshot in memory and mirrors both
// into a durable state file so a new process restores the session.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Canonical durable-storage keys. Earlier iterations of the system used
// both "user" and "userData"; "user" is the one we keep.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// Storage is the durable client store behind the session. Implementations
// must tolerate concurrent use from a single Store only; the Store
// serializes access.
type Storage interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// FileStorage persists keys as a single JSON object on disk, written
// atomically via a temp file and rename.
type FileStorage struct {
	path string
}

// NewFileStorage returns a FileStorage rooted at path. The parent directory
// is created on first write.
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

func (f *FileStorage) load() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state file: %w", err)
	}

	state := map[string]string{}
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decode state file: %w", err)
	}
	return state, nil
}

func (f *FileStorage) save(state map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("commit state file: %w", err)
	}
	return nil
}

// Get returns the value for key and whether it was present.
func (f *FileStorage) Get(key string) (string, bool, error) {
	state, err := f.load()
	if err != nil {
		return "", false, err
	}
	v, ok := state[key]
	return v, ok, nil
}

// Set writes key to the state file.
func (f *FileStorage) Set(key, value string) error {
	state, err := f.load()
	if err != nil {
		// A corrupted file is replaced rather than propagated; the session
		// falls back to whatever is being written now.
		state = map[string]string{}
	}
	state[key] = value
	return f.save(state)
}

// Delete removes key from the state file. Deleting a missing key is a no-op.
func (f *FileStorage) Delete(key string) error {
	state, err := f.load()
	if err != nil {
		state = map[string]string{}
	}
	if _, ok := state[key]; !ok {
		return nil
	}
	delete(state, key)
	return f.save(state)
}
