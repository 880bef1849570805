// Package tokenstore provides implementations of the single durable slot that
// holds the persisted session token between runs of the console.
package tokenstore

import (
	"fmt"
	"os"
	"strings"
)

// FileStore keeps the token in a single file, the console's equivalent of the
// browser's one local-storage slot. Only the session service writes to it.
type FileStore struct {
	path string
}

// NewFileStore builds a store backed by the given path. The file is created
// lazily on the first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load returns the stored token, or an empty string when the slot is empty.
func (s *FileStore) Load() (string, error) {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("tokenstore: read %s: %w", s.path, err)
	}
	return strings.TrimSpace(string(raw)), nil
}

// Save overwrites the slot. Mode 0600: the token is a credential.
func (s *FileStore) Save(token string) error {
	if err := os.WriteFile(s.path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("tokenstore: write %s: %w", s.path, err)
	}
	return nil
}

// Clear empties the slot. Clearing an already empty slot is not an error.
func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("tokenstore: remove %s: %w", s.path, err)
	}
	return nil
}
