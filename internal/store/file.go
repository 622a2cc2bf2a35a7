package store

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// FileStore keeps the document in one pretty-printed JSON file. Save is
// a plain overwrite of the whole file; there is no temp-file rename, no
// append log and no recovery from a corrupt file — a parse failure
// propagates to the caller as-is.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a store backed by the file at path. The file is
// created with the default document on first Load.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// ensure writes the default document if the backing file is absent.
// Idempotent.
func (s *FileStore) ensure() error {
	_, err := os.Stat(s.path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat data file: %w", err)
	}
	return s.Save(DefaultDocument())
}

// Load reads and parses the full document, creating the file first if
// needed.
func (s *FileStore) Load() (Document, error) {
	if err := s.ensure(); err != nil {
		return Document{}, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Document{}, fmt.Errorf("read data file: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("parse data file %s: %w", s.path, err)
	}
	return doc, nil
}

// Save serialises the full document and overwrites the file.
func (s *FileStore) Save(doc Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode data file: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write data file: %w", err)
	}
	return nil
}

// Lock acquires the process-wide mutation lock.
func (s *FileStore) Lock() { s.mu.Lock() }

// Unlock releases the process-wide mutation lock.
func (s *FileStore) Unlock() { s.mu.Unlock() }
