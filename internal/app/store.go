package app

import (
	"errors"
	"fmt"
	"os"
)

// DocumentStore abstracts where the serialized document lives.
type DocumentStore interface {
	// Load returns the stored document bytes, or (nil, nil) if nothing
	// has been stored yet.
	Load() ([]byte, error)
	// Save replaces the stored document.
	Save(data []byte) error
	// Path names the backing location for display purposes.
	Path() string
}

// FileStore persists the document to a single file on disk.
type FileStore struct {
	path string
}

var _ DocumentStore = (*FileStore)(nil)

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Load() ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read document %s: %w", f.path, err)
	}
	return data, nil
}

func (f *FileStore) Save(data []byte) error {
	if err := os.WriteFile(f.path, data, 0644); err != nil {
		return fmt.Errorf("write document %s: %w", f.path, err)
	}
	return nil
}

func (f *FileStore) Path() string {
	return f.path
}
