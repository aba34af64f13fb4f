package app

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// TestFileStoreRoundTrip verifies saving and loading through a file on
// disk, including the empty result for a file that does not exist yet.
func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.wboard")
	fs := NewFileStore(path)

	if got := fs.Path(); got != path {
		t.Errorf("Path = %q, want %q", got, path)
	}

	data, err := fs.Load()
	if err != nil {
		t.Fatalf("Load before save: %v", err)
	}
	if data != nil {
		t.Errorf("Load before save = %q, want nil", data)
	}

	want := []byte(`{"version": 2}`)
	if err := fs.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err = fs.Load()
	if err != nil {
		t.Fatalf("Load after save: %v", err)
	}
	if !bytes.Equal(data, want) {
		t.Errorf("Load = %q, want %q", data, want)
	}
}

// TestFileStoreSaveError verifies that writing into a missing directory
// reports an error instead of succeeding silently.
func TestFileStoreSaveError(t *testing.T) {
	fs := NewFileStore(filepath.Join(t.TempDir(), "missing", "plan.wboard"))
	if err := fs.Save([]byte("x")); err == nil {
		t.Errorf("Save into a missing directory returned nil error")
	}
}

// TestFileStoreLoadPermissionError verifies that read failures other
// than a missing file are reported.
func TestFileStoreLoadPermissionError(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("root ignores file permissions")
	}
	path := filepath.Join(t.TempDir(), "plan.wboard")
	if err := os.WriteFile(path, []byte("x"), 0000); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := NewFileStore(path).Load(); err == nil {
		t.Errorf("Load of an unreadable file returned nil error")
	}
}
