package blobstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DiskStore stores blobs as files under a base directory, one file per
// handle.
type DiskStore struct {
	dir string
}

// NewDiskStore creates a DiskStore rooted at dir, creating it if
// needed.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create blob directory: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// Save writes the content to a new uuid-named file, keeping the
// original extension.
func (s *DiskStore) Save(_ context.Context, name string, r io.Reader) (string, error) {
	handle := uuid.New().String() + strings.ToLower(filepath.Ext(name))

	f, err := os.Create(filepath.Join(s.dir, handle))
	if err != nil {
		return "", fmt.Errorf("failed to create blob file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("failed to write blob file: %w", err)
	}
	return handle, nil
}

// Remove deletes the file behind a handle. Handles must be plain file
// names; anything path-like is rejected.
func (s *DiskStore) Remove(_ context.Context, handle string) error {
	if handle == "" || handle == "." || handle == ".." || path.Base(handle) != handle {
		return fmt.Errorf("invalid blob handle: %q", handle)
	}
	if err := os.Remove(filepath.Join(s.dir, handle)); err != nil {
		return fmt.Errorf("failed to remove blob file: %w", err)
	}
	return nil
}
