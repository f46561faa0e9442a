package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"collectio/internal/ports"
)

// FileName is the blob file kept in every save location
const FileName = "collections.json"

// BlobStore implements ports.BlobStore with one JSON file per save location
type BlobStore struct{}

// Ensure BlobStore implements ports.BlobStore
var _ ports.BlobStore = (*BlobStore)(nil)

// NewBlobStore creates a new filesystem blob store
func NewBlobStore() *BlobStore {
	return &BlobStore{}
}

// Resolve returns the collections file for a save location
func (b *BlobStore) Resolve(location string) string {
	return filepath.Join(ExpandPath(location), FileName)
}

// Read returns the file contents. A missing file is reported as not found,
// not as an error.
func (b *BlobStore) Read(ctx context.Context, location string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	data, err := os.ReadFile(b.Resolve(location))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read collections file: %w", err)
	}
	return data, true, nil
}

// Write replaces the file atomically: the blob goes to a temp file in the
// same directory which is then renamed over the target.
func (b *BlobStore) Write(ctx context.Context, blob []byte, location string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := b.Resolve(location)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create save location: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+FileName+".*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op after a successful rename

	if _, err := tmp.Write(blob); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write collections file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to sync collections file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close collections file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return "", fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return "", fmt.Errorf("failed to replace collections file: %w", err)
	}
	return path, nil
}
