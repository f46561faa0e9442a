// Package memory provides an in-process ports.BlobStore. Nothing survives a
// restart; it backs the "memory" backend and tests.
package memory

import (
	"context"
	"path/filepath"
	"slices"
	"sync"

	"collectio/internal/ports"
)

// BlobStore keeps blobs in a map keyed by cleaned location
type BlobStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// Ensure BlobStore implements ports.BlobStore
var _ ports.BlobStore = (*BlobStore)(nil)

// NewBlobStore creates an empty store
func NewBlobStore() *BlobStore {
	return &BlobStore{blobs: make(map[string][]byte)}
}

// Resolve cleans the location so "dir" and "dir/" share one blob
func (b *BlobStore) Resolve(location string) string {
	return filepath.Join(filepath.Clean(location), "collections.json")
}

// Read returns a copy of the stored blob
func (b *BlobStore) Read(ctx context.Context, location string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	blob, ok := b.blobs[b.Resolve(location)]
	if !ok {
		return nil, false, nil
	}
	return slices.Clone(blob), true, nil
}

// Write replaces the stored blob
func (b *BlobStore) Write(ctx context.Context, blob []byte, location string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	key := b.Resolve(location)
	b.mu.Lock()
	defer b.mu.Unlock()
	b.blobs[key] = slices.Clone(blob)
	return key, nil
}

// Put stores raw bytes, bypassing serialization. Useful to simulate another
// window writing the same location.
func (b *BlobStore) Put(location string, blob []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.blobs[b.Resolve(location)] = slices.Clone(blob)
}

// Get returns the raw stored bytes
func (b *BlobStore) Get(location string) ([]byte, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	blob, ok := b.blobs[b.Resolve(location)]
	return slices.Clone(blob), ok
}
