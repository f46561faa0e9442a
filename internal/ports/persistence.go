package ports

import "context"

// BlobStore persists the serialized snapshot of every collection record.
// Implementations do whole-blob overwrites only; there is no partial write.
type BlobStore interface {
	// Read returns the blob stored for location. found is false (with a nil
	// error) when nothing has been saved there yet.
	Read(ctx context.Context, location string) (blob []byte, found bool, err error)

	// Write replaces the blob for location and returns the resolved path
	Write(ctx context.Context, blob []byte, location string) (resolvedPath string, err error)

	// Resolve maps a caller-supplied location to the concrete path or key
	Resolve(location string) string
}
