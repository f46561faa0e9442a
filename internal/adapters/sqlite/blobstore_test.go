package sqlite

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *BlobStore {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestBlobStore_ReadAbsent(t *testing.T) {
	store := openTestStore(t)

	blob, found, err := store.Read(context.Background(), "/vault")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found || blob != nil {
		t.Errorf("expected absent, got found=%v blob=%q", found, blob)
	}
}

func TestBlobStore_UpsertPerLocation(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	writes := []struct {
		location string
		payload  string
	}{
		{"/vault/a", `[{"id":"1"}]`},
		{"/vault/b", `[]`},
		{"/vault/a/", `[{"id":"2"}]`},
	}
	for _, w := range writes {
		if _, err := store.Write(ctx, []byte(w.payload), w.location); err != nil {
			t.Fatalf("Write(%s) failed: %v", w.location, err)
		}
	}

	blob, found, err := store.Read(ctx, "/vault/a")
	if err != nil || !found {
		t.Fatalf("Read failed: found=%v err=%v", found, err)
	}
	if string(blob) != `[{"id":"2"}]` {
		t.Errorf("expected the trailing-slash write to replace the row, got %q", blob)
	}

	locations, err := store.Locations(ctx)
	if err != nil {
		t.Fatalf("Locations failed: %v", err)
	}
	if len(locations) != 2 {
		t.Errorf("expected 2 locations, got %v", locations)
	}
}

func TestBlobStore_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persist.db")
	ctx := context.Background()

	first, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if _, err := first.Write(ctx, []byte("[]"), "/vault"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	first.Close()

	second, err := Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer second.Close()

	if _, found, _ := second.Read(ctx, "/vault"); !found {
		t.Error("expected data to survive reopen")
	}
}

func TestDefaultPath_UsesXDGDataHome(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/data")

	if got := DefaultPath(); got != "/data/collectio/collections.db" {
		t.Errorf("unexpected path %s", got)
	}
}
