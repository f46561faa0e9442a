package store

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"collectio/internal/adapters/memory"
	"collectio/internal/application"
	"collectio/internal/domain"
)

const loc = "/notes"

// flakyBlobs wraps the memory store with injectable failures and a read counter
type flakyBlobs struct {
	*memory.BlobStore
	readErr  error
	writeErr error
	reads    int
}

func (f *flakyBlobs) Read(ctx context.Context, location string) ([]byte, bool, error) {
	f.reads++
	if f.readErr != nil {
		return nil, false, f.readErr
	}
	return f.BlobStore.Read(ctx, location)
}

func (f *flakyBlobs) Write(ctx context.Context, blob []byte, location string) (string, error) {
	if f.writeErr != nil {
		return "", f.writeErr
	}
	return f.BlobStore.Write(ctx, blob, location)
}

func newTestStore() (*Store, *flakyBlobs) {
	blobs := &flakyBlobs{BlobStore: memory.NewBlobStore()}
	return New(blobs, nil), blobs
}

func userCollection(id string, order int, notes ...string) domain.Collection {
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return domain.Collection{
		ID: id, Name: strings.ToUpper(id), Icon: "folder", Color: "#059669",
		NoteIDs: notes, SortOrder: order, CreatedAt: ts, UpdatedAt: ts,
	}
}

func TestLoad_AbsentBlobIsEmptyList(t *testing.T) {
	s, _ := newTestStore()

	got, err := s.Load(context.Background(), loc, false)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].IsDefault)
	assert.Equal(t, domain.DefaultCollectionID, got[0].ID)
	assert.True(t, s.Cached(loc))
}

func TestLoad_UsesCacheUnlessForced(t *testing.T) {
	s, blobs := newTestStore()
	ctx := context.Background()

	_, err := s.Load(ctx, loc, false)
	require.NoError(t, err)
	_, err = s.Load(ctx, loc, false)
	require.NoError(t, err)
	assert.Equal(t, 1, blobs.reads)

	_, err = s.Load(ctx, loc, true)
	require.NoError(t, err)
	assert.Equal(t, 2, blobs.reads)
}

func TestSave_RoundTripExcludesDefault(t *testing.T) {
	s, blobs := newTestStore()
	ctx := context.Background()

	list := []domain.Collection{
		domain.NewDefaultCollection(),
		userCollection("work", 1, "n1", "n2"),
	}
	require.NoError(t, s.Save(ctx, loc, list))

	raw, ok := blobs.Get(loc)
	require.True(t, ok)
	assert.NotContains(t, string(raw), `"id": "all"`)
	assert.Contains(t, string(raw), `"noteIds"`)

	got, err := s.Load(ctx, loc, true)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].IsDefault)
	assert.Equal(t, "work", got[1].ID)
	assert.Equal(t, []string{"n1", "n2"}, got[1].NoteIDs)
	assert.True(t, got[1].CreatedAt.Equal(list[1].CreatedAt))
}

func TestSave_FailureLeavesCacheUnchanged(t *testing.T) {
	s, blobs := newTestStore()
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, loc, []domain.Collection{userCollection("keep", 1)}))

	blobs.writeErr = errors.New("permission denied")
	err := s.Save(ctx, loc, []domain.Collection{userCollection("lost", 1)})

	var writeErr *application.PersistenceWriteError
	require.ErrorAs(t, err, &writeErr)
	assert.ErrorIs(t, err, blobs.writeErr)

	got, err := s.Load(ctx, loc, false)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "keep", got[1].ID)
}

func TestLoad_MalformedFallsBackToDefaultOnly(t *testing.T) {
	s, blobs := newTestStore()
	blobs.Put(loc, []byte(`{not json`))

	got, err := s.Load(context.Background(), loc, false)

	var readErr *application.PersistenceReadError
	require.ErrorAs(t, err, &readErr)
	assert.True(t, readErr.Malformed)
	require.Len(t, got, 1)
	assert.True(t, got[0].IsDefault)
	assert.False(t, s.Cached(loc), "fallback must not be cached")
}

func TestLoad_ReadErrorIsWrapped(t *testing.T) {
	s, blobs := newTestStore()
	blobs.readErr = errors.New("io failure")

	got, err := s.Load(context.Background(), loc, false)

	assert.Equal(t, application.KindPersistenceRead, application.KindOf(err))
	assert.ErrorIs(t, err, blobs.readErr)
	require.Len(t, got, 1)
}

func TestLoad_DropsReservedRecordAndDedupes(t *testing.T) {
	s, blobs := newTestStore()
	blobs.Put(loc, []byte(`[
		{"id": "all", "name": "Impostor", "noteIds": ["x"], "sortOrder": 0},
		{"id": "", "name": "No id"},
		{"id": "work", "name": "Work", "noteIds": ["n1", "n1", "n2"], "sortOrder": 1}
	]`))

	got, err := s.Load(context.Background(), loc, false)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "All Notes", got[0].Name)
	assert.Empty(t, got[0].NoteIDs)
	assert.Equal(t, []string{"n1", "n2"}, got[1].NoteIDs)
}

func TestInvalidate_NextLoadSeesExternalWrite(t *testing.T) {
	s, blobs := newTestStore()
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, loc, []domain.Collection{userCollection("mine", 1)}))

	// another window overwrites the file
	blobs.Put(loc, []byte(`[{"id": "theirs", "name": "Theirs", "noteIds": [], "sortOrder": 1}]`))

	got, err := s.Load(ctx, loc, false)
	require.NoError(t, err)
	assert.Equal(t, "mine", got[1].ID, "cache is still authoritative before Invalidate")

	s.Invalidate()

	got, err = s.Load(ctx, loc, false)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "theirs", got[1].ID)
}

func TestLoad_ReturnsCopies(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, loc, []domain.Collection{userCollection("work", 1, "n1")}))

	first, err := s.Load(ctx, loc, false)
	require.NoError(t, err)
	first[1].NoteIDs[0] = "tampered"
	first[1].Name = "tampered"

	second, err := s.Load(ctx, loc, false)
	require.NoError(t, err)
	assert.Equal(t, "n1", second[1].NoteIDs[0])
	assert.Equal(t, "WORK", second[1].Name)
}

func TestLoad_CachesPerLocation(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "/a", []domain.Collection{userCollection("in-a", 1)}))
	require.NoError(t, s.Save(ctx, "/b", []domain.Collection{userCollection("in-b", 1)}))

	a, err := s.Load(ctx, "/a", false)
	require.NoError(t, err)
	b, err := s.Load(ctx, "/b", false)
	require.NoError(t, err)

	assert.Equal(t, "in-a", a[1].ID)
	assert.Equal(t, "in-b", b[1].ID)
}

func TestDecode_EmptyBlob(t *testing.T) {
	for _, blob := range []string{"", "  \n", "null"} {
		got, skipped, err := decode([]byte(blob))
		require.NoError(t, err, "blob %q", blob)
		assert.Empty(t, got)
		assert.Empty(t, skipped)
	}
}
