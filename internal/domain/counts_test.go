package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithCounts_IntersectsWithLiveNotes(t *testing.T) {
	collections := []Collection{
		NewDefaultCollection(),
		{ID: "work", Name: "Work", SortOrder: 1, NoteIDs: []string{"n1", "n2", "n9"}},
	}
	notes := NewNoteSet("n1", "n2", "n3")

	got := WithCounts(collections, notes)

	require.Len(t, got, 2)
	assert.Equal(t, DefaultCollectionID, got[0].ID)
	assert.Equal(t, 3, got[0].NoteCount)
	assert.Equal(t, "work", got[1].ID)
	assert.Equal(t, 2, got[1].NoteCount, "stale member n9 must not be counted")
}

func TestWithCounts_EmptyNoteSet(t *testing.T) {
	collections := []Collection{
		NewDefaultCollection(),
		{ID: "a", SortOrder: 1, NoteIDs: []string{"n1"}},
	}

	got := WithCounts(collections, NoteSet{})

	require.Len(t, got, 2)
	for _, c := range got {
		assert.Zero(t, c.NoteCount, c.ID)
	}
}

func TestWithCounts_OrdersDefaultFirstThenSortOrder(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	collections := []Collection{
		{ID: "c", SortOrder: 3},
		{ID: "b2", SortOrder: 2, CreatedAt: t0.Add(time.Minute)},
		NewDefaultCollection(),
		{ID: "b1", SortOrder: 2, CreatedAt: t0},
		{ID: "a", SortOrder: 1},
	}

	got := WithCounts(collections, NewNoteSet())

	ids := make([]string, len(got))
	for i, c := range got {
		ids[i] = c.ID
	}
	assert.Equal(t, []string{DefaultCollectionID, "a", "b1", "b2", "c"}, ids)
}

func TestWithCounts_DoesNotShareState(t *testing.T) {
	collections := []Collection{{ID: "a", SortOrder: 1, NoteIDs: []string{"n1"}}}

	got := WithCounts(collections, NewNoteSet("n1"))
	got[0].NoteIDs[0] = "mutated"

	assert.Equal(t, "n1", collections[0].NoteIDs[0])
}

func TestNoteCount(t *testing.T) {
	tests := []struct {
		name       string
		collection Collection
		notes      NoteSet
		want       int
	}{
		{
			name:       "default counts every note",
			collection: NewDefaultCollection(),
			notes:      NewNoteSet("a", "b"),
			want:       2,
		},
		{
			name:       "no members",
			collection: Collection{ID: "x"},
			notes:      NewNoteSet("a"),
			want:       0,
		},
		{
			name:       "all members stale",
			collection: Collection{ID: "x", NoteIDs: []string{"gone1", "gone2"}},
			notes:      NewNoteSet("a"),
			want:       0,
		},
		{
			name:       "partial overlap",
			collection: Collection{ID: "x", NoteIDs: []string{"a", "gone", "c"}},
			notes:      NewNoteSet("a", "b", "c"),
			want:       2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NoteCount(tt.collection, tt.notes))
		})
	}
}
