package domain

import (
	"cmp"
	"slices"
)

// NoteCount returns how many of c's members exist in notes.
// The default collection counts every note.
func NoteCount(c Collection, notes NoteSet) int {
	if c.IsDefault {
		return notes.Len()
	}
	n := 0
	for _, id := range c.NoteIDs {
		if notes.Contains(id) {
			n++
		}
	}
	return n
}

// WithCounts computes the display list: the default collection first, then
// user collections by SortOrder. Counts intersect NoteIDs with notes so stale
// members of deleted notes are never counted. The input is not modified.
func WithCounts(collections []Collection, notes NoteSet) []CollectionWithCount {
	ordered := SortForDisplay(collections)
	out := make([]CollectionWithCount, 0, len(ordered))
	for _, c := range ordered {
		out = append(out, CollectionWithCount{
			Collection: c,
			NoteCount:  NoteCount(c, notes),
		})
	}
	return out
}

// SortForDisplay returns a sorted deep copy: default first, then SortOrder
// ascending with CreatedAt and ID as tie breakers.
func SortForDisplay(collections []Collection) []Collection {
	out := CloneAll(collections)
	slices.SortStableFunc(out, func(a, b Collection) int {
		switch {
		case a.IsDefault && !b.IsDefault:
			return -1
		case b.IsDefault && !a.IsDefault:
			return 1
		}
		if c := cmp.Compare(a.SortOrder, b.SortOrder); c != 0 {
			return c
		}
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}
