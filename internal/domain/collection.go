package domain

import (
	"slices"
	"time"
)

// DefaultCollectionID is reserved for the synthetic "all notes" collection.
// It is never persisted.
const DefaultCollectionID = "all"

// Collection is a named, user-defined grouping of notes
type Collection struct {
	ID        string
	Name      string
	Icon      string // key into the UI's icon registry, stored opaquely
	Color     string // color token, e.g. "#059669"
	IsDefault bool
	NoteIDs   []string // ordered, no duplicates
	SortOrder int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CollectionWithCount is a collection annotated with its live note count
type CollectionWithCount struct {
	Collection
	NoteCount int
}

// CreateInput holds the user-supplied fields of a new collection
type CreateInput struct {
	Name  string
	Icon  string
	Color string
}

// Patch holds optional field updates. Nil fields are left unchanged.
type Patch struct {
	Name  *string
	Icon  *string
	Color *string
}

// IsEmpty reports whether the patch changes nothing
func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Icon == nil && p.Color == nil
}

// NewDefaultCollection returns the synthetic default collection.
// Its NoteIDs are always empty: membership in it is implied by existence.
func NewDefaultCollection() Collection {
	return Collection{
		ID:        DefaultCollectionID,
		Name:      "All Notes",
		Icon:      "notes",
		IsDefault: true,
	}
}

// IsDefaultID reports whether id names the synthetic default collection
func IsDefaultID(id string) bool {
	return id == DefaultCollectionID
}

// Clone returns a deep copy so callers never share NoteIDs backing arrays
func (c Collection) Clone() Collection {
	c.NoteIDs = slices.Clone(c.NoteIDs)
	return c
}

// HasNote reports whether noteID is a member
func (c *Collection) HasNote(noteID string) bool {
	return slices.Contains(c.NoteIDs, noteID)
}

// AddNote appends noteID if it is not already a member.
// Returns true if membership changed.
func (c *Collection) AddNote(noteID string) bool {
	if c.HasNote(noteID) {
		return false
	}
	c.NoteIDs = append(c.NoteIDs, noteID)
	return true
}

// RemoveNote drops noteID from the membership list.
// Returns true if membership changed.
func (c *Collection) RemoveNote(noteID string) bool {
	before := len(c.NoteIDs)
	c.NoteIDs = slices.DeleteFunc(c.NoteIDs, func(id string) bool { return id == noteID })
	return len(c.NoteIDs) != before
}

// RetainNotes drops every member for which keep returns false.
// Returns the number of ids removed.
func (c *Collection) RetainNotes(keep func(noteID string) bool) int {
	before := len(c.NoteIDs)
	c.NoteIDs = slices.DeleteFunc(c.NoteIDs, func(id string) bool { return !keep(id) })
	return before - len(c.NoteIDs)
}

// DedupeNotes removes repeated ids, keeping first occurrences in order
func (c *Collection) DedupeNotes() {
	if len(c.NoteIDs) < 2 {
		return
	}
	seen := make(map[string]struct{}, len(c.NoteIDs))
	out := c.NoteIDs[:0]
	for _, id := range c.NoteIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	c.NoteIDs = out
}

// CloneAll deep-copies a collection list
func CloneAll(collections []Collection) []Collection {
	if collections == nil {
		return nil
	}
	out := make([]Collection, len(collections))
	for i, c := range collections {
		out[i] = c.Clone()
	}
	return out
}

// FindIndex returns the position of the collection with the given id, or -1
func FindIndex(collections []Collection, id string) int {
	return slices.IndexFunc(collections, func(c Collection) bool { return c.ID == id })
}

// NextSortOrder returns max(existing user sortOrder) + 1, so the first
// user collection gets 1.
func NextSortOrder(collections []Collection) int {
	highest := 0
	for _, c := range collections {
		if c.IsDefault {
			continue
		}
		highest = max(highest, c.SortOrder)
	}
	return highest + 1
}
