package domain

import "slices"

// NoteSet is the set of note ids currently known to the note store.
// The zero value is an empty set.
type NoteSet struct {
	ids map[string]struct{}
}

// NewNoteSet builds a set from ids, ignoring duplicates and empty strings
func NewNoteSet(ids ...string) NoteSet {
	s := NoteSet{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		if id == "" {
			continue
		}
		s.ids[id] = struct{}{}
	}
	return s
}

// Contains reports whether id is in the set
func (s NoteSet) Contains(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of notes
func (s NoteSet) Len() int {
	return len(s.ids)
}

// IDs returns the ids in sorted order
func (s NoteSet) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// Without returns a copy of the set minus the given ids
func (s NoteSet) Without(ids ...string) NoteSet {
	out := NoteSet{ids: make(map[string]struct{}, len(s.ids))}
	for id := range s.ids {
		out.ids[id] = struct{}{}
	}
	for _, id := range ids {
		delete(out.ids, id)
	}
	return out
}
