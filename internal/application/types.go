package application

import "collectio/internal/domain"

// Re-export domain types for use by adapters
type (
	Collection          = domain.Collection
	CollectionWithCount = domain.CollectionWithCount
	NoteSet             = domain.NoteSet
	CreateInput         = domain.CreateInput
	Patch               = domain.Patch
)

// DefaultCollectionID is the id of the synthetic "all notes" collection
const DefaultCollectionID = domain.DefaultCollectionID

// IsProtected reports whether the collection id can never be mutated
func IsProtected(id string) bool {
	return domain.IsDefaultID(id)
}
