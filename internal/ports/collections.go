package ports

import (
	"context"

	"collectio/internal/domain"
)

// NoteSource supplies the current note set from the note store
type NoteSource interface {
	CurrentNotes(ctx context.Context) (domain.NoteSet, error)
}

// Subscriber receives the recomputed collection list after changes.
// A returned error is reported but never stops delivery to other subscribers.
// A Subscriber must not trigger an immediate notification from inside the
// callback; deliveries are serialized and it would wait on itself.
type Subscriber func(collections []domain.CollectionWithCount) error

// Collections is the query, mutation and subscription surface consumed by
// the CLI, MCP and TUI adapters. location is the save location directory.
type Collections interface {
	// Queries
	GetAllCollections(ctx context.Context, location string) ([]domain.Collection, error)
	GetCollection(ctx context.Context, location, id string) (*domain.Collection, error)
	GetCollectionsForNote(ctx context.Context, location, noteID string) ([]domain.Collection, error)
	GetCollectionsWithCounts(ctx context.Context, location string, notes domain.NoteSet) ([]domain.CollectionWithCount, error)
	IsProtected(id string) bool

	// Mutations
	Create(ctx context.Context, location string, input domain.CreateInput) (*domain.Collection, error)
	Update(ctx context.Context, location, id string, patch domain.Patch) (*domain.Collection, error)
	Delete(ctx context.Context, location, id string) (bool, error)
	AddNoteToCollection(ctx context.Context, location, collectionID, noteID string, notes domain.NoteSet) (*domain.CollectionWithCount, error)
	RemoveNoteFromCollection(ctx context.Context, location, collectionID, noteID string, notes domain.NoteSet) (*domain.CollectionWithCount, error)

	// Note lifecycle hooks
	HandleNoteCreated(ctx context.Context, location, noteID string, notes domain.NoteSet) error
	HandleNoteDeleted(ctx context.Context, location, noteID string, notes domain.NoteSet) error
	HandleNotesDeleted(ctx context.Context, location string, noteIDs []string, notes domain.NoteSet) error
	PruneStale(ctx context.Context, location string, notes domain.NoteSet) (int, error)

	// Subscriptions
	Subscribe(fn Subscriber) (unsubscribe func())
	ObserveNotes(notes domain.NoteSet)
	Invalidate()
	Cleanup()
}
