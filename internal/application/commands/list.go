package commands

import (
	"context"
	"fmt"

	"collectio/internal/application"
	"collectio/internal/domain"
	"collectio/internal/ports"
)

// ListCommand lists every collection in display order
type ListCommand struct {
	svc      ports.Collections
	notes    ports.NoteSource
	Location string
}

// NewListCommand creates a new ListCommand
func NewListCommand(svc ports.Collections, notes ports.NoteSource, location string) *ListCommand {
	return &ListCommand{
		svc:      svc,
		notes:    notes,
		Location: location,
	}
}

// Execute runs the list command. Counts reflect the notes that currently exist.
func (c *ListCommand) Execute(ctx context.Context) ([]domain.CollectionWithCount, error) {
	if err := application.ValidateRequired("location", c.Location); err != nil {
		return nil, err
	}

	notes, err := c.notes.CurrentNotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return c.svc.GetCollectionsWithCounts(ctx, c.Location, notes)
}

// ShowCommand returns one collection
type ShowCommand struct {
	svc      ports.Collections
	Location string
	ID       string
}

// NewShowCommand creates a new ShowCommand
func NewShowCommand(svc ports.Collections, location, id string) *ShowCommand {
	return &ShowCommand{
		svc:      svc,
		Location: location,
		ID:       id,
	}
}

// Execute runs the show command
func (c *ShowCommand) Execute(ctx context.Context) (*domain.Collection, error) {
	if err := application.ValidateRequired("id", c.ID); err != nil {
		return nil, err
	}

	got, err := c.svc.GetCollection(ctx, c.Location, c.ID)
	if err != nil {
		return nil, err
	}
	if got == nil {
		return nil, &application.NotFoundError{ID: c.ID}
	}
	return got, nil
}

// ForNoteCommand lists the user collections a note belongs to
type ForNoteCommand struct {
	svc      ports.Collections
	Location string
	NoteID   string
}

// NewForNoteCommand creates a new ForNoteCommand
func NewForNoteCommand(svc ports.Collections, location, noteID string) *ForNoteCommand {
	return &ForNoteCommand{
		svc:      svc,
		Location: location,
		NoteID:   noteID,
	}
}

// Execute runs the for-note command
func (c *ForNoteCommand) Execute(ctx context.Context) ([]domain.Collection, error) {
	if err := application.ValidateRequired("noteID", c.NoteID); err != nil {
		return nil, err
	}
	return c.svc.GetCollectionsForNote(ctx, c.Location, c.NoteID)
}
