package commands

import (
	"context"
	"fmt"
	"strings"

	"collectio/internal/application"
	"collectio/internal/ports"
)

// LifecycleResult contains the result of a note lifecycle hook
type LifecycleResult struct {
	Removed int
	Message string
}

// NoteCreatedCommand tells the collection service a note appeared
type NoteCreatedCommand struct {
	svc      ports.Collections
	notes    ports.NoteSource
	Location string
	NoteID   string
}

// NewNoteCreatedCommand creates a new NoteCreatedCommand
func NewNoteCreatedCommand(svc ports.Collections, notes ports.NoteSource, location, noteID string) *NoteCreatedCommand {
	return &NoteCreatedCommand{
		svc:      svc,
		notes:    notes,
		Location: location,
		NoteID:   noteID,
	}
}

// Execute runs the note-created hook
func (c *NoteCreatedCommand) Execute(ctx context.Context) (*LifecycleResult, error) {
	if err := application.ValidateRequired("noteID", c.NoteID); err != nil {
		return nil, err
	}

	notes, err := c.notes.CurrentNotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	if err := c.svc.HandleNoteCreated(ctx, c.Location, c.NoteID, notes); err != nil {
		return nil, err
	}

	return &LifecycleResult{Message: fmt.Sprintf("Recorded new note %s", c.NoteID)}, nil
}

// NoteDeletedCommand removes deleted notes from every collection
type NoteDeletedCommand struct {
	svc      ports.Collections
	notes    ports.NoteSource
	Location string
	NoteIDs  []string
}

// NewNoteDeletedCommand creates a new NoteDeletedCommand
func NewNoteDeletedCommand(svc ports.Collections, notes ports.NoteSource, location string, noteIDs ...string) *NoteDeletedCommand {
	return &NoteDeletedCommand{
		svc:      svc,
		notes:    notes,
		Location: location,
		NoteIDs:  noteIDs,
	}
}

// Validate checks that at least one note id was given and none is blank
func (c *NoteDeletedCommand) Validate() error {
	if len(c.NoteIDs) == 0 {
		return &application.ValidationError{
			Field:   "noteID",
			Message: "note ID is required",
		}
	}
	for _, id := range c.NoteIDs {
		if err := application.ValidateRequired("noteID", id); err != nil {
			return err
		}
	}
	return nil
}

// Execute runs the note-deleted hook
func (c *NoteDeletedCommand) Execute(ctx context.Context) (*LifecycleResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	notes, err := c.notes.CurrentNotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	// the note source may still list a note whose file is being removed
	notes = notes.Without(c.NoteIDs...)

	if err := c.svc.HandleNotesDeleted(ctx, c.Location, c.NoteIDs, notes); err != nil {
		return nil, err
	}

	return &LifecycleResult{
		Message: fmt.Sprintf("Removed %s from all collections", strings.Join(c.NoteIDs, ", ")),
	}, nil
}

// PruneCommand drops members whose notes no longer exist
type PruneCommand struct {
	svc      ports.Collections
	notes    ports.NoteSource
	Location string
}

// NewPruneCommand creates a new PruneCommand
func NewPruneCommand(svc ports.Collections, notes ports.NoteSource, location string) *PruneCommand {
	return &PruneCommand{
		svc:      svc,
		notes:    notes,
		Location: location,
	}
}

// Execute runs the prune command
func (c *PruneCommand) Execute(ctx context.Context) (*LifecycleResult, error) {
	if err := application.ValidateRequired("location", c.Location); err != nil {
		return nil, err
	}

	notes, err := c.notes.CurrentNotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	removed, err := c.svc.PruneStale(ctx, c.Location, notes)
	if err != nil {
		return nil, err
	}

	msg := "No stale memberships"
	if removed > 0 {
		msg = fmt.Sprintf("Pruned %d stale memberships", removed)
	}
	return &LifecycleResult{Removed: removed, Message: msg}, nil
}
