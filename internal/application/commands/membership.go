package commands

import (
	"context"
	"fmt"

	"collectio/internal/application"
	"collectio/internal/domain"
	"collectio/internal/ports"
)

// MembershipOp selects whether a note is added or removed
type MembershipOp int

const (
	MembershipAdd MembershipOp = iota
	MembershipRemove
)

func (op MembershipOp) String() string {
	if op == MembershipRemove {
		return "remove"
	}
	return "add"
}

// MembershipResult contains the collection after the change
type MembershipResult struct {
	Collection *domain.CollectionWithCount
	Message    string
}

// MembershipCommand adds a note to or removes a note from a collection
type MembershipCommand struct {
	svc          ports.Collections
	notes        ports.NoteSource
	Op           MembershipOp
	Location     string
	CollectionID string
	NoteID       string
}

// NewAddNoteCommand creates a command that adds noteID to a collection
func NewAddNoteCommand(svc ports.Collections, notes ports.NoteSource, location, collectionID, noteID string) *MembershipCommand {
	return newMembershipCommand(svc, notes, MembershipAdd, location, collectionID, noteID)
}

// NewRemoveNoteCommand creates a command that removes noteID from a collection
func NewRemoveNoteCommand(svc ports.Collections, notes ports.NoteSource, location, collectionID, noteID string) *MembershipCommand {
	return newMembershipCommand(svc, notes, MembershipRemove, location, collectionID, noteID)
}

func newMembershipCommand(svc ports.Collections, notes ports.NoteSource, op MembershipOp, location, collectionID, noteID string) *MembershipCommand {
	return &MembershipCommand{
		svc:          svc,
		notes:        notes,
		Op:           op,
		Location:     location,
		CollectionID: collectionID,
		NoteID:       noteID,
	}
}

// Validate checks if the membership change is valid
func (c *MembershipCommand) Validate() error {
	if err := application.ValidateRequired("location", c.Location); err != nil {
		return err
	}
	if err := application.ValidateRequired("collectionID", c.CollectionID); err != nil {
		return err
	}
	if err := application.ValidateRequired("noteID", c.NoteID); err != nil {
		return err
	}
	operation := "add note to"
	if c.Op == MembershipRemove {
		operation = "remove note from"
	}
	return application.ValidateMutable(c.CollectionID, operation)
}

// Execute runs the membership command
func (c *MembershipCommand) Execute(ctx context.Context) (*MembershipResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	notes, err := c.notes.CurrentNotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	var got *domain.CollectionWithCount
	switch c.Op {
	case MembershipRemove:
		got, err = c.svc.RemoveNoteFromCollection(ctx, c.Location, c.CollectionID, c.NoteID, notes)
	default:
		got, err = c.svc.AddNoteToCollection(ctx, c.Location, c.CollectionID, c.NoteID, notes)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to %s note: %w", c.Op, err)
	}
	if got == nil {
		return nil, &application.NotFoundError{ID: c.CollectionID}
	}

	verb, prep := "Added", "to"
	if c.Op == MembershipRemove {
		verb, prep = "Removed", "from"
	}
	return &MembershipResult{
		Collection: got,
		Message:    fmt.Sprintf("%s %s %s %s (%d notes)", verb, c.NoteID, prep, got.Name, got.NoteCount),
	}, nil
}
