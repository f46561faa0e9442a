package commands

import (
	"context"
	"fmt"

	"collectio/internal/application"
	"collectio/internal/ports"
)

// DeleteResult contains the result of a delete operation
type DeleteResult struct {
	DeletedID string
	Message   string
}

// DeleteCommand deletes a collection by ID. Member notes are untouched.
type DeleteCommand struct {
	svc      ports.Collections
	Location string
	ID       string
}

// NewDeleteCommand creates a new DeleteCommand
func NewDeleteCommand(svc ports.Collections, location, id string) *DeleteCommand {
	return &DeleteCommand{
		svc:      svc,
		Location: location,
		ID:       id,
	}
}

// Validate checks if the delete operation is valid
func (c *DeleteCommand) Validate() error {
	if err := application.ValidateRequired("location", c.Location); err != nil {
		return err
	}
	if err := application.ValidateRequired("id", c.ID); err != nil {
		return err
	}
	return application.ValidateMutable(c.ID, "delete")
}

// Execute runs the delete command
func (c *DeleteCommand) Execute(ctx context.Context) (*DeleteResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	deleted, err := c.svc.Delete(ctx, c.Location, c.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete %s: %w", c.ID, err)
	}
	if !deleted {
		return nil, &application.NotFoundError{ID: c.ID}
	}

	return &DeleteResult{
		DeletedID: c.ID,
		Message:   fmt.Sprintf("Deleted %s", c.ID),
	}, nil
}
