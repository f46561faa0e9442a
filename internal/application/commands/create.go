package commands

import (
	"context"
	"fmt"

	"collectio/internal/application"
	"collectio/internal/domain"
	"collectio/internal/ports"
)

// CreateResult contains the result of creating a collection
type CreateResult struct {
	Collection *domain.Collection
	Message    string
}

// CreateCommand creates a user collection
type CreateCommand struct {
	svc      ports.Collections
	Location string
	Name     string
	Icon     string
	Color    string
}

// NewCreateCommand creates a new CreateCommand
func NewCreateCommand(svc ports.Collections, location, name, icon, color string) *CreateCommand {
	return &CreateCommand{
		svc:      svc,
		Location: location,
		Name:     name,
		Icon:     icon,
		Color:    color,
	}
}

// Validate checks if the create operation is valid
func (c *CreateCommand) Validate() error {
	if err := application.ValidateRequired("location", c.Location); err != nil {
		return err
	}
	return application.ValidateRequired("name", c.Name)
}

// Execute runs the create command
func (c *CreateCommand) Execute(ctx context.Context) (*CreateResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	created, err := c.svc.Create(ctx, c.Location, domain.CreateInput{
		Name:  c.Name,
		Icon:  c.Icon,
		Color: c.Color,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create collection: %w", err)
	}

	return &CreateResult{
		Collection: created,
		Message:    fmt.Sprintf("Created collection: %s (%s)", created.Name, created.ID),
	}, nil
}
