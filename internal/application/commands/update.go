package commands

import (
	"context"
	"fmt"
	"strings"

	"collectio/internal/application"
	"collectio/internal/domain"
	"collectio/internal/ports"
)

// UpdateResult contains the result of an update operation
type UpdateResult struct {
	Collection *domain.Collection
	Message    string
}

// UpdateCommand changes the name, icon or color of a collection
type UpdateCommand struct {
	svc      ports.Collections
	Location string
	ID       string
	Patch    domain.Patch
}

// NewUpdateCommand creates a new UpdateCommand
func NewUpdateCommand(svc ports.Collections, location, id string, patch domain.Patch) *UpdateCommand {
	return &UpdateCommand{
		svc:      svc,
		Location: location,
		ID:       id,
		Patch:    patch,
	}
}

// NewRenameCommand is an UpdateCommand that only sets the name
func NewRenameCommand(svc ports.Collections, location, id, name string) *UpdateCommand {
	return NewUpdateCommand(svc, location, id, domain.Patch{Name: &name})
}

// Validate checks if the update operation is valid
func (c *UpdateCommand) Validate() error {
	if err := application.ValidateRequired("location", c.Location); err != nil {
		return err
	}
	if err := application.ValidateRequired("id", c.ID); err != nil {
		return err
	}
	if err := application.ValidateMutable(c.ID, "update"); err != nil {
		return err
	}
	if c.Patch.IsEmpty() {
		return &application.ValidationError{
			Field:   "patch",
			Message: "nothing to update",
		}
	}
	return application.ValidatePatch(c.Patch)
}

// Execute runs the update command
func (c *UpdateCommand) Execute(ctx context.Context) (*UpdateResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	updated, err := c.svc.Update(ctx, c.Location, c.ID, c.Patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update %s: %w", c.ID, err)
	}
	if updated == nil {
		return nil, &application.NotFoundError{ID: c.ID}
	}

	return &UpdateResult{
		Collection: updated,
		Message:    fmt.Sprintf("Updated %s: %s", updated.ID, describePatch(c.Patch)),
	}, nil
}

func describePatch(p domain.Patch) string {
	var parts []string
	if p.Name != nil {
		parts = append(parts, fmt.Sprintf("name=%q", strings.TrimSpace(*p.Name)))
	}
	if p.Icon != nil {
		parts = append(parts, fmt.Sprintf("icon=%q", *p.Icon))
	}
	if p.Color != nil {
		parts = append(parts, fmt.Sprintf("color=%q", *p.Color))
	}
	return strings.Join(parts, " ")
}

// Eligibility reports whether an edit may be offered for a collection
type Eligibility struct {
	Allowed bool
	Reason  string
}

// CheckEditEligibility determines if a collection can be renamed or deleted
func CheckEditEligibility(svc ports.Collections, id string) Eligibility {
	if svc.IsProtected(id) {
		return Eligibility{
			Allowed: false,
			Reason:  "All Notes can't be renamed or deleted",
		}
	}
	return Eligibility{Allowed: true}
}
