package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Group-specific validation errors
var (
	ErrEmptyGroupID         = errors.New("group ID cannot be empty")
	ErrEmptyGroupExternalID = errors.New("group external ID cannot be empty")
	ErrEmptyGroupName       = errors.New("group name cannot be empty")
)

// Group represents a collection of users that jointly own tasks.
// Deleting a group removes all of its memberships and tasks.
type Group struct {
	ID         uuid.UUID `json:"id"`
	ExternalID string    `json:"external_id"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewGroup creates a new Group with the given external ID and name.
// It generates a new UUID for the internal ID and sets the
// creation/update timestamps. Returns an error if validation fails.
func NewGroup(externalID, name string) (*Group, error) {
	group := &Group{
		ID:         uuid.New(),
		ExternalID: externalID,
		Name:       name,
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}

	if err := group.Validate(); err != nil {
		return nil, err
	}

	return group, nil
}

// Validate checks if the Group has valid data.
func (g *Group) Validate() error {
	if g.ID == uuid.Nil {
		return ErrEmptyGroupID
	}

	if g.ExternalID == "" {
		return ErrEmptyGroupExternalID
	}

	if g.Name == "" {
		return ErrEmptyGroupName
	}

	return nil
}
