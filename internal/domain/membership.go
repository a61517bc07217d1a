package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Membership-specific validation errors
var (
	ErrEmptyMembershipID    = errors.New("membership ID cannot be empty")
	ErrEmptyMembershipUser  = errors.New("membership user ID cannot be empty")
	ErrEmptyMembershipGroup = errors.New("membership group ID cannot be empty")
	ErrEmptyMembershipRole  = errors.New("membership role cannot be empty")
)

// RoleAdmin is the role assigned to a group's creator on enrollment.
const RoleAdmin = "admin"

// Membership is the join entity granting a User a role within a Group.
// At most one membership exists per (user, group) pair; the pair is
// either absent or present with exactly one role.
type Membership struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	GroupID   uuid.UUID `json:"group_id"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// NewMembership creates a new Membership for the given user/group pair.
// The role is required; there is no default.
func NewMembership(userID, groupID uuid.UUID, role string) (*Membership, error) {
	m := &Membership{
		ID:        uuid.New(),
		UserID:    userID,
		GroupID:   groupID,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	return m, nil
}

// Validate checks if the Membership has valid data.
func (m *Membership) Validate() error {
	if m.ID == uuid.Nil {
		return ErrEmptyMembershipID
	}

	if m.UserID == uuid.Nil {
		return ErrEmptyMembershipUser
	}

	if m.GroupID == uuid.Nil {
		return ErrEmptyMembershipGroup
	}

	if m.Role == "" {
		return ErrEmptyMembershipRole
	}

	return nil
}

// GroupMember is a membership joined with user display data, as
// returned by member listings.
type GroupMember struct {
	UserExternalID string `json:"user_id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           string `json:"role"`
}
