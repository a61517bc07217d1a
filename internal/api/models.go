package api

import (
	"time"

	"github.com/phrazzld/taskhub-api/internal/domain"
)

// Entities are exposed under their external identifier only; internal
// primary keys never leave the API.

// UserResponse represents the response data for a user.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUserResponse converts a domain User into its API shape.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ExternalID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// GroupResponse represents the response data for a group.
type GroupResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewGroupResponse converts a domain Group into its API shape.
func NewGroupResponse(group *domain.Group) GroupResponse {
	return GroupResponse{
		ID:        group.ExternalID,
		Name:      group.Name,
		CreatedAt: group.CreatedAt,
		UpdatedAt: group.UpdatedAt,
	}
}

// MemberResponse represents one entry in a group member listing.
type MemberResponse struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// NewMemberResponse converts a domain GroupMember into its API shape.
func NewMemberResponse(member *domain.GroupMember) MemberResponse {
	return MemberResponse{
		UserID: member.UserExternalID,
		Name:   member.Name,
		Email:  member.Email,
		Role:   member.Role,
	}
}

// TaskResponse represents the response data for a task.
type TaskResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      int        `json:"status"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewTaskResponse converts a domain Task into its API shape.
func NewTaskResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ExternalID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Deadline:    task.Deadline,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// RegisterUserRequest represents the request body for registering a user.
type RegisterUserRequest struct {
	Name     string `json:"name"     validate:"required,min=1"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// UpdateUserRequest represents a partial user update. Nil fields are
// left untouched.
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=8"`
}

// CreateGroupRequest represents the request body for creating a group.
// The creator is enrolled as "admin" automatically.
type CreateGroupRequest struct {
	Name      string `json:"name"       validate:"required,min=1"`
	CreatorID string `json:"creator_id" validate:"required"`
}

// UpdateGroupRequest represents the request body for renaming a group.
type UpdateGroupRequest struct {
	Name string `json:"name" validate:"required,min=1"`
}

// EnrollMemberRequest represents the request body for enrolling a user
// into a group. The role is required; there is no default.
type EnrollMemberRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Role   string `json:"role"    validate:"required,min=1"`
}

// UpdateMemberRoleRequest represents the request body for changing a
// member's role.
type UpdateMemberRoleRequest struct {
	Role string `json:"role" validate:"required,min=1"`
}

// CreateTaskRequest represents the request body for creating a task.
// Deadline, when present, must be RFC 3339.
type CreateTaskRequest struct {
	Title       string  `json:"title"       validate:"required,min=1"`
	Description string  `json:"description"`
	Status      int     `json:"status"      validate:"gte=0"`
	Deadline    *string `json:"deadline"`
}

// UpdateTaskRequest represents a partial task update. Nil fields are
// left untouched; present fields must carry the right JSON type.
type UpdateTaskRequest struct {
	Title       *string `json:"title"       validate:"omitempty,min=1"`
	Description *string `json:"description"`
	Status      *int    `json:"status"      validate:"omitempty,gte=0"`
	Deadline    *string `json:"deadline"`
}
