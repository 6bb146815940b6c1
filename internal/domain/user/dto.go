package user

import (
	"time"

	"github.com/google/uuid"

	"github.com/leadly/leadly-api/internal/rbac"
)

// ProvisionRequest creates a new account
type ProvisionRequest struct {
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=8,max=72"`
	Name           string `json:"name" validate:"required,min=2,max=100"`
	Role           string `json:"role" validate:"required,role"`
	OrganizationID string `json:"organization_id,omitempty"`
}

// LoginRequest authenticates an account
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued token
type LoginResponse struct {
	Token     string        `json:"token"`
	ExpiresIn int64         `json:"expires_in"`
	User      *UserResponse `json:"user"`
}

// UserResponse is the API shape of a user
type UserResponse struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	Role           rbac.Role `json:"role"`
	OrganizationID string    `json:"organization_id,omitempty"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

// ToResponse converts a user to its API shape
func ToResponse(u *User) *UserResponse {
	resp := &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
	if u.OrganizationID.Valid {
		resp.OrganizationID = u.OrganizationID.UUID.String()
	}
	return resp
}
