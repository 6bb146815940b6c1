package user

import (
	"time"

	"github.com/google/uuid"

	"github.com/leadly/leadly-api/internal/rbac"
)

// User represents a platform account. Organization-side users carry the
// organization they belong to; Leadly staff accounts have none.
type User struct {
	ID             uuid.UUID     `db:"id" json:"id"`
	Email          string        `db:"email" json:"email"`
	PasswordHash   string        `db:"password_hash" json:"-"`
	Name           string        `db:"name" json:"name"`
	Role           rbac.Role     `db:"role" json:"role"`
	OrganizationID uuid.NullUUID `db:"organization_id" json:"organization_id,omitempty"`
	IsActive       bool          `db:"is_active" json:"is_active"`
	CreatedAt      time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time     `db:"updated_at" json:"updated_at"`
}
