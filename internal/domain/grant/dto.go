package grant

import (
	"time"

	"github.com/google/uuid"

	"github.com/leadly/leadly-api/internal/rbac"
)

// SavePermissionsRequest is the admin edit-dialog save payload. The grant
// decoder also accepts the legacy boolean-map shape.
type SavePermissionsRequest struct {
	Permissions rbac.Grant `json:"permissions" validate:"required"`
}

// PermissionsResponse is the persisted grant for one user
type PermissionsResponse struct {
	UserID      uuid.UUID  `json:"user_id"`
	Permissions rbac.Grant `json:"permissions"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ToResponse converts a record to its API shape
func ToResponse(record *Record) *PermissionsResponse {
	return &PermissionsResponse{
		UserID:      record.UserID,
		Permissions: record.Permissions,
		UpdatedAt:   record.UpdatedAt,
	}
}

// RegistryResponse is the route catalog for one audience, consumed by the
// permission edit screen and menu builders
type RegistryResponse struct {
	Audience rbac.Audience `json:"audience"`
	Routes   []rbac.Route  `json:"routes"`
}

// MenuResponse is the resolved navigation for the caller
type MenuResponse struct {
	Menu []rbac.MenuEntry `json:"menu"`
}
