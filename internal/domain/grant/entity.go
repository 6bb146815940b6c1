package grant

import (
	"time"

	"github.com/google/uuid"

	"github.com/leadly/leadly-api/internal/rbac"
)

// Record is the persisted permission grant for one user. Ownership follows
// the user entity: the record is created when the user is provisioned and
// removed when the user is deleted.
type Record struct {
	UserID      uuid.UUID  `db:"user_id" json:"user_id"`
	Permissions rbac.Grant `db:"permissions" json:"permissions"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}
