package grant

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines grant record data access
type Repository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Record, error)
	Upsert(ctx context.Context, record *Record) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates grant repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByUserID(ctx context.Context, userID uuid.UUID) (*Record, error) {
	query := `SELECT user_id, permissions, created_at, updated_at FROM permission_grants WHERE user_id = $1`
	var record Record
	err := r.db.GetContext(ctx, &record, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *repository) Upsert(ctx context.Context, record *Record) error {
	query := `
		INSERT INTO permission_grants (user_id, permissions, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			permissions = EXCLUDED.permissions,
			updated_at = NOW()
	`
	_, err := r.db.ExecContext(ctx, query, record.UserID, record.Permissions)
	return err
}

func (r *repository) Delete(ctx context.Context, userID uuid.UUID) error {
	query := `DELETE FROM permission_grants WHERE user_id = $1`
	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}
