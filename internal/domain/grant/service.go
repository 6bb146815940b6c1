package grant

import (
	"context"

	"github.com/google/uuid"

	"github.com/leadly/leadly-api/internal/rbac"
)

// Service owns the grant lifecycle: seeding at provisioning, loading for
// permission checks, and the admin save flow. All resolution itself happens
// in the rbac package; this layer only moves grants in and out of storage.
type Service struct {
	repo  Repository
	cache *Cache
}

// NewService creates grant service
func NewService(repo Repository, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

// Load returns the stored grant for a user. A user without a record gets
// ErrGrantNotFound; store failures come back as PersistenceError.
func (s *Service) Load(ctx context.Context, userID uuid.UUID) (rbac.Grant, error) {
	if grant, ok := s.cache.Get(ctx, userID); ok {
		return grant, nil
	}

	record, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, &PersistenceError{Op: "load", Err: err}
	}
	if record == nil {
		return nil, ErrGrantNotFound
	}

	s.cache.Set(ctx, userID, record.Permissions)
	return record.Permissions, nil
}

// Get returns the full stored record for the admin edit screen. Always a
// fresh read, so the editor starts from what is actually persisted.
func (s *Service) Get(ctx context.Context, userID uuid.UUID) (*Record, error) {
	record, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, &PersistenceError{Op: "get", Err: err}
	}
	if record == nil {
		return nil, ErrGrantNotFound
	}
	return record, nil
}

// Seed writes the role's default grant for a freshly provisioned user.
// An unknown role fails loudly and must block user creation.
func (s *Service) Seed(ctx context.Context, userID uuid.UUID, role rbac.Role) (rbac.Grant, error) {
	defaults, err := rbac.DefaultGrant(role)
	if err != nil {
		return nil, err
	}

	record := &Record{UserID: userID, Permissions: defaults}
	if err := s.repo.Upsert(ctx, record); err != nil {
		return nil, &PersistenceError{Op: "seed", Err: err}
	}

	s.cache.Invalidate(ctx, userID)
	return defaults, nil
}

// Save commits an edited draft: profile is force-granted, then the result is
// persisted. On failure the caller's draft stays untouched (the draft is
// never mutated here), so the edit dialog can retry without re-toggling.
func (s *Service) Save(ctx context.Context, userID uuid.UUID, draft rbac.Grant) (rbac.Grant, error) {
	final := rbac.CommitPermissionChanges(draft)

	record := &Record{UserID: userID, Permissions: final}
	if err := s.repo.Upsert(ctx, record); err != nil {
		return nil, &PersistenceError{Op: "save", Err: err}
	}

	s.cache.Invalidate(ctx, userID)
	return final, nil
}

// Delete removes a user's grant record, called when the owning user is
// deleted.
func (s *Service) Delete(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.Delete(ctx, userID); err != nil {
		return &PersistenceError{Op: "delete", Err: err}
	}
	s.cache.Invalidate(ctx, userID)
	return nil
}

// VisibleSet resolves the visible routes and tabs for a user against the
// registry of the user's audience.
func (s *Service) VisibleSet(ctx context.Context, userID uuid.UUID, role rbac.Role) (rbac.VisibleSet, error) {
	grant, err := s.Load(ctx, userID)
	if err != nil {
		return rbac.VisibleSet{}, err
	}
	return rbac.ResolveVisibleSet(rbac.RegistryForRole(role), grant), nil
}

// Menu builds the renderable navigation for a user.
func (s *Service) Menu(ctx context.Context, userID uuid.UUID, role rbac.Role) ([]rbac.MenuEntry, error) {
	grant, err := s.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return rbac.BuildMenu(rbac.RegistryForRole(role), grant)
}
