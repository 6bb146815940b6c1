package user

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/leadly/leadly-api/internal/pkg/password"
	"github.com/leadly/leadly-api/internal/rbac"
)

// GrantSeeder provisions and removes permission grants alongside users.
type GrantSeeder interface {
	Seed(ctx context.Context, userID uuid.UUID, role rbac.Role) (rbac.Grant, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}

// Service handles user provisioning and authentication
type Service struct {
	repo   Repository
	grants GrantSeeder
}

// NewService creates user service
func NewService(repo Repository, grants GrantSeeder) *Service {
	return &Service{repo: repo, grants: grants}
}

// Provision creates a user and seeds its permission grant from the role
// default table. An unknown role blocks creation; a grant-store failure
// rolls the user back so no account exists without a grant record.
func (s *Service) Provision(ctx context.Context, req *ProvisionRequest) (*User, error) {
	role := rbac.Role(req.Role)

	existing, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	u := &User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if req.OrganizationID != "" {
		orgID, err := uuid.Parse(req.OrganizationID)
		if err != nil {
			return nil, err
		}
		u.OrganizationID = uuid.NullUUID{UUID: orgID, Valid: true}
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	if _, err := s.grants.Seed(ctx, u.ID, role); err != nil {
		// No user without a grant record.
		if delErr := s.repo.Delete(ctx, u.ID); delErr != nil {
			log.Error().Err(delErr).Str("user_id", u.ID.String()).Msg("Rollback of provisioned user failed")
		}
		return nil, err
	}

	return u, nil
}

// GetByID returns user by ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// Delete removes a user and the grant record it owns
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrUserNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	return s.grants.Delete(ctx, id)
}

// Authenticate verifies credentials and returns the user
func (s *Service) Authenticate(ctx context.Context, email, pass string) (*User, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil || !password.Verify(pass, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, ErrUserInactive
	}
	return u, nil
}
