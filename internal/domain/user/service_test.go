package user_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/leadly/leadly-api/internal/domain/user"
	"github.com/leadly/leadly-api/internal/pkg/password"
	"github.com/leadly/leadly-api/internal/rbac"
)

type fakeUserRepo struct {
	byID    map[uuid.UUID]*user.User
	byEmail map[string]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[uuid.UUID]*user.User),
		byEmail: make(map[string]*user.User),
	}
}

func (f *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	return f.byID[id], nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	return f.byEmail[email], nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	if u, ok := f.byID[id]; ok {
		delete(f.byEmail, u.Email)
		delete(f.byID, id)
	}
	return nil
}

func (f *fakeUserRepo) ListByOrganization(_ context.Context, orgID uuid.UUID) ([]*user.User, error) {
	var out []*user.User
	for _, u := range f.byID {
		if u.OrganizationID.Valid && u.OrganizationID.UUID == orgID {
			out = append(out, u)
		}
	}
	return out, nil
}

type fakeSeeder struct {
	seeded  map[uuid.UUID]rbac.Role
	failErr error
}

func newFakeSeeder() *fakeSeeder {
	return &fakeSeeder{seeded: make(map[uuid.UUID]rbac.Role)}
}

func (f *fakeSeeder) Seed(_ context.Context, userID uuid.UUID, role rbac.Role) (rbac.Grant, error) {
	if f.failErr != nil {
		return nil, f.failErr
	}
	grant, err := rbac.DefaultGrant(role)
	if err != nil {
		return nil, err
	}
	f.seeded[userID] = role
	return grant, nil
}

func (f *fakeSeeder) Delete(_ context.Context, userID uuid.UUID) error {
	delete(f.seeded, userID)
	return nil
}

func provisionRequest() *user.ProvisionRequest {
	return &user.ProvisionRequest{
		Email:    "seller@acme.example",
		Password: "correct-horse-battery",
		Name:     "Acme Seller",
		Role:     string(rbac.RoleSeller),
	}
}

func TestProvisionSeedsGrant(t *testing.T) {
	repo := newFakeUserRepo()
	seeder := newFakeSeeder()
	svc := user.NewService(repo, seeder)

	u, err := svc.Provision(context.Background(), provisionRequest())
	if err != nil {
		t.Fatalf("Provision: %v", err)
	}

	if role, ok := seeder.seeded[u.ID]; !ok || role != rbac.RoleSeller {
		t.Fatalf("grant not seeded for new user: %v", seeder.seeded)
	}
	if u.PasswordHash == "correct-horse-battery" {
		t.Fatal("password stored unhashed")
	}
	if !password.Verify("correct-horse-battery", u.PasswordHash) {
		t.Fatal("stored hash does not verify")
	}
}

func TestProvisionDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := user.NewService(repo, newFakeSeeder())

	if _, err := svc.Provision(context.Background(), provisionRequest()); err != nil {
		t.Fatalf("first Provision: %v", err)
	}
	_, err := svc.Provision(context.Background(), provisionRequest())
	if !errors.Is(err, user.ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestProvisionUnknownRoleBlocksCreation(t *testing.T) {
	repo := newFakeUserRepo()
	svc := user.NewService(repo, newFakeSeeder())

	req := provisionRequest()
	req.Role = "contractor"

	_, err := svc.Provision(context.Background(), req)

	var unknown *rbac.UnknownRoleError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownRoleError, got %v", err)
	}
	if len(repo.byID) != 0 {
		t.Fatal("user must not survive a failed grant seed")
	}
}

func TestProvisionRollsBackOnSeedFailure(t *testing.T) {
	repo := newFakeUserRepo()
	seeder := newFakeSeeder()
	seeder.failErr = errors.New("store down")
	svc := user.NewService(repo, seeder)

	_, err := svc.Provision(context.Background(), provisionRequest())
	if err == nil {
		t.Fatal("expected error from failed seed")
	}
	if len(repo.byID) != 0 {
		t.Fatal("user must be rolled back when seeding fails")
	}
}

func TestDeleteRemovesGrant(t *testing.T) {
	repo := newFakeUserRepo()
	seeder := newFakeSeeder()
	svc := user.NewService(repo, seeder)

	u, err := svc.Provision(context.Background(), provisionRequest())
	if err != nil {
		t.Fatalf("Provision: %v", err)
	}

	if err := svc.Delete(context.Background(), u.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := seeder.seeded[u.ID]; ok {
		t.Fatal("grant record must be removed with its owner")
	}

	err = svc.Delete(context.Background(), u.ID)
	if !errors.Is(err, user.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	repo := newFakeUserRepo()
	svc := user.NewService(repo, newFakeSeeder())

	u, err := svc.Provision(context.Background(), provisionRequest())
	if err != nil {
		t.Fatalf("Provision: %v", err)
	}

	got, err := svc.Authenticate(context.Background(), u.Email, "correct-horse-battery")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("authenticated wrong user: %s", got.ID)
	}

	if _, err := svc.Authenticate(context.Background(), u.Email, "wrong"); !errors.Is(err, user.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "nobody@acme.example", "x"); !errors.Is(err, user.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}
