package grant_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/leadly/leadly-api/internal/domain/grant"
	"github.com/leadly/leadly-api/internal/rbac"
)

// fakeRepo is an in-memory grant store with switchable failure modes.
type fakeRepo struct {
	records map[uuid.UUID]*grant.Record

	failGet    error
	failUpsert error
	failDelete error

	upserts int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{records: make(map[uuid.UUID]*grant.Record)}
}

func (f *fakeRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*grant.Record, error) {
	if f.failGet != nil {
		return nil, f.failGet
	}
	return f.records[userID], nil
}

func (f *fakeRepo) Upsert(_ context.Context, record *grant.Record) error {
	if f.failUpsert != nil {
		return f.failUpsert
	}
	f.upserts++
	f.records[record.UserID] = &grant.Record{
		UserID:      record.UserID,
		Permissions: record.Permissions.Clone(),
	}
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, userID uuid.UUID) error {
	if f.failDelete != nil {
		return f.failDelete
	}
	delete(f.records, userID)
	return nil
}

func newService(repo grant.Repository) *grant.Service {
	return grant.NewService(repo, grant.NewCache(nil, 0))
}

func TestSeedWritesRoleDefaults(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)
	userID := uuid.New()

	seeded, err := svc.Seed(context.Background(), userID, rbac.RoleSeller)
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if !seeded.Has("leads", rbac.TagView) || !seeded.Has(rbac.RouteProfile, rbac.TagView) {
		t.Fatalf("seeded grant missing seller defaults: %v", seeded)
	}

	loaded, err := svc.Load(context.Background(), userID)
	if err != nil {
		t.Fatalf("Load after Seed: %v", err)
	}
	if !loaded.Equal(seeded) {
		t.Fatalf("loaded grant %v differs from seeded %v", loaded, seeded)
	}
}

func TestSeedUnknownRoleBlocks(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)

	_, err := svc.Seed(context.Background(), uuid.New(), rbac.Role("contractor"))

	var unknown *rbac.UnknownRoleError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownRoleError, got %v", err)
	}
	if repo.upserts != 0 {
		t.Fatal("nothing may be persisted for an unknown role")
	}
}

func TestLoadMissingRecord(t *testing.T) {
	svc := newService(newFakeRepo())

	_, err := svc.Load(context.Background(), uuid.New())
	if !errors.Is(err, grant.ErrGrantNotFound) {
		t.Fatalf("expected ErrGrantNotFound, got %v", err)
	}
}

func TestLoadWrapsStoreFailure(t *testing.T) {
	repo := newFakeRepo()
	repo.failGet = errors.New("connection refused")
	svc := newService(repo)

	_, err := svc.Load(context.Background(), uuid.New())

	var persistence *grant.PersistenceError
	if !errors.As(err, &persistence) {
		t.Fatalf("expected PersistenceError, got %v", err)
	}
	if persistence.Op != "load" {
		t.Fatalf("PersistenceError.Op = %q, want %q", persistence.Op, "load")
	}
}

func TestSaveCommitsDraft(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)
	userID := uuid.New()

	// A draft that revoked profile; the commit safety net must restore it.
	draft := rbac.Grant{
		"financial": rbac.NewTagSet(rbac.TagView),
	}

	final, err := svc.Save(context.Background(), userID, draft)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !final.Has(rbac.RouteProfile, rbac.TagView) {
		t.Fatal("saved grant must hold the profile baseline")
	}
	if !repo.records[userID].Permissions.Has("financial", rbac.TagView) {
		t.Fatal("saved grant must hold the toggled route")
	}
}

func TestSaveFailureRetainsDraft(t *testing.T) {
	repo := newFakeRepo()
	repo.failUpsert = errors.New("write timeout")
	svc := newService(repo)
	userID := uuid.New()

	// leadly_employee defaults staged with financial toggled on.
	draft, err := rbac.DefaultGrant(rbac.RoleLeadlyEmployee)
	if err != nil {
		t.Fatalf("DefaultGrant: %v", err)
	}
	draft = rbac.ApplyPermissionChange(rbac.RegistryFor(rbac.AudienceAdmin), draft, "financial")

	_, err = svc.Save(context.Background(), userID, draft)

	var persistence *grant.PersistenceError
	if !errors.As(err, &persistence) {
		t.Fatalf("expected PersistenceError, got %v", err)
	}

	// The draft the caller holds is untouched and still carries the toggle,
	// so a retry needs no re-editing.
	if !draft.Has("financial", rbac.TagView) {
		t.Fatal("draft lost the staged toggle after a failed save")
	}

	repo.failUpsert = nil
	final, err := svc.Save(context.Background(), userID, draft)
	if err != nil {
		t.Fatalf("retry Save: %v", err)
	}
	if !final.Has("financial", rbac.TagView) {
		t.Fatal("retried save lost the staged toggle")
	}
}

func TestDeleteRemovesRecord(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)
	userID := uuid.New()

	if _, err := svc.Seed(context.Background(), userID, rbac.RoleManager); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if err := svc.Delete(context.Background(), userID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	_, err := svc.Load(context.Background(), userID)
	if !errors.Is(err, grant.ErrGrantNotFound) {
		t.Fatalf("expected ErrGrantNotFound after delete, got %v", err)
	}
}

func TestVisibleSetAndMenu(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)
	userID := uuid.New()

	if _, err := svc.Seed(context.Background(), userID, rbac.RoleSeller); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	vs, err := svc.VisibleSet(context.Background(), userID, rbac.RoleSeller)
	if err != nil {
		t.Fatalf("VisibleSet: %v", err)
	}
	for _, routeID := range vs.Routes {
		if routeID == "users" || routeID == "financial" {
			t.Fatalf("seller visible set leaked %q", routeID)
		}
	}

	menu, err := svc.Menu(context.Background(), userID, rbac.RoleSeller)
	if err != nil {
		t.Fatalf("Menu: %v", err)
	}
	if len(menu) != len(vs.Routes) {
		t.Fatalf("menu has %d entries for %d visible routes", len(menu), len(vs.Routes))
	}
}
