package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/example/parish-booker/internal/persistence"
	"github.com/example/parish-booker/internal/testfixtures"
)

func TestUserRepository_CreateUser(t *testing.T) {
	harness := testfixtures.NewSQLiteHarness(t, nil)
	ctx := context.Background()

	admin := testfixtures.NewUserFixture(
		testfixtures.WithUserID("u1"),
		testfixtures.WithUsername("admin"),
		testfixtures.WithUserPassword("password"),
	)
	if err := harness.Users.CreateUser(ctx, admin.Persistence()); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	retrieved, err := harness.Users.GetUser(ctx, "u1")
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if retrieved.Username != "admin" || retrieved.Password != "password" {
		t.Fatalf("unexpected user %+v", retrieved)
	}
}

func TestUserRepository_CreateUser_DuplicateUsername(t *testing.T) {
	harness := testfixtures.NewSQLiteHarness(t, nil)
	ctx := context.Background()

	admin := testfixtures.NewUserFixture(testfixtures.WithUsername("admin"))
	if err := harness.Users.CreateUser(ctx, admin.Persistence()); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	clash := testfixtures.NewUserFixture(testfixtures.WithUsername("ADMIN"))
	if err := harness.Users.CreateUser(ctx, clash.Persistence()); !errors.Is(err, persistence.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate for case-insensitive clash, got %v", err)
	}
}

func TestUserRepository_GetUserByUsername(t *testing.T) {
	harness := testfixtures.NewSQLiteHarness(t, nil)
	ctx := context.Background()

	member := testfixtures.NewUserFixture(
		testfixtures.WithUserID("u2"),
		testfixtures.WithUsername("user"),
		testfixtures.WithUserName("Juan Pérez"),
	)
	if err := harness.Users.CreateUser(ctx, member.Persistence()); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	retrieved, err := harness.Users.GetUserByUsername(ctx, "USER")
	if err != nil {
		t.Fatalf("GetUserByUsername failed: %v", err)
	}
	if retrieved.ID != "u2" {
		t.Fatalf("unexpected user %+v", retrieved)
	}

	if _, err := harness.Users.GetUserByUsername(ctx, "ghost"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserRepository_UpdateUser(t *testing.T) {
	harness := testfixtures.NewSQLiteHarness(t, nil)
	ctx := context.Background()

	member := testfixtures.NewUserFixture(
		testfixtures.WithUserID("u2"),
		testfixtures.WithUsername("user"),
		testfixtures.WithUserPassword("password"),
	)
	if err := harness.Users.CreateUser(ctx, member.Persistence()); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	updated := member.Persistence()
	updated.Password = "fresh"
	if err := harness.Users.UpdateUser(ctx, updated); err != nil {
		t.Fatalf("UpdateUser failed: %v", err)
	}

	retrieved, err := harness.Users.GetUser(ctx, "u2")
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if retrieved.Password != "fresh" {
		t.Fatalf("expected updated password, got %q", retrieved.Password)
	}

	ghost := testfixtures.NewUserFixture(testfixtures.WithUserID("missing"))
	if err := harness.Users.UpdateUser(ctx, ghost.Persistence()); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
