package identity

import (
	"context"
	"testing"
	"time"

	"github.com/myairobotics/myaisells-admin/internal/ccc/db"
)

func newTestAdminRepo(t *testing.T) *SQLiteAdminRepository {
	t.Helper()

	database, err := db.NewInMemoryDB()
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	repo, err := NewSQLiteAdminRepository(database)
	if err != nil {
		t.Fatalf("Failed to create admin repository: %v", err)
	}
	return repo
}

func TestSQLiteAdminRepository_AddAndGetByEmail(t *testing.T) {
	repo := newTestAdminRepo(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Millisecond)
	admin := &Admin{
		ID:           "admin-1",
		Email:        "admin@example.com",
		PasswordHash: "hash",
		PasswordSalt: "salt",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := repo.Add(ctx, admin); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	got, err := repo.GetByEmail(ctx, "admin@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if got == nil {
		t.Fatal("Expected admin, got nil")
	}
	if got.ID != admin.ID || got.PasswordHash != admin.PasswordHash || got.PasswordSalt != admin.PasswordSalt {
		t.Errorf("Retrieved admin does not match: %+v", got)
	}
	if !got.CreatedAt.Equal(now) {
		t.Errorf("Expected created_at %v, got %v", now, got.CreatedAt)
	}
}

func TestSQLiteAdminRepository_GetByEmail_NotFound(t *testing.T) {
	repo := newTestAdminRepo(t)

	got, err := repo.GetByEmail(context.Background(), "missing@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if got != nil {
		t.Errorf("Expected nil for missing admin, got %+v", got)
	}
}

func TestSQLiteAdminRepository_Count(t *testing.T) {
	repo := newTestAdminRepo(t)
	ctx := context.Background()

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 admins, got %d", count)
	}

	now := time.Now().UTC()
	if err := repo.Add(ctx, &Admin{ID: "a1", Email: "a1@example.com", PasswordHash: "h", PasswordSalt: "s", CreatedAt: now, UpdatedAt: now}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	count, err = repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 admin, got %d", count)
	}
}
