package users

import (
	"context"
	"testing"
	"time"

	"github.com/myairobotics/myaisells-admin/internal/ccc/db"
)

func newTestUserRepo(t *testing.T) *SQLiteUserRepository {
	t.Helper()

	database, err := db.NewInMemoryDB()
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	repo, err := NewSQLiteUserRepository(database)
	if err != nil {
		t.Fatalf("Failed to create user repository: %v", err)
	}
	return repo
}

func seedUser(t *testing.T, repo *SQLiteUserRepository, email, username string, createdAt time.Time) *User {
	t.Helper()

	user := &User{
		Email:      email,
		Username:   username,
		FirstName:  "Test",
		LastName:   "User",
		Country:    "DE",
		IsVerified: true,
		IsActive:   true,
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}
	if err := repo.Add(context.Background(), user); err != nil {
		t.Fatalf("Failed to seed user %s: %v", email, err)
	}
	return user
}

func TestSQLiteUserRepository_AddAndGetByID(t *testing.T) {
	repo := newTestUserRepo(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Millisecond)
	user := seedUser(t, repo, "anna@example.com", "anna", now)
	if user.ID == 0 {
		t.Fatal("Expected an ID to be assigned")
	}

	got, err := repo.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got == nil {
		t.Fatal("Expected user, got nil")
	}
	if got.Email != "anna@example.com" || got.Username != "anna" || got.Country != "DE" {
		t.Errorf("Retrieved user does not match: %+v", got)
	}
	if !got.IsVerified || !got.IsActive {
		t.Errorf("Expected flags to round-trip, got %+v", got)
	}
	if !got.CreatedAt.Equal(now) {
		t.Errorf("Expected created_at %v, got %v", now, got.CreatedAt)
	}
}

func TestSQLiteUserRepository_GetByID_NotFound(t *testing.T) {
	repo := newTestUserRepo(t)

	got, err := repo.GetByID(context.Background(), 999)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got != nil {
		t.Errorf("Expected nil for missing user, got %+v", got)
	}
}

func TestSQLiteUserRepository_Query_SortAndPaginate(t *testing.T) {
	repo := newTestUserRepo(t)
	base := time.Now().UTC().Add(-time.Hour)

	seedUser(t, repo, "a@example.com", "alpha", base)
	seedUser(t, repo, "b@example.com", "bravo", base.Add(time.Minute))
	seedUser(t, repo, "c@example.com", "charlie", base.Add(2*time.Minute))

	// Default sort is created_at descending
	result, total, err := repo.Query(context.Background(), UserQuery{Page: 1, PageSize: 2})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if total != 3 {
		t.Errorf("Expected total 3, got %d", total)
	}
	if len(result) != 2 {
		t.Fatalf("Expected 2 users on page 1, got %d", len(result))
	}
	if result[0].Email != "c@example.com" || result[1].Email != "b@example.com" {
		t.Errorf("Unexpected page 1 order: %s, %s", result[0].Email, result[1].Email)
	}

	result, _, err = repo.Query(context.Background(), UserQuery{Page: 2, PageSize: 2})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(result) != 1 || result[0].Email != "a@example.com" {
		t.Errorf("Unexpected page 2 contents: %+v", result)
	}

	// Ascending email sort
	result, _, err = repo.Query(context.Background(), UserQuery{SortBy: SortByEmail, SortDir: "asc", Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if result[0].Email != "a@example.com" || result[2].Email != "c@example.com" {
		t.Errorf("Unexpected ascending order: %+v", result)
	}
}

func TestSQLiteUserRepository_Query_Search(t *testing.T) {
	repo := newTestUserRepo(t)
	now := time.Now().UTC()

	seedUser(t, repo, "anna@example.com", "anna", now)
	seedUser(t, repo, "bob@example.com", "bobby", now)

	result, total, err := repo.Query(context.Background(), UserQuery{Search: "BOBBY"})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if total != 1 || len(result) != 1 {
		t.Fatalf("Expected exactly one match, got total %d, rows %d", total, len(result))
	}
	if result[0].Email != "bob@example.com" {
		t.Errorf("Unexpected match: %s", result[0].Email)
	}

	_, total, err = repo.Query(context.Background(), UserQuery{Search: "nomatch"})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if total != 0 {
		t.Errorf("Expected no matches, got %d", total)
	}
}

func TestSQLiteUserRepository_SetActive(t *testing.T) {
	repo := newTestUserRepo(t)
	ctx := context.Background()

	user := seedUser(t, repo, "anna@example.com", "anna", time.Now().UTC())

	if err := repo.SetActive(ctx, user.ID, false); err != nil {
		t.Fatalf("SetActive failed: %v", err)
	}

	got, err := repo.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.IsActive {
		t.Error("Expected user to be deactivated")
	}

	err = repo.SetActive(ctx, 999, true)
	if !IsUserNotFoundError(err) {
		t.Errorf("Expected UserNotFoundError, got %v", err)
	}
}
