package payments

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/myairobotics/myaisells-admin/internal/ccc/db"
)

func newTestPaymentRepo(t *testing.T) *SQLitePaymentRepository {
	t.Helper()

	database, err := db.NewInMemoryDB()
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	repo, err := NewSQLitePaymentRepository(database)
	if err != nil {
		t.Fatalf("Failed to create payment repository: %v", err)
	}
	return repo
}

func seedPayment(t *testing.T, repo *SQLitePaymentRepository, id string, createdAt time.Time) *Payment {
	t.Helper()

	payment := &Payment{
		ID:       id,
		Amount:   4900,
		Currency: "usd",
		Customer: PaymentCustomer{
			ID:    "cus_123",
			Email: "anna@example.com",
			Name:  "Anna Example",
		},
		Status:      "succeeded",
		Paid:        true,
		Description: "Pro plan",
		CreatedAt:   createdAt,
	}
	if err := repo.Add(context.Background(), payment); err != nil {
		t.Fatalf("Failed to seed payment %s: %v", id, err)
	}
	return payment
}

func TestSQLitePaymentRepository_AddAndGetRecent(t *testing.T) {
	repo := newTestPaymentRepo(t)

	now := time.Now().UTC().Truncate(time.Millisecond)
	seedPayment(t, repo, "py_1", now.Add(-2*time.Hour))
	seedPayment(t, repo, "py_2", now.Add(-time.Hour))
	seedPayment(t, repo, "py_3", now)

	result, err := repo.GetRecent(context.Background(), 10)
	if err != nil {
		t.Fatalf("GetRecent failed: %v", err)
	}

	if len(result) != 3 {
		t.Fatalf("Expected 3 payments, got %d", len(result))
	}
	if result[0].ID != "py_3" || result[1].ID != "py_2" || result[2].ID != "py_1" {
		t.Errorf("Unexpected order: %s, %s, %s", result[0].ID, result[1].ID, result[2].ID)
	}

	got := result[0]
	if got.Amount != 4900 || got.Currency != "usd" || !got.Paid || got.Status != "succeeded" {
		t.Errorf("Payment did not round-trip: %+v", got)
	}
	if got.Customer.Email != "anna@example.com" || got.Customer.Name != "Anna Example" {
		t.Errorf("Customer did not round-trip: %+v", got.Customer)
	}
	if !got.CreatedAt.Equal(now) {
		t.Errorf("Expected created_at %v, got %v", now, got.CreatedAt)
	}
}

func TestSQLitePaymentRepository_GetRecent_Limit(t *testing.T) {
	repo := newTestPaymentRepo(t)

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		seedPayment(t, repo, fmt.Sprintf("py_%d", i), base.Add(time.Duration(i)*time.Minute))
	}

	result, err := repo.GetRecent(context.Background(), 2)
	if err != nil {
		t.Fatalf("GetRecent failed: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("Expected 2 payments, got %d", len(result))
	}
	if result[0].ID != "py_4" {
		t.Errorf("Expected newest payment first, got %s", result[0].ID)
	}
}

func TestSQLitePaymentRepository_GetRecent_Empty(t *testing.T) {
	repo := newTestPaymentRepo(t)

	result, err := repo.GetRecent(context.Background(), 0)
	if err != nil {
		t.Fatalf("GetRecent failed: %v", err)
	}
	if len(result) != 0 {
		t.Errorf("Expected no payments, got %d", len(result))
	}
}
