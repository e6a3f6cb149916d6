package payments

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/myairobotics/myaisells-admin/internal/ccc/db"
)

const defaultRecentLimit = 50

// PaymentRepository defines the persistence operations for payment records
type PaymentRepository interface {
	// GetRecent returns the most recent payments, newest first. A limit
	// below 1 uses the default.
	GetRecent(ctx context.Context, limit int) ([]*Payment, error)

	// Add stores a payment record
	Add(ctx context.Context, payment *Payment) error
}

// SQLitePaymentRepository implements PaymentRepository using SQLite
type SQLitePaymentRepository struct {
	db *sql.DB
}

// NewSQLitePaymentRepository creates a new SQLite-based PaymentRepository
func NewSQLitePaymentRepository(database *sql.DB) (*SQLitePaymentRepository, error) {
	repo := &SQLitePaymentRepository{db: database}
	if err := repo.createTables(); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return repo, nil
}

func (r *SQLitePaymentRepository) createTables() error {
	createPaymentsTable := `
	CREATE TABLE IF NOT EXISTS payments (
		id TEXT PRIMARY KEY,
		amount INTEGER NOT NULL,
		currency TEXT NOT NULL,
		customer_id TEXT NOT NULL,
		customer_email TEXT NOT NULL,
		customer_name TEXT NOT NULL,
		status TEXT NOT NULL,
		paid INTEGER NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_payments_created_at ON payments(created_at);`

	_, err := r.db.Exec(createPaymentsTable)
	return err
}

// GetRecent returns the most recent payments, newest first
func (r *SQLitePaymentRepository) GetRecent(ctx context.Context, limit int) ([]*Payment, error) {
	if limit < 1 {
		limit = defaultRecentLimit
	}

	query := `
	SELECT id, amount, currency, customer_id, customer_email, customer_name, status, paid, description, created_at
	FROM payments ORDER BY created_at DESC, id LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	result := []*Payment{}
	for rows.Next() {
		payment := &Payment{}
		var paid int
		var createdAtStr string

		err := rows.Scan(&payment.ID, &payment.Amount, &payment.Currency,
			&payment.Customer.ID, &payment.Customer.Email, &payment.Customer.Name,
			&payment.Status, &paid, &payment.Description, &createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}

		payment.Paid = db.IntToBool(paid)
		payment.CreatedAt, err = db.StringToTime(createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}

		result = append(result, payment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}

	return result, nil
}

// Add stores a payment record
func (r *SQLitePaymentRepository) Add(ctx context.Context, payment *Payment) error {
	query := `
	INSERT INTO payments (id, amount, currency, customer_id, customer_email, customer_name, status, paid, description, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		payment.ID, payment.Amount, payment.Currency,
		payment.Customer.ID, payment.Customer.Email, payment.Customer.Name,
		payment.Status, db.BoolToInt(payment.Paid), payment.Description,
		db.TimeToString(payment.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to add payment: %w", err)
	}

	return nil
}
