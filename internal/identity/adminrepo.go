package identity

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/myairobotics/myaisells-admin/internal/ccc/db"
)

// AdminRepository defines the persistence operations for admin accounts
type AdminRepository interface {
	// GetByEmail retrieves an Admin by email. Returns nil if not found.
	GetByEmail(ctx context.Context, email string) (*Admin, error)

	// Count returns the number of admin accounts.
	Count(ctx context.Context) (int, error)

	// Add stores a new Admin
	Add(ctx context.Context, admin *Admin) error
}

// SQLiteAdminRepository implements AdminRepository using SQLite
type SQLiteAdminRepository struct {
	db *sql.DB
}

// NewSQLiteAdminRepository creates a new SQLite-based AdminRepository
func NewSQLiteAdminRepository(database *sql.DB) (*SQLiteAdminRepository, error) {
	repo := &SQLiteAdminRepository{db: database}
	if err := repo.createTables(); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return repo, nil
}

func (r *SQLiteAdminRepository) createTables() error {
	createAdminsTable := `
	CREATE TABLE IF NOT EXISTS admins (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		password_salt TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);`

	_, err := r.db.Exec(createAdminsTable)
	return err
}

// GetByEmail retrieves an Admin by email
func (r *SQLiteAdminRepository) GetByEmail(ctx context.Context, email string) (*Admin, error) {
	query := `
	SELECT id, email, password_hash, password_salt, created_at, updated_at
	FROM admins WHERE email = ?`

	row := r.db.QueryRowContext(ctx, query, email)

	admin := &Admin{}
	var createdAtStr, updatedAtStr string
	err := row.Scan(&admin.ID, &admin.Email, &admin.PasswordHash, &admin.PasswordSalt, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get admin by email: %w", err)
	}

	admin.CreatedAt, err = db.StringToTime(createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	admin.UpdatedAt, err = db.StringToTime(updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse updated_at: %w", err)
	}

	return admin, nil
}

// Count returns the number of admin accounts
func (r *SQLiteAdminRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM admins").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count admins: %w", err)
	}
	return count, nil
}

// Add stores a new Admin
func (r *SQLiteAdminRepository) Add(ctx context.Context, admin *Admin) error {
	query := `
	INSERT INTO admins (id, email, password_hash, password_salt, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		admin.ID, admin.Email, admin.PasswordHash, admin.PasswordSalt,
		db.TimeToString(admin.CreatedAt), db.TimeToString(admin.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to add admin: %w", err)
	}

	return nil
}
