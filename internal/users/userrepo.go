package users

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/myairobotics/myaisells-admin/internal/ccc/db"
)

const defaultPageSize = 20

// UserRepository defines the persistence operations for platform users
type UserRepository interface {
	// GetByID retrieves a User by id. Returns nil if not found.
	GetByID(ctx context.Context, id int64) (*User, error)

	// Query returns a page of users matching the query along with the
	// total number of matching rows
	Query(ctx context.Context, query UserQuery) ([]*User, int, error)

	// SetActive updates the active flag of a user. Returns
	// UserNotFoundError if the user does not exist.
	SetActive(ctx context.Context, id int64, active bool) error

	// Add stores a new User and assigns its ID
	Add(ctx context.Context, user *User) error
}

// SQLiteUserRepository implements UserRepository using SQLite
type SQLiteUserRepository struct {
	db *sql.DB
}

// NewSQLiteUserRepository creates a new SQLite-based UserRepository
func NewSQLiteUserRepository(database *sql.DB) (*SQLiteUserRepository, error) {
	repo := &SQLiteUserRepository{db: database}
	if err := repo.createTables(); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return repo, nil
}

func (r *SQLiteUserRepository) createTables() error {
	createUsersTable := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		email TEXT NOT NULL UNIQUE,
		username TEXT NOT NULL,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		country TEXT NOT NULL DEFAULT '',
		is_verified INTEGER NOT NULL DEFAULT 0,
		is_active INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_users_created_at ON users(created_at);
	CREATE INDEX IF NOT EXISTS idx_users_country ON users(country);`

	_, err := r.db.Exec(createUsersTable)
	return err
}

// GetByID retrieves a User by id
func (r *SQLiteUserRepository) GetByID(ctx context.Context, id int64) (*User, error) {
	query := `
	SELECT id, email, username, first_name, last_name, country, is_verified, is_active, created_at, updated_at
	FROM users WHERE id = ?`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

// Query returns a page of users matching the query along with the total count
func (r *SQLiteUserRepository) Query(ctx context.Context, query UserQuery) ([]*User, int, error) {
	where := ""
	args := []any{}

	if query.Search != "" {
		where = ` WHERE email LIKE ? OR username LIKE ? OR first_name LIKE ? OR last_name LIKE ?`
		pattern := "%" + strings.ToLower(query.Search) + "%"
		args = append(args, pattern, pattern, pattern, pattern)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	sortBy := query.SortBy
	switch sortBy {
	case SortByEmail, SortByUsername, SortByCreatedAt:
	default:
		sortBy = SortByCreatedAt
	}
	sortDir := "DESC"
	if strings.EqualFold(query.SortDir, "asc") {
		sortDir = "ASC"
	}

	pageSize := query.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	page := query.Page
	if page < 1 {
		page = 1
	}

	sqlQuery := `
	SELECT id, email, username, first_name, last_name, country, is_verified, is_active, created_at, updated_at
	FROM users` + where +
		fmt.Sprintf(" ORDER BY %s %s, id %s LIMIT ? OFFSET ?", sortBy, sortDir, sortDir)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	result := []*User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan user: %w", err)
		}
		result = append(result, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate users: %w", err)
	}

	return result, total, nil
}

// SetActive updates the active flag of a user
func (r *SQLiteUserRepository) SetActive(ctx context.Context, id int64, active bool) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE users SET is_active = ?, updated_at = ? WHERE id = ?",
		db.BoolToInt(active), db.TimeToString(time.Now().UTC()), id)
	if err != nil {
		return fmt.Errorf("failed to update user status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return NewUserNotFoundError(id)
	}

	return nil
}

// Add stores a new User and assigns its ID
func (r *SQLiteUserRepository) Add(ctx context.Context, user *User) error {
	query := `
	INSERT INTO users (email, username, first_name, last_name, country, is_verified, is_active, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		user.Email, user.Username, user.FirstName, user.LastName, user.Country,
		db.BoolToInt(user.IsVerified), db.BoolToInt(user.IsActive),
		db.TimeToString(user.CreatedAt), db.TimeToString(user.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to add user: %w", err)
	}

	user.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read user id: %w", err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*User, error) {
	user := &User{}
	var isVerified, isActive int
	var createdAtStr, updatedAtStr string

	err := row.Scan(&user.ID, &user.Email, &user.Username, &user.FirstName, &user.LastName,
		&user.Country, &isVerified, &isActive, &createdAtStr, &updatedAtStr)
	if err != nil {
		return nil, err
	}

	user.IsVerified = db.IntToBool(isVerified)
	user.IsActive = db.IntToBool(isActive)

	user.CreatedAt, err = db.StringToTime(createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	user.UpdatedAt, err = db.StringToTime(updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse updated_at: %w", err)
	}

	return user, nil
}
