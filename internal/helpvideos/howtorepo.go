package helpvideos

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/myairobotics/myaisells-admin/internal/ccc/db"
)

// HowToRepository defines the persistence operations for help videos
type HowToRepository interface {
	// GetByID retrieves a HowTo by its ID. Returns nil if not found.
	GetByID(ctx context.Context, id int64) (*HowTo, error)

	// Query retrieves HowTos ordered by creation time (newest first).
	// Returns records and the total count of matching records (before pagination).
	Query(ctx context.Context, query HowToQuery) ([]*HowTo, int, error)

	// CreateBatch stores all given records in a single transaction, preserving
	// slice order. Either every record is persisted or none is. IDs are
	// assigned on success.
	CreateBatch(ctx context.Context, howtos []*HowTo) error
}

// SQLiteHowToRepository implements HowToRepository using SQLite
type SQLiteHowToRepository struct {
	db *sql.DB
}

// NewSQLiteHowToRepository creates a new SQLite-based HowToRepository
func NewSQLiteHowToRepository(database *sql.DB) (*SQLiteHowToRepository, error) {
	repo := &SQLiteHowToRepository{db: database}
	if err := repo.createTables(); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return repo, nil
}

func (r *SQLiteHowToRepository) createTables() error {
	createHowTosTable := `
	CREATE TABLE IF NOT EXISTS howtos (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		status INTEGER NOT NULL,
		duration TEXT NOT NULL,
		main_asset_id TEXT NOT NULL,
		thumbnail_asset_id TEXT NOT NULL,
		created_at TEXT NOT NULL
	);`

	_, err := r.db.Exec(createHowTosTable)
	return err
}

// GetByID retrieves a HowTo by its ID
func (r *SQLiteHowToRepository) GetByID(ctx context.Context, id int64) (*HowTo, error) {
	query := `
	SELECT id, title, description, status, duration, main_asset_id, thumbnail_asset_id, created_at
	FROM howtos WHERE id = ?`

	row := r.db.QueryRowContext(ctx, query, id)

	howto, err := scanHowTo(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get help video by ID: %w", err)
	}

	return howto, nil
}

// Query retrieves HowTos ordered by creation time (newest first)
func (r *SQLiteHowToRepository) Query(ctx context.Context, query HowToQuery) ([]*HowTo, int, error) {
	var totalCount int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM howtos").Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count help videos: %w", err)
	}

	sqlQuery := `
	SELECT id, title, description, status, duration, main_asset_id, thumbnail_asset_id, created_at
	FROM howtos ORDER BY created_at DESC, id DESC`

	var args []any
	if query.Limit != nil {
		sqlQuery += " LIMIT ?"
		args = append(args, *query.Limit)
		if query.Offset != nil {
			sqlQuery += " OFFSET ?"
			args = append(args, *query.Offset)
		}
	}

	rows, err := r.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query help videos: %w", err)
	}
	defer rows.Close()

	var howtos []*HowTo
	for rows.Next() {
		howto, err := scanHowTo(rows.Scan)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan help video: %w", err)
		}
		howtos = append(howtos, howto)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate help videos: %w", err)
	}

	return howtos, totalCount, nil
}

// CreateBatch stores all given records in a single transaction
func (r *SQLiteHowToRepository) CreateBatch(ctx context.Context, howtos []*HowTo) error {
	if len(howtos) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	insert := `
	INSERT INTO howtos (title, description, status, duration, main_asset_id, thumbnail_asset_id, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)`

	ids := make([]int64, len(howtos))
	for i, howto := range howtos {
		result, err := tx.ExecContext(ctx, insert,
			howto.Title, howto.Description, db.BoolToInt(howto.Status), howto.Duration,
			howto.MainAssetID, howto.ThumbnailAssetID, db.TimeToString(howto.CreatedAt),
		)
		if err != nil {
			return fmt.Errorf("failed to insert help video %q: %w", howto.Title, err)
		}

		ids[i], err = result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get inserted ID: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit batch: %w", err)
	}

	// Assign IDs only after the transaction is durable.
	for i, howto := range howtos {
		howto.ID = ids[i]
	}

	return nil
}

func scanHowTo(scan func(dest ...any) error) (*HowTo, error) {
	howto := &HowTo{}
	var statusInt int
	var createdAtStr string

	err := scan(
		&howto.ID, &howto.Title, &howto.Description, &statusInt, &howto.Duration,
		&howto.MainAssetID, &howto.ThumbnailAssetID, &createdAtStr,
	)
	if err != nil {
		return nil, err
	}

	howto.Status = db.IntToBool(statusInt)
	howto.CreatedAt, err = db.StringToTime(createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}

	return howto, nil
}
