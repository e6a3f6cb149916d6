package assets

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/myairobotics/myaisells-admin/internal/ccc/db"
)

// FileAssetRepository defines the persistence operations for stored assets.
type FileAssetRepository interface {
	// GetByID retrieves a FileAsset by its ID. Returns nil if not found.
	GetByID(ctx context.Context, id string) (*FileAsset, error)

	// Add stores a new FileAsset record.
	Add(ctx context.Context, asset *FileAsset) error
}

// SQLiteFileAssetRepository implements FileAssetRepository using SQLite
type SQLiteFileAssetRepository struct {
	db *sql.DB
}

// NewSQLiteFileAssetRepository creates a new SQLite-based FileAssetRepository
func NewSQLiteFileAssetRepository(database *sql.DB) (*SQLiteFileAssetRepository, error) {
	repo := &SQLiteFileAssetRepository{db: database}
	if err := repo.createTables(); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return repo, nil
}

func (r *SQLiteFileAssetRepository) createTables() error {
	createAssetsTable := `
	CREATE TABLE IF NOT EXISTS file_assets (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		path TEXT NOT NULL,
		content_type TEXT NOT NULL,
		size INTEGER NOT NULL,
		tag TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);`

	_, err := r.db.Exec(createAssetsTable)
	return err
}

// GetByID retrieves a FileAsset by its ID
func (r *SQLiteFileAssetRepository) GetByID(ctx context.Context, id string) (*FileAsset, error) {
	query := `
	SELECT id, name, path, content_type, size, tag, created_at, updated_at
	FROM file_assets WHERE id = ?`

	row := r.db.QueryRowContext(ctx, query, id)

	asset := &FileAsset{}
	var createdAtStr, updatedAtStr string
	err := row.Scan(&asset.ID, &asset.Name, &asset.Path, &asset.ContentType, &asset.Size, &asset.Tag, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get file asset by ID: %w", err)
	}

	asset.CreatedAt, err = db.StringToTime(createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	asset.UpdatedAt, err = db.StringToTime(updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse updated_at: %w", err)
	}

	return asset, nil
}

// Add stores a new FileAsset record
func (r *SQLiteFileAssetRepository) Add(ctx context.Context, asset *FileAsset) error {
	query := `
	INSERT INTO file_assets (id, name, path, content_type, size, tag, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		asset.ID, asset.Name, asset.Path, asset.ContentType, asset.Size, asset.Tag,
		db.TimeToString(asset.CreatedAt), db.TimeToString(asset.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to add file asset: %w", err)
	}

	return nil
}
