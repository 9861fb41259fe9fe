package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// ShelfStore defines the interface for shelf storage operations.
type ShelfStore interface {
	// GetOrCreateByName gets an existing shelf by name, or creates it if it doesn't exist.
	GetOrCreateByName(ctx context.Context, name, rootPath string) (ShelfRecord, error)
	// ListAll returns all shelves ordered by name.
	ListAll(ctx context.Context) ([]ShelfRecord, error)
}

// ShelfRepo provides methods for shelf operations.
// It implements the ShelfStore interface.
type ShelfRepo struct {
	db *sql.DB
}

// NewShelfRepo creates a new ShelfRepo.
func NewShelfRepo(db *sql.DB) *ShelfRepo {
	return &ShelfRepo{db: db}
}

// GetOrCreateByName gets an existing shelf by name, or creates it if it doesn't exist.
func (r *ShelfRepo) GetOrCreateByName(ctx context.Context, name, rootPath string) (ShelfRecord, error) {
	// Try to get existing shelf
	var shelf ShelfRecord
	var createdAtStr string
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, root_path, created_at FROM shelves WHERE name = ?",
		name,
	).Scan(&shelf.ID, &shelf.Name, &shelf.RootPath, &createdAtStr)

	if err == nil {
		shelf.CreatedAt, err = parseSQLiteTime(createdAtStr)
		if err != nil {
			return ShelfRecord{}, err
		}
		return shelf, nil
	}

	if err != sql.ErrNoRows {
		return ShelfRecord{}, fmt.Errorf("failed to query shelf: %w", err)
	}

	// Shelf doesn't exist, create it
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO shelves (name, root_path) VALUES (?, ?)",
		name, rootPath,
	)
	if err != nil {
		return ShelfRecord{}, fmt.Errorf("failed to insert shelf: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return ShelfRecord{}, err
	}

	// Get the created shelf with timestamp
	err = r.db.QueryRowContext(ctx,
		"SELECT id, name, root_path, created_at FROM shelves WHERE id = ?",
		id,
	).Scan(&shelf.ID, &shelf.Name, &shelf.RootPath, &createdAtStr)
	if err != nil {
		return ShelfRecord{}, err
	}

	shelf.CreatedAt, err = parseSQLiteTime(createdAtStr)
	if err != nil {
		return ShelfRecord{}, err
	}

	return shelf, nil
}

// ListAll returns all shelves ordered by name.
func (r *ShelfRepo) ListAll(ctx context.Context) ([]ShelfRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, root_path, created_at FROM shelves ORDER BY name",
	)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var shelves []ShelfRecord
	for rows.Next() {
		var shelf ShelfRecord
		var createdAtStr string
		if err := rows.Scan(&shelf.ID, &shelf.Name, &shelf.RootPath, &createdAtStr); err != nil {
			return nil, err
		}

		shelf.CreatedAt, err = parseSQLiteTime(createdAtStr)
		if err != nil {
			return nil, err
		}

		shelves = append(shelves, shelf)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shelves, nil
}

// parseSQLiteTime parses a DATETIME string in either SQLite's default format or RFC3339.
func parseSQLiteTime(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02 15:04:05", s)
	if err == nil {
		return t, nil
	}
	// Try alternative format (SQLite might use different format)
	t, err = time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse timestamp %q: %w", s, err)
	}
	return t, nil
}
