package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_lesson_store.go -package=mocks lesson-shelf/internal/storage LessonStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// LessonStore defines the interface for lesson storage operations.
type LessonStore interface {
	// GetByShelfAndPath gets a lesson by shelf ID and relative path.
	// Returns nil and ErrNotFound if not found.
	GetByShelfAndPath(ctx context.Context, shelfID int, relPath string) (*LessonRecord, error)
	// GetByID gets a lesson by its ID. Returns ErrNotFound if not found.
	GetByID(ctx context.Context, id string) (*LessonRecord, error)
	// ListByShelf returns all lessons for a shelf ordered by relative path.
	ListByShelf(ctx context.Context, shelfID int) ([]*LessonRecord, error)
	// Upsert inserts a new lesson or updates an existing one.
	Upsert(ctx context.Context, lesson *LessonRecord) error
	// Delete removes a lesson (and, via cascade, its blocks).
	Delete(ctx context.Context, id string) error
}

// LessonRepo provides methods for lesson operations.
// It implements the LessonStore interface.
type LessonRepo struct {
	db *sql.DB
}

// NewLessonRepo creates a new LessonRepo.
func NewLessonRepo(db *sql.DB) *LessonRepo {
	return &LessonRepo{db: db}
}

// DB exposes the underlying database handle for stats queries.
func (r *LessonRepo) DB() *sql.DB {
	return r.db
}

const lessonColumns = "id, shelf_id, rel_path, folder, title, variant, canonical_url, updated_at, hash"

// scanLesson scans one lesson row, parsing the updated_at DATETIME string.
func scanLesson(scan func(dest ...any) error) (*LessonRecord, error) {
	var lesson LessonRecord
	var updatedAtStr string

	err := scan(&lesson.ID, &lesson.ShelfID, &lesson.RelPath, &lesson.Folder,
		&lesson.Title, &lesson.Variant, &lesson.CanonicalURL, &updatedAtStr, &lesson.Hash)
	if err != nil {
		return nil, err
	}

	lesson.UpdatedAt, err = parseSQLiteTime(updatedAtStr)
	if err != nil {
		return nil, err
	}

	return &lesson, nil
}

// GetByShelfAndPath gets a lesson by shelf ID and relative path.
// Returns nil and ErrNotFound if not found.
func (r *LessonRepo) GetByShelfAndPath(ctx context.Context, shelfID int, relPath string) (*LessonRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+lessonColumns+" FROM lessons WHERE shelf_id = ? AND rel_path = ?",
		shelfID, relPath,
	)

	lesson, err := scanLesson(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query lesson: %w", err)
	}

	return lesson, nil
}

// GetByID gets a lesson by its ID. Returns ErrNotFound if not found.
func (r *LessonRepo) GetByID(ctx context.Context, id string) (*LessonRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+lessonColumns+" FROM lessons WHERE id = ?",
		id,
	)

	lesson, err := scanLesson(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query lesson: %w", err)
	}

	return lesson, nil
}

// ListByShelf returns all lessons for a shelf ordered by relative path.
// Returns an empty slice if the shelf holds no lessons (not an error).
func (r *LessonRepo) ListByShelf(ctx context.Context, shelfID int) ([]*LessonRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+lessonColumns+" FROM lessons WHERE shelf_id = ? ORDER BY rel_path",
		shelfID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query lessons: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var lessons []*LessonRecord
	for rows.Next() {
		lesson, err := scanLesson(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lesson: %w", err)
		}
		lessons = append(lessons, lesson)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return lessons, nil
}

// Upsert inserts a new lesson or updates an existing one.
// If the lesson doesn't exist (by shelf_id and rel_path), generates a new UUID.
// If it exists, updates the mutable columns while preserving the ID.
func (r *LessonRepo) Upsert(ctx context.Context, lesson *LessonRecord) error {
	// Check if lesson exists to determine if we need to generate UUID
	existing, err := r.GetByShelfAndPath(ctx, lesson.ShelfID, lesson.RelPath)
	if err != nil && err != ErrNotFound {
		return fmt.Errorf("failed to check existing lesson: %w", err)
	}

	// Generate UUID for new lessons only
	if existing == nil && lesson.ID == "" {
		lesson.ID = uuid.New().String()
	} else if existing != nil {
		// Preserve existing ID
		lesson.ID = existing.ID
	}

	// Use SQLite INSERT ... ON CONFLICT syntax for upsert
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO lessons (id, shelf_id, rel_path, folder, title, variant, canonical_url, updated_at, hash)
		 VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, ?)
		 ON CONFLICT (shelf_id, rel_path) DO UPDATE SET
		 title = excluded.title, variant = excluded.variant, canonical_url = excluded.canonical_url,
		 updated_at = CURRENT_TIMESTAMP, hash = excluded.hash`,
		lesson.ID, lesson.ShelfID, lesson.RelPath, lesson.Folder,
		lesson.Title, lesson.Variant, lesson.CanonicalURL, lesson.Hash,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert lesson: %w", err)
	}

	return nil
}

// Delete removes a lesson by ID. Blocks are removed via ON DELETE CASCADE.
func (r *LessonRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM lessons WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete lesson: %w", err)
	}
	return nil
}
