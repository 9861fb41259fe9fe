package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_block_store.go -package=mocks lesson-shelf/internal/storage BlockStore

import (
	"context"
	"database/sql"
	"fmt"
)

// BlockStore defines the interface for block storage operations.
type BlockStore interface {
	// Insert inserts a single block into the database.
	// The block.ID must be set (UUID) before calling this method.
	Insert(ctx context.Context, block *BlockRecord) error
	// DeleteByLesson deletes all blocks for a given lesson ID.
	DeleteByLesson(ctx context.Context, lessonID string) error
	// ListByLesson returns all blocks for a given lesson, ordered by block_index.
	ListByLesson(ctx context.Context, lessonID string) ([]*BlockRecord, error)
	// CountByKind returns a count of blocks per kind across all lessons.
	CountByKind(ctx context.Context) (map[string]int, error)
}

// BlockRepo provides methods for block operations.
// It implements the BlockStore interface.
type BlockRepo struct {
	db *sql.DB
}

// NewBlockRepo creates a new BlockRepo.
func NewBlockRepo(db *sql.DB) *BlockRepo {
	return &BlockRepo{db: db}
}

// DB exposes the underlying database handle for stats queries.
func (r *BlockRepo) DB() *sql.DB {
	return r.db
}

// Insert inserts a single block into the database.
// The block.ID must be set (UUID) before calling this method.
func (r *BlockRepo) Insert(ctx context.Context, block *BlockRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO blocks (id, lesson_id, block_index, kind, level, language, url, alt, text)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		block.ID, block.LessonID, block.BlockIndex, block.Kind,
		block.Level, block.Language, block.URL, block.Alt, block.Text,
	)
	if err != nil {
		return fmt.Errorf("failed to insert block: %w", err)
	}
	return nil
}

// DeleteByLesson deletes all blocks for a given lesson ID.
// Used when re-indexing a lesson to remove old blocks before inserting new ones.
func (r *BlockRepo) DeleteByLesson(ctx context.Context, lessonID string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM blocks WHERE lesson_id = ?", lessonID)
	if err != nil {
		return fmt.Errorf("failed to delete blocks by lesson: %w", err)
	}
	return nil
}

// ListByLesson returns all blocks for a given lesson, ordered by block_index.
// Returns an empty slice if no blocks exist (not an error).
func (r *BlockRepo) ListByLesson(ctx context.Context, lessonID string) ([]*BlockRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, lesson_id, block_index, kind, level, language, url, alt, text
		 FROM blocks WHERE lesson_id = ? ORDER BY block_index`,
		lessonID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query blocks: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var blocks []*BlockRecord
	for rows.Next() {
		var block BlockRecord
		if err := rows.Scan(&block.ID, &block.LessonID, &block.BlockIndex, &block.Kind,
			&block.Level, &block.Language, &block.URL, &block.Alt, &block.Text); err != nil {
			return nil, fmt.Errorf("failed to scan block: %w", err)
		}
		blocks = append(blocks, &block)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return blocks, nil
}

// CountByKind returns a count of blocks per kind across all lessons.
func (r *BlockRepo) CountByKind(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT kind, COUNT(*) FROM blocks GROUP BY kind")
	if err != nil {
		return nil, fmt.Errorf("failed to query block counts: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	counts := make(map[string]int)
	for rows.Next() {
		var kind string
		var count int
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, fmt.Errorf("failed to scan block count: %w", err)
		}
		counts[kind] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return counts, nil
}
