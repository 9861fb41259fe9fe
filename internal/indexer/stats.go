package indexer

import (
	"context"
	"fmt"

	"lesson-shelf/internal/storage"
)

// CoverageStats contains statistics about the indexed shelf.
type CoverageStats struct {
	// LessonsIndexed is the total number of lessons in the database.
	LessonsIndexed int `json:"lessons_indexed"`
	// LessonsWithoutBlocks is the number of lessons that produced no blocks.
	LessonsWithoutBlocks int `json:"lessons_without_blocks"`
	// LessonsWithMetadata is the number of lessons carrying a canonical lesson link.
	LessonsWithMetadata int `json:"lessons_with_metadata"`
	// BlocksByKind is a per-kind count of stored blocks.
	BlocksByKind map[string]int `json:"blocks_by_kind"`
}

// CoverageStats computes index coverage from the database.
func (p *Pipeline) CoverageStats(ctx context.Context) (*CoverageStats, error) {
	lessonRepo, ok := p.lessonRepo.(*storage.LessonRepo)
	if !ok {
		return nil, fmt.Errorf("lessonRepo is not *storage.LessonRepo, cannot query stats")
	}

	db := lessonRepo.DB()
	stats := &CoverageStats{}

	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM lessons").Scan(&stats.LessonsIndexed); err != nil {
		return nil, fmt.Errorf("failed to count lessons: %w", err)
	}

	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM lessons
		 WHERE id NOT IN (SELECT DISTINCT lesson_id FROM blocks)`,
	).Scan(&stats.LessonsWithoutBlocks)
	if err != nil {
		return nil, fmt.Errorf("failed to count lessons without blocks: %w", err)
	}

	err = db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM lessons WHERE canonical_url != ''",
	).Scan(&stats.LessonsWithMetadata)
	if err != nil {
		return nil, fmt.Errorf("failed to count lessons with metadata: %w", err)
	}

	counts, err := p.blockRepo.CountByKind(ctx)
	if err != nil {
		return nil, err
	}
	stats.BlocksByKind = counts

	return stats, nil
}
