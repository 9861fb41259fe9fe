package indexer

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"

	"lesson-shelf/internal/contextutil"
	"lesson-shelf/internal/library"
	"lesson-shelf/internal/markdown"
	"lesson-shelf/internal/storage"
)

// Pipeline orchestrates the indexing of lesson documents into SQLite.
type Pipeline struct {
	manager    *library.Manager
	lessonRepo storage.LessonStore
	blockRepo  storage.BlockStore
	parser     *markdown.Parser
	logger     *slog.Logger
}

// NewPipeline creates a new indexing pipeline.
func NewPipeline(
	manager *library.Manager,
	lessonRepo storage.LessonStore,
	blockRepo storage.BlockStore,
) *Pipeline {
	return &Pipeline{
		manager:    manager,
		lessonRepo: lessonRepo,
		blockRepo:  blockRepo,
		parser:     markdown.NewParser(),
		logger:     slog.Default(),
	}
}

// IndexLesson indexes a single lesson file.
// It checks if the file has changed (via hash), parses it into blocks,
// and replaces the stored block sequence.
func (p *Pipeline) IndexLesson(ctx context.Context, relPath string) error {
	logger := contextutil.LoggerFromContext(ctx)

	content, err := p.manager.ReadLesson(relPath)
	if err != nil {
		return err
	}

	// Compute SHA256 hash
	hash := sha256.Sum256(content)
	hashHex := fmt.Sprintf("%x", hash)

	shelfID := p.manager.Shelf().ID

	// Check existing lesson
	existing, err := p.lessonRepo.GetByShelfAndPath(ctx, shelfID, relPath)
	if err != nil && err != storage.ErrNotFound {
		return fmt.Errorf("failed to check existing lesson: %w", err)
	}

	// Skip re-indexing if hash matches
	if existing != nil && existing.Hash == hashHex {
		logger.DebugContext(ctx, "skipping unchanged file", "rel_path", relPath, "hash", hashHex)
		return nil
	}

	doc, err := p.parser.Parse(content, filepath.Base(relPath))
	if err != nil {
		return fmt.Errorf("failed to parse lesson %s: %w", relPath, err)
	}

	folder := filepath.ToSlash(filepath.Dir(relPath))
	if folder == "." {
		folder = ""
	}

	var lessonID string
	if existing != nil {
		lessonID = existing.ID
	} else {
		lessonID = uuid.New().String()
	}

	lesson := &storage.LessonRecord{
		ID:           lessonID,
		ShelfID:      shelfID,
		RelPath:      relPath,
		Folder:       folder,
		Title:        doc.Title,
		Variant:      doc.Variant,
		CanonicalURL: doc.CanonicalURL(),
		Hash:         hashHex,
	}
	if err := p.lessonRepo.Upsert(ctx, lesson); err != nil {
		return fmt.Errorf("failed to upsert lesson: %w", err)
	}

	// Replace old blocks with the freshly parsed sequence
	if existing != nil {
		if err := p.blockRepo.DeleteByLesson(ctx, lessonID); err != nil {
			return fmt.Errorf("failed to delete old blocks: %w", err)
		}
	}

	for _, block := range doc.Blocks {
		record := &storage.BlockRecord{
			ID:         uuid.New().String(),
			LessonID:   lessonID,
			BlockIndex: block.Index,
			Kind:       block.Kind,
			Level:      block.Level,
			Language:   block.Language,
			URL:        block.URL,
			Alt:        block.Alt,
			Text:       block.Text,
		}
		if err := p.blockRepo.Insert(ctx, record); err != nil {
			return fmt.Errorf("failed to insert block: %w", err)
		}
	}

	logger.InfoContext(ctx, "indexed lesson", "rel_path", relPath, "blocks", len(doc.Blocks), "title", doc.Title)
	return nil
}

// IndexAll scans the shelf and indexes all markdown files, then prunes
// lessons whose files no longer exist on disk.
// Errors for individual files are logged but don't stop the indexing process.
func (p *Pipeline) IndexAll(ctx context.Context) error {
	logger := contextutil.LoggerFromContext(ctx)

	scannedFiles, err := p.manager.ScanAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to scan shelf: %w", err)
	}

	logger.InfoContext(ctx, "starting indexing", "total_files", len(scannedFiles))

	var successCount, errorCount int
	seen := make(map[string]struct{}, len(scannedFiles))

	for _, file := range scannedFiles {
		// Check for context cancellation
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		seen[file.RelPath] = struct{}{}
		if err := p.IndexLesson(ctx, file.RelPath); err != nil {
			logger.ErrorContext(ctx, "failed to index lesson", "rel_path", file.RelPath, "error", err)
			errorCount++
			continue
		}
		successCount++
	}

	// Prune lessons whose source files are gone
	stored, err := p.lessonRepo.ListByShelf(ctx, p.manager.Shelf().ID)
	if err != nil {
		return fmt.Errorf("failed to list stored lessons: %w", err)
	}
	var prunedCount int
	for _, lesson := range stored {
		if _, ok := seen[lesson.RelPath]; ok {
			continue
		}
		if err := p.lessonRepo.Delete(ctx, lesson.ID); err != nil {
			logger.ErrorContext(ctx, "failed to prune lesson", "rel_path", lesson.RelPath, "error", err)
			errorCount++
			continue
		}
		prunedCount++
	}

	logger.InfoContext(ctx, "indexing finished",
		"indexed", successCount, "pruned", prunedCount, "errors", errorCount)

	if errorCount > 0 {
		return fmt.Errorf("indexing finished with %d errors", errorCount)
	}
	return nil
}
