package indexer

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/mock/gomock"

	"lesson-shelf/internal/library"
	"lesson-shelf/internal/storage"
	"lesson-shelf/internal/storage/mocks"
)

// fixture wires a pipeline over a temp lessons root and a real SQLite store.
type fixture struct {
	pipeline   *Pipeline
	manager    *library.Manager
	lessonRepo *storage.LessonRepo
	blockRepo  *storage.BlockRepo
	root       string
	db         *sql.DB
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()

	db, err := storage.New(t.TempDir() + "/test.db")
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	if err := storage.Migrate(db); err != nil {
		t.Fatalf("storage.Migrate() error = %v", err)
	}

	manager, err := library.NewManager(context.Background(), storage.NewShelfRepo(db), root)
	if err != nil {
		t.Fatalf("library.NewManager() error = %v", err)
	}

	lessonRepo := storage.NewLessonRepo(db)
	blockRepo := storage.NewBlockRepo(db)

	return &fixture{
		pipeline:   NewPipeline(manager, lessonRepo, blockRepo),
		manager:    manager,
		lessonRepo: lessonRepo,
		blockRepo:  blockRepo,
		root:       root,
		db:         db,
	}
}

func (f *fixture) writeLesson(t *testing.T, relPath, content string) {
	t.Helper()
	abs := filepath.Join(f.root, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(abs, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
}

func TestPipeline_IndexLesson(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.writeLesson(t, "inheritance.md",
		"# Inheritance\n\nA class can inherit.\n\n```swift\nclass Student: Person {}\n```\n\n<!-- lesson: https://lessons.example.com/swift/inheritance -->\n")

	if err := f.pipeline.IndexLesson(ctx, "inheritance.md"); err != nil {
		t.Fatalf("IndexLesson() error = %v", err)
	}

	lesson, err := f.lessonRepo.GetByShelfAndPath(ctx, f.manager.Shelf().ID, "inheritance.md")
	if err != nil {
		t.Fatalf("GetByShelfAndPath() error = %v", err)
	}
	if lesson.Title != "Inheritance" {
		t.Errorf("Title = %q, want Inheritance", lesson.Title)
	}
	if lesson.CanonicalURL != "https://lessons.example.com/swift/inheritance" {
		t.Errorf("CanonicalURL = %q", lesson.CanonicalURL)
	}

	blocks, err := f.blockRepo.ListByLesson(ctx, lesson.ID)
	if err != nil {
		t.Fatalf("ListByLesson() error = %v", err)
	}
	if len(blocks) != 4 {
		t.Fatalf("ListByLesson() = %d blocks, want 4", len(blocks))
	}
	if blocks[2].Kind != storage.BlockKindCode || blocks[2].Language != "swift" {
		t.Errorf("block 2 = %+v, want swift code block", blocks[2])
	}
	if blocks[3].Kind != storage.BlockKindHTML {
		t.Errorf("block 3 kind = %q, want html", blocks[3].Kind)
	}
}

func TestPipeline_IndexLesson_SkipsUnchanged(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.writeLesson(t, "inheritance.md", "# Inheritance\n\nText.\n")

	if err := f.pipeline.IndexLesson(ctx, "inheritance.md"); err != nil {
		t.Fatalf("IndexLesson() error = %v", err)
	}
	lesson, err := f.lessonRepo.GetByShelfAndPath(ctx, f.manager.Shelf().ID, "inheritance.md")
	if err != nil {
		t.Fatalf("GetByShelfAndPath() error = %v", err)
	}
	blocksBefore, err := f.blockRepo.ListByLesson(ctx, lesson.ID)
	if err != nil {
		t.Fatalf("ListByLesson() error = %v", err)
	}

	// Second run with identical content: blocks stay untouched (same IDs)
	if err := f.pipeline.IndexLesson(ctx, "inheritance.md"); err != nil {
		t.Fatalf("IndexLesson() second error = %v", err)
	}
	blocksAfter, err := f.blockRepo.ListByLesson(ctx, lesson.ID)
	if err != nil {
		t.Fatalf("ListByLesson() error = %v", err)
	}
	if len(blocksBefore) != len(blocksAfter) {
		t.Fatalf("block count changed: %d -> %d", len(blocksBefore), len(blocksAfter))
	}
	for i := range blocksBefore {
		if blocksBefore[i].ID != blocksAfter[i].ID {
			t.Errorf("block %d was rewritten despite unchanged content", i)
		}
	}
}

func TestPipeline_IndexLesson_ReplacesBlocksOnChange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.writeLesson(t, "inheritance.md", "# Inheritance\n\nOld text.\n")
	if err := f.pipeline.IndexLesson(ctx, "inheritance.md"); err != nil {
		t.Fatalf("IndexLesson() error = %v", err)
	}

	f.writeLesson(t, "inheritance.md", "# Inheritance\n\nNew text.\n\n## Overriding\n\nMore.\n")
	if err := f.pipeline.IndexLesson(ctx, "inheritance.md"); err != nil {
		t.Fatalf("IndexLesson() second error = %v", err)
	}

	lesson, err := f.lessonRepo.GetByShelfAndPath(ctx, f.manager.Shelf().ID, "inheritance.md")
	if err != nil {
		t.Fatalf("GetByShelfAndPath() error = %v", err)
	}
	blocks, err := f.blockRepo.ListByLesson(ctx, lesson.ID)
	if err != nil {
		t.Fatalf("ListByLesson() error = %v", err)
	}
	if len(blocks) != 4 {
		t.Fatalf("ListByLesson() = %d blocks, want 4", len(blocks))
	}
	if blocks[1].Text != "New text." {
		t.Errorf("block 1 text = %q, want updated text", blocks[1].Text)
	}
}

func TestPipeline_IndexAll_PrunesDeleted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.writeLesson(t, "keep.md", "# Keep\n\nText.\n")
	f.writeLesson(t, "drop.md", "# Drop\n\nText.\n")

	if err := f.pipeline.IndexAll(ctx); err != nil {
		t.Fatalf("IndexAll() error = %v", err)
	}

	if err := os.Remove(filepath.Join(f.root, "drop.md")); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	if err := f.pipeline.IndexAll(ctx); err != nil {
		t.Fatalf("IndexAll() second error = %v", err)
	}

	lessons, err := f.lessonRepo.ListByShelf(ctx, f.manager.Shelf().ID)
	if err != nil {
		t.Fatalf("ListByShelf() error = %v", err)
	}
	if len(lessons) != 1 || lessons[0].RelPath != "keep.md" {
		t.Errorf("IndexAll() did not prune: %+v", lessons)
	}
}

func TestPipeline_IndexAll_ContinuesOnFileError(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.writeLesson(t, "good.md", "# Good\n\nText.\n")
	// Invalid front matter makes this file fail to parse
	f.writeLesson(t, "bad.md", "---\ntitle: [unclosed\n---\n\nBody.\n")

	err := f.pipeline.IndexAll(ctx)
	if err == nil {
		t.Fatal("IndexAll() expected error summary, got nil")
	}

	// The good lesson still landed
	if _, err := f.lessonRepo.GetByShelfAndPath(ctx, f.manager.Shelf().ID, "good.md"); err != nil {
		t.Errorf("good.md was not indexed: %v", err)
	}
}

func TestPipeline_IndexLesson_StoreErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	root := t.TempDir()
	db, err := storage.New(t.TempDir() + "/test.db")
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}
	defer func() {
		_ = db.Close()
	}()
	if err := storage.Migrate(db); err != nil {
		t.Fatalf("storage.Migrate() error = %v", err)
	}
	manager, err := library.NewManager(context.Background(), storage.NewShelfRepo(db), root)
	if err != nil {
		t.Fatalf("library.NewManager() error = %v", err)
	}

	if err := os.WriteFile(filepath.Join(root, "lesson.md"), []byte("# L\n\nText.\n"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	lessonStore := mocks.NewMockLessonStore(ctrl)
	blockStore := mocks.NewMockBlockStore(ctrl)

	storeErr := errors.New("disk full")
	lessonStore.EXPECT().
		GetByShelfAndPath(gomock.Any(), gomock.Any(), "lesson.md").
		Return(nil, storage.ErrNotFound)
	lessonStore.EXPECT().
		Upsert(gomock.Any(), gomock.Any()).
		Return(storeErr)

	pipeline := NewPipeline(manager, lessonStore, blockStore)

	if err := pipeline.IndexLesson(context.Background(), "lesson.md"); !errors.Is(err, storeErr) {
		t.Errorf("IndexLesson() error = %v, want wrapped %v", err, storeErr)
	}
}

func TestPipeline_CoverageStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.writeLesson(t, "with-meta.md",
		"# A\n\nText.\n\n<!-- lesson: https://lessons.example.com/a -->\n")
	f.writeLesson(t, "plain.md", "# B\n\nText.\n")

	if err := f.pipeline.IndexAll(ctx); err != nil {
		t.Fatalf("IndexAll() error = %v", err)
	}

	stats, err := f.pipeline.CoverageStats(ctx)
	if err != nil {
		t.Fatalf("CoverageStats() error = %v", err)
	}
	if stats.LessonsIndexed != 2 {
		t.Errorf("LessonsIndexed = %d, want 2", stats.LessonsIndexed)
	}
	if stats.LessonsWithMetadata != 1 {
		t.Errorf("LessonsWithMetadata = %d, want 1", stats.LessonsWithMetadata)
	}
	if stats.BlocksByKind[storage.BlockKindHeading] != 2 {
		t.Errorf("heading blocks = %d, want 2", stats.BlocksByKind[storage.BlockKindHeading])
	}
}
