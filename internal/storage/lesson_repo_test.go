package storage

import (
	"context"
	"database/sql"
	"testing"
)

// newTestDB opens a migrated SQLite database in a temp dir.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := t.TempDir() + "/test.db"

	db, err := New(dbPath)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return db
}

// newTestShelf creates a shelf row for test lessons.
func newTestShelf(t *testing.T, db *sql.DB) ShelfRecord {
	t.Helper()
	shelfRepo := NewShelfRepo(db)
	shelf, err := shelfRepo.GetOrCreateByName(context.Background(), "test", "/tmp/test")
	if err != nil {
		t.Fatalf("GetOrCreateByName() error = %v", err)
	}
	return shelf
}

func TestNewLessonRepo(t *testing.T) {
	db := newTestDB(t)

	repo := NewLessonRepo(db)
	if repo == nil {
		t.Fatal("NewLessonRepo() returned nil")
	}
}

func TestLessonRepo_GetByShelfAndPath(t *testing.T) {
	db := newTestDB(t)
	shelf := newTestShelf(t, db)
	repo := NewLessonRepo(db)

	tests := []struct {
		name    string
		setup   func()
		shelfID int
		relPath string
		wantErr error
		check   func(*LessonRecord) bool
	}{
		{
			name: "existing lesson",
			setup: func() {
				lesson := &LessonRecord{
					ID:           "test-id",
					ShelfID:      shelf.ID,
					RelPath:      "inheritance.md",
					Folder:       "",
					Title:        "Inheritance",
					Variant:      "v1",
					CanonicalURL: "https://lessons.example.com/swift/inheritance",
					Hash:         "abc123",
				}
				if err := repo.Upsert(context.Background(), lesson); err != nil {
					t.Fatalf("Upsert() error = %v", err)
				}
			},
			shelfID: shelf.ID,
			relPath: "inheritance.md",
			check: func(l *LessonRecord) bool {
				return l.Title == "Inheritance" && l.Variant == "v1" &&
					l.CanonicalURL == "https://lessons.example.com/swift/inheritance"
			},
		},
		{
			name:    "missing lesson",
			setup:   func() {},
			shelfID: shelf.ID,
			relPath: "missing.md",
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			lesson, err := repo.GetByShelfAndPath(context.Background(), tt.shelfID, tt.relPath)

			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Errorf("GetByShelfAndPath() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Errorf("GetByShelfAndPath() unexpected error: %v", err)
				return
			}
			if tt.check != nil && !tt.check(lesson) {
				t.Errorf("GetByShelfAndPath() result validation failed: %+v", lesson)
			}
		})
	}
}

func TestLessonRepo_Upsert_PreservesID(t *testing.T) {
	db := newTestDB(t)
	shelf := newTestShelf(t, db)
	repo := NewLessonRepo(db)

	lesson := &LessonRecord{
		ShelfID: shelf.ID,
		RelPath: "inheritance.md",
		Title:   "Inheritance",
		Hash:    "hash-1",
	}
	if err := repo.Upsert(context.Background(), lesson); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if lesson.ID == "" {
		t.Fatal("Upsert() did not generate an ID")
	}
	firstID := lesson.ID

	// Re-upsert with new content hash: ID must be preserved
	updated := &LessonRecord{
		ShelfID: shelf.ID,
		RelPath: "inheritance.md",
		Title:   "Inheritance and Subclassing",
		Hash:    "hash-2",
	}
	if err := repo.Upsert(context.Background(), updated); err != nil {
		t.Fatalf("Upsert() second error = %v", err)
	}
	if updated.ID != firstID {
		t.Errorf("Upsert() generated new ID %s, want preserved %s", updated.ID, firstID)
	}

	got, err := repo.GetByID(context.Background(), firstID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Title != "Inheritance and Subclassing" || got.Hash != "hash-2" {
		t.Errorf("Upsert() did not update fields: %+v", got)
	}
}

func TestLessonRepo_ListByShelf(t *testing.T) {
	db := newTestDB(t)
	shelf := newTestShelf(t, db)
	repo := NewLessonRepo(db)

	// Empty shelf
	lessons, err := repo.ListByShelf(context.Background(), shelf.ID)
	if err != nil {
		t.Fatalf("ListByShelf() error = %v", err)
	}
	if len(lessons) != 0 {
		t.Errorf("ListByShelf() = %d lessons, want 0", len(lessons))
	}

	for _, relPath := range []string{"b/second.md", "a/first.md"} {
		lesson := &LessonRecord{
			ShelfID: shelf.ID,
			RelPath: relPath,
			Title:   relPath,
			Hash:    "h",
		}
		if err := repo.Upsert(context.Background(), lesson); err != nil {
			t.Fatalf("Upsert(%s) error = %v", relPath, err)
		}
	}

	lessons, err = repo.ListByShelf(context.Background(), shelf.ID)
	if err != nil {
		t.Fatalf("ListByShelf() error = %v", err)
	}
	if len(lessons) != 2 {
		t.Fatalf("ListByShelf() = %d lessons, want 2", len(lessons))
	}
	// Ordered by rel_path
	if lessons[0].RelPath != "a/first.md" || lessons[1].RelPath != "b/second.md" {
		t.Errorf("ListByShelf() order wrong: %s, %s", lessons[0].RelPath, lessons[1].RelPath)
	}
}

func TestLessonRepo_Delete_CascadesBlocks(t *testing.T) {
	db := newTestDB(t)
	shelf := newTestShelf(t, db)
	lessonRepo := NewLessonRepo(db)
	blockRepo := NewBlockRepo(db)

	lesson := &LessonRecord{
		ShelfID: shelf.ID,
		RelPath: "inheritance.md",
		Hash:    "h",
	}
	if err := lessonRepo.Upsert(context.Background(), lesson); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	block := &BlockRecord{
		ID:       "block-1",
		LessonID: lesson.ID,
		Kind:     BlockKindHeading,
		Level:    1,
		Text:     "Inheritance",
	}
	if err := blockRepo.Insert(context.Background(), block); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	if err := lessonRepo.Delete(context.Background(), lesson.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	blocks, err := blockRepo.ListByLesson(context.Background(), lesson.ID)
	if err != nil {
		t.Fatalf("ListByLesson() error = %v", err)
	}
	if len(blocks) != 0 {
		t.Errorf("Delete() did not cascade: %d blocks remain", len(blocks))
	}
}
