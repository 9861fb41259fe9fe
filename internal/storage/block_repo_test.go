package storage

import (
	"context"
	"fmt"
	"testing"
)

func TestBlockRepo_InsertAndList(t *testing.T) {
	db := newTestDB(t)
	shelf := newTestShelf(t, db)
	lessonRepo := NewLessonRepo(db)
	repo := NewBlockRepo(db)

	lesson := &LessonRecord{ShelfID: shelf.ID, RelPath: "inheritance.md", Hash: "h"}
	if err := lessonRepo.Upsert(context.Background(), lesson); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	// Insert out of order; ListByLesson must sort by block_index
	blocks := []*BlockRecord{
		{ID: "b-2", LessonID: lesson.ID, BlockIndex: 2, Kind: BlockKindCode, Language: "swift", Text: "class Person {}"},
		{ID: "b-0", LessonID: lesson.ID, BlockIndex: 0, Kind: BlockKindHeading, Level: 1, Text: "Inheritance"},
		{ID: "b-1", LessonID: lesson.ID, BlockIndex: 1, Kind: BlockKindParagraph, Text: "Classes can inherit."},
	}
	for _, b := range blocks {
		if err := repo.Insert(context.Background(), b); err != nil {
			t.Fatalf("Insert(%s) error = %v", b.ID, err)
		}
	}

	got, err := repo.ListByLesson(context.Background(), lesson.ID)
	if err != nil {
		t.Fatalf("ListByLesson() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("ListByLesson() = %d blocks, want 3", len(got))
	}
	for i, b := range got {
		if b.BlockIndex != i {
			t.Errorf("block %d has index %d, want %d", i, b.BlockIndex, i)
		}
	}
	if got[2].Language != "swift" {
		t.Errorf("code block language = %q, want swift", got[2].Language)
	}
}

func TestBlockRepo_DeleteByLesson(t *testing.T) {
	db := newTestDB(t)
	shelf := newTestShelf(t, db)
	lessonRepo := NewLessonRepo(db)
	repo := NewBlockRepo(db)

	lesson := &LessonRecord{ShelfID: shelf.ID, RelPath: "inheritance.md", Hash: "h"}
	if err := lessonRepo.Upsert(context.Background(), lesson); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	for i := 0; i < 4; i++ {
		b := &BlockRecord{
			ID:         fmt.Sprintf("b-%d", i),
			LessonID:   lesson.ID,
			BlockIndex: i,
			Kind:       BlockKindParagraph,
			Text:       "text",
		}
		if err := repo.Insert(context.Background(), b); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
	}

	if err := repo.DeleteByLesson(context.Background(), lesson.ID); err != nil {
		t.Fatalf("DeleteByLesson() error = %v", err)
	}

	got, err := repo.ListByLesson(context.Background(), lesson.ID)
	if err != nil {
		t.Fatalf("ListByLesson() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("DeleteByLesson() left %d blocks, want 0", len(got))
	}
}

func TestBlockRepo_CountByKind(t *testing.T) {
	db := newTestDB(t)
	shelf := newTestShelf(t, db)
	lessonRepo := NewLessonRepo(db)
	repo := NewBlockRepo(db)

	lesson := &LessonRecord{ShelfID: shelf.ID, RelPath: "inheritance.md", Hash: "h"}
	if err := lessonRepo.Upsert(context.Background(), lesson); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	kinds := []string{BlockKindHeading, BlockKindParagraph, BlockKindParagraph, BlockKindCode}
	for i, kind := range kinds {
		b := &BlockRecord{
			ID:         fmt.Sprintf("b-%d", i),
			LessonID:   lesson.ID,
			BlockIndex: i,
			Kind:       kind,
			Text:       "text",
		}
		if err := repo.Insert(context.Background(), b); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
	}

	counts, err := repo.CountByKind(context.Background())
	if err != nil {
		t.Fatalf("CountByKind() error = %v", err)
	}
	if counts[BlockKindParagraph] != 2 || counts[BlockKindHeading] != 1 || counts[BlockKindCode] != 1 {
		t.Errorf("CountByKind() = %v", counts)
	}
}
