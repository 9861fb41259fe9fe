package library

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestManager_ScanAll(t *testing.T) {
	manager, root := newTestManager(t)

	// Build a small lesson tree
	files := map[string]string{
		"inheritance.md":                   "# Inheritance",
		"swift-inheritance/variant-2.md":   "# Inheritance",
		"swift-inheritance/notes.txt":      "not markdown",
		".trash/discarded.md":              "old draft",
		"swift-inheritance/.hidden/x.md":   "hidden",
		"swift-inheritance/deep/lesson.md": "# Deep",
	}
	for rel, content := range files {
		abs := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
			t.Fatalf("MkdirAll() error = %v", err)
		}
		if err := os.WriteFile(abs, []byte(content), 0644); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
	}

	scanned, err := manager.ScanAll(context.Background())
	if err != nil {
		t.Fatalf("ScanAll() error = %v", err)
	}

	got := make(map[string]ScannedFile)
	for _, f := range scanned {
		got[f.RelPath] = f
	}

	want := []string{
		"inheritance.md",
		"swift-inheritance/variant-2.md",
		"swift-inheritance/deep/lesson.md",
	}
	if len(got) != len(want) {
		t.Fatalf("ScanAll() = %d files, want %d: %v", len(got), len(want), got)
	}
	for _, rel := range want {
		f, ok := got[rel]
		if !ok {
			t.Errorf("ScanAll() missing %s", rel)
			continue
		}
		if f.ShelfID != manager.Shelf().ID {
			t.Errorf("ScanAll() %s shelf ID = %d, want %d", rel, f.ShelfID, manager.Shelf().ID)
		}
	}

	// Folder computation
	if got["inheritance.md"].Folder != "" {
		t.Errorf("root-level folder = %q, want empty", got["inheritance.md"].Folder)
	}
	if got["swift-inheritance/variant-2.md"].Folder != "swift-inheritance" {
		t.Errorf("nested folder = %q, want swift-inheritance", got["swift-inheritance/variant-2.md"].Folder)
	}
}

func TestManager_ScanAll_Cancelled(t *testing.T) {
	manager, root := newTestManager(t)

	if err := os.WriteFile(filepath.Join(root, "lesson.md"), []byte("# L"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := manager.ScanAll(ctx); err == nil {
		t.Error("ScanAll() expected error for cancelled context")
	}
}
