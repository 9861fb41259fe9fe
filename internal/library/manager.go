package library

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"lesson-shelf/internal/storage"
)

// ErrInvalidPath is returned when a relative path escapes the shelf root.
var ErrInvalidPath = errors.New("invalid lesson path")

// Manager manages the lessons root directory and provides path resolution
// and raw document reads.
type Manager struct {
	shelfRepo storage.ShelfStore
	shelf     storage.ShelfRecord
}

// NewManager creates a new library manager and registers the lessons root as a shelf.
func NewManager(ctx context.Context, shelfRepo storage.ShelfStore, rootPath string) (*Manager, error) {
	root, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve lessons root: %w", err)
	}

	shelf, err := shelfRepo.GetOrCreateByName(ctx, "main", root)
	if err != nil {
		return nil, fmt.Errorf("failed to register shelf: %w", err)
	}

	return &Manager{
		shelfRepo: shelfRepo,
		shelf:     shelf,
	}, nil
}

// Shelf returns the registered shelf record.
func (m *Manager) Shelf() storage.ShelfRecord {
	return m.shelf
}

// RootPath returns the absolute lessons root directory.
func (m *Manager) RootPath() string {
	return m.shelf.RootPath
}

// AbsPath resolves a relative lesson path against the shelf root.
// Returns ErrInvalidPath when the path is empty or escapes the root.
func (m *Manager) AbsPath(relPath string) (string, error) {
	cleaned, err := CleanRelPath(relPath)
	if err != nil {
		return "", err
	}

	root := filepath.Clean(m.shelf.RootPath)
	abs := filepath.Join(root, filepath.FromSlash(cleaned))
	if !strings.HasPrefix(abs, root+string(os.PathSeparator)) && abs != root {
		return "", ErrInvalidPath
	}
	return abs, nil
}

// ReadLesson returns the raw bytes of a lesson document.
// Retrieval is a pure read: the same path yields byte-identical output
// until the file itself changes on disk.
func (m *Manager) ReadLesson(relPath string) ([]byte, error) {
	abs, err := m.AbsPath(relPath)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to read lesson %s: %w", relPath, err)
	}
	return data, nil
}

// CleanRelPath normalizes a slash-separated relative path and rejects traversal.
func CleanRelPath(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrInvalidPath
	}

	cleaned := filepath.ToSlash(filepath.Clean("/" + trimmed))
	cleaned = strings.TrimPrefix(cleaned, "/")
	if cleaned == "" || cleaned == "." {
		return "", ErrInvalidPath
	}

	for _, segment := range strings.Split(cleaned, "/") {
		if segment == ".." {
			return "", ErrInvalidPath
		}
	}

	return cleaned, nil
}
