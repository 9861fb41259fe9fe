package library

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ScannedFile represents a markdown file found during a shelf scan.
type ScannedFile struct {
	ShelfID int    // Shelf ID from database
	RelPath string // Relative path from shelf root (e.g., "swift-inheritance/inheritance.md")
	Folder  string // Folder path (path components except filename, e.g., "swift-inheritance")
	AbsPath string // Absolute file path
}

// ScanAll walks the shelf root and returns all markdown files found.
// Dotted directories (editor and VCS state) are skipped.
func (m *Manager) ScanAll(ctx context.Context) ([]ScannedFile, error) {
	var scannedFiles []ScannedFile

	err := filepath.Walk(m.shelf.RootPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fmt.Errorf("failed to access path %s: %w", path, err)
		}

		// Check for context cancellation
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if info.IsDir() {
			if strings.HasPrefix(info.Name(), ".") && path != m.shelf.RootPath {
				return filepath.SkipDir
			}
			return nil
		}

		// Filter for markdown files
		if filepath.Ext(path) != ".md" {
			return nil
		}

		// Compute relative path from shelf root
		relPath, err := filepath.Rel(m.shelf.RootPath, path)
		if err != nil {
			return fmt.Errorf("failed to compute relative path for %s: %w", path, err)
		}

		// Normalize relative path (use forward slashes for consistency)
		relPath = filepath.ToSlash(relPath)

		folder := filepath.ToSlash(filepath.Dir(relPath))
		if folder == "." {
			// Root-level file
			folder = ""
		}

		scannedFiles = append(scannedFiles, ScannedFile{
			ShelfID: m.shelf.ID,
			RelPath: relPath,
			Folder:  folder,
			AbsPath: path,
		})
		return nil
	})

	if err != nil {
		return scannedFiles, fmt.Errorf("failed to scan shelf %s: %w", m.shelf.Name, err)
	}

	return scannedFiles, nil
}
