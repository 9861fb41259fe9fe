package storage

import "time"

// ShelfRecord represents a lessons root directory registered in the database.
type ShelfRecord struct {
	ID        int
	Name      string
	RootPath  string
	CreatedAt time.Time
}

// LessonRecord represents a markdown lesson document in the database.
type LessonRecord struct {
	ID           string    // UUID
	ShelfID      int       // Foreign key to shelves.id
	RelPath      string    // Relative path from shelf root
	Folder       string    // Folder path (path components except filename)
	Title        string    // Extracted title from markdown
	Variant      string    // Variant name from front matter (empty if none)
	CanonicalURL string    // Lesson-identifier link from the hidden metadata block (empty if none)
	UpdatedAt    time.Time
	Hash         string // SHA256 hex string of file content
}

// Block kinds stored in blocks.kind.
const (
	BlockKindHeading   = "heading"
	BlockKindParagraph = "paragraph"
	BlockKindCode      = "code"
	BlockKindImage     = "image"
	BlockKindHTML      = "html"
)

// BlockRecord represents one ordered content block of a lesson.
// Order within a lesson is significant and carried by BlockIndex.
type BlockRecord struct {
	ID         string // UUID
	LessonID   string // UUID (foreign key to lessons.id)
	BlockIndex int    // Index within lesson (starts at 0)
	Kind       string // One of the BlockKind constants
	Level      int    // Heading level (0 for non-headings)
	Language   string // Info-string language tag for code blocks (descriptive only)
	URL        string // Destination for image blocks
	Alt        string // Alt text for image blocks
	Text       string // Block text content
}
