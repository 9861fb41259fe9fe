package markdown

// Block is one ordered content unit of a lesson document.
type Block struct {
	Index    int    // Position within the document (starts at 0)
	Kind     string // One of "heading", "paragraph", "code", "image", "html"
	Level    int    // Heading level (0 for non-headings)
	Language string // Info-string language tag for code blocks (descriptive only, never executed)
	URL      string // Destination for image blocks
	Alt      string // Alt text for image blocks
	Text     string // Block text content
}

// Block kinds.
const (
	KindHeading   = "heading"
	KindParagraph = "paragraph"
	KindCode      = "code"
	KindImage     = "image"
	KindHTML      = "html"
)

// Document is a parsed lesson document: a title plus an ordered block sequence.
// Block order is significant and reflects the pedagogical sequence of the source.
type Document struct {
	Title         string
	Variant       string   // From front matter (empty if none)
	MetadataLinks []string // Lesson-identifier links found in hidden HTML metadata blocks
	Blocks        []Block
}

// CanonicalURL returns the lesson-identifier link, or "" if none was found.
func (d *Document) CanonicalURL() string {
	if len(d.MetadataLinks) == 0 {
		return ""
	}
	return d.MetadataLinks[0]
}

// Headings returns the ordered (level, text) heading sequence of the document.
func (d *Document) Headings() []Heading {
	var headings []Heading
	for _, b := range d.Blocks {
		if b.Kind == KindHeading {
			headings = append(headings, Heading{Level: b.Level, Text: b.Text})
		}
	}
	return headings
}

// Heading is one entry of a document's heading sequence.
type Heading struct {
	Level int
	Text  string
}
