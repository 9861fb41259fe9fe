package markdown

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// lessonLinkPattern matches the hidden metadata block carrying the canonical
// lesson link, e.g. <!-- lesson: https://host/path -->.
var lessonLinkPattern = regexp.MustCompile(`<!--\s*lesson:\s*(\S+?)\s*-->`)

// Parser parses lesson markdown into an ordered block sequence.
type Parser struct {
	md goldmark.Markdown
}

// NewParser creates a new lesson markdown parser.
func NewParser() *Parser {
	return &Parser{
		md: goldmark.New(
			goldmark.WithExtensions(extension.Table),
		),
	}
}

// Parse parses lesson content and returns the document with its ordered blocks.
// The filename is used as a title fallback when the document has no headings.
func (p *Parser) Parse(content []byte, filename string) (*Document, error) {
	fm, body, err := splitFrontMatter(content)
	if err != nil {
		return nil, err
	}

	doc := &Document{}
	if fm != nil {
		doc.Variant = fm.Variant
	}

	if len(body) == 0 {
		doc.Title = titleFromDocument(doc, fm, filename)
		return doc, nil
	}

	reader := text.NewReader(body)
	root := p.md.Parser().Parse(reader)

	// Walk top-level nodes in source order; each becomes one or more blocks
	for node := root.FirstChild(); node != nil; node = node.NextSibling() {
		p.appendBlocks(doc, node, body)
	}

	for i := range doc.Blocks {
		doc.Blocks[i].Index = i
	}

	doc.Title = titleFromDocument(doc, fm, filename)
	return doc, nil
}

// appendBlocks converts one top-level AST node into blocks on doc.
func (p *Parser) appendBlocks(doc *Document, node ast.Node, content []byte) {
	switch n := node.(type) {
	case *ast.Heading:
		doc.Blocks = append(doc.Blocks, Block{
			Kind:  KindHeading,
			Level: n.Level,
			Text:  extractText(n, content),
		})

	case *ast.FencedCodeBlock:
		doc.Blocks = append(doc.Blocks, Block{
			Kind:     KindCode,
			Language: string(n.Language(content)),
			Text:     linesText(n, content),
		})

	case *ast.CodeBlock:
		doc.Blocks = append(doc.Blocks, Block{
			Kind: KindCode,
			Text: linesText(n, content),
		})

	case *ast.HTMLBlock:
		raw := htmlBlockText(n, content)
		doc.Blocks = append(doc.Blocks, Block{
			Kind: KindHTML,
			Text: raw,
		})
		for _, m := range lessonLinkPattern.FindAllStringSubmatch(raw, -1) {
			doc.MetadataLinks = append(doc.MetadataLinks, m[1])
		}

	case *ast.Paragraph:
		// A paragraph holding a single image is an image block, not prose
		if img, ok := soleImage(n); ok {
			doc.Blocks = append(doc.Blocks, Block{
				Kind: KindImage,
				URL:  string(img.Destination),
				Alt:  extractText(img, content),
			})
			return
		}
		doc.Blocks = append(doc.Blocks, Block{
			Kind: KindParagraph,
			Text: extractText(n, content),
		})
		// Images embedded in prose still surface as their own blocks
		for _, img := range collectImages(n) {
			doc.Blocks = append(doc.Blocks, Block{
				Kind: KindImage,
				URL:  string(img.Destination),
				Alt:  extractText(img, content),
			})
		}

	default:
		// Lists, blockquotes, tables and the rest carry prose
		if txt := extractText(node, content); txt != "" {
			doc.Blocks = append(doc.Blocks, Block{
				Kind: KindParagraph,
				Text: txt,
			})
		}
	}
}

// titleFromDocument picks the document title per precedence:
// front matter title, first H1, first H2, filename.
func titleFromDocument(doc *Document, fm *FrontMatter, filename string) string {
	if fm != nil && fm.Title != "" {
		return fm.Title
	}

	var firstH2 string
	for _, h := range doc.Headings() {
		if h.Level == 1 {
			return h.Text
		}
		if h.Level == 2 && firstH2 == "" {
			firstH2 = h.Text
		}
	}
	if firstH2 != "" {
		return firstH2
	}

	return titleFromFilename(filename)
}

// titleFromFilename derives a title from the filename by removing the
// extension and capitalizing words.
func titleFromFilename(filename string) string {
	name := filepath.Base(filename)
	ext := filepath.Ext(name)
	if ext != "" {
		name = name[:len(name)-len(ext)]
	}

	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)

	words := strings.Fields(name)
	for i, word := range words {
		if len(word) > 0 {
			runes := []rune(word)
			runes[0] = unicode.ToUpper(runes[0])
			words[i] = string(runes)
		}
	}

	return strings.Join(words, " ")
}

// soleImage reports whether the paragraph consists of exactly one image.
func soleImage(para *ast.Paragraph) (*ast.Image, bool) {
	if para.ChildCount() != 1 {
		return nil, false
	}
	img, ok := para.FirstChild().(*ast.Image)
	return img, ok
}

// collectImages returns all image nodes nested under n.
func collectImages(n ast.Node) []*ast.Image {
	var images []*ast.Image
	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if img, ok := node.(*ast.Image); ok {
			images = append(images, img)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return images
}

// extractText extracts text content from a node and its children.
func extractText(n ast.Node, content []byte) string {
	var textBuilder strings.Builder

	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch v := node.(type) {
		case *ast.Text:
			segment := v.Segment
			textBuilder.Write(segment.Value(content))
			if v.SoftLineBreak() || v.HardLineBreak() {
				textBuilder.WriteByte('\n')
			}
		case *ast.String:
			textBuilder.Write(v.Value)
		}
		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(textBuilder.String())
}

// linesText joins the raw source lines of a block node.
func linesText(n ast.Node, content []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		b.Write(line.Value(content))
	}
	return b.String()
}

// htmlBlockText joins the raw source of an HTML block including its closure line.
func htmlBlockText(n *ast.HTMLBlock, content []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		b.Write(line.Value(content))
	}
	if n.HasClosure() {
		b.Write(n.ClosureLine.Value(content))
	}
	return strings.TrimRight(b.String(), "\n")
}
