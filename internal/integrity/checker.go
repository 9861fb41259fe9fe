// Package integrity implements content-integrity checks for lesson documents.
// The checks assert structural health of the markdown only; they never
// validate that embedded code samples compile.
package integrity

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"lesson-shelf/internal/markdown"
)

// Check names reported in issues.
const (
	CheckParse         = "parse"
	CheckFenceNonEmpty = "fence-nonempty"
	CheckImageURL      = "image-url"
	CheckMetadataLink  = "metadata-link"
	CheckStableRead    = "stable-read"
	CheckStructural    = "structural-duplicate"
)

// Issue is one integrity finding for a document.
type Issue struct {
	Check   string `json:"check"`
	RelPath string `json:"rel_path"`
	Block   int    `json:"block"` // Block index, -1 when the issue is document-level
	Message string `json:"message"`
}

// Report is the result of an integrity run.
type Report struct {
	CheckedDocuments int     `json:"checked_documents"`
	Issues           []Issue `json:"issues"`
}

// OK reports whether the run found no issues.
func (r *Report) OK() bool {
	return len(r.Issues) == 0
}

// Checker runs integrity checks over lesson documents.
type Checker struct {
	parser *markdown.Parser
}

// NewChecker creates a new integrity checker.
func NewChecker() *Checker {
	return &Checker{parser: markdown.NewParser()}
}

// CheckDocument runs the per-document checks on already-loaded content.
// A document that fails to parse yields a single parse issue.
func (c *Checker) CheckDocument(relPath string, content []byte) []Issue {
	doc, err := c.parser.Parse(content, filepath.Base(relPath))
	if err != nil {
		return []Issue{{
			Check:   CheckParse,
			RelPath: relPath,
			Block:   -1,
			Message: err.Error(),
		}}
	}
	return c.checkParsed(relPath, doc)
}

func (c *Checker) checkParsed(relPath string, doc *markdown.Document) []Issue {
	var issues []Issue

	for _, block := range doc.Blocks {
		switch block.Kind {
		case markdown.KindCode:
			// A tagged fence must carry sample text; the tag is descriptive
			// only and the sample is never compiled or validated as code
			if block.Language != "" && strings.TrimSpace(block.Text) == "" {
				issues = append(issues, Issue{
					Check:   CheckFenceNonEmpty,
					RelPath: relPath,
					Block:   block.Index,
					Message: fmt.Sprintf("empty fenced code block tagged %q", block.Language),
				})
			}

		case markdown.KindImage:
			if _, err := url.ParseRequestURI(block.URL); err != nil {
				issues = append(issues, Issue{
					Check:   CheckImageURL,
					RelPath: relPath,
					Block:   block.Index,
					Message: fmt.Sprintf("image reference %q is not a valid URL", block.URL),
				})
			}
		}
	}

	// The hidden metadata block, if present, must carry exactly one lesson link
	if n := len(doc.MetadataLinks); n > 1 {
		issues = append(issues, Issue{
			Check:   CheckMetadataLink,
			RelPath: relPath,
			Block:   -1,
			Message: fmt.Sprintf("found %d lesson-identifier links, want exactly 1", n),
		})
	} else if n == 1 {
		if _, err := url.ParseRequestURI(doc.MetadataLinks[0]); err != nil {
			issues = append(issues, Issue{
				Check:   CheckMetadataLink,
				RelPath: relPath,
				Block:   -1,
				Message: fmt.Sprintf("lesson-identifier link %q is not a valid URL", doc.MetadataLinks[0]),
			})
		}
	}

	return issues
}

// CheckStableRead loads a document twice and verifies byte-identical output.
func (c *Checker) CheckStableRead(relPath, absPath string) []Issue {
	first, err := os.ReadFile(absPath)
	if err != nil {
		return []Issue{{
			Check:   CheckStableRead,
			RelPath: relPath,
			Block:   -1,
			Message: fmt.Sprintf("failed to read: %v", err),
		}}
	}
	second, err := os.ReadFile(absPath)
	if err != nil {
		return []Issue{{
			Check:   CheckStableRead,
			RelPath: relPath,
			Block:   -1,
			Message: fmt.Sprintf("failed to re-read: %v", err),
		}}
	}
	if !bytes.Equal(first, second) {
		return []Issue{{
			Check:   CheckStableRead,
			RelPath: relPath,
			Block:   -1,
			Message: "two loads of the document returned different bytes",
		}}
	}
	return nil
}

// CheckStructuralDuplicates verifies that documents of one lesson family
// (same folder) contain the same ordered heading sequence.
// Families with a single document are trivially consistent.
func (c *Checker) CheckStructuralDuplicates(docs map[string]*markdown.Document) []Issue {
	families := make(map[string][]string)
	for relPath := range docs {
		folder := filepath.ToSlash(filepath.Dir(relPath))
		if folder == "." {
			folder = ""
		}
		families[folder] = append(families[folder], relPath)
	}

	var issues []Issue
	for _, members := range families {
		if len(members) < 2 {
			continue
		}
		// Deterministic reference: first member in path order
		sort.Strings(members)
		reference := members[0]
		refHeadings := docs[reference].Headings()

		for _, relPath := range members[1:] {
			if diff := diffHeadings(refHeadings, docs[relPath].Headings()); diff != "" {
				issues = append(issues, Issue{
					Check:   CheckStructural,
					RelPath: relPath,
					Block:   -1,
					Message: fmt.Sprintf("heading structure differs from %s: %s", reference, diff),
				})
			}
		}
	}
	return issues
}

// diffHeadings returns a description of the first structural difference, or "".
func diffHeadings(a, b []markdown.Heading) string {
	if len(a) != len(b) {
		return fmt.Sprintf("%d headings vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			return fmt.Sprintf("heading %d is %q (level %d) vs %q (level %d)",
				i, a[i].Text, a[i].Level, b[i].Text, b[i].Level)
		}
	}
	return ""
}

// CheckDir runs the whole suite over every markdown file under root.
// It needs no database; the CLI uses it directly against a lessons directory.
func (c *Checker) CheckDir(ctx context.Context, root string) (*Report, error) {
	report := &Report{}
	docs := make(map[string]*markdown.Document)

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if info.IsDir() {
			if strings.HasPrefix(info.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".md" {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)
		report.CheckedDocuments++

		report.Issues = append(report.Issues, c.CheckStableRead(relPath, path)...)

		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		doc, parseErr := c.parser.Parse(content, filepath.Base(relPath))
		if parseErr != nil {
			report.Issues = append(report.Issues, Issue{
				Check:   CheckParse,
				RelPath: relPath,
				Block:   -1,
				Message: parseErr.Error(),
			})
			return nil
		}
		report.Issues = append(report.Issues, c.checkParsed(relPath, doc)...)
		docs[relPath] = doc
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	report.Issues = append(report.Issues, c.CheckStructuralDuplicates(docs)...)
	return report, nil
}
