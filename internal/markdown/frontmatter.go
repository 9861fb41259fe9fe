package markdown

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// FrontMatter holds the optional YAML header of a lesson document.
type FrontMatter struct {
	Title   string `yaml:"title"`
	Variant string `yaml:"variant"`
}

var fenceLine = []byte("---")

// StripFrontMatter returns the document body with any YAML front matter header
// removed. Documents with an invalid header are returned unchanged.
func StripFrontMatter(content []byte) []byte {
	_, body, err := splitFrontMatter(content)
	if err != nil {
		return content
	}
	return body
}

// splitFrontMatter extracts a YAML front matter header, if present, and returns
// the parsed header along with the remaining document body.
// Front matter must start at byte 0 with a `---` line and end with a `---` line.
// Documents without front matter are returned unchanged with a nil header.
func splitFrontMatter(content []byte) (*FrontMatter, []byte, error) {
	if !bytes.HasPrefix(content, fenceLine) {
		return nil, content, nil
	}

	// First line must be exactly the fence
	rest := content[len(fenceLine):]
	if len(rest) == 0 || (rest[0] != '\n' && !bytes.HasPrefix(rest, []byte("\r\n"))) {
		return nil, content, nil
	}
	rest = rest[bytes.IndexByte(rest, '\n')+1:]

	// Find the closing fence at a line start
	end := -1
	offset := 0
	for _, line := range bytes.SplitAfter(rest, []byte("\n")) {
		trimmed := bytes.TrimRight(line, "\r\n")
		if bytes.Equal(trimmed, fenceLine) {
			end = offset
			offset += len(line)
			break
		}
		offset += len(line)
	}
	if end == -1 {
		// Unterminated header: treat the leading fence as content, not front matter
		return nil, content, nil
	}

	var fm FrontMatter
	if err := yaml.Unmarshal(rest[:end], &fm); err != nil {
		return nil, nil, fmt.Errorf("invalid front matter: %w", err)
	}

	return &fm, rest[offset:], nil
}
