package document

import (
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/marzahner/markdown-viewer/internal/markdown"
)

// Document is one loaded markdown file plus its parsed block list
type Document struct {
	Path   string
	Source string
	Blocks []markdown.Block
}

// Load reads the file at path and parses it into blocks. Content that is
// not valid UTF-8 is rejected with an error; the caller decides how to
// surface it (see ErrorDocument).
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("failed to decode %s: not valid UTF-8 text", path)
	}

	source := string(data)
	return &Document{
		Path:   path,
		Source: source,
		Blocks: markdown.Segment(source),
	}, nil
}

// ErrorDocument builds the document shown in place of a file that could
// not be read or decoded: a single paragraph carrying the error message.
func ErrorDocument(path string, err error) *Document {
	return &Document{
		Path:   path,
		Blocks: []markdown.Block{{Kind: markdown.KindParagraph, Text: "Unable to open file: " + err.Error()}},
	}
}
