package markdown

import (
	"reflect"
	"strings"
	"testing"
)

func TestSegmentSingleLines(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Block
	}{
		{
			name:     "Level one header",
			input:    "# Hello",
			expected: Block{Kind: KindHeader, Text: "Hello", Level: 1},
		},
		{
			name:     "Level three header",
			input:    "### Section",
			expected: Block{Kind: KindHeader, Text: "Section", Level: 3},
		},
		{
			name:     "Level six header",
			input:    "###### Deep",
			expected: Block{Kind: KindHeader, Text: "Deep", Level: 6},
		},
		{
			name: "Header without separator drops first content char",
			// The hash run plus one character is always dropped
			input:    "#Hello",
			expected: Block{Kind: KindHeader, Text: "ello", Level: 1},
		},
		{
			name:     "Seven hashes is not a header",
			input:    "####### nope",
			expected: Block{Kind: KindParagraph, Text: "####### nope"},
		},
		{
			name:     "Lone hash is a paragraph",
			input:    "#",
			expected: Block{Kind: KindParagraph, Text: "#"},
		},
		{
			name:     "Dash list item",
			input:    "- item one",
			expected: Block{Kind: KindListItem, Text: "item one"},
		},
		{
			name:     "Star list item",
			input:    "* starred",
			expected: Block{Kind: KindListItem, Text: "starred"},
		},
		{
			name:     "Plus list item",
			input:    "+ plussed",
			expected: Block{Kind: KindListItem, Text: "plussed"},
		},
		{
			name:     "Ordered list item",
			input:    "12. twelfth",
			expected: Block{Kind: KindListItem, Text: "twelfth"},
		},
		{
			name:     "Dash without space is a paragraph",
			input:    "-not a list",
			expected: Block{Kind: KindParagraph, Text: "-not a list"},
		},
		{
			name:     "Block quote",
			input:    "> quoted text",
			expected: Block{Kind: KindBlockQuote, Text: "quoted text"},
		},
		{
			name:     "Image",
			input:    "![alt text](https://example.com/x.png)",
			expected: Block{Kind: KindImage, AltText: "alt text", URL: "https://example.com/x.png"},
		},
		{
			name:     "Image with title keeps url only",
			input:    `![alt text](https://example.com/x.png "title")`,
			expected: Block{Kind: KindImage, AltText: "alt text", URL: "https://example.com/x.png"},
		},
		{
			name:     "Malformed image falls back to paragraph",
			input:    "![broken](no-close",
			expected: Block{Kind: KindParagraph, Text: "![broken](no-close"},
		},
		{
			name:     "Blank line",
			input:    "",
			expected: Block{Kind: KindSpace},
		},
		{
			name:     "Whitespace only line is a space",
			input:    "   \t",
			expected: Block{Kind: KindSpace},
		},
		{
			name:     "Plain paragraph",
			input:    "just some text",
			expected: Block{Kind: KindParagraph, Text: "just some text"},
		},
		{
			name: "Paragraph keeps leading whitespace",
			// trimming is only used for classification
			input:    "  indented prose",
			expected: Block{Kind: KindParagraph, Text: "  indented prose"},
		},
		{
			name:     "Indented list marker still classifies",
			input:    "  - nested item",
			expected: Block{Kind: KindListItem, Text: "nested item"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := Segment(tt.input)
			if len(blocks) != 1 {
				t.Fatalf("Expected 1 block, got %d: %#v", len(blocks), blocks)
			}
			if !reflect.DeepEqual(blocks[0], tt.expected) {
				t.Errorf("Expected %#v, got %#v", tt.expected, blocks[0])
			}
		})
	}
}

func TestSegmentCodeBlocks(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Block
	}{
		{
			name:  "Fenced code with language",
			input: "```js\nconst x=1;\n```",
			expected: []Block{
				{Kind: KindCodeBlock, Text: "const x=1;", Language: "js"},
			},
		},
		{
			name:  "Fenced code without language",
			input: "```\nplain\n```",
			expected: []Block{
				{Kind: KindCodeBlock, Text: "plain"},
			},
		},
		{
			name:  "Unterminated fence consumes to end of input",
			input: "```go\nfunc main() {\n\tprintln(1)\n}",
			expected: []Block{
				{Kind: KindCodeBlock, Text: "func main() {\n\tprintln(1)\n}", Language: "go"},
			},
		},
		{
			name:  "Code body keeps blank lines and indentation",
			input: "```\na\n\n    b\n```",
			expected: []Block{
				{Kind: KindCodeBlock, Text: "a\n\n    b"},
			},
		},
		{
			name:  "Markdown inside a fence is not classified",
			input: "```\n# not a header\n- not a list\n```",
			expected: []Block{
				{Kind: KindCodeBlock, Text: "# not a header\n- not a list"},
			},
		},
		{
			name:  "Fence with surrounding text",
			input: "before\n```py\nx = 1\n```\nafter",
			expected: []Block{
				{Kind: KindParagraph, Text: "before"},
				{Kind: KindCodeBlock, Text: "x = 1", Language: "py"},
				{Kind: KindParagraph, Text: "after"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := Segment(tt.input)
			if !reflect.DeepEqual(blocks, tt.expected) {
				t.Errorf("Expected %#v, got %#v", tt.expected, blocks)
			}
		})
	}
}

func TestSegmentDocument(t *testing.T) {
	doc := strings.Join([]string{
		"# Title",
		"",
		"Intro paragraph.",
		"",
		"",
		"- first",
		"- second",
		"> a quote",
		"![logo](img/logo.png)",
	}, "\n")

	expected := []Block{
		{Kind: KindHeader, Text: "Title", Level: 1},
		{Kind: KindSpace},
		{Kind: KindParagraph, Text: "Intro paragraph."},
		{Kind: KindSpace},
		{Kind: KindSpace},
		{Kind: KindListItem, Text: "first"},
		{Kind: KindListItem, Text: "second"},
		{Kind: KindBlockQuote, Text: "a quote"},
		{Kind: KindImage, AltText: "logo", URL: "img/logo.png"},
	}

	blocks := Segment(doc)
	if !reflect.DeepEqual(blocks, expected) {
		t.Errorf("Expected %#v, got %#v", expected, blocks)
	}
}

func TestSegmentConsecutiveBlankLines(t *testing.T) {
	// Each blank line is its own Space block; they are never merged
	blocks := Segment("a\n\n\nb")
	expected := []Block{
		{Kind: KindParagraph, Text: "a"},
		{Kind: KindSpace},
		{Kind: KindSpace},
		{Kind: KindParagraph, Text: "b"},
	}
	if !reflect.DeepEqual(blocks, expected) {
		t.Errorf("Expected %#v, got %#v", expected, blocks)
	}
}

func TestSegmentAccountsForEveryLine(t *testing.T) {
	// Every input line lands in exactly one block, in document order,
	// except the fence delimiter lines themselves
	doc := "# h\npara\n\n- li\n```\ncode line\n```\n> q\ntail"
	blocks := Segment(doc)

	lineCount := len(strings.Split(doc, "\n"))
	covered := 0
	for _, b := range blocks {
		switch b.Kind {
		case KindCodeBlock:
			covered += len(strings.Split(b.Text, "\n")) + 2 // body plus both fences
		default:
			covered++
		}
	}
	if covered != lineCount {
		t.Errorf("Expected %d lines accounted for, got %d", lineCount, covered)
	}
}

func TestSegmentNeverFails(t *testing.T) {
	inputs := []string{
		"",
		"\n",
		"\x00\x01binary\xffjunk",
		strings.Repeat("*", 1000),
		"```",
		"#",
		"![",
	}
	for _, in := range inputs {
		blocks := Segment(in)
		for _, b := range blocks {
			if b.Kind == KindHeader && (b.Level < 1 || b.Level > 6) {
				t.Errorf("Header level out of range for input %q: %d", in, b.Level)
			}
		}
	}
}
