package markdown

import (
	"reflect"
	"testing"
)

func TestKeywordsLanguageSelection(t *testing.T) {
	tests := []struct {
		name  string
		lang  string
		code  string
		count int
	}{
		{name: "Go tag", lang: "go", code: "func main()", count: 1},
		{name: "Golang alias", lang: "golang", code: "func main()", count: 1},
		{name: "Uppercase tag", lang: "GO", code: "func main()", count: 1},
		{name: "Python tag", lang: "python", code: "def f(): pass", count: 2},
		{name: "Py alias", lang: "py", code: "def f(): pass", count: 2},
		{name: "Javascript tag", lang: "javascript", code: "const x = 1", count: 1},
		{name: "Js alias", lang: "js", code: "const x = 1", count: 1},
		{name: "Unknown tag", lang: "rust", code: "fn main() {}", count: 0},
		{name: "Empty tag", lang: "", code: "func main()", count: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ranges := Keywords(tt.code, tt.lang)
			if len(ranges) != tt.count {
				t.Errorf("Expected %d keyword ranges, got %d: %#v", tt.count, len(ranges), ranges)
			}
		})
	}
}

func TestKeywordsWholeWordMatching(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		lang     string
		expected []Range
	}{
		{
			name: "Keyword inside identifier does not match",
			code: "format := fortune",
			lang: "go",
		},
		{
			name:     "Keyword bounded by punctuation",
			code:     "if(x){return}",
			lang:     "go",
			expected: []Range{{Start: 0, End: 2}, {Start: 6, End: 12}},
		},
		{
			name:     "Keyword at start and end",
			code:     "for i := range xs",
			lang:     "go",
			expected: []Range{{Start: 0, End: 3}, {Start: 9, End: 14}},
		},
		{
			name: "Matching is case sensitive",
			code: "FOR If Return",
			lang: "go",
		},
		{
			name:     "Python keywords",
			code:     "for x in xs:",
			lang:     "python",
			expected: []Range{{Start: 0, End: 3}, {Start: 6, End: 8}},
		},
		{
			name:     "Underscore blocks word boundary",
			code:     "for_each for",
			lang:     "go",
			expected: []Range{{Start: 9, End: 12}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ranges := Keywords(tt.code, tt.lang)
			if !reflect.DeepEqual(ranges, tt.expected) {
				t.Errorf("Expected %#v, got %#v", tt.expected, ranges)
			}
		})
	}
}

func TestKeywordsMultilineCode(t *testing.T) {
	code := "def greet(name):\n    return name"
	ranges := Keywords(code, "python")

	expected := []Range{
		{Start: 0, End: 3},   // def
		{Start: 21, End: 27}, // return
	}
	if !reflect.DeepEqual(ranges, expected) {
		t.Errorf("Expected %#v, got %#v", expected, ranges)
	}
}
