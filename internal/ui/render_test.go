package ui

import (
	"reflect"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/marzahner/markdown-viewer/internal/markdown"
)

func TestWrapTextShortLine(t *testing.T) {
	segs := wrapText("short", 20)
	if len(segs) != 1 || segs[0].text != "short" || segs[0].offset != 0 {
		t.Errorf("Expected single segment, got %#v", segs)
	}
}

func TestWrapTextBreaksAtSpaces(t *testing.T) {
	segs := wrapText("alpha beta gamma", 11)
	expected := []segment{
		{text: "alpha beta", offset: 0},
		{text: "gamma", offset: 11},
	}
	if !reflect.DeepEqual(segs, expected) {
		t.Errorf("Expected %#v, got %#v", expected, segs)
	}
}

func TestWrapTextHardCutsLongWord(t *testing.T) {
	segs := wrapText("abcdefghij", 4)
	if len(segs) != 3 {
		t.Fatalf("Expected 3 segments, got %#v", segs)
	}
	joined := segs[0].text + segs[1].text + segs[2].text
	if joined != "abcdefghij" {
		t.Errorf("Hard cut lost characters: %q", joined)
	}
	if segs[1].offset != 4 || segs[2].offset != 8 {
		t.Errorf("Offsets wrong: %#v", segs)
	}
}

func TestWrapTextEmpty(t *testing.T) {
	segs := wrapText("", 10)
	if len(segs) != 1 || segs[0].text != "" {
		t.Errorf("Expected one empty segment, got %#v", segs)
	}
}

func TestWrapTextOffsetsIndexDisplayText(t *testing.T) {
	text := "one two three four five six"
	runes := []rune(text)
	for _, seg := range wrapText(text, 9) {
		got := string(runes[seg.offset : seg.offset+len([]rune(seg.text))])
		if got != seg.text {
			t.Errorf("Offset %d does not locate %q, found %q", seg.offset, seg.text, got)
		}
	}
}

func TestLayoutProducesLinesForEveryBlock(t *testing.T) {
	blocks := markdown.Segment("# Title\n\npara\n- item\n> quote\n![a](u.png)")
	lines := layout(blocks, 80)

	seen := make(map[int]bool)
	for _, ln := range lines {
		seen[ln.blockIdx] = true
	}
	for i := range blocks {
		if !seen[i] {
			t.Errorf("Block %d produced no rendered lines", i)
		}
	}
}

func TestLayoutCodeBlockFraming(t *testing.T) {
	blocks := markdown.Segment("```go\nfunc main() {}\n```")
	lines := layout(blocks, 40)

	if len(lines) != 3 {
		t.Fatalf("Expected frame, body, frame; got %d lines", len(lines))
	}
	if !lines[0].frame || !lines[2].frame {
		t.Errorf("Expected first and last lines to be frame lines")
	}
	if lines[1].text != "func main() {}" {
		t.Errorf("Expected code body verbatim, got %q", lines[1].text)
	}
	if len(lines[1].keywords) != 1 || lines[1].keywords[0] != (markdown.Range{Start: 0, End: 4}) {
		t.Errorf("Expected func keyword range, got %#v", lines[1].keywords)
	}
	if !strings.Contains(lines[0].text, "go") {
		t.Errorf("Expected language tag in frame, got %q", lines[0].text)
	}
	if lines[0].codeIdx != 0 || lines[1].codeIdx != 0 {
		t.Errorf("Expected code lines tagged with code index 0")
	}
}

func TestLayoutQuoteAndListPrefixes(t *testing.T) {
	blocks := markdown.Segment("- item\n> quoted words wrap here eventually")
	lines := layout(blocks, 80)

	if lines[0].prefix != bulletPrefix {
		t.Errorf("Expected bullet prefix, got %q", lines[0].prefix)
	}
	if lines[1].prefix != quotePrefix {
		t.Errorf("Expected quote prefix, got %q", lines[1].prefix)
	}
}

func TestLayoutSpansSurviveWrapping(t *testing.T) {
	// The bolded word lands on the second wrapped line; its span range
	// must still select it through the line's offset
	blocks := []markdown.Block{{Kind: markdown.KindParagraph, Text: "plain words here **bold**"}}
	lines := layout(blocks, 18)

	var found bool
	for _, ln := range lines {
		runes := []rune(ln.text)
		for _, s := range ln.spans {
			start := s.Start - ln.offset
			end := s.End - ln.offset
			if start >= 0 && end <= len(runes) {
				if string(runes[start:end]) == "bold" {
					found = true
				}
			}
		}
	}
	if !found {
		t.Errorf("Bold span did not line up after wrapping: %#v", lines)
	}
}

func TestStyleAtUsesLineOffset(t *testing.T) {
	display, spans := markdown.Resolve("aa **bb**")
	if display != "aa bb" {
		t.Fatalf("Unexpected display %q", display)
	}
	ln := renderedLine{text: "bb", offset: 3, base: tcell.StyleDefault, spans: spans}

	if styleAt(ln, 0) == ln.base {
		t.Errorf("Expected bold style at start of wrapped span line")
	}
}
