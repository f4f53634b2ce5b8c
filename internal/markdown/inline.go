package markdown

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// Pre-compiled inline patterns
var (
	boldPattern = regexp.MustCompile(`\*\*(.+?)\*\*`)
	codePattern = regexp.MustCompile("`([^`]+)`")
)

// inlineMatch is one located piece of inline markup, in byte offsets into
// the original text. [start,end) covers the full match including its
// markers, [contentStart,contentEnd) the enclosed content only.
type inlineMatch struct {
	start        int
	end          int
	contentStart int
	contentEnd   int
	kind         SpanKind
}

// Resolve locates bold, italic and inline-code markup in one block's text
// and returns the display text (marker characters stripped) together with
// the styled ranges over that display text.
//
// Inline code is located first and wins any conflict: content inside
// backticks is never reinterpreted as bold or italic, so a lone '*'
// inside a code span stays literal. Bold is located next, italic last;
// a lower-precedence match that overlaps an already-claimed range is
// dropped, which keeps all retained content regions disjoint. Text
// without markup comes back unchanged with no spans.
func Resolve(text string) (string, []Span) {
	if !strings.ContainsAny(text, "*`") {
		return text, nil
	}

	var matches []inlineMatch
	for _, m := range codePattern.FindAllStringSubmatchIndex(text, -1) {
		matches = append(matches, inlineMatch{m[0], m[1], m[2], m[3], SpanInlineCode})
	}
	codeRanges := matches
	for _, m := range boldPattern.FindAllStringSubmatchIndex(text, -1) {
		c := inlineMatch{m[0], m[1], m[2], m[3], SpanBold}
		if !overlapsAny(c, matches) {
			matches = append(matches, c)
		}
	}
	for _, c := range italicMatches(text, codeRanges) {
		if !overlapsAny(c, matches) {
			matches = append(matches, c)
		}
	}

	if len(matches) == 0 {
		return text, nil
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].start < matches[j].start })

	return strip(text, matches)
}

// italicMatches finds candidate italic spans: a lone '*' (no '*' adjacent
// on either side) paired with the next lone '*'. Pairing with the nearest
// closing star keeps the match non-greedy. Adjacency exclusion means the
// star runs of bold markup never produce italic candidates.
//
// Stars that fall inside a code match take no part in pairing at all, so
// a '*' inside backticks can neither form an italic span nor swallow the
// opener of a real one later in the line.
func italicMatches(text string, codeRanges []inlineMatch) []inlineMatch {
	var stars []int
	for i := 0; i < len(text); i++ {
		if text[i] != '*' {
			continue
		}
		if i > 0 && text[i-1] == '*' {
			continue
		}
		if i+1 < len(text) && text[i+1] == '*' {
			continue
		}
		if insideAny(i, codeRanges) {
			continue
		}
		stars = append(stars, i)
	}

	var out []inlineMatch
	for i := 0; i+1 < len(stars); i += 2 {
		open, close := stars[i], stars[i+1]
		out = append(out, inlineMatch{open, close + 1, open + 1, close, SpanItalic})
	}
	return out
}

func insideAny(pos int, matches []inlineMatch) bool {
	for _, m := range matches {
		if pos >= m.start && pos < m.end {
			return true
		}
	}
	return false
}

func overlapsAny(c inlineMatch, matches []inlineMatch) bool {
	for _, m := range matches {
		if c.start < m.end && m.start < c.end {
			return true
		}
	}
	return false
}

// strip removes every match's marker characters and remaps the content
// ranges to positions in the stripped text. Matches must be disjoint and
// sorted by start. A running removed-byte count carries each content
// range from original to display coordinates, so repeated substrings are
// handled correctly.
func strip(text string, matches []inlineMatch) (string, []Span) {
	var b strings.Builder
	b.Grow(len(text))
	spans := make([]Span, 0, len(matches))

	prev := 0
	removed := 0
	for _, m := range matches {
		b.WriteString(text[prev:m.start])
		removed += m.contentStart - m.start
		start := m.contentStart - removed
		b.WriteString(text[m.contentStart:m.contentEnd])
		removed += m.end - m.contentEnd
		spans = append(spans, Span{Start: start, End: start + (m.contentEnd - m.contentStart), Kind: m.kind})
		prev = m.end
	}
	b.WriteString(text[prev:])
	display := b.String()

	// Byte offsets to rune offsets, for the renderer's cell addressing
	for i, s := range spans {
		spans[i] = Span{
			Start: runeOffset(display, s.Start),
			End:   runeOffset(display, s.End),
			Kind:  s.Kind,
		}
	}
	return display, spans
}

// runeOffset converts a byte offset into s to a rune offset
func runeOffset(s string, byteOffset int) int {
	if byteOffset >= len(s) {
		return utf8.RuneCountInString(s)
	}
	return utf8.RuneCountInString(s[:byteOffset])
}
