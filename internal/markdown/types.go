package markdown

// BlockKind identifies the structural type of a parsed block
type BlockKind int

const (
	KindHeader BlockKind = iota
	KindParagraph
	KindListItem
	KindBlockQuote
	KindCodeBlock
	KindImage
	KindSpace
)

// Block is one structural unit of a parsed document. Which fields are
// meaningful depends on Kind: Text holds the line text for headers,
// paragraphs, list items and quotes, and the full code body (embedded
// newlines included) for code blocks. Space blocks carry no payload.
type Block struct {
	Kind     BlockKind
	Text     string
	Level    int    // Header only, 1..6
	Language string // CodeBlock only, may be empty
	URL      string // Image only
	AltText  string // Image only
}

// SpanKind identifies the style of an inline span
type SpanKind int

const (
	SpanBold SpanKind = iota
	SpanItalic
	SpanInlineCode
)

// Span marks a styled range of a block's display text.
// Start and End are rune positions into the display text (the text with
// inline markers stripped), half-open like Go slices.
type Span struct {
	Start int
	End   int
	Kind  SpanKind
}

// Range marks a keyword occurrence inside code block text,
// in rune positions, half-open
type Range struct {
	Start int
	End   int
}
