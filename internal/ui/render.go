package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/marzahner/markdown-viewer/internal/markdown"
	"github.com/mattn/go-runewidth"
)

// renderedLine is one screen line produced from the block list. The
// renderer is the only consumer; it draws text at indent, picking a style
// per rune from base, the block's inline spans, and any keyword ranges.
type renderedLine struct {
	text        string           // display text of this line
	offset      int              // rune offset of the line start within its block's display text
	indent      int              // screen column where the text begins
	prefix      string           // gutter drawn at column 0 (bullet, quote bar)
	prefixStyle tcell.Style      // style for the prefix
	base        tcell.Style      // style for runes not covered by a span
	spans       []markdown.Span  // block-level inline spans (display-text rune ranges)
	keywords    []markdown.Range // line-local keyword ranges (code lines only)
	blockIdx    int              // index into the source block list
	codeIdx     int              // index into the document's code blocks, -1 otherwise
	frame       bool             // code block frame line (top or bottom)
}

const (
	quotePrefix  = "│ "
	bulletPrefix = "• "
	codeIndent   = 2
)

// layout converts the block list into wrapped, styled screen lines for
// the given content width. Inline markup is resolved per block here, so
// scrolling and drawing never re-parse anything.
func layout(blocks []markdown.Block, width int) []renderedLine {
	if width < 8 {
		width = 8
	}

	var lines []renderedLine
	codeIdx := -1

	for bi, b := range blocks {
		switch b.Kind {
		case markdown.KindSpace:
			lines = append(lines, renderedLine{blockIdx: bi, codeIdx: -1, base: tcell.StyleDefault})

		case markdown.KindHeader:
			display, spans := markdown.Resolve(b.Text)
			lines = append(lines, wrapStyled(display, spans, width, 0, headerStyle(b.Level), bi)...)

		case markdown.KindParagraph:
			display, spans := markdown.Resolve(b.Text)
			lines = append(lines, wrapStyled(display, spans, width, 0, tcell.StyleDefault.Foreground(ColorFg), bi)...)

		case markdown.KindListItem:
			display, spans := markdown.Resolve(b.Text)
			wrapped := wrapStyled(display, spans, width-len([]rune(bulletPrefix)), len([]rune(bulletPrefix)), tcell.StyleDefault.Foreground(ColorFg), bi)
			// Bullet on the first line only; continuations hang
			if len(wrapped) > 0 {
				wrapped[0].prefix = bulletPrefix
				wrapped[0].prefixStyle = tcell.StyleDefault.Foreground(ColorBullet)
			}
			lines = append(lines, wrapped...)

		case markdown.KindBlockQuote:
			display, spans := markdown.Resolve(b.Text)
			wrapped := wrapStyled(display, spans, width-len([]rune(quotePrefix)), len([]rune(quotePrefix)), tcell.StyleDefault.Foreground(ColorQuote).Italic(true), bi)
			// Quote bar runs down every wrapped line
			for i := range wrapped {
				wrapped[i].prefix = quotePrefix
				wrapped[i].prefixStyle = tcell.StyleDefault.Foreground(ColorFgGutter)
			}
			lines = append(lines, wrapped...)

		case markdown.KindImage:
			text := "[image: " + b.AltText + "] " + b.URL
			lines = append(lines, renderedLine{
				text:     text,
				base:     tcell.StyleDefault.Foreground(ColorImage).Underline(true),
				blockIdx: bi,
				codeIdx:  -1,
			})

		case markdown.KindCodeBlock:
			codeIdx++
			lines = append(lines, codeBlockLines(b, width, bi, codeIdx)...)
		}
	}

	return lines
}

// codeBlockLines frames a code block between fence lines and decorates
// its body with keyword ranges. Code lines are never wrapped; long lines
// are cut at the screen edge by the draw loop so the column alignment of
// the code survives.
func codeBlockLines(b markdown.Block, width, blockIdx, codeIdx int) []renderedLine {
	frameStyle := tcell.StyleDefault.Foreground(ColorFence)
	codeStyle := tcell.StyleDefault.Foreground(ColorCode)

	top := "┌── " + b.Language + " "
	if b.Language == "" {
		top = "┌── "
	}
	top += strings.Repeat("─", max(0, width-len([]rune(top))))

	lines := []renderedLine{{
		text:     top,
		base:     frameStyle,
		blockIdx: blockIdx,
		codeIdx:  codeIdx,
		frame:    true,
	}}

	for _, codeLine := range strings.Split(b.Text, "\n") {
		lines = append(lines, renderedLine{
			text:     codeLine,
			indent:   codeIndent,
			base:     codeStyle,
			keywords: markdown.Keywords(codeLine, b.Language),
			blockIdx: blockIdx,
			codeIdx:  codeIdx,
		})
	}

	lines = append(lines, renderedLine{
		text:     "└" + strings.Repeat("─", max(0, width-1)),
		base:     frameStyle,
		blockIdx: blockIdx,
		codeIdx:  codeIdx,
		frame:    true,
	})
	return lines
}

// wrapStyled word-wraps display text to the given width and carries each
// wrapped line's rune offset so the block's spans keep lining up.
func wrapStyled(display string, spans []markdown.Span, width, indent int, base tcell.Style, blockIdx int) []renderedLine {
	var out []renderedLine
	for _, seg := range wrapText(display, width) {
		out = append(out, renderedLine{
			text:     seg.text,
			offset:   seg.offset,
			indent:   indent,
			base:     base,
			spans:    spans,
			blockIdx: blockIdx,
			codeIdx:  -1,
		})
	}
	return out
}

// segment is one wrapped piece of a block's display text
type segment struct {
	text   string
	offset int // rune offset within the display text
}

// wrapText breaks text into lines no wider than width terminal cells,
// preferring to break at spaces. A single word wider than the line is
// hard-cut. Empty text still yields one empty segment so the block
// occupies a screen line.
func wrapText(text string, width int) []segment {
	runes := []rune(text)
	if len(runes) == 0 {
		return []segment{{text: ""}}
	}
	if width < 1 {
		width = 1
	}

	var out []segment
	start := 0
	for start < len(runes) {
		cells := 0
		end := start
		lastSpace := -1
		for end < len(runes) {
			w := runewidth.RuneWidth(runes[end])
			if cells+w > width {
				break
			}
			if runes[end] == ' ' {
				lastSpace = end
			}
			cells += w
			end++
		}

		if end == len(runes) {
			out = append(out, segment{text: string(runes[start:end]), offset: start})
			break
		}
		if lastSpace > start {
			out = append(out, segment{text: string(runes[start:lastSpace]), offset: start})
			start = lastSpace + 1 // swallow the break space
			continue
		}
		if end == start {
			end = start + 1 // wide rune on a tiny width; force progress
		}
		out = append(out, segment{text: string(runes[start:end]), offset: start})
		start = end
	}
	return out
}

// styleAt picks the style for the rune at the given offset of a line
func styleAt(ln renderedLine, runeIdx int) tcell.Style {
	global := ln.offset + runeIdx
	for _, s := range ln.spans {
		if global >= s.Start && global < s.End {
			return spanStyle(ln.base, s.Kind)
		}
	}
	for _, k := range ln.keywords {
		if runeIdx >= k.Start && runeIdx < k.End {
			return ln.base.Foreground(ColorKeyword).Bold(true)
		}
	}
	return ln.base
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
