package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/marzahner/markdown-viewer/internal/markdown"
)

// spanStyle layers an inline span's attributes onto a base style
func spanStyle(base tcell.Style, kind markdown.SpanKind) tcell.Style {
	switch kind {
	case markdown.SpanBold:
		return base.Bold(true)
	case markdown.SpanItalic:
		return base.Italic(true)
	case markdown.SpanInlineCode:
		return base.Foreground(ColorCode)
	default:
		return base
	}
}

// min returns the minimum of two integers
func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
