package ui

import (
	"github.com/gdamore/tcell/v2"
)

type HelpDialog struct {
	visible      bool
	scrollOffset int
}

func NewHelpDialog() *HelpDialog {
	return &HelpDialog{
		visible: false,
	}
}

func (h *HelpDialog) Show() {
	h.visible = true
	h.scrollOffset = 0 // Reset scroll when showing
}

func (h *HelpDialog) Hide() {
	h.visible = false
}

func (h *HelpDialog) IsVisible() bool {
	return h.visible
}

func (h *HelpDialog) getHelpContent() []string {
	return []string{
		"Navigation",
		"  j / Down       Scroll down one line",
		"  k / Up         Scroll up one line",
		"  Ctrl+D / PgDn  Scroll down half a page",
		"  Ctrl+U / PgUp  Scroll up half a page",
		"  g / Home       Jump to top",
		"  G / End        Jump to bottom",
		"",
		"Search",
		"  /              Start search",
		"  Enter          Accept search",
		"  Esc            Cancel search",
		"  n              Next match",
		"  N              Previous match",
		"",
		"Code blocks",
		"  ]              Select next code block",
		"  [              Select previous code block",
		"  y              Copy selected code block",
		"",
		"Other",
		"  r              Reload file",
		"  ?              Toggle this help",
		"  q / Ctrl+C     Quit",
	}
}

func (h *HelpDialog) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		h.Hide()
		return true
	case tcell.KeyDown:
		h.scrollDown()
		return true
	case tcell.KeyUp:
		h.scrollUp()
		return true
	case tcell.KeyRune:
		switch ev.Rune() {
		case '?', 'q':
			h.Hide()
			return true
		case 'j':
			h.scrollDown()
			return true
		case 'k':
			h.scrollUp()
			return true
		}
	}
	return false
}

func (h *HelpDialog) scrollDown() {
	if h.scrollOffset < len(h.getHelpContent())-1 {
		h.scrollOffset++
	}
}

func (h *HelpDialog) scrollUp() {
	if h.scrollOffset > 0 {
		h.scrollOffset--
	}
}

func (h *HelpDialog) Draw(s tcell.Screen) {
	if !h.visible {
		return
	}

	w, screenHeight := s.Size()

	helpLines := h.getHelpContent()

	// Size the dialog to its content, clamped to the screen
	maxLineWidth := 0
	for _, line := range helpLines {
		if len(line) > maxLineWidth {
			maxLineWidth = len(line)
		}
	}

	dialogWidth := maxLineWidth + 4 // 2 for borders, 2 for margins
	if dialogWidth > w-4 {
		dialogWidth = w - 4
	}
	if dialogWidth < 40 {
		dialogWidth = 40
	}

	maxDialogHeight := screenHeight - 4
	dialogHeight := len(helpLines) + 6 // Content + borders + title + padding
	if dialogHeight > maxDialogHeight {
		dialogHeight = maxDialogHeight
	}
	if dialogHeight < 10 {
		dialogHeight = 10
	}

	startX := (w - dialogWidth) / 2
	startY := (screenHeight - dialogHeight) / 2
	if startX < 1 {
		startX = 1
	}
	if startY < 1 {
		startY = 1
	}

	// Dialog background
	dialogStyle := tcell.StyleDefault.Background(ColorBgHighlight).Foreground(ColorFg)
	for y := startY; y < startY+dialogHeight; y++ {
		for x := startX; x < startX+dialogWidth; x++ {
			s.SetContent(x, y, ' ', nil, dialogStyle)
		}
	}

	// Border
	borderStyle := tcell.StyleDefault.Background(ColorBgHighlight).Foreground(ColorBorder)
	for x := startX; x < startX+dialogWidth; x++ {
		switch x {
		case startX:
			s.SetContent(x, startY, '┌', nil, borderStyle)
			s.SetContent(x, startY+dialogHeight-1, '└', nil, borderStyle)
		case startX + dialogWidth - 1:
			s.SetContent(x, startY, '┐', nil, borderStyle)
			s.SetContent(x, startY+dialogHeight-1, '┘', nil, borderStyle)
		default:
			s.SetContent(x, startY, '─', nil, borderStyle)
			s.SetContent(x, startY+dialogHeight-1, '─', nil, borderStyle)
		}
	}
	for y := startY + 1; y < startY+dialogHeight-1; y++ {
		s.SetContent(startX, y, '│', nil, borderStyle)
		s.SetContent(startX+dialogWidth-1, y, '│', nil, borderStyle)
	}

	// Title
	titleStyle := tcell.StyleDefault.Background(ColorBgHighlight).Foreground(ColorYellow).Bold(true)
	title := "Help - Keybindings"
	titleX := startX + (dialogWidth-len(title))/2
	drawText(s, titleX, startY+1, titleStyle, title)

	// Content with scrolling
	contentStartY := startY + 3
	contentHeight := dialogHeight - 4
	visibleLines := contentHeight - 1

	for i := 0; i < visibleLines && i+h.scrollOffset < len(helpLines); i++ {
		line := helpLines[i+h.scrollOffset]

		maxContentWidth := dialogWidth - 4
		if len(line) > maxContentWidth {
			if maxContentWidth > 3 {
				line = line[:maxContentWidth-3] + "..."
			} else {
				line = line[:maxContentWidth]
			}
		}
		drawText(s, startX+2, contentStartY+i, dialogStyle, line)
	}

	// Footer
	footerStyle := tcell.StyleDefault.Background(ColorBgHighlight).Foreground(ColorFgDark)
	footer := "Press Esc or ? to close"
	if len(helpLines) > visibleLines {
		footer = "j/k to scroll, Esc or ? to close"
	}
	footerX := startX + (dialogWidth-len(footer))/2
	if footerX < startX+2 {
		footerX = startX + 2
	}
	drawText(s, footerX, startY+dialogHeight-2, footerStyle, footer)
}
