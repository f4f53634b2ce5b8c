package ui

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"
	"github.com/marzahner/markdown-viewer/internal/document"
	"github.com/marzahner/markdown-viewer/internal/markdown"
	"github.com/marzahner/markdown-viewer/internal/models"
	"github.com/mattn/go-runewidth"
)

type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
)

// App is the viewer: one open document, a scroll position, search state
// and the tcell screen everything is drawn on
type App struct {
	screen tcell.Screen
	quit   chan struct{}
	mode   Mode

	doc      *document.Document
	settings *Settings
	recent   *models.RecentFiles
	watcher  *document.Watcher

	lines        []renderedLine
	scrollOffset int

	searchState  *SearchState
	matched      map[int][]int // line index -> highlight positions
	matchOrder   []int         // matched line indices in document order
	currentMatch int

	codeBlocks   []string // raw code text per code block, in document order
	selectedCode int      // index into codeBlocks, -1 when none selected

	helpDialog    *HelpDialog
	statusMessage string
	configDir     string
	shutdownOnce  sync.Once
	watchDisabled bool
}

// NewApp creates the viewer for an already-loaded document
func NewApp(doc *document.Document, recent *models.RecentFiles) *App {
	configDir, err := os.UserConfigDir()
	if err != nil {
		log.Printf("Failed to get config directory: %v", err)
		configDir = "."
	}
	configDir = filepath.Join(configDir, "markdown-viewer")

	settings, err := LoadSettings(configDir)
	if err != nil {
		log.Printf("Failed to load settings, using defaults: %v", err)
		settings = DefaultSettings()
	}

	return &App{
		quit:         make(chan struct{}),
		mode:         ModeNormal,
		doc:          doc,
		settings:     settings,
		recent:       recent,
		searchState:  NewSearchState(),
		selectedCode: -1,
		helpDialog:   NewHelpDialog(),
		configDir:    configDir,
	}
}

// DisableWatch turns off live reload for this run without touching the
// persisted setting
func (a *App) DisableWatch() {
	a.watchDisabled = true
}

// requestQuit closes the quit channel exactly once
func (a *App) requestQuit() {
	select {
	case <-a.quit:
	default:
		close(a.quit)
	}
}

func (a *App) Run() error {
	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	a.screen = s

	if err := s.Init(); err != nil {
		return err
	}

	defer func() {
		a.requestQuit()
		a.shutdown()
		s.Fini()
		if r := recover(); r != nil {
			log.Printf("Panic during shutdown: %v", r)
		}
	}()

	s.SetStyle(tcell.StyleDefault.Background(ColorBg).Foreground(ColorFg))
	s.Clear()

	a.setDocument(a.doc)

	if a.settings.Watch && !a.watchDisabled {
		w, err := document.Watch(a.doc.Path)
		if err != nil {
			log.Printf("Live reload disabled: %v", err)
		} else {
			a.watcher = w
		}
	}

	// Graceful shutdown on interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("Received interrupt signal, shutting down...")
		if a.screen != nil {
			a.screen.PostEvent(tcell.NewEventInterrupt(nil))
		}
		a.requestQuit()
	}()

	go a.handleEvents()
	a.draw()

	<-a.quit

	log.Println("Shutdown complete")
	return nil
}

func (a *App) shutdown() {
	a.shutdownOnce.Do(func() {
		if a.watcher != nil {
			a.watcher.Close()
		}
		if err := SaveSettings(a.configDir, a.settings); err != nil {
			log.Printf("Failed to save settings: %v", err)
		}
	})
}

func (a *App) handleEvents() {
	eventChan := make(chan tcell.Event)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	}()

	var updates <-chan *document.Document
	if a.watcher != nil {
		updates = a.watcher.Updates()
	}

	for {
		select {
		case <-a.quit:
			return
		case doc := <-updates:
			a.setDocument(doc)
			a.statusMessage = "Reloaded " + filepath.Base(doc.Path)
			a.draw()
		case ev, ok := <-eventChan:
			if !ok {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				a.screen.Sync()
				a.relayout()
				a.draw()
			case *tcell.EventKey:
				if a.handleKey(ev) {
					a.draw()
				}
			case *tcell.EventInterrupt:
				return
			}
		}
	}
}

// setDocument swaps in a (re)loaded document and rebuilds derived state
func (a *App) setDocument(doc *document.Document) {
	a.doc = doc
	a.codeBlocks = a.codeBlocks[:0]
	for _, b := range doc.Blocks {
		if b.Kind == markdown.KindCodeBlock {
			a.codeBlocks = append(a.codeBlocks, b.Text)
		}
	}
	if a.selectedCode >= len(a.codeBlocks) {
		a.selectedCode = len(a.codeBlocks) - 1
	}
	a.relayout()
}

// relayout rebuilds the rendered lines for the current screen width
func (a *App) relayout() {
	w, _ := a.screen.Size()
	if a.settings.MaxWidth > 0 {
		w = min(w, a.settings.MaxWidth)
	}
	a.lines = layout(a.doc.Blocks, w)
	a.clampScroll()
	a.applySearch()
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	if a.helpDialog.IsVisible() {
		return a.helpDialog.HandleKey(ev)
	}

	if a.mode == ModeSearch {
		return a.handleSearchKey(ev)
	}

	switch ev.Key() {
	case tcell.KeyCtrlC:
		a.requestQuit()
		return false
	case tcell.KeyDown:
		a.scrollBy(1)
		return true
	case tcell.KeyUp:
		a.scrollBy(-1)
		return true
	case tcell.KeyPgDn, tcell.KeyCtrlD:
		a.scrollBy(a.pageSize() / 2)
		return true
	case tcell.KeyPgUp, tcell.KeyCtrlU:
		a.scrollBy(-a.pageSize() / 2)
		return true
	case tcell.KeyHome:
		a.scrollOffset = 0
		return true
	case tcell.KeyEnd:
		a.scrollToBottom()
		return true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			a.requestQuit()
			return false
		case 'j':
			a.scrollBy(1)
			return true
		case 'k':
			a.scrollBy(-1)
			return true
		case 'g':
			a.scrollOffset = 0
			return true
		case 'G':
			a.scrollToBottom()
			return true
		case '/':
			a.mode = ModeSearch
			a.searchState.Clear()
			a.statusMessage = ""
			return true
		case 'n':
			a.jumpToMatch(1)
			return true
		case 'N':
			a.jumpToMatch(-1)
			return true
		case ']':
			a.selectCodeBlock(1)
			return true
		case '[':
			a.selectCodeBlock(-1)
			return true
		case 'y':
			a.copySelectedCode()
			return true
		case 'r':
			a.reload()
			return true
		case '?':
			a.helpDialog.Show()
			return true
		}
	}
	return false
}

func (a *App) handleSearchKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		a.mode = ModeNormal
		a.searchState.Clear()
		a.applySearch()
		return true
	case tcell.KeyEnter:
		a.mode = ModeNormal
		if len(a.matchOrder) > 0 {
			a.statusMessage = fmt.Sprintf("%d matching lines", len(a.matchOrder))
		} else {
			a.statusMessage = "No matches"
		}
		return true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		a.searchState.DeleteChar()
	case tcell.KeyLeft:
		a.searchState.MoveCursorLeft()
		return true
	case tcell.KeyRight:
		a.searchState.MoveCursorRight()
		return true
	case tcell.KeyCtrlA:
		a.searchState.MoveCursorStart()
		return true
	case tcell.KeyCtrlE:
		a.searchState.MoveCursorEnd()
		return true
	case tcell.KeyCtrlK:
		a.searchState.DeleteToEnd()
	case tcell.KeyCtrlW:
		a.searchState.DeleteWord()
	case tcell.KeyRune:
		a.searchState.InsertChar(ev.Rune())
	default:
		return false
	}

	a.applySearch()
	if len(a.matchOrder) > 0 {
		a.currentMatch = 0
		a.scrollTo(a.matchOrder[0])
	}
	return true
}

// applySearch recomputes the matched lines for the current query
func (a *App) applySearch() {
	a.matched = nil
	a.matchOrder = nil
	a.currentMatch = 0
	if a.searchState.Query() == "" {
		return
	}

	a.matched = make(map[int][]int)
	for i, ln := range a.lines {
		if ln.frame || ln.text == "" {
			continue
		}
		if ok, positions := a.searchState.Matches(ln.text); ok {
			a.matched[i] = positions
			a.matchOrder = append(a.matchOrder, i)
		}
	}
}

func (a *App) jumpToMatch(dir int) {
	if len(a.matchOrder) == 0 {
		a.statusMessage = "No matches"
		return
	}
	a.currentMatch = (a.currentMatch + dir + len(a.matchOrder)) % len(a.matchOrder)
	a.scrollTo(a.matchOrder[a.currentMatch])
	a.statusMessage = fmt.Sprintf("Match %d/%d", a.currentMatch+1, len(a.matchOrder))
}

// selectCodeBlock moves the code block selection and scrolls it into view
func (a *App) selectCodeBlock(dir int) {
	if len(a.codeBlocks) == 0 {
		a.statusMessage = "No code blocks"
		return
	}
	if a.selectedCode < 0 {
		a.selectedCode = 0
	} else {
		a.selectedCode = (a.selectedCode + dir + len(a.codeBlocks)) % len(a.codeBlocks)
	}
	for i, ln := range a.lines {
		if ln.codeIdx == a.selectedCode {
			a.scrollTo(i)
			break
		}
	}
	a.statusMessage = fmt.Sprintf("Code block %d/%d", a.selectedCode+1, len(a.codeBlocks))
}

// copySelectedCode writes the selected code block's raw text, verbatim,
// to the system clipboard
func (a *App) copySelectedCode() {
	if a.selectedCode < 0 || a.selectedCode >= len(a.codeBlocks) {
		a.statusMessage = "No code block selected ([ and ] to select)"
		return
	}
	if err := clipboard.WriteAll(a.codeBlocks[a.selectedCode]); err != nil {
		log.Printf("Clipboard write failed: %v", err)
		a.statusMessage = "Copy failed: " + err.Error()
		return
	}
	a.statusMessage = fmt.Sprintf("Copied code block %d", a.selectedCode+1)
}

func (a *App) reload() {
	doc, err := document.Load(a.doc.Path)
	if err != nil {
		log.Printf("Reload failed: %v", err)
		a.statusMessage = "Reload failed: " + err.Error()
		return
	}
	a.setDocument(doc)
	a.statusMessage = "Reloaded " + filepath.Base(doc.Path)
}

func (a *App) pageSize() int {
	_, h := a.screen.Size()
	return max(1, h-1)
}

func (a *App) scrollBy(delta int) {
	a.scrollOffset += delta
	a.clampScroll()
}

func (a *App) scrollTo(line int) {
	// Center the target line when possible
	a.scrollOffset = line - a.pageSize()/2
	a.clampScroll()
}

func (a *App) scrollToBottom() {
	a.scrollOffset = len(a.lines) - a.pageSize()
	a.clampScroll()
}

func (a *App) clampScroll() {
	maxOffset := max(0, len(a.lines)-a.pageSize())
	if a.scrollOffset > maxOffset {
		a.scrollOffset = maxOffset
	}
	if a.scrollOffset < 0 {
		a.scrollOffset = 0
	}
}

func (a *App) draw() {
	a.screen.Clear()

	_, h := a.screen.Size()
	visible := h - 1 // Last row is the status bar

	for row := 0; row < visible; row++ {
		idx := a.scrollOffset + row
		if idx >= len(a.lines) {
			break
		}
		a.drawLine(row, idx)
	}

	a.drawStatusBar()
	a.helpDialog.Draw(a.screen)
	a.screen.Show()
}

// drawLine draws one rendered line, applying base style, span styles,
// keyword decoration and search highlights rune by rune
func (a *App) drawLine(row, idx int) {
	ln := a.lines[idx]
	w, _ := a.screen.Size()

	base := ln.base
	if ln.codeIdx >= 0 && ln.codeIdx == a.selectedCode && ln.frame {
		base = base.Foreground(ColorBlue)
	}

	highlights := a.matched[idx]
	hlSet := make(map[int]bool, len(highlights))
	for _, p := range highlights {
		hlSet[p] = true
	}

	if ln.prefix != "" {
		drawText(a.screen, 0, row, ln.prefixStyle, ln.prefix)
	}

	x := ln.indent
	for ri, r := range []rune(ln.text) {
		if x >= w {
			break
		}
		style := styleAt(ln, ri)
		if ln.frame {
			style = base
		}
		if hlSet[ri] {
			style = style.Background(ColorHighlight).Foreground(ColorBgDark)
		}
		a.screen.SetContent(x, row, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}

func (a *App) drawStatusBar() {
	w, h := a.screen.Size()
	style := tcell.StyleDefault.Background(ColorBgDark).Foreground(ColorFgDark)

	for x := 0; x < w; x++ {
		a.screen.SetContent(x, h-1, ' ', nil, style)
	}

	if a.mode == ModeSearch {
		prompt := "/" + a.searchState.Query()
		drawText(a.screen, 0, h-1, style.Foreground(ColorFg), prompt)
		// Block cursor over the edit position
		cursorX := 1 + a.searchState.CursorPos()
		cursorStyle := style.Reverse(true)
		if a.searchState.CursorPos() < len(a.searchState.Query()) {
			a.screen.SetContent(cursorX, h-1, rune(a.searchState.Query()[a.searchState.CursorPos()]), nil, cursorStyle)
		} else {
			a.screen.SetContent(cursorX, h-1, ' ', nil, cursorStyle)
		}
		return
	}

	name := filepath.Base(a.doc.Path)
	drawText(a.screen, 0, h-1, style.Foreground(ColorFg), name)

	if a.statusMessage != "" {
		msgStyle := style.Foreground(ColorSuccess)
		if strings.Contains(a.statusMessage, "failed") {
			msgStyle = style.Foreground(ColorError)
		}
		drawText(a.screen, len(name)+2, h-1, msgStyle, a.statusMessage)
	}

	pos := scrollPercent(a.scrollOffset, len(a.lines), a.pageSize())
	drawText(a.screen, w-len(pos)-1, h-1, style, pos)
}

func scrollPercent(offset, total, page int) string {
	if total <= page {
		return "All"
	}
	if offset == 0 {
		return "Top"
	}
	if offset >= total-page {
		return "Bot"
	}
	return fmt.Sprintf("%d%%", offset*100/(total-page))
}

// drawText draws a string at the given position with a single style
func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for pos, r := range []rune(text) {
		s.SetContent(x+pos, y, r, nil, style)
	}
}
