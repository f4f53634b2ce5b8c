package ui

import (
	"strings"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// SearchState holds the state for in-document search
type SearchState struct {
	query         string
	cursorPos     int
	caseSensitive bool
	minScore      int // Minimum score threshold for matches
}

// Score threshold constants (based on raw fzf scores)
const (
	ScoreThresholdStrict     = 70 // Only high quality matches
	ScoreThresholdNormal     = 50 // Balanced (default)
	ScoreThresholdPermissive = 30 // Include marginal matches
	ScoreThresholdNone       = 0  // Accept all matches
)

// NewSearchState creates a new search state
func NewSearchState() *SearchState {
	return &SearchState{
		caseSensitive: false,
		minScore:      ScoreThresholdNormal,
	}
}

// Query returns the current query string
func (s *SearchState) Query() string {
	return s.query
}

// CursorPos returns the cursor position within the query
func (s *SearchState) CursorPos() int {
	return s.cursorPos
}

// SetQuery sets the search query and moves the cursor to the end
func (s *SearchState) SetQuery(query string) {
	s.query = query
	s.cursorPos = len(query)
}

// Clear clears the search state
func (s *SearchState) Clear() {
	s.query = ""
	s.cursorPos = 0
}

// InsertChar inserts a character at the cursor position
func (s *SearchState) InsertChar(ch rune) {
	if s.cursorPos >= len(s.query) {
		s.query += string(ch)
	} else {
		s.query = s.query[:s.cursorPos] + string(ch) + s.query[s.cursorPos:]
	}
	s.cursorPos++
}

// DeleteChar deletes the character before the cursor (backspace)
func (s *SearchState) DeleteChar() {
	if s.cursorPos > 0 {
		s.query = s.query[:s.cursorPos-1] + s.query[s.cursorPos:]
		s.cursorPos--
	}
}

// MoveCursorLeft moves cursor left
func (s *SearchState) MoveCursorLeft() {
	if s.cursorPos > 0 {
		s.cursorPos--
	}
}

// MoveCursorRight moves cursor right
func (s *SearchState) MoveCursorRight() {
	if s.cursorPos < len(s.query) {
		s.cursorPos++
	}
}

// MoveCursorStart moves cursor to start (Ctrl+A)
func (s *SearchState) MoveCursorStart() {
	s.cursorPos = 0
}

// MoveCursorEnd moves cursor to end (Ctrl+E)
func (s *SearchState) MoveCursorEnd() {
	s.cursorPos = len(s.query)
}

// DeleteToEnd deletes from cursor to end (Ctrl+K)
func (s *SearchState) DeleteToEnd() {
	s.query = s.query[:s.cursorPos]
}

// DeleteWord deletes the word before cursor (Ctrl+W)
func (s *SearchState) DeleteWord() {
	if s.cursorPos == 0 {
		return
	}

	start := s.cursorPos - 1
	for start > 0 && s.query[start] == ' ' {
		start--
	}
	for start > 0 && s.query[start-1] != ' ' {
		start--
	}

	s.query = s.query[:start] + s.query[s.cursorPos:]
	s.cursorPos = start
}

// MatchResult contains match score and positions
type MatchResult struct {
	Score     int
	Positions []int
}

// MatchLine matches one rendered line's text against the query,
// returning the fuzzy score and the matched rune positions for
// highlighting. A negative score means no match.
func (s *SearchState) MatchLine(text string) MatchResult {
	if s.query == "" {
		return MatchResult{Score: 0}
	}

	algo.Init("default")

	searchText := text
	pattern := s.query
	if !s.caseSensitive {
		searchText = strings.ToLower(text)
		pattern = strings.ToLower(s.query)
	}

	chars := util.ToChars([]byte(searchText))
	patternRunes := []rune(pattern)

	slab := util.MakeSlab(16384, 1024)
	result, positions := algo.FuzzyMatchV2(s.caseSensitive, false, true, &chars, patternRunes, true, slab)

	if result.Start < 0 {
		return MatchResult{Score: -1}
	}

	var matchPositions []int
	if positions != nil {
		// fzf positions index into the Chars array, which already
		// corresponds to rune positions
		matchPositions = make([]int, len(*positions))
		copy(matchPositions, *positions)
	}
	return MatchResult{Score: result.Score, Positions: matchPositions}
}

// Matches reports whether text clears the score threshold and returns
// the highlight positions when it does
func (s *SearchState) Matches(text string) (bool, []int) {
	if s.query == "" {
		return false, nil
	}
	r := s.MatchLine(text)
	if r.Score < 0 {
		return false, nil
	}
	if s.minScore > 0 && r.Score < s.minScore {
		return false, nil
	}
	return true, r.Positions
}
