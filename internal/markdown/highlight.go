package markdown

import (
	"strings"
	"unicode"
)

// Keyword sets for the three highlighted languages. Matching is
// case-sensitive; the language tag lookup is not.
var (
	goKeywords = wordSet("break case chan const continue default defer else " +
		"fallthrough for func go goto if import interface map package range " +
		"return select struct switch type var")

	pythonKeywords = wordSet("False None True and as assert async await break " +
		"class continue def del elif else except finally for from global if " +
		"import in is lambda nonlocal not or pass raise return try while with yield")

	jsKeywords = wordSet("async await break case catch class const continue " +
		"debugger default delete do else export extends false finally for " +
		"function if import in instanceof let new null of return static super " +
		"switch this throw true try typeof undefined var void while with yield")
)

func wordSet(words string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(words) {
		set[w] = true
	}
	return set
}

func keywordSet(lang string) map[string]bool {
	switch strings.ToLower(strings.TrimSpace(lang)) {
	case "go", "golang":
		return goKeywords
	case "python", "py", "python3":
		return pythonKeywords
	case "javascript", "js", "node":
		return jsKeywords
	default:
		return nil
	}
}

// Keywords returns the keyword ranges to decorate inside code block text
// for the given language tag, in rune positions. Unrecognized tags get no
// decoration. Matches are whole words: an identifier run must equal a
// keyword exactly, so "form" never lights up "for".
func Keywords(code, lang string) []Range {
	set := keywordSet(lang)
	if set == nil {
		return nil
	}

	var out []Range
	runes := []rune(code)
	for i := 0; i < len(runes); {
		if !isIdentRune(runes[i]) {
			i++
			continue
		}
		j := i
		for j < len(runes) && isIdentRune(runes[j]) {
			j++
		}
		if set[string(runes[i:j])] {
			out = append(out, Range{Start: i, End: j})
		}
		i = j
	}
	return out
}

func isIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
