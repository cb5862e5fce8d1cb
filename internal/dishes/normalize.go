package dishes

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	nonWordRE    = regexp.MustCompile(`[^\w\s]`)
	whitespaceRE = regexp.MustCompile(`\s+`)
)

// Normalize turns a raw candidate into its canonical dish-name key:
// lower-cased, punctuation stripped, whitespace collapsed, each word
// title-cased. Empty input normalizes to "" (rejected by Valid).
func Normalize(raw string) string {
	s := strings.ToLower(raw)
	s = nonWordRE.ReplaceAllString(s, "")
	s = whitespaceRE.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	words := strings.Split(s, " ")
	for i, w := range words {
		words[i] = titleWord(w)
	}
	return strings.Join(words, " ")
}

func titleWord(w string) string {
	runes := []rune(w)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

const (
	minNameLen   = 3
	maxNameLen   = 40
	maxNameWords = 5
)

// valid rejects canonical names unlikely to be real dishes: too short, too
// long, too many words, or built entirely from stop words (the usual
// service-and-atmosphere chatter the phrase patterns snag).
func (e *Engine) valid(canonical string) bool {
	if len(canonical) < minNameLen || len(canonical) > maxNameLen {
		return false
	}

	words := strings.Split(canonical, " ")
	if len(words) > maxNameWords {
		return false
	}

	for _, w := range words {
		if _, stop := e.stopWords[strings.ToLower(w)]; !stop {
			return true
		}
	}
	return false
}
