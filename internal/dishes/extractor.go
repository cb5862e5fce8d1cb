package dishes

import (
	"fmt"
	"regexp"
	"strings"
)

// Strategy finds candidate dish phrases in one review's text. Strategies are
// independent; the engine unions their candidates before normalization, so
// two strategies firing on the same phrase simply merge under one canonical
// name.
type Strategy interface {
	Name() string
	Extract(text string) []Candidate
}

// --------------------------------------------------
// Pattern strategy
// --------------------------------------------------

// patternStrategy matches an ordered set of phrase templates that pair a
// dish phrase with a quality judgment ("the <phrase> was amazing",
// "loved the <phrase>", "best <phrase> ever", ...). Each template captures
// exactly one phrase group.
type patternStrategy struct {
	patterns []*regexp.Regexp
}

func newPatternStrategy(exprs []string) (*patternStrategy, error) {
	patterns := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("compile pattern %q: %w", expr, err)
		}
		if re.NumSubexp() != 1 {
			return nil, fmt.Errorf("pattern %q must capture exactly one phrase group", expr)
		}
		patterns = append(patterns, re)
	}
	return &patternStrategy{patterns: patterns}, nil
}

func (p *patternStrategy) Name() string { return StrategyPattern }

func (p *patternStrategy) Extract(text string) []Candidate {
	lower := strings.ToLower(text)

	var out []Candidate
	for _, re := range p.patterns {
		for _, match := range re.FindAllStringSubmatch(lower, -1) {
			if len(match) > 1 && match[1] != "" {
				out = append(out, Candidate{Raw: match[1], Strategy: StrategyPattern})
			}
		}
	}
	return out
}

// --------------------------------------------------
// Keyword strategy
// --------------------------------------------------

// keywordStrategy anchors on a fixed vocabulary of dish nouns. For every
// vocabulary word found inside a token of the text, it emits the token plus
// one optional neighbor word on each side ("spicy tuna roll" around "roll").
// Stop words and fillers never enter the window.
type keywordStrategy struct {
	keywords []string
	skip     map[string]struct{}
}

func newKeywordStrategy(keywords []string, skip map[string]struct{}) *keywordStrategy {
	return &keywordStrategy{keywords: keywords, skip: skip}
}

func (k *keywordStrategy) Name() string { return StrategyKeyword }

func (k *keywordStrategy) Extract(text string) []Candidate {
	lower := strings.ToLower(text)

	var tokens []string
	for _, t := range tokenRE.FindAllString(lower, -1) {
		tokens = append(tokens, t)
	}

	var out []Candidate
	for _, kw := range k.keywords {
		if !strings.Contains(lower, kw) {
			continue
		}
		for i, tok := range tokens {
			if !strings.Contains(tok, kw) {
				continue
			}

			window := make([]string, 0, 3)
			if i > 0 && k.usable(tokens[i-1]) {
				window = append(window, tokens[i-1])
			}
			window = append(window, tok)
			if i+1 < len(tokens) && k.usable(tokens[i+1]) {
				window = append(window, tokens[i+1])
			}

			out = append(out, Candidate{
				Raw:      strings.Join(window, " "),
				Strategy: StrategyKeyword,
			})
		}
	}
	return out
}

func (k *keywordStrategy) usable(word string) bool {
	_, skipped := k.skip[word]
	return !skipped
}

var tokenRE = regexp.MustCompile(`[a-z]+`)
