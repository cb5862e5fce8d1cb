// Package dishes extracts dish names from free-text restaurant reviews and
// ranks them. The engine is a pure in-memory computation: no I/O, no shared
// state between invocations, safe to call concurrently for different
// restaurants.
package dishes

import (
	"sort"
	"strings"
)

const (
	// DefaultTopN bounds the ranked list when the caller passes no limit.
	DefaultTopN = 3

	sampleMaxChars = 200

	mentionWeight   = 0.6
	sentimentWeight = 0.4
)

// Engine runs the four-stage pipeline (extract, normalize+validate, score,
// aggregate) over a restaurant's reviews. Construct one per vocabulary and
// reuse it; all per-call state lives on the stack of Rank.
type Engine struct {
	strategies []Strategy
	lexicon    []LexiconEntry
	stopWords  map[string]struct{}
}

// NewEngine builds an engine from an immutable vocabulary. It fails only on
// an uncompilable pattern or a malformed lexicon.
func NewEngine(v Vocabulary) (*Engine, error) {
	if err := v.validate(); err != nil {
		return nil, err
	}

	stopWords := make(map[string]struct{}, len(v.StopWords))
	for _, w := range v.StopWords {
		stopWords[strings.ToLower(w)] = struct{}{}
	}

	// Keyword windows skip stop words and fillers alike.
	skip := make(map[string]struct{}, len(v.StopWords)+len(v.Fillers))
	for w := range stopWords {
		skip[w] = struct{}{}
	}
	for _, w := range v.Fillers {
		skip[strings.ToLower(w)] = struct{}{}
	}

	patterns, err := newPatternStrategy(v.Patterns)
	if err != nil {
		return nil, err
	}

	lexicon := make([]LexiconEntry, 0, len(v.Positive)+len(v.Negative))
	lexicon = append(lexicon, v.Positive...)
	lexicon = append(lexicon, v.Negative...)

	return &Engine{
		strategies: []Strategy{
			patterns,
			newKeywordStrategy(v.Keywords, skip),
		},
		lexicon:   lexicon,
		stopWords: stopWords,
	}, nil
}

// Rank merges dish mentions across all reviews of one restaurant and returns
// the top dishes by blended score (mention count weighted against average
// sentiment). Reviews without text are skipped. When nothing valid is
// extracted the result is a single placeholder entry, never an empty list;
// callers render it directly.
func (e *Engine) Rank(reviews []Review, topN int) []RankedDish {
	if topN <= 0 {
		topN = DefaultTopN
	}

	agg := make(map[string]*AggregatedDish)
	var order []string

	for _, review := range reviews {
		text := strings.TrimSpace(review.Text)
		if text == "" {
			continue
		}

		mentions, mentionOrder := e.extractMentions(text)
		if len(mentionOrder) == 0 {
			continue
		}

		sentiment := e.scoreSentiment(text)
		sample := excerpt(text, sampleMaxChars)

		for _, name := range mentionOrder {
			count := mentions[name]

			dish, seen := agg[name]
			if !seen {
				agg[name] = &AggregatedDish{
					Name:           name,
					MentionCount:   count,
					TotalSentiment: sentiment,
					ReviewCount:    1,
					BestSentiment:  sentiment,
					Sample:         sample,
				}
				order = append(order, name)
				continue
			}

			dish.MentionCount += count
			dish.TotalSentiment += sentiment
			dish.ReviewCount++
			if sentiment > dish.BestSentiment {
				dish.BestSentiment = sentiment
				dish.Sample = sample
			}
		}
	}

	if len(order) == 0 {
		return []RankedDish{fallbackDish()}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return blendedScore(agg[order[i]]) > blendedScore(agg[order[j]])
	})

	if len(order) > topN {
		order = order[:topN]
	}

	ranked := make([]RankedDish, 0, len(order))
	for _, name := range order {
		dish := agg[name]
		ranked = append(ranked, RankedDish{
			Name:             name,
			MentionCount:     dish.MentionCount,
			AverageSentiment: dish.TotalSentiment / float64(dish.ReviewCount),
			Sample:           dish.Sample,
		})
	}
	return ranked
}

// extractMentions runs every strategy over one review and merges candidates
// that normalize to the same canonical name. The returned order is candidate
// discovery order, which keeps the whole pipeline deterministic.
func (e *Engine) extractMentions(text string) (map[string]int, []string) {
	counts := make(map[string]int)
	var order []string

	for _, strategy := range e.strategies {
		for _, candidate := range strategy.Extract(text) {
			name := Normalize(candidate.Raw)
			if !e.valid(name) {
				continue
			}
			if _, seen := counts[name]; !seen {
				order = append(order, name)
			}
			counts[name]++
		}
	}
	return counts, order
}

func blendedScore(d *AggregatedDish) float64 {
	avg := d.TotalSentiment / float64(d.ReviewCount)
	return float64(d.MentionCount)*mentionWeight + avg*10*sentimentWeight
}

func excerpt(text string, maxChars int) string {
	runes := []rune(text)
	if len(runes) <= maxChars {
		return text
	}
	return string(runes[:maxChars])
}

// fallbackDish keeps the display list non-empty when a restaurant's reviews
// yield no recognizable dish.
func fallbackDish() RankedDish {
	return RankedDish{
		Name:             "Chef's Special",
		MentionCount:     0,
		AverageSentiment: 0.7,
		Sample:           "Ask your server about the most popular dish.",
	}
}
