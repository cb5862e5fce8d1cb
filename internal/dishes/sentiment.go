package dishes

import "strings"

// neutralSentiment is returned when no lexicon word appears in a review.
const neutralSentiment = 0.5

// scoreSentiment computes a bounded sentiment value for a whole review from
// the fixed lexicon. The running total is seeded with the neutral baseline
// and every lexicon word present as a substring of the lower-cased text
// contributes its score once; the result is total/matches clamped to [0,1].
//
// Dividing the seeded total by the match count folds the 0.5 baseline into
// the average, damping the lexicon signal toward neutral as matches grow.
func (e *Engine) scoreSentiment(text string) float64 {
	lower := strings.ToLower(text)

	total := neutralSentiment
	matches := 0

	for _, entry := range e.lexicon {
		if strings.Contains(lower, entry.Word) {
			total += entry.Score
			matches++
		}
	}

	if matches == 0 {
		return neutralSentiment
	}
	return clamp01(total / float64(matches))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
