package dishes

// Review is one customer review. The engine only reads Text; the rest is
// metadata carried through from the places provider.
type Review struct {
	Author string  `json:"author,omitempty"`
	Rating float64 `json:"rating,omitempty"`
	Text   string  `json:"text"`
}

// Candidate is a raw extraction result, alive only while a single review
// is being processed.
type Candidate struct {
	Raw      string
	Strategy string
}

const (
	StrategyPattern = "pattern"
	StrategyKeyword = "keyword"
)

// AggregatedDish accumulates mentions of one canonical dish name across all
// reviews of a restaurant. Sample tracks the single most positive mention
// seen so far (first-seen wins ties, the comparison is strict >).
type AggregatedDish struct {
	Name           string
	MentionCount   int
	TotalSentiment float64
	ReviewCount    int
	BestSentiment  float64
	Sample         string
}

// RankedDish is the engine's final output record.
type RankedDish struct {
	Name             string  `json:"name"`
	MentionCount     int     `json:"mention_count"`
	AverageSentiment float64 `json:"average_sentiment"`
	Sample           string  `json:"sample_review,omitempty"`
}
