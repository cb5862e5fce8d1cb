package dishes

import (
	"strings"
	"testing"
)

func TestDefaultVocabularyLoads(t *testing.T) {
	vocab, err := DefaultVocabulary()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(vocab.Patterns) == 0 {
		t.Error("expected phrase patterns")
	}
	if len(vocab.Keywords) == 0 {
		t.Error("expected dish keywords")
	}
	if len(vocab.Positive) == 0 || len(vocab.Negative) == 0 {
		t.Error("expected both lexicon halves")
	}
	if len(vocab.StopWords) == 0 {
		t.Error("expected stop words")
	}

	for _, e := range vocab.Positive {
		if e.Score < 0.6 || e.Score > 0.95 {
			t.Errorf("positive score out of range: %s=%v", e.Word, e.Score)
		}
	}
	for _, e := range vocab.Negative {
		if e.Score < -0.95 || e.Score > -0.4 {
			t.Errorf("negative score out of range: %s=%v", e.Word, e.Score)
		}
	}
}

func TestLoadVocabularySubstitution(t *testing.T) {
	custom := `
patterns:
  - '\bloved the ([a-z]+)'
keywords:
  - feijoada
positive:
  - { word: otimo, score: 0.9 }
negative:
  - { word: ruim, score: -0.8 }
stop_words:
  - the
fillers:
  - the
`
	vocab, err := LoadVocabulary(strings.NewReader(custom))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	engine, err := NewEngine(vocab)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := engine.Rank([]Review{{Text: "loved the feijoada, otimo"}}, 3)
	if len(got) == 0 || got[0].Name != "Feijoada" {
		t.Fatalf("expected Feijoada from substituted vocabulary, got %v", got)
	}
	if got[0].AverageSentiment <= 0.5 {
		t.Errorf("expected custom lexicon to score positive, got %v", got[0].AverageSentiment)
	}
}

func TestLoadVocabularyRejectsBadLexicon(t *testing.T) {
	bad := `
keywords: [burger]
positive:
  - { word: great, score: -0.2 }
`
	if _, err := LoadVocabulary(strings.NewReader(bad)); err == nil {
		t.Fatal("expected error for non-positive positive score")
	}
}

func TestNewEngineRejectsBadPattern(t *testing.T) {
	vocab, err := DefaultVocabulary()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	vocab.Patterns = append(vocab.Patterns, `([unclosed`)
	if _, err := NewEngine(vocab); err == nil {
		t.Fatal("expected error for uncompilable pattern")
	}
}

func TestNewEngineRejectsMultiGroupPattern(t *testing.T) {
	vocab, err := DefaultVocabulary()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	vocab.Patterns = []string{`(a)(b)`}
	if _, err := NewEngine(vocab); err == nil {
		t.Fatal("expected error for pattern with two capture groups")
	}
}
