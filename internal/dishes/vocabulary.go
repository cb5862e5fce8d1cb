package dishes

import (
	_ "embed"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

//go:embed vocabulary.yaml
var defaultVocabularyYAML []byte

// LexiconEntry maps one word to its signed sentiment contribution.
type LexiconEntry struct {
	Word  string  `yaml:"word"`
	Score float64 `yaml:"score"`
}

// Vocabulary holds every table the engine depends on. It is loaded once and
// treated as immutable; order of the slices is part of the extraction
// contract (the engine never iterates a map over this data).
type Vocabulary struct {
	Patterns  []string       `yaml:"patterns"`
	Keywords  []string       `yaml:"keywords"`
	Positive  []LexiconEntry `yaml:"positive"`
	Negative  []LexiconEntry `yaml:"negative"`
	StopWords []string       `yaml:"stop_words"`
	Fillers   []string       `yaml:"fillers"`
}

// DefaultVocabulary returns the embedded English vocabulary.
func DefaultVocabulary() (Vocabulary, error) {
	var v Vocabulary
	if err := yaml.Unmarshal(defaultVocabularyYAML, &v); err != nil {
		return Vocabulary{}, fmt.Errorf("parse embedded vocabulary: %w", err)
	}
	return v, nil
}

// LoadVocabulary reads a vocabulary from YAML. Used to substitute tables in
// tests or to localize without touching engine code.
func LoadVocabulary(r io.Reader) (Vocabulary, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Vocabulary{}, err
	}
	var v Vocabulary
	if err := yaml.Unmarshal(data, &v); err != nil {
		return Vocabulary{}, fmt.Errorf("parse vocabulary: %w", err)
	}
	if err := v.validate(); err != nil {
		return Vocabulary{}, err
	}
	return v, nil
}

func (v Vocabulary) validate() error {
	if len(v.Patterns) == 0 && len(v.Keywords) == 0 {
		return errors.New("vocabulary has no extraction patterns or keywords")
	}
	for _, e := range v.Positive {
		if e.Word == "" || e.Score <= 0 {
			return fmt.Errorf("invalid positive lexicon entry %q", e.Word)
		}
	}
	for _, e := range v.Negative {
		if e.Word == "" || e.Score >= 0 {
			return fmt.Errorf("invalid negative lexicon entry %q", e.Word)
		}
	}
	return nil
}
