package mentions

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Vocabulary maps a lower-case term to its polarity. Positive terms carry
// +1, negative terms -1. Other weights are allowed but the normalization in
// SentimentScorer assumes a net of at most 5 per snippet.
type Vocabulary map[string]int

var defaultPositiveTerms = []string{
	"excellent", "best", "great", "outstanding", "recommended", "top", "leading",
	"innovative", "reliable", "trusted", "popular", "successful", "effective",
	"quality", "superior", "amazing", "fantastic", "impressive", "strong",
	"premier", "prestigious", "renowned", "established", "accredited",
}

var defaultNegativeTerms = []string{
	"poor", "bad", "worst", "terrible", "avoid", "problematic", "failed",
	"disappointing", "unreliable", "weak", "inferior", "lacking", "struggling",
}

var defaultVocabulary = NewVocabulary(defaultPositiveTerms, defaultNegativeTerms)

// DefaultVocabulary returns a copy of the built-in brand vocabulary.
func DefaultVocabulary() Vocabulary {
	return defaultVocabulary.Clone()
}

// NewVocabulary builds a vocabulary from positive and negative term lists.
// Terms are lower-cased; a term listed in both lists keeps the negative
// polarity.
func NewVocabulary(positive, negative []string) Vocabulary {
	v := make(Vocabulary, len(positive)+len(negative))
	for _, term := range positive {
		if t := normalizeTerm(term); t != "" {
			v[t] = 1
		}
	}
	for _, term := range negative {
		if t := normalizeTerm(term); t != "" {
			v[t] = -1
		}
	}
	return v
}

// Clone returns an independent copy of v.
func (v Vocabulary) Clone() Vocabulary {
	c := make(Vocabulary, len(v))
	for term, weight := range v {
		c[term] = weight
	}
	return c
}

// Terms returns the terms of v in lexical order.
func (v Vocabulary) Terms() []string {
	terms := make([]string, 0, len(v))
	for term := range v {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}

// Score returns the net polarity of snippet: the sum of the weights of every
// term contained in it. A term counts once however often it repeats.
func (v Vocabulary) Score(snippet string) int {
	lower := strings.ToLower(snippet)
	net := 0
	for term, weight := range v {
		if strings.Contains(lower, term) {
			net += weight
		}
	}
	return net
}

type vocabularyFile struct {
	Positive []string       `yaml:"positive"`
	Negative []string       `yaml:"negative"`
	Weights  map[string]int `yaml:"weights"`
}

// ParseVocabulary decodes a YAML vocabulary document.
//
//	positive: [excellent, trusted]
//	negative: [poor]
//	weights:
//	  scam: -2
func ParseVocabulary(data []byte) (Vocabulary, error) {
	var f vocabularyFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse vocabulary: %w", err)
	}
	v := NewVocabulary(f.Positive, f.Negative)
	for term, weight := range f.Weights {
		if t := normalizeTerm(term); t != "" {
			v[t] = weight
		}
	}
	if len(v) == 0 {
		return nil, fmt.Errorf("vocabulary has no terms")
	}
	return v, nil
}

// LoadVocabulary reads a YAML vocabulary file from path.
func LoadVocabulary(path string) (Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vocabulary file: %w", err)
	}
	return ParseVocabulary(data)
}

func normalizeTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}
