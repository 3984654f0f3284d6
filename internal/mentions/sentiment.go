package mentions

// DefaultSentimentWindow is the context window used when scoring sentiment.
// It is configured independently of the window of the exposed contexts.
const DefaultSentimentWindow = 200

// maxNetPerSnippet is the assumed largest plausible net polarity of one
// snippet, used to normalize the summed sentiment into [-1, 1].
const maxNetPerSnippet = 5

// SentimentScorer scores the vocabulary around the mentions of a name.
type SentimentScorer struct {
	vocabulary Vocabulary
	window     int
}

// NewSentimentScorer returns a scorer using vocabulary and a context window
// of window characters. A nil vocabulary selects DefaultVocabulary.
func NewSentimentScorer(vocabulary Vocabulary, window int) *SentimentScorer {
	if vocabulary == nil {
		vocabulary = defaultVocabulary
	}
	return &SentimentScorer{vocabulary: vocabulary.Clone(), window: window}
}

// Score returns the sentiment around name in text, in [-1, 1]. Texts that do
// not mention name score 0.
func (s *SentimentScorer) Score(text, name string) float64 {
	if text == "" || name == "" {
		return 0.0
	}
	return s.score(newDocument(text), foldRunes([]rune(name)))
}

func (s *SentimentScorer) score(doc document, needle []rune) float64 {
	contexts := extractContexts(doc, needle, s.window)
	if len(contexts) == 0 {
		return 0.0
	}

	total := 0
	for _, c := range contexts {
		total += s.vocabulary.Score(c.Snippet)
	}

	normalized := float64(total) / float64(len(contexts)*maxNetPerSnippet)
	return clamp(normalized, -1, 1)
}

// Label buckets a sentiment score into positive, negative or neutral.
func Label(score float64) string {
	switch {
	case score > 0.1:
		return "positive"
	case score < -0.1:
		return "negative"
	default:
		return "neutral"
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
