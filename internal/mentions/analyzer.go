package mentions

import "strings"

// DefaultMaxContexts is the number of contexts kept in an analysis.
const DefaultMaxContexts = 3

// MentionAnalysis is the scored record of one brand in one response.
type MentionAnalysis struct {
	DirectMentionCount int              `json:"direct_mentions"`
	MentionType        MentionType      `json:"mention_type"`
	SentimentScore     float64          `json:"sentiment_score"`
	PositionScore      float64          `json:"position_score"`
	Contexts           []MentionContext `json:"contexts"`
	VisibilityScore    float64          `json:"visibility_score"`
}

// Snippets returns the context snippets of a in order.
func (a MentionAnalysis) Snippets() []string {
	snippets := make([]string, len(a.Contexts))
	for i, c := range a.Contexts {
		snippets[i] = c.Snippet
	}
	return snippets
}

// Mentioned reports whether the brand name occurred verbatim.
func (a MentionAnalysis) Mentioned() bool {
	return a.DirectMentionCount > 0
}

func emptyAnalysis() MentionAnalysis {
	return MentionAnalysis{
		MentionType: MentionNone,
		Contexts:    []MentionContext{},
	}
}

// Analyzer scores brand mentions in free text. It holds only immutable
// configuration and is safe for concurrent use.
type Analyzer struct {
	contextWindow int
	maxContexts   int
	sentiment     *SentimentScorer
	policy        ScoringPolicy
}

type analyzerOptions struct {
	contextWindow   int
	sentimentWindow int
	maxContexts     int
	vocabulary      Vocabulary
	policy          ScoringPolicy
}

// Option configures an Analyzer.
type Option func(*analyzerOptions)

// WithContextWindow sets the width of the contexts kept in the analysis.
func WithContextWindow(window int) Option {
	return func(o *analyzerOptions) { o.contextWindow = window }
}

// WithSentimentWindow sets the width of the snippets scored for sentiment.
func WithSentimentWindow(window int) Option {
	return func(o *analyzerOptions) { o.sentimentWindow = window }
}

// WithMaxContexts caps the number of contexts kept in the analysis.
func WithMaxContexts(n int) Option {
	return func(o *analyzerOptions) { o.maxContexts = n }
}

// WithVocabulary replaces the default sentiment vocabulary.
func WithVocabulary(v Vocabulary) Option {
	return func(o *analyzerOptions) { o.vocabulary = v }
}

// WithPolicy replaces the legacy scoring policy.
func WithPolicy(p ScoringPolicy) Option {
	return func(o *analyzerOptions) { o.policy = p }
}

// NewAnalyzer builds an Analyzer. Without options it reproduces the legacy
// scoring: 150 character contexts, 200 character sentiment windows, three
// exposed contexts and the default vocabulary.
func NewAnalyzer(opts ...Option) *Analyzer {
	o := analyzerOptions{
		contextWindow:   DefaultContextWindow,
		sentimentWindow: DefaultSentimentWindow,
		maxContexts:     DefaultMaxContexts,
		policy:          LegacyPolicy{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.policy == nil {
		o.policy = LegacyPolicy{}
	}
	if o.maxContexts < 0 {
		o.maxContexts = 0
	}
	return &Analyzer{
		contextWindow: o.contextWindow,
		maxContexts:   o.maxContexts,
		sentiment:     NewSentimentScorer(o.vocabulary, o.sentimentWindow),
		policy:        o.policy,
	}
}

// PolicyVersion names the scoring policy used by a.
func (a *Analyzer) PolicyVersion() string {
	return a.policy.Version()
}

// Analyze scores brandName in text. Empty text or brand name produce the
// zero record with mention type none.
func (a *Analyzer) Analyze(text, brandName string) MentionAnalysis {
	if text == "" || brandName == "" {
		return emptyAnalysis()
	}

	doc := newDocument(text)
	needle := foldRunes([]rune(brandName))

	occurrences := doc.occurrences(needle)
	directCount := len(occurrences)

	contexts := extractContexts(doc, needle, a.contextWindow)
	sentiment := a.sentiment.score(doc, needle)

	mentionType := MentionNone
	if directCount > 0 {
		mentionType = MentionDirect
	} else if token := fallbackToken(brandName); len(token) > 0 && doc.indexFrom(token, 0) >= 0 {
		mentionType = MentionIndirect
	}

	position := 0.0
	if len(contexts) > 0 && len(occurrences) > 0 {
		position = a.policy.PositionScore(occurrences[0], doc.len())
	}

	if len(contexts) > a.maxContexts {
		contexts = contexts[:a.maxContexts]
	}
	if contexts == nil {
		contexts = []MentionContext{}
	}

	return MentionAnalysis{
		DirectMentionCount: directCount,
		MentionType:        mentionType,
		SentimentScore:     sentiment,
		PositionScore:      position,
		Contexts:           contexts,
		VisibilityScore:    a.policy.VisibilityScore(directCount, mentionType, sentiment, position),
	}
}

// fallbackToken is the partial name accepted as an indirect mention: the
// first word of a multi-word name, otherwise its first five characters.
// Short or common prefixes make this a noisy signal.
func fallbackToken(brandName string) []rune {
	lower := foldRunes([]rune(brandName))
	if strings.ContainsRune(string(lower), ' ') {
		fields := strings.Fields(string(lower))
		if len(fields) == 0 {
			return nil
		}
		return []rune(fields[0])
	}
	if len(lower) > 5 {
		return lower[:5]
	}
	return lower
}
