package mentions

import "math"

// MentionType classifies how a brand appears in a response.
type MentionType string

const (
	MentionNone     MentionType = "none"
	MentionIndirect MentionType = "indirect"
	MentionDirect   MentionType = "direct"
)

// ScoringPolicy turns the raw mention signals into position and visibility
// scores. Stored scores are only comparable when computed by the same policy
// version.
type ScoringPolicy interface {
	Version() string
	// PositionScore rewards an early first mention. firstOffset is negative
	// when the name never occurs.
	PositionScore(firstOffset, textLength int) float64
	VisibilityScore(directCount int, mentionType MentionType, sentiment, position float64) float64
}

// LegacyPolicy is the first linear scoring policy. Its constants are
// frozen so that new scores stay comparable with historical ones.
type LegacyPolicy struct{}

const (
	legacyPerMention       = 20.0
	legacyMaxMentionPoints = 60.0
	legacyIndirectPoints   = 20.0
	legacySentimentWeight  = 15.0
	legacyPositionWeight   = 25.0
	legacyPositionSpan     = 90.0
	legacyPositionFloor    = 10.0
)

// Version identifies scores computed by LegacyPolicy.
func (LegacyPolicy) Version() string {
	return "legacy-v1"
}

// PositionScore is 100 at the start of the text, falling linearly to a
// floor of 10; 0 when the name never occurs.
func (LegacyPolicy) PositionScore(firstOffset, textLength int) float64 {
	if firstOffset < 0 || textLength <= 0 {
		return 0
	}
	score := 100 - (float64(firstOffset)/float64(textLength))*legacyPositionSpan
	return math.Max(legacyPositionFloor, score)
}

// VisibilityScore combines mention, sentiment and position points into a
// score in [0, 100] rounded to one decimal.
func (LegacyPolicy) VisibilityScore(directCount int, mentionType MentionType, sentiment, position float64) float64 {
	if directCount == 0 && mentionType == MentionNone {
		return 0.0
	}

	base := 0.0
	switch mentionType {
	case MentionDirect:
		base = math.Min(float64(directCount)*legacyPerMention, legacyMaxMentionPoints)
	case MentionIndirect:
		base = legacyIndirectPoints
	}

	sentimentModifier := sentiment * legacySentimentWeight
	positionModifier := (position / 100) * legacyPositionWeight

	total := clamp(base+sentimentModifier+positionModifier, 0, 100)
	return roundTenth(total)
}

func roundTenth(v float64) float64 {
	return math.RoundToEven(v*10) / 10
}
