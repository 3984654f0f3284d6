package competitive

import (
	"fmt"
	"strings"
	"unicode"
)

const (
	maxRecommendations         = 6
	lowMentionRate             = 50.0
	targetAveragePosition      = 3.0
	platformImprovementPercent = 30.0
)

// Recommendation is an actionable suggestion derived from positioning.
type Recommendation struct {
	Type        string   `json:"type"`
	Priority    string   `json:"priority"`
	Platform    string   `json:"platform,omitempty"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Actions     []string `json:"actions"`
}

// PlatformPerformance is the brand's record on one platform across the
// competitive queries.
type PlatformPerformance struct {
	Platform         string   `json:"platform"`
	MentionRate      float64  `json:"mention_rate"`
	AveragePosition  *float64 `json:"average_position"`
	NeedsImprovement bool     `json:"needs_improvement"`
}

// AnalyzePlatformPerformance computes per platform mention rates and average
// positions, in the order platforms first appear in results.
func AnalyzePlatformPerformance(results []*QueryResult) []PlatformPerformance {
	type tally struct {
		mentions, queries int
		positions         []int
	}
	tallies := make(map[string]*tally)
	var order []string

	for _, r := range results {
		for _, platform := range r.Platforms() {
			obs := r.PlatformResults[platform]
			t, ok := tallies[platform]
			if !ok {
				t = &tally{}
				tallies[platform] = t
				order = append(order, platform)
			}
			t.queries++
			if obs.BrandMentioned {
				t.mentions++
				if obs.BrandPosition != nil {
					t.positions = append(t.positions, *obs.BrandPosition)
				}
			}
		}
	}

	performance := make([]PlatformPerformance, 0, len(order))
	for _, platform := range order {
		t := tallies[platform]
		p := PlatformPerformance{Platform: platform}
		if t.queries > 0 {
			p.MentionRate = float64(t.mentions) / float64(t.queries) * 100
		}
		if len(t.positions) > 0 {
			sum := 0
			for _, pos := range t.positions {
				sum += pos
			}
			avg := float64(sum) / float64(len(t.positions))
			p.AveragePosition = &avg
		}
		p.NeedsImprovement = p.MentionRate < platformImprovementPercent
		performance = append(performance, p)
	}
	return performance
}

// Recommend turns market positioning and platform performance into at most
// six recommendations, most urgent first.
func Recommend(positioning MarketPositioning, platforms []PlatformPerformance) []Recommendation {
	var recs []Recommendation

	if positioning.MentionRate < lowMentionRate {
		recs = append(recs, Recommendation{
			Type:     "visibility",
			Priority: "high",
			Title:    "Improve Category Presence",
			Description: fmt.Sprintf("Your brand appears in only %.1f%% of relevant searches. Competitors are dominating category queries.",
				positioning.MentionRate),
			Actions: []string{
				"Create comprehensive comparison content",
				"Optimize for category keywords",
				"Build authority in your industry space",
				"Increase content marketing around key topics",
			},
		})
	}

	if positioning.AveragePosition > targetAveragePosition {
		recs = append(recs, Recommendation{
			Type:     "positioning",
			Priority: "medium",
			Title:    "Improve Search Positioning",
			Description: fmt.Sprintf("When mentioned, your brand appears at position %.1f on average. Aim for top 3 positions.",
				positioning.AveragePosition),
			Actions: []string{
				"Enhance unique value proposition content",
				"Create more authoritative industry content",
				"Build strategic partnerships and mentions",
				"Focus on thought leadership",
			},
		})
	}

	if top, ok := positioning.TopCompetitor(); ok {
		recs = append(recs, Recommendation{
			Type:        "competitive",
			Priority:    "medium",
			Title:       fmt.Sprintf("Address %s Dominance", top),
			Description: fmt.Sprintf("%s appears most frequently in competitive searches. Focus on differentiation.", top),
			Actions: []string{
				fmt.Sprintf("Create direct comparison content with %s", top),
				"Highlight unique features and advantages",
				"Target keywords where competitors are weak",
				"Build case studies showing superior results",
			},
		})
	}

	for _, p := range platforms {
		if !p.NeedsImprovement {
			continue
		}
		recs = append(recs, Recommendation{
			Type:        "platform",
			Priority:    "low",
			Platform:    p.Platform,
			Title:       fmt.Sprintf("Improve %s Performance", TitleCase(p.Platform)),
			Description: fmt.Sprintf("Underperforming on %s compared to other AI platforms.", p.Platform),
			Actions: []string{
				fmt.Sprintf("Optimize content for %s algorithms", p.Platform),
				"Ensure content is easily discoverable",
				"Focus on clear, direct answers to common questions",
			},
		})
	}

	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs
}

// TitleCase upper-cases the first letter of each word, e.g. chatgpt -> Chatgpt.
func TitleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
