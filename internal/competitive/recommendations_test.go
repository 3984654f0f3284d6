package competitive_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AI-Template-SDK/brand-visibility/internal/competitive"
)

func intPtr(i int) *int { return &i }

func TestAnalyzePlatformPerformance(t *testing.T) {
	first := competitive.NewQueryResult("q1")
	first.Add("chatgpt", competitive.PlatformObservation{BrandMentioned: true, BrandPosition: intPtr(1)})
	first.Add("claude", competitive.PlatformObservation{})

	second := competitive.NewQueryResult("q2")
	second.Add("chatgpt", competitive.PlatformObservation{BrandMentioned: true, BrandPosition: intPtr(3)})
	second.Add("claude", competitive.PlatformObservation{})

	perf := competitive.AnalyzePlatformPerformance([]*competitive.QueryResult{first, second})

	require.Len(t, perf, 2)
	assert.Equal(t, "chatgpt", perf[0].Platform)
	assert.Equal(t, 100.0, perf[0].MentionRate)
	require.NotNil(t, perf[0].AveragePosition)
	assert.Equal(t, 2.0, *perf[0].AveragePosition)
	assert.False(t, perf[0].NeedsImprovement)

	assert.Equal(t, "claude", perf[1].Platform)
	assert.Equal(t, 0.0, perf[1].MentionRate)
	assert.Nil(t, perf[1].AveragePosition)
	assert.True(t, perf[1].NeedsImprovement)
}

func TestRecommend(t *testing.T) {
	positioning := competitive.MarketPositioning{
		MentionRate:         30,
		AveragePosition:     4.5,
		CompetitorDominance: []competitive.CompetitorCount{{Name: "Globex", Count: 5}},
	}
	platforms := []competitive.PlatformPerformance{
		{Platform: "chatgpt", MentionRate: 80},
		{Platform: "perplexity", MentionRate: 10, NeedsImprovement: true},
	}

	recs := competitive.Recommend(positioning, platforms)

	require.Len(t, recs, 4)
	assert.Equal(t, "Improve Category Presence", recs[0].Title)
	assert.Equal(t, "high", recs[0].Priority)
	assert.Contains(t, recs[0].Description, "30.0%")
	assert.Equal(t, "Improve Search Positioning", recs[1].Title)
	assert.Equal(t, "Address Globex Dominance", recs[2].Title)
	assert.Equal(t, "Improve Perplexity Performance", recs[3].Title)
	assert.Equal(t, "platform", recs[3].Type)
	assert.Equal(t, "perplexity", recs[3].Platform)
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Chatgpt", competitive.TitleCase("chatgpt"))
	assert.Equal(t, "Google Gemini", competitive.TitleCase("google GEMINI"))
	assert.Equal(t, "", competitive.TitleCase(""))
}

func TestRecommendStrongBrand(t *testing.T) {
	recs := competitive.Recommend(competitive.MarketPositioning{
		MentionRate:         90,
		AveragePosition:     1.2,
		CompetitorDominance: []competitive.CompetitorCount{},
	}, nil)

	assert.Empty(t, recs)
}

func TestRecommendCapped(t *testing.T) {
	var platforms []competitive.PlatformPerformance
	for _, p := range []string{"a", "b", "c", "d", "e"} {
		platforms = append(platforms, competitive.PlatformPerformance{Platform: p, NeedsImprovement: true})
	}
	positioning := competitive.MarketPositioning{
		MentionRate:         0,
		AveragePosition:     5,
		CompetitorDominance: []competitive.CompetitorCount{{Name: "Globex", Count: 1}},
	}

	recs := competitive.Recommend(positioning, platforms)

	assert.Len(t, recs, 6)
}

func TestExtractFeatures(t *testing.T) {
	text := "Acme offers marketing automation, a REST api and a real-time dashboard."

	got := competitive.ExtractFeatures(text, []string{"dashboard"})

	assert.Equal(t, []string{"dashboard", "automation", "API", "real-time"}, got)
}
