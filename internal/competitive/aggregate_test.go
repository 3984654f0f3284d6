package competitive_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AI-Template-SDK/brand-visibility/internal/competitive"
)

func floatPtr(f float64) *float64 { return &f }

func TestStrengthFor(t *testing.T) {
	tests := []struct {
		rate float64
		want competitive.CategoryStrength
	}{
		{100, competitive.CategoryStrong},
		{70, competitive.CategoryStrong},
		{69.9, competitive.CategoryMedium},
		{40, competitive.CategoryMedium},
		{39.9, competitive.CategoryWeak},
		{0, competitive.CategoryWeak},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, competitive.StrengthFor(tt.rate), "rate %v", tt.rate)
	}
}

func TestAggregatePositioning(t *testing.T) {
	var queries []competitive.QueryPositioning
	for i := 0; i < 7; i++ {
		queries = append(queries, competitive.QueryPositioning{
			BrandMentioned:       true,
			BrandPosition:        floatPtr(float64(i%3 + 1)),
			CompetitorsMentioned: []string{"Globex"},
		})
	}
	for i := 0; i < 3; i++ {
		queries = append(queries, competitive.QueryPositioning{
			CompetitorsMentioned: []string{"Initech", "Globex"},
		})
	}

	result := competitive.AggregatePositioning(queries)

	assert.InDelta(t, 70.0, result.MentionRate, 1e-9)
	assert.Equal(t, competitive.CategoryStrong, result.CategoryStrength)
	// positions 1,2,3,1,2,3,1
	assert.InDelta(t, 13.0/7.0, result.AveragePosition, 1e-9)
	assert.Equal(t, []competitive.CompetitorCount{
		{Name: "Globex", Count: 10},
		{Name: "Initech", Count: 3},
	}, result.CompetitorDominance)

	top, ok := result.TopCompetitor()
	require.True(t, ok)
	assert.Equal(t, "Globex", top)
}

func TestAggregatePositioningEmpty(t *testing.T) {
	result := competitive.AggregatePositioning(nil)

	assert.Equal(t, 0.0, result.MentionRate)
	assert.Equal(t, 0.0, result.AveragePosition)
	assert.Equal(t, competitive.CategoryWeak, result.CategoryStrength)
	assert.NotNil(t, result.CompetitorDominance)
	assert.Empty(t, result.CompetitorDominance)

	_, ok := result.TopCompetitor()
	assert.False(t, ok)
}

func TestAggregatePositioningTiesKeepFirstSeen(t *testing.T) {
	result := competitive.AggregatePositioning([]competitive.QueryPositioning{
		{CompetitorsMentioned: []string{"Initech"}},
		{CompetitorsMentioned: []string{"Globex"}},
	})

	require.Len(t, result.CompetitorDominance, 2)
	assert.Equal(t, "Initech", result.CompetitorDominance[0].Name)
	assert.Equal(t, "Globex", result.CompetitorDominance[1].Name)
}

func TestObserveQuery(t *testing.T) {
	q := competitive.ObserveQuery("best crm", "Globex leads, then Acme.", "Acme", []string{"Globex", "Initech"})

	assert.Equal(t, "best crm", q.Query)
	assert.True(t, q.BrandMentioned)
	require.NotNil(t, q.BrandPosition)
	assert.Equal(t, 2.0, *q.BrandPosition)
	assert.Equal(t, []string{"Globex"}, q.CompetitorsMentioned)

	missing := competitive.ObserveQuery("best crm", "Globex only.", "Acme", []string{"Globex"})
	assert.False(t, missing.BrandMentioned)
	assert.Nil(t, missing.BrandPosition)
}
