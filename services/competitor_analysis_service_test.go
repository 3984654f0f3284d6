package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AI-Template-SDK/brand-visibility/internal/competitive"
	"github.com/AI-Template-SDK/brand-visibility/internal/mentions"
	"github.com/AI-Template-SDK/brand-visibility/internal/models"
	"github.com/AI-Template-SDK/brand-visibility/internal/providers/testutil"
)

func newTestCompetitorAnalysis(repos *RepositoryManager, search AISearchService) *competitorAnalysisService {
	svc := NewCompetitorAnalysisService(repos, search).(*competitorAnalysisService)
	svc.now = fixedClock
	return svc
}

func TestAnalyzeCompetitors(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)
	brand := seedBrand(t, repos)
	mocks := mockPlatforms(testutil.SampleResponse)
	svc := newTestCompetitorAnalysis(repos, newTestSearch(testutil.SampleConfig(), mocks, nil))

	analysis, err := svc.AnalyzeCompetitors(ctx, brand.ID)
	require.NoError(t, err)

	assert.Equal(t, "Acme", analysis.BrandName)
	require.Len(t, analysis.Competitors, 2)

	globex := analysis.Competitors[0]
	expected := mentions.NewAnalyzer().Analyze(testutil.SampleResponse, "Globex")
	assert.Equal(t, "Globex", globex.Name)
	for _, platform := range models.AllPlatforms {
		assert.Equal(t, 2, globex.MentionFrequency[platform])
		assert.InDelta(t, expected.VisibilityScore, globex.VisibilityScores[platform], 1e-9)
		assert.InDelta(t, expected.SentimentScore, globex.SentimentScores[platform], 1e-9)
	}
	assert.Equal(t, []string{"CRM"}, globex.KeyFeaturesMentioned)

	competitiveQueries := competitive.CompetitiveQueries(brand, 2026)
	require.Len(t, analysis.CompetitiveQueries, len(competitiveQueries))
	first := analysis.CompetitiveQueries[0]
	assert.Equal(t, "Acme vs Globex", first.Query)
	assert.True(t, first.BrandMentioned)
	assert.Equal(t, []string{"Globex", "Initech"}, first.CompetitorsMentioned)
	assert.Equal(t, models.AllPlatforms, first.Platforms())
	require.NotNil(t, first.PlatformResults[models.PlatformChatGPT].BrandPosition)
	assert.Equal(t, 1, *first.PlatformResults[models.PlatformChatGPT].BrandPosition)

	assert.Equal(t, 100.0, analysis.MarketPositioning.MentionRate)
	assert.Equal(t, 1.0, analysis.MarketPositioning.AveragePosition)
	assert.Equal(t, competitive.StrengthFor(100), analysis.MarketPositioning.CategoryStrength)
	top, ok := analysis.MarketPositioning.TopCompetitor()
	require.True(t, ok)
	assert.Equal(t, "Globex", top)

	require.Len(t, analysis.Recommendations, 1)
	assert.Equal(t, "Address Globex Dominance", analysis.Recommendations[0].Title)

	// 2 profile queries per competitor plus the competitive queries
	for _, m := range mocks {
		assert.Equal(t, 4+len(competitiveQueries), m.Calls())
	}

	snapshots, err := repos.CompetitorRepo.ListByBrandSince(ctx, brand.ID, fixedDate)
	require.NoError(t, err)
	assert.Len(t, snapshots, 6)
}

func TestAnalyzeCompetitorsWithoutCompetitors(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)
	brand := testutil.SampleBrand()
	brand.Competitors = nil
	require.NoError(t, repos.BrandRepo.Create(ctx, brand))
	svc := newTestCompetitorAnalysis(repos, newTestSearch(testutil.SampleConfig(), mockPlatforms("x"), nil))

	_, err := svc.AnalyzeCompetitors(ctx, brand.ID)
	assert.True(t, errors.Is(err, ErrNoCompetitors))
}

func TestGetHistoricalCompetitorData(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)
	brand := seedBrand(t, repos)

	for _, s := range []*models.CompetitorSnapshot{
		{BrandID: brand.ID, CompetitorName: "Globex", Date: "2026-10-01", Platform: "chatgpt", Mentions: 2, VisibilityScore: 40, AvgSentiment: 0.1},
		{BrandID: brand.ID, CompetitorName: "Globex", Date: "2026-10-10", Platform: "chatgpt", Mentions: 5, VisibilityScore: 60, AvgSentiment: 0.3},
		{BrandID: brand.ID, CompetitorName: "Initech", Date: "2026-10-10", Platform: "claude", Mentions: 1, VisibilityScore: 20, AvgSentiment: -0.2},
		{BrandID: brand.ID, CompetitorName: "Globex", Date: "2026-08-01", Platform: "chatgpt", Mentions: 9, VisibilityScore: 90, AvgSentiment: 0.9},
	} {
		require.NoError(t, repos.CompetitorRepo.Upsert(ctx, s))
	}
	svc := newTestCompetitorAnalysis(repos, nil)

	history, err := svc.GetHistoricalCompetitorData(ctx, brand.ID, 30)
	require.NoError(t, err)

	require.Len(t, history, 2)
	assert.Equal(t, []string{"2026-10-01", "2026-10-10"}, history["Globex"].Dates)
	assert.Equal(t, []int{2, 5}, history["Globex"].Mentions)
	assert.Equal(t, []float64{40, 60}, history["Globex"].VisibilityScores)
	assert.Equal(t, []float64{-0.2}, history["Initech"].SentimentScores)
	assert.Equal(t, []string{"claude"}, history["Initech"].Platforms)
}
