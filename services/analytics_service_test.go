package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AI-Template-SDK/brand-visibility/internal/models"
)

func newTestAnalytics(repos *RepositoryManager) *analyticsService {
	svc := NewAnalyticsService(repos).(*analyticsService)
	svc.now = fixedClock
	return svc
}

func seedAnalytics(t *testing.T, repos *RepositoryManager, rows ...*models.DailyAnalytics) {
	t.Helper()
	for _, row := range rows {
		require.NoError(t, repos.AnalyticsRepo.Upsert(context.Background(), row))
	}
}

func TestGetPerformanceTrends(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)
	brand := seedBrand(t, repos)
	seedAnalytics(t, repos,
		&models.DailyAnalytics{BrandID: brand.ID, Date: "2026-10-10", Platform: "chatgpt", TotalMentions: 4, VisibilityScore: 55, AvgSentimentScore: 0.2},
		&models.DailyAnalytics{BrandID: brand.ID, Date: "2026-10-10", Platform: "claude", TotalMentions: 1, VisibilityScore: 20},
		&models.DailyAnalytics{BrandID: brand.ID, Date: "2026-10-14", Platform: "chatgpt", TotalMentions: 6, VisibilityScore: 70},
		&models.DailyAnalytics{BrandID: brand.ID, Date: "2026-08-01", Platform: "chatgpt", TotalMentions: 9, VisibilityScore: 90},
	)
	svc := newTestAnalytics(repos)

	trends, err := svc.GetPerformanceTrends(ctx, brand.ID, 30)
	require.NoError(t, err)

	require.Len(t, trends, 2)
	assert.Equal(t, &TrendPoint{VisibilityScore: 55, TotalMentions: 4, AvgSentiment: 0.2}, trends["2026-10-10"]["chatgpt"])
	assert.Equal(t, 1, trends["2026-10-10"]["claude"].TotalMentions)
	assert.Equal(t, 70.0, trends["2026-10-14"]["chatgpt"].VisibilityScore)
	assert.NotContains(t, trends, "2026-08-01")
}

func TestGetCompetitorAnalysis(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)
	brand := seedBrand(t, repos)
	for _, s := range []*models.CompetitorSnapshot{
		{BrandID: brand.ID, CompetitorName: "Globex", Date: "2026-10-12", Platform: "chatgpt", Mentions: 2, VisibilityScore: 40, AvgSentiment: 0.2},
		{BrandID: brand.ID, CompetitorName: "Globex", Date: "2026-10-14", Platform: "claude", Mentions: 4, VisibilityScore: 60, AvgSentiment: 0.4},
		{BrandID: brand.ID, CompetitorName: "Hooli", Date: "2026-10-14", Platform: "claude", Mentions: 7, VisibilityScore: 10},
		{BrandID: brand.ID, CompetitorName: "Initech", Date: "2026-09-01", Platform: "claude", Mentions: 3, VisibilityScore: 30},
	} {
		require.NoError(t, repos.CompetitorRepo.Upsert(ctx, s))
	}
	svc := newTestAnalytics(repos)

	all, err := svc.GetCompetitorAnalysis(ctx, brand.ID, "")
	require.NoError(t, err)
	require.Len(t, all, 1)
	globex := all["Globex"]
	assert.Equal(t, 6, globex.TotalMentions)
	assert.InDelta(t, 50.0, globex.AvgVisibility, 1e-9)
	assert.InDelta(t, 0.3, globex.AvgSentiment, 1e-9)
	assert.Equal(t, []string{"chatgpt", "claude"}, globex.Platforms)

	claudeOnly, err := svc.GetCompetitorAnalysis(ctx, brand.ID, "claude")
	require.NoError(t, err)
	assert.Equal(t, 4, claudeOnly["Globex"].TotalMentions)
	assert.InDelta(t, 60.0, claudeOnly["Globex"].AvgVisibility, 1e-9)

	missing, err := svc.GetCompetitorAnalysis(ctx, uuid.New(), "")
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestCalculateVisibilityScore(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)
	brand := seedBrand(t, repos)
	svc := newTestAnalytics(repos)

	score, err := svc.CalculateVisibilityScore(ctx, brand.ID, "chatgpt", 30)
	require.NoError(t, err)
	assert.Zero(t, score)

	query := &models.SearchQuery{BrandID: brand.ID, QueryText: "q", Platform: "chatgpt", ResponseText: "Acme", CreatedAt: fixedNow.Unix()}
	require.NoError(t, repos.SearchQueryRepo.Create(ctx, query))
	for _, m := range []*models.MentionRecord{
		// 1/1 * 1.0 * 0.8
		{SearchQueryID: query.ID, BrandID: brand.ID, Position: 1, MentionType: "direct", ConfidenceScore: 0.8, CreatedAt: fixedNow.Unix()},
		// 1/2 * 0.7 * 0.5
		{SearchQueryID: query.ID, BrandID: brand.ID, Position: 2, MentionType: "indirect", CreatedAt: fixedNow.Unix()},
		// 0.5 * 0.5 * 1.0
		{SearchQueryID: query.ID, BrandID: brand.ID, MentionType: "other", ConfidenceScore: 1.0, CreatedAt: fixedNow.Unix()},
	} {
		require.NoError(t, repos.MentionRepo.Create(ctx, m))
	}

	score, err = svc.CalculateVisibilityScore(ctx, brand.ID, "chatgpt", 30)
	require.NoError(t, err)
	assert.InDelta(t, (0.8+0.175+0.25)/3*100, score, 1e-9)

	other, err := svc.CalculateVisibilityScore(ctx, brand.ID, "claude", 30)
	require.NoError(t, err)
	assert.Zero(t, other)
}

func TestGenerateOptimizationRecommendationsWithoutData(t *testing.T) {
	repos := newTestRepos(t)
	brand := seedBrand(t, repos)

	recs, err := newTestAnalytics(repos).GenerateOptimizationRecommendations(context.Background(), brand.ID)
	require.NoError(t, err)

	require.Len(t, recs, 1)
	assert.Equal(t, "Start Data Collection", recs[0].Title)
	assert.Equal(t, "high", recs[0].Priority)
}

func TestGenerateOptimizationRecommendations(t *testing.T) {
	repos := newTestRepos(t)
	brand := seedBrand(t, repos)
	seedAnalytics(t, repos,
		&models.DailyAnalytics{BrandID: brand.ID, Date: "2026-10-13", Platform: "perplexity", TotalMentions: 1, VisibilityScore: 80, AvgSentimentScore: -0.6},
		&models.DailyAnalytics{BrandID: brand.ID, Date: "2026-10-14", Platform: "chatgpt", TotalMentions: 2, VisibilityScore: 20, AvgSentimentScore: 0.3},
		&models.DailyAnalytics{BrandID: brand.ID, Date: "2026-10-14", Platform: "claude", TotalMentions: 12, VisibilityScore: 75, AvgSentimentScore: 0.4},
		&models.DailyAnalytics{BrandID: brand.ID, Date: "2026-09-01", Platform: "claude", TotalMentions: 0, VisibilityScore: 0},
	)

	recs, err := newTestAnalytics(repos).GenerateOptimizationRecommendations(context.Background(), brand.ID)
	require.NoError(t, err)

	titles := make([]string, len(recs))
	for i, r := range recs {
		titles[i] = r.Title
	}
	assert.Equal(t, []string{
		"Improve Chatgpt Visibility",
		"Address Negative Sentiment on Perplexity",
		"Increase Brand Mentions on Perplexity",
		"Increase Brand Mentions on Chatgpt",
	}, titles)
	assert.Equal(t, "chatgpt", recs[0].Platform)
	assert.Contains(t, recs[0].Description, "20.0/100")
}

func TestGenerateOptimizationRecommendationsUnknownBrand(t *testing.T) {
	repos := newTestRepos(t)

	recs, err := newTestAnalytics(repos).GenerateOptimizationRecommendations(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, recs)
}
