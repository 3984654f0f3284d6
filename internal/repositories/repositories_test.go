package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AI-Template-SDK/brand-visibility/internal/models"
	"github.com/AI-Template-SDK/brand-visibility/internal/repositories"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repositories.OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func createBrand(t *testing.T, db *sqlx.DB, name string) *models.Brand {
	t.Helper()
	brand := &models.Brand{
		Name:        name,
		Industry:    "CRM",
		Keywords:    models.StringList{"sales", "pipeline"},
		Competitors: models.StringList{"Globex"},
		IsActive:    true,
	}
	require.NoError(t, repositories.NewBrandRepo(db).Create(context.Background(), brand))
	return brand
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, repositories.Migrate(context.Background(), db))
}

func TestBrandRepo(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := repositories.NewBrandRepo(db)

	brand := createBrand(t, db, "Acme")
	assert.NotEqual(t, uuid.Nil, brand.ID)
	assert.NotZero(t, brand.CreatedAt)

	got, err := repo.GetByID(ctx, brand.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Name)
	assert.Equal(t, models.StringList{"sales", "pipeline"}, got.Keywords)
	assert.Equal(t, models.StringList{"Globex"}, got.Competitors)
	assert.True(t, got.IsActive)

	byName, err := repo.GetByName(ctx, "Acme")
	require.NoError(t, err)
	assert.Equal(t, brand.ID, byName.ID)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	err = repo.Create(ctx, &models.Brand{Name: "Acme"})
	assert.ErrorIs(t, err, repositories.ErrConflict)
}

func TestBrandRepoUpdateAndListActive(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := repositories.NewBrandRepo(db)

	acme := createBrand(t, db, "Acme")
	globex := createBrand(t, db, "Globex")

	globex.IsActive = false
	globex.Competitors = models.StringList{"Acme", "Initech"}
	require.NoError(t, repo.Update(ctx, globex))

	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, acme.ID, active[0].ID)

	reloaded, err := repo.GetByID(ctx, globex.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.IsActive)
	assert.Equal(t, models.StringList{"Acme", "Initech"}, reloaded.Competitors)

	err = repo.Update(ctx, &models.Brand{ID: uuid.New(), Name: "Ghost"})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestSearchQueryAndMentionRepos(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	brand := createBrand(t, db, "Acme")

	queries := repositories.NewSearchQueryRepo(db)
	mentions := repositories.NewMentionRepo(db)

	now := time.Now().Unix()
	old := &models.SearchQuery{BrandID: brand.ID, QueryText: "old", Platform: "claude", ResponseText: "r", CreatedAt: now - 3600}
	recent := &models.SearchQuery{BrandID: brand.ID, QueryText: "What is Acme?", Platform: "chatgpt", ResponseText: "Acme is great", VisibilityScore: 51, CreatedAt: now}
	require.NoError(t, queries.Create(ctx, old))
	require.NoError(t, queries.Create(ctx, recent))

	got, err := queries.GetByID(ctx, recent.ID)
	require.NoError(t, err)
	assert.Equal(t, "{}", got.Analysis)
	assert.Equal(t, 51.0, got.VisibilityScore)

	listed, err := queries.ListByBrandSince(ctx, brand.ID, now-60)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, recent.ID, listed[0].ID)

	mention := &models.MentionRecord{
		SearchQueryID:   recent.ID,
		BrandID:         brand.ID,
		Position:        1,
		MentionType:     "direct",
		Context:         "Acme is great",
		Sentiment:       "positive",
		ConfidenceScore: 0.8,
		CreatedAt:       now,
	}
	require.NoError(t, mentions.Create(ctx, mention))

	byQuery, err := mentions.ListBySearchQuery(ctx, recent.ID)
	require.NoError(t, err)
	require.Len(t, byQuery, 1)
	assert.Equal(t, "Acme is great", byQuery[0].Context)

	byPlatform, err := mentions.ListByBrandPlatformSince(ctx, brand.ID, "chatgpt", now-60)
	require.NoError(t, err)
	require.Len(t, byPlatform, 1)
	assert.Equal(t, "chatgpt", byPlatform[0].Platform)
	assert.Equal(t, mention.ID, byPlatform[0].ID)

	none, err := mentions.ListByBrandPlatformSince(ctx, brand.ID, "claude", now-60)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestAnalyticsRepoUpsert(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	brand := createBrand(t, db, "Acme")
	repo := repositories.NewAnalyticsRepo(db)

	first := &models.DailyAnalytics{BrandID: brand.ID, Date: "2026-10-14", Platform: "chatgpt", TotalMentions: 2, VisibilityScore: 40}
	require.NoError(t, repo.Upsert(ctx, first))

	second := &models.DailyAnalytics{BrandID: brand.ID, Date: "2026-10-14", Platform: "chatgpt", TotalMentions: 5, VisibilityScore: 60, PositiveSentiment: 3}
	require.NoError(t, repo.Upsert(ctx, second))

	got, err := repo.Get(ctx, brand.ID, "2026-10-14", "chatgpt")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, 5, got.TotalMentions)
	assert.Equal(t, 60.0, got.VisibilityScore)
	assert.Equal(t, 3, got.PositiveSentiment)

	require.NoError(t, repo.Upsert(ctx, &models.DailyAnalytics{BrandID: brand.ID, Date: "2026-10-15", Platform: "claude"}))
	require.NoError(t, repo.Upsert(ctx, &models.DailyAnalytics{BrandID: brand.ID, Date: "2026-09-01", Platform: "claude"}))

	rows, err := repo.ListByBrandSince(ctx, brand.ID, "2026-10-01")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "2026-10-14", rows[0].Date)
	assert.Equal(t, "2026-10-15", rows[1].Date)

	_, err = repo.Get(ctx, brand.ID, "2026-10-14", "perplexity")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestCompetitorRepoUpsert(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	brand := createBrand(t, db, "Acme")
	repo := repositories.NewCompetitorRepo(db)

	require.NoError(t, repo.Upsert(ctx, &models.CompetitorSnapshot{BrandID: brand.ID, CompetitorName: "Globex", Date: "2026-10-15", Platform: "chatgpt", Mentions: 1}))
	require.NoError(t, repo.Upsert(ctx, &models.CompetitorSnapshot{BrandID: brand.ID, CompetitorName: "Globex", Date: "2026-10-15", Platform: "chatgpt", Mentions: 4, VisibilityScore: 70}))
	require.NoError(t, repo.Upsert(ctx, &models.CompetitorSnapshot{BrandID: brand.ID, CompetitorName: "Initech", Date: "2026-10-15", Platform: "chatgpt", Mentions: 2}))

	rows, err := repo.ListByBrandSince(ctx, brand.ID, "2026-10-01")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Globex", rows[0].CompetitorName)
	assert.Equal(t, 4, rows[0].Mentions)
	assert.Equal(t, 70.0, rows[0].VisibilityScore)
	assert.Equal(t, "Initech", rows[1].CompetitorName)
}
