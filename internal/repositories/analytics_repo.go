package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/AI-Template-SDK/brand-visibility/internal/models"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const analyticsColumns = `id, brand_id, date, platform, total_mentions, direct_mentions, indirect_mentions,
	visibility_score, avg_sentiment_score, positive_sentiment, negative_sentiment, neutral_sentiment, created_at`

type analyticsRepo struct {
	db *sqlx.DB
}

func NewAnalyticsRepo(db *sqlx.DB) AnalyticsRepository {
	return &analyticsRepo{db: db}
}

func (r *analyticsRepo) Upsert(ctx context.Context, a *models.DailyAnalytics) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.CreatedAt == 0 {
		a.CreatedAt = time.Now().Unix()
	}

	query := `INSERT INTO daily_analytics (` + analyticsColumns + `)
		VALUES (:id, :brand_id, :date, :platform, :total_mentions, :direct_mentions, :indirect_mentions,
			:visibility_score, :avg_sentiment_score, :positive_sentiment, :negative_sentiment, :neutral_sentiment, :created_at)
		ON CONFLICT (brand_id, date, platform) DO UPDATE SET
			total_mentions = EXCLUDED.total_mentions,
			direct_mentions = EXCLUDED.direct_mentions,
			indirect_mentions = EXCLUDED.indirect_mentions,
			visibility_score = EXCLUDED.visibility_score,
			avg_sentiment_score = EXCLUDED.avg_sentiment_score,
			positive_sentiment = EXCLUDED.positive_sentiment,
			negative_sentiment = EXCLUDED.negative_sentiment,
			neutral_sentiment = EXCLUDED.neutral_sentiment`
	if _, err := r.db.NamedExecContext(ctx, query, a); err != nil {
		return fmt.Errorf("failed to upsert analytics for %s/%s: %w", a.Date, a.Platform, err)
	}
	return nil
}

func (r *analyticsRepo) Get(ctx context.Context, brandID uuid.UUID, date, platform string) (*models.DailyAnalytics, error) {
	var a models.DailyAnalytics
	query := r.db.Rebind(`SELECT ` + analyticsColumns + ` FROM daily_analytics
		WHERE brand_id = ? AND date = ? AND platform = ?`)
	if err := r.db.GetContext(ctx, &a, query, brandID, date, platform); err != nil {
		return nil, mapError(err)
	}
	return &a, nil
}

func (r *analyticsRepo) ListByBrandSince(ctx context.Context, brandID uuid.UUID, sinceDate string) ([]*models.DailyAnalytics, error) {
	var rows []*models.DailyAnalytics
	query := r.db.Rebind(`SELECT ` + analyticsColumns + ` FROM daily_analytics
		WHERE brand_id = ? AND date >= ? ORDER BY date, platform`)
	if err := r.db.SelectContext(ctx, &rows, query, brandID, sinceDate); err != nil {
		return nil, fmt.Errorf("failed to list analytics: %w", err)
	}
	return rows, nil
}
