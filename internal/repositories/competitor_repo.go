package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/AI-Template-SDK/brand-visibility/internal/models"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const competitorColumns = `id, brand_id, competitor_name, date, platform, mentions, visibility_score, avg_sentiment, created_at`

type competitorRepo struct {
	db *sqlx.DB
}

func NewCompetitorRepo(db *sqlx.DB) CompetitorRepository {
	return &competitorRepo{db: db}
}

func (r *competitorRepo) Upsert(ctx context.Context, s *models.CompetitorSnapshot) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.CreatedAt == 0 {
		s.CreatedAt = time.Now().Unix()
	}

	query := `INSERT INTO competitor_snapshots (` + competitorColumns + `)
		VALUES (:id, :brand_id, :competitor_name, :date, :platform, :mentions, :visibility_score, :avg_sentiment, :created_at)
		ON CONFLICT (brand_id, competitor_name, date, platform) DO UPDATE SET
			mentions = EXCLUDED.mentions,
			visibility_score = EXCLUDED.visibility_score,
			avg_sentiment = EXCLUDED.avg_sentiment`
	if _, err := r.db.NamedExecContext(ctx, query, s); err != nil {
		return fmt.Errorf("failed to upsert snapshot for %s: %w", s.CompetitorName, err)
	}
	return nil
}

func (r *competitorRepo) ListByBrandSince(ctx context.Context, brandID uuid.UUID, sinceDate string) ([]*models.CompetitorSnapshot, error) {
	var rows []*models.CompetitorSnapshot
	query := r.db.Rebind(`SELECT ` + competitorColumns + ` FROM competitor_snapshots
		WHERE brand_id = ? AND date >= ? ORDER BY date, competitor_name, platform`)
	if err := r.db.SelectContext(ctx, &rows, query, brandID, sinceDate); err != nil {
		return nil, fmt.Errorf("failed to list competitor snapshots: %w", err)
	}
	return rows, nil
}
