package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/AI-Template-SDK/brand-visibility/internal/models"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const searchQueryColumns = `id, brand_id, query_text, platform, response_text, analysis,
	sentiment_score, visibility_score, policy_version, created_at`

type searchQueryRepo struct {
	db *sqlx.DB
}

func NewSearchQueryRepo(db *sqlx.DB) SearchQueryRepository {
	return &searchQueryRepo{db: db}
}

func (r *searchQueryRepo) Create(ctx context.Context, q *models.SearchQuery) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	if q.CreatedAt == 0 {
		q.CreatedAt = time.Now().Unix()
	}
	if q.Analysis == "" {
		q.Analysis = "{}"
	}

	query := `INSERT INTO search_queries (` + searchQueryColumns + `)
		VALUES (:id, :brand_id, :query_text, :platform, :response_text, :analysis,
			:sentiment_score, :visibility_score, :policy_version, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, q); err != nil {
		return fmt.Errorf("failed to create search query: %w", mapError(err))
	}
	return nil
}

func (r *searchQueryRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.SearchQuery, error) {
	var q models.SearchQuery
	query := r.db.Rebind(`SELECT ` + searchQueryColumns + ` FROM search_queries WHERE id = ?`)
	if err := r.db.GetContext(ctx, &q, query, id); err != nil {
		return nil, mapError(err)
	}
	return &q, nil
}

func (r *searchQueryRepo) ListByBrandSince(ctx context.Context, brandID uuid.UUID, since int64) ([]*models.SearchQuery, error) {
	var queries []*models.SearchQuery
	query := r.db.Rebind(`SELECT ` + searchQueryColumns + ` FROM search_queries
		WHERE brand_id = ? AND created_at >= ? ORDER BY created_at, id`)
	if err := r.db.SelectContext(ctx, &queries, query, brandID, since); err != nil {
		return nil, fmt.Errorf("failed to list search queries: %w", err)
	}
	return queries, nil
}
