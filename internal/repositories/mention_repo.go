package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/AI-Template-SDK/brand-visibility/internal/models"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type mentionRepo struct {
	db *sqlx.DB
}

func NewMentionRepo(db *sqlx.DB) MentionRepository {
	return &mentionRepo{db: db}
}

func (r *mentionRepo) Create(ctx context.Context, m *models.MentionRecord) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.CreatedAt == 0 {
		m.CreatedAt = time.Now().Unix()
	}

	query := `INSERT INTO mention_records
		(id, search_query_id, brand_id, position, mention_type, context, sentiment, confidence_score, created_at)
		VALUES (:id, :search_query_id, :brand_id, :position, :mention_type, :context, :sentiment, :confidence_score, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, m); err != nil {
		return fmt.Errorf("failed to create mention record: %w", mapError(err))
	}
	return nil
}

func (r *mentionRepo) ListBySearchQuery(ctx context.Context, searchQueryID uuid.UUID) ([]*models.MentionRecord, error) {
	var mentions []*models.MentionRecord
	query := r.db.Rebind(`SELECT id, search_query_id, brand_id, position, mention_type, context, sentiment,
		confidence_score, created_at FROM mention_records WHERE search_query_id = ? ORDER BY created_at, id`)
	if err := r.db.SelectContext(ctx, &mentions, query, searchQueryID); err != nil {
		return nil, fmt.Errorf("failed to list mention records: %w", err)
	}
	return mentions, nil
}

func (r *mentionRepo) ListByBrandPlatformSince(ctx context.Context, brandID uuid.UUID, platform string, since int64) ([]*PlatformMention, error) {
	var mentions []*PlatformMention
	query := r.db.Rebind(`SELECT m.id, m.search_query_id, m.brand_id, m.position, m.mention_type, m.context,
		m.sentiment, m.confidence_score, m.created_at, q.platform
		FROM mention_records m
		JOIN search_queries q ON q.id = m.search_query_id
		WHERE m.brand_id = ? AND q.platform = ? AND m.created_at >= ?
		ORDER BY m.created_at, m.id`)
	if err := r.db.SelectContext(ctx, &mentions, query, brandID, platform, since); err != nil {
		return nil, fmt.Errorf("failed to list %s mentions: %w", platform, err)
	}
	return mentions, nil
}
