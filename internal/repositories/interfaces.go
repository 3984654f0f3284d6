package repositories

import (
	"context"

	"github.com/AI-Template-SDK/brand-visibility/internal/models"
	"github.com/google/uuid"
)

type BrandRepository interface {
	Create(ctx context.Context, brand *models.Brand) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Brand, error)
	GetByName(ctx context.Context, name string) (*models.Brand, error)
	Update(ctx context.Context, brand *models.Brand) error
	ListActive(ctx context.Context) ([]*models.Brand, error)
}

type SearchQueryRepository interface {
	Create(ctx context.Context, query *models.SearchQuery) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.SearchQuery, error)
	ListByBrandSince(ctx context.Context, brandID uuid.UUID, since int64) ([]*models.SearchQuery, error)
}

// PlatformMention is a mention record with the platform of its response
type PlatformMention struct {
	models.MentionRecord
	Platform string `db:"platform"`
}

type MentionRepository interface {
	Create(ctx context.Context, mention *models.MentionRecord) error
	ListBySearchQuery(ctx context.Context, searchQueryID uuid.UUID) ([]*models.MentionRecord, error)
	ListByBrandPlatformSince(ctx context.Context, brandID uuid.UUID, platform string, since int64) ([]*PlatformMention, error)
}

type AnalyticsRepository interface {
	// Upsert replaces the metrics of the row with the same brand, date and platform
	Upsert(ctx context.Context, analytics *models.DailyAnalytics) error
	Get(ctx context.Context, brandID uuid.UUID, date, platform string) (*models.DailyAnalytics, error)
	ListByBrandSince(ctx context.Context, brandID uuid.UUID, sinceDate string) ([]*models.DailyAnalytics, error)
}

type CompetitorRepository interface {
	// Upsert replaces the metrics of the row with the same brand, competitor, date and platform
	Upsert(ctx context.Context, snapshot *models.CompetitorSnapshot) error
	ListByBrandSince(ctx context.Context, brandID uuid.UUID, sinceDate string) ([]*models.CompetitorSnapshot, error)
}
