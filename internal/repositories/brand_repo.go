package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/AI-Template-SDK/brand-visibility/internal/models"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const brandColumns = `id, name, industry, website, keywords, competitors, is_active, created_at`

type brandRepo struct {
	db *sqlx.DB
}

func NewBrandRepo(db *sqlx.DB) BrandRepository {
	return &brandRepo{db: db}
}

func (r *brandRepo) Create(ctx context.Context, brand *models.Brand) error {
	if brand.ID == uuid.Nil {
		brand.ID = uuid.New()
	}
	if brand.CreatedAt == 0 {
		brand.CreatedAt = time.Now().Unix()
	}
	if brand.Keywords == nil {
		brand.Keywords = models.StringList{}
	}
	if brand.Competitors == nil {
		brand.Competitors = models.StringList{}
	}

	query := `INSERT INTO brands (` + brandColumns + `)
		VALUES (:id, :name, :industry, :website, :keywords, :competitors, :is_active, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, brand); err != nil {
		return fmt.Errorf("failed to create brand %s: %w", brand.Name, mapError(err))
	}
	return nil
}

func (r *brandRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Brand, error) {
	var brand models.Brand
	query := r.db.Rebind(`SELECT ` + brandColumns + ` FROM brands WHERE id = ?`)
	if err := r.db.GetContext(ctx, &brand, query, id); err != nil {
		return nil, mapError(err)
	}
	return &brand, nil
}

func (r *brandRepo) GetByName(ctx context.Context, name string) (*models.Brand, error) {
	var brand models.Brand
	query := r.db.Rebind(`SELECT ` + brandColumns + ` FROM brands WHERE name = ?`)
	if err := r.db.GetContext(ctx, &brand, query, name); err != nil {
		return nil, mapError(err)
	}
	return &brand, nil
}

func (r *brandRepo) Update(ctx context.Context, brand *models.Brand) error {
	query := `UPDATE brands SET name = :name, industry = :industry, website = :website,
		keywords = :keywords, competitors = :competitors, is_active = :is_active
		WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, brand)
	if err != nil {
		return fmt.Errorf("failed to update brand %s: %w", brand.ID, mapError(err))
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *brandRepo) ListActive(ctx context.Context) ([]*models.Brand, error) {
	var brands []*models.Brand
	query := r.db.Rebind(`SELECT ` + brandColumns + ` FROM brands WHERE is_active = ? ORDER BY created_at, name`)
	if err := r.db.SelectContext(ctx, &brands, query, true); err != nil {
		return nil, fmt.Errorf("failed to list active brands: %w", err)
	}
	return brands, nil
}
