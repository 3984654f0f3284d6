// services/interfaces.go
package services

import (
	"context"
	"errors"

	"github.com/AI-Template-SDK/brand-visibility/internal/competitive"
	"github.com/AI-Template-SDK/brand-visibility/internal/mentions"
	"github.com/AI-Template-SDK/brand-visibility/internal/models"
	"github.com/AI-Template-SDK/brand-visibility/internal/repositories"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ErrNoCompetitors is returned when competitor analysis runs for a brand
// without competitors
var ErrNoCompetitors = errors.New("no competitors defined for this brand")

// RepositoryManager manages all database repositories
type RepositoryManager struct {
	db              *sqlx.DB
	BrandRepo       repositories.BrandRepository
	SearchQueryRepo repositories.SearchQueryRepository
	MentionRepo     repositories.MentionRepository
	AnalyticsRepo   repositories.AnalyticsRepository
	CompetitorRepo  repositories.CompetitorRepository
}

// NewRepositoryManager creates a new repository manager with all repositories
func NewRepositoryManager(db *sqlx.DB) *RepositoryManager {
	return &RepositoryManager{
		db:              db,
		BrandRepo:       repositories.NewBrandRepo(db),
		SearchQueryRepo: repositories.NewSearchQueryRepo(db),
		MentionRepo:     repositories.NewMentionRepo(db),
		AnalyticsRepo:   repositories.NewAnalyticsRepo(db),
		CompetitorRepo:  repositories.NewCompetitorRepo(db),
	}
}

// Close closes the underlying database
func (rm *RepositoryManager) Close() error {
	return rm.db.Close()
}

type CostService interface {
	CalculateCost(provider, model string, inputTokens, outputTokens int, webSearch bool) float64
	GetCostByModel(provider, model string) (float64, float64, error)
}

// AISearchService queries AI platforms and analyzes the brand in each answer
type AISearchService interface {
	SearchPlatform(ctx context.Context, platform, query, brandName string) (*models.PlatformResult, error)
	SearchAllPlatforms(ctx context.Context, query, brandName string) []*models.PlatformResult
	Analyzer() *mentions.Analyzer
}

type BrandMonitorService interface {
	GenerateBrandQueries(brand *models.Brand) []string
	MonitorBrand(ctx context.Context, brandID uuid.UUID, customQueries []string) (*MonitorSummary, error)
}

type CompetitorAnalysisService interface {
	AnalyzeCompetitors(ctx context.Context, brandID uuid.UUID) (*CompetitorAnalysis, error)
	GetHistoricalCompetitorData(ctx context.Context, brandID uuid.UUID, days int) (map[string]*CompetitorHistory, error)
}

type AnalyticsService interface {
	GetPerformanceTrends(ctx context.Context, brandID uuid.UUID, days int) (map[string]map[string]*TrendPoint, error)
	GetCompetitorAnalysis(ctx context.Context, brandID uuid.UUID, platform string) (map[string]*CompetitorMetrics, error)
	CalculateVisibilityScore(ctx context.Context, brandID uuid.UUID, platform string, days int) (float64, error)
	GenerateOptimizationRecommendations(ctx context.Context, brandID uuid.UUID) ([]competitive.Recommendation, error)
}

// IndexService stores platform responses for similarity and full-text search
type IndexService interface {
	EnsureCollections(ctx context.Context) error
	IndexResults(ctx context.Context, brand *models.Brand, results []*models.PlatformResult) (*IndexSummary, error)
	SimilarResponses(ctx context.Context, brandID uuid.UUID, text string, limit uint64) ([]*SimilarResponse, error)
	SearchContexts(ctx context.Context, brandID uuid.UUID, q string, limit int) ([]string, error)
}

// MonitorSummary is the outcome of one brand monitoring run. QueriesTested
// counts the queries actually sent, at most three, not every generated query.
type MonitorSummary struct {
	BrandID           uuid.UUID                `json:"brand_id"`
	BrandName         string                   `json:"brand_name"`
	QueriesTested     int                      `json:"queries_tested"`
	TotalMentions     int                      `json:"total_mentions"`
	AverageVisibility float64                  `json:"average_visibility"`
	AverageSentiment  float64                  `json:"average_sentiment"`
	Results           []*models.PlatformResult `json:"results"`
}

// CompetitorProfile is how AI platforms describe one competitor
type CompetitorProfile struct {
	Name                 string             `json:"name"`
	VisibilityScores     map[string]float64 `json:"visibility_scores"`
	MentionFrequency     map[string]int     `json:"mention_frequency"`
	SentimentScores      map[string]float64 `json:"sentiment_scores"`
	KeyFeaturesMentioned []string           `json:"key_features_mentioned"`
}

// CompetitorAnalysis is the full competitive report of a brand
type CompetitorAnalysis struct {
	BrandName           string                            `json:"brand_name"`
	Competitors         []*CompetitorProfile              `json:"competitors"`
	CompetitiveQueries  []*competitive.QueryResult        `json:"competitive_queries"`
	MarketPositioning   competitive.MarketPositioning     `json:"market_positioning"`
	PlatformPerformance []competitive.PlatformPerformance `json:"platform_performance"`
	Recommendations     []competitive.Recommendation      `json:"recommendations"`
}

// CompetitorHistory holds the daily snapshot series of one competitor
type CompetitorHistory struct {
	Dates            []string  `json:"dates"`
	Platforms        []string  `json:"platforms"`
	VisibilityScores []float64 `json:"visibility_scores"`
	Mentions         []int     `json:"mentions"`
	SentimentScores  []float64 `json:"sentiment_scores"`
}

// TrendPoint is a brand's metrics on one platform for one day
type TrendPoint struct {
	VisibilityScore float64 `json:"visibility_score"`
	TotalMentions   int     `json:"total_mentions"`
	AvgSentiment    float64 `json:"avg_sentiment"`
}

// CompetitorMetrics aggregates recent snapshots of one competitor
type CompetitorMetrics struct {
	TotalMentions int      `json:"total_mentions"`
	AvgVisibility float64  `json:"avg_visibility"`
	AvgSentiment  float64  `json:"avg_sentiment"`
	Platforms     []string `json:"platforms"`
}

// IndexSummary counts what one IndexResults call stored
type IndexSummary struct {
	Responses int `json:"responses"`
	Contexts  int `json:"contexts"`
}

// SimilarResponse is a stored platform response close to a query text
type SimilarResponse struct {
	ID              string  `json:"id"`
	Score           float32 `json:"score"`
	Platform        string  `json:"platform"`
	Query           string  `json:"query"`
	Response        string  `json:"response"`
	VisibilityScore float64 `json:"visibility_score"`
}
