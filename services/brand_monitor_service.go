// services/brand_monitor_service.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/AI-Template-SDK/brand-visibility/internal/competitive"
	"github.com/AI-Template-SDK/brand-visibility/internal/mentions"
	"github.com/AI-Template-SDK/brand-visibility/internal/models"
	"github.com/google/uuid"
)

const (
	// monitorQueryLimit bounds the queries sent per run to keep API costs down
	monitorQueryLimit = 3
	mentionPosition   = 1
	mentionConfidence = 0.8
)

type brandMonitorService struct {
	repos   *RepositoryManager
	search  AISearchService
	metrics *Metrics
	now     func() time.Time
}

func NewBrandMonitorService(repos *RepositoryManager, search AISearchService, metrics *Metrics) BrandMonitorService {
	return &brandMonitorService{
		repos:   repos,
		search:  search,
		metrics: metrics,
		now:     time.Now,
	}
}

func (s *brandMonitorService) GenerateBrandQueries(brand *models.Brand) []string {
	return competitive.BrandQueries(brand)
}

// platformTally accumulates one platform's results of a run
type platformTally struct {
	results    int
	direct     int
	indirect   int
	visibility float64
	sentiments []float64
}

// MonitorBrand searches every platform for the brand, stores the responses
// and mentions found, and refreshes today's analytics rows.
func (s *brandMonitorService) MonitorBrand(ctx context.Context, brandID uuid.UUID, customQueries []string) (*MonitorSummary, error) {
	brand, err := s.repos.BrandRepo.GetByID(ctx, brandID)
	if err != nil {
		s.metrics.RecordMonitorRun("failed")
		return nil, fmt.Errorf("failed to get brand %s: %w", brandID, err)
	}

	queries := customQueries
	if len(queries) == 0 {
		queries = s.GenerateBrandQueries(brand)
	}
	if len(queries) > monitorQueryLimit {
		queries = queries[:monitorQueryLimit]
	}

	fmt.Printf("[MonitorBrand] Monitoring brand %s with %d queries\n", brand.Name, len(queries))

	summary := &MonitorSummary{
		BrandID:       brand.ID,
		BrandName:     brand.Name,
		QueriesTested: len(queries),
		Results:       []*models.PlatformResult{},
	}

	tallies := make(map[string]*platformTally, len(models.AllPlatforms))
	for _, platform := range models.AllPlatforms {
		tallies[platform] = &platformTally{}
	}

	var totalVisibility float64
	var sentiments []float64
	policyVersion := s.search.Analyzer().PolicyVersion()

	for _, query := range queries {
		fmt.Printf("[MonitorBrand] Testing query: %s\n", query)

		for _, result := range s.search.SearchAllPlatforms(ctx, query, brand.Name) {
			if !result.Success {
				continue
			}

			if err := s.storeResult(ctx, brand, result, policyVersion); err != nil {
				s.metrics.RecordMonitorRun("failed")
				return nil, err
			}
			summary.Results = append(summary.Results, result)

			tally := tallies[result.Platform]
			tally.results++
			if result.Analysis == nil {
				continue
			}
			tally.direct += result.Analysis.DirectMentionCount
			tally.visibility += result.Analysis.VisibilityScore
			tally.sentiments = append(tally.sentiments, result.Analysis.SentimentScore)
			if result.Analysis.MentionType == mentions.MentionIndirect {
				tally.indirect++
			}

			if result.Analysis.DirectMentionCount > 0 {
				summary.TotalMentions += result.Analysis.DirectMentionCount
				totalVisibility += result.Analysis.VisibilityScore
				sentiments = append(sentiments, result.Analysis.SentimentScore)
			}
		}
	}

	if len(summary.Results) > 0 {
		summary.AverageVisibility = totalVisibility / float64(len(summary.Results))
	}
	summary.AverageSentiment = mean(sentiments)

	today := s.now().Format(models.DateLayout)
	for _, platform := range models.AllPlatforms {
		analytics := dailyAnalytics(brand.ID, today, platform, tallies[platform])
		if err := s.repos.AnalyticsRepo.Upsert(ctx, analytics); err != nil {
			s.metrics.RecordMonitorRun("failed")
			return nil, fmt.Errorf("failed to save %s analytics: %w", platform, err)
		}
	}

	s.metrics.RecordMonitorRun("success")
	fmt.Printf("[MonitorBrand] ✅ Monitored brand %s: %d results, %d mentions\n", brand.Name, len(summary.Results), summary.TotalMentions)
	return summary, nil
}

func (s *brandMonitorService) storeResult(ctx context.Context, brand *models.Brand, result *models.PlatformResult, policyVersion string) error {
	searchQuery := &models.SearchQuery{
		BrandID:       brand.ID,
		QueryText:     result.Query,
		Platform:      result.Platform,
		ResponseText:  result.Response,
		Analysis:      "{}",
		PolicyVersion: policyVersion,
		CreatedAt:     s.now().Unix(),
	}
	if result.Analysis != nil {
		encoded, err := json.Marshal(result.Analysis)
		if err != nil {
			return fmt.Errorf("failed to encode analysis: %w", err)
		}
		searchQuery.Analysis = string(encoded)
		searchQuery.SentimentScore = result.Analysis.SentimentScore
		searchQuery.VisibilityScore = result.Analysis.VisibilityScore
	}
	if err := s.repos.SearchQueryRepo.Create(ctx, searchQuery); err != nil {
		return fmt.Errorf("failed to save search query: %w", err)
	}

	if result.DirectMentions() == 0 {
		return nil
	}

	mention := &models.MentionRecord{
		SearchQueryID:   searchQuery.ID,
		BrandID:         brand.ID,
		Position:        mentionPosition,
		MentionType:     string(result.Analysis.MentionType),
		Sentiment:       mentions.Label(result.Analysis.SentimentScore),
		ConfidenceScore: mentionConfidence,
		CreatedAt:       searchQuery.CreatedAt,
	}
	if len(result.Analysis.Contexts) > 0 {
		mention.Context = result.Analysis.Contexts[0].Snippet
	}
	if err := s.repos.MentionRepo.Create(ctx, mention); err != nil {
		return fmt.Errorf("failed to save mention: %w", err)
	}
	return nil
}

func dailyAnalytics(brandID uuid.UUID, date, platform string, tally *platformTally) *models.DailyAnalytics {
	analytics := &models.DailyAnalytics{
		BrandID:           brandID,
		Date:              date,
		Platform:          platform,
		DirectMentions:    tally.direct,
		IndirectMentions:  tally.indirect,
		TotalMentions:     tally.direct + tally.indirect,
		AvgSentimentScore: mean(tally.sentiments),
	}
	if tally.results > 0 {
		analytics.VisibilityScore = tally.visibility / float64(tally.results)
	}
	for _, score := range tally.sentiments {
		switch mentions.Label(score) {
		case "positive":
			analytics.PositiveSentiment++
		case "negative":
			analytics.NegativeSentiment++
		default:
			analytics.NeutralSentiment++
		}
	}
	return analytics
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
