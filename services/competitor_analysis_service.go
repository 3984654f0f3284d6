// services/competitor_analysis_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/AI-Template-SDK/brand-visibility/internal/competitive"
	"github.com/AI-Template-SDK/brand-visibility/internal/models"
	"github.com/google/uuid"
)

type competitorAnalysisService struct {
	repos  *RepositoryManager
	search AISearchService
	now    func() time.Time
}

func NewCompetitorAnalysisService(repos *RepositoryManager, search AISearchService) CompetitorAnalysisService {
	return &competitorAnalysisService{
		repos:  repos,
		search: search,
		now:    time.Now,
	}
}

// AnalyzeCompetitors profiles every competitor of the brand, runs the
// competitive queries and derives market positioning and recommendations.
// Today's competitor snapshots are stored along the way.
func (s *competitorAnalysisService) AnalyzeCompetitors(ctx context.Context, brandID uuid.UUID) (*CompetitorAnalysis, error) {
	brand, err := s.repos.BrandRepo.GetByID(ctx, brandID)
	if err != nil {
		return nil, fmt.Errorf("failed to get brand %s: %w", brandID, err)
	}
	if len(brand.Competitors) == 0 {
		return nil, ErrNoCompetitors
	}

	fmt.Printf("[AnalyzeCompetitors] Analyzing %d competitors of %s\n", len(brand.Competitors), brand.Name)

	analysis := &CompetitorAnalysis{
		BrandName:          brand.Name,
		Competitors:        make([]*CompetitorProfile, 0, len(brand.Competitors)),
		CompetitiveQueries: []*competitive.QueryResult{},
	}

	today := s.now().Format(models.DateLayout)
	for _, competitor := range brand.Competitors {
		profile := s.profileCompetitor(ctx, competitor)
		analysis.Competitors = append(analysis.Competitors, profile)

		if err := s.saveSnapshots(ctx, brand.ID, today, profile); err != nil {
			return nil, err
		}
	}

	for _, query := range competitive.CompetitiveQueries(brand, s.now().Year()) {
		analysis.CompetitiveQueries = append(analysis.CompetitiveQueries, s.observeQuery(ctx, brand, query))
	}

	positionings := make([]competitive.QueryPositioning, len(analysis.CompetitiveQueries))
	for i, result := range analysis.CompetitiveQueries {
		positionings[i] = result.Positioning()
	}
	analysis.MarketPositioning = competitive.AggregatePositioning(positionings)
	analysis.PlatformPerformance = competitive.AnalyzePlatformPerformance(analysis.CompetitiveQueries)
	analysis.Recommendations = competitive.Recommend(analysis.MarketPositioning, analysis.PlatformPerformance)

	fmt.Printf("[AnalyzeCompetitors] ✅ %s mention rate %.1f%% (%s)\n",
		brand.Name, analysis.MarketPositioning.MentionRate, analysis.MarketPositioning.CategoryStrength)
	return analysis, nil
}

func (s *competitorAnalysisService) profileCompetitor(ctx context.Context, competitor string) *CompetitorProfile {
	profile := &CompetitorProfile{
		Name:                 competitor,
		VisibilityScores:     make(map[string]float64),
		MentionFrequency:     make(map[string]int),
		SentimentScores:      make(map[string]float64),
		KeyFeaturesMentioned: []string{},
	}

	visibility := make(map[string][]float64)
	sentiment := make(map[string][]float64)

	for _, query := range competitive.CompetitorQueries(competitor) {
		for _, result := range s.search.SearchAllPlatforms(ctx, query, competitor) {
			if !result.Success {
				continue
			}
			platform := result.Platform
			profile.MentionFrequency[platform] += result.DirectMentions()
			if result.Analysis != nil {
				visibility[platform] = append(visibility[platform], result.Analysis.VisibilityScore)
				sentiment[platform] = append(sentiment[platform], result.Analysis.SentimentScore)
			} else {
				visibility[platform] = append(visibility[platform], 0)
				sentiment[platform] = append(sentiment[platform], 0)
			}
			profile.KeyFeaturesMentioned = competitive.ExtractFeatures(result.Response, profile.KeyFeaturesMentioned)
		}
	}

	for platform, scores := range visibility {
		profile.VisibilityScores[platform] = mean(scores)
		profile.SentimentScores[platform] = mean(sentiment[platform])
	}
	return profile
}

func (s *competitorAnalysisService) observeQuery(ctx context.Context, brand *models.Brand, query string) *competitive.QueryResult {
	queryResult := competitive.NewQueryResult(query)
	for _, result := range s.search.SearchAllPlatforms(ctx, query, brand.Name) {
		if !result.Success {
			continue
		}
		queryResult.Add(result.Platform, competitive.ObservePlatform(result.Response, brand.Name, brand.Competitors, result.DirectMentions()))
	}
	return queryResult
}

func (s *competitorAnalysisService) saveSnapshots(ctx context.Context, brandID uuid.UUID, date string, profile *CompetitorProfile) error {
	for _, platform := range models.AllPlatforms {
		visibility, ok := profile.VisibilityScores[platform]
		if !ok {
			continue
		}
		snapshot := &models.CompetitorSnapshot{
			BrandID:         brandID,
			CompetitorName:  profile.Name,
			Date:            date,
			Platform:        platform,
			Mentions:        profile.MentionFrequency[platform],
			VisibilityScore: visibility,
			AvgSentiment:    profile.SentimentScores[platform],
		}
		if err := s.repos.CompetitorRepo.Upsert(ctx, snapshot); err != nil {
			return fmt.Errorf("failed to save %s snapshot for %s: %w", platform, profile.Name, err)
		}
	}
	return nil
}

// GetHistoricalCompetitorData returns the snapshot series of each competitor
// over the last days days, oldest first.
func (s *competitorAnalysisService) GetHistoricalCompetitorData(ctx context.Context, brandID uuid.UUID, days int) (map[string]*CompetitorHistory, error) {
	if days <= 0 {
		days = 30
	}
	since := s.now().AddDate(0, 0, -days).Format(models.DateLayout)

	snapshots, err := s.repos.CompetitorRepo.ListByBrandSince(ctx, brandID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to get competitor history: %w", err)
	}

	history := make(map[string]*CompetitorHistory)
	for _, snapshot := range snapshots {
		h, ok := history[snapshot.CompetitorName]
		if !ok {
			h = &CompetitorHistory{}
			history[snapshot.CompetitorName] = h
		}
		h.Dates = append(h.Dates, snapshot.Date)
		h.Platforms = append(h.Platforms, snapshot.Platform)
		h.VisibilityScores = append(h.VisibilityScores, snapshot.VisibilityScore)
		h.Mentions = append(h.Mentions, snapshot.Mentions)
		h.SentimentScores = append(h.SentimentScores, snapshot.AvgSentiment)
	}
	return history, nil
}
