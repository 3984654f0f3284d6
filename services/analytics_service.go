// services/analytics_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/AI-Template-SDK/brand-visibility/internal/competitive"
	"github.com/AI-Template-SDK/brand-visibility/internal/models"
	"github.com/AI-Template-SDK/brand-visibility/internal/repositories"
	"github.com/google/uuid"
)

const (
	recentWindowDays         = 7
	maxOptimizationRecs      = 10
	lowVisibilityThreshold   = 30.0
	negativeSentimentCeiling = -0.2
	lowMentionVolume         = 5
)

// Weights of a stored mention in the visibility score
var mentionTypeWeights = map[string]float64{
	"direct":   1.0,
	"indirect": 0.7,
	"citation": 0.9,
}

const (
	defaultMentionWeight    = 0.5
	defaultPositionWeight   = 0.5
	defaultConfidenceWeight = 0.5
)

var priorityOrder = map[string]int{"high": 1, "medium": 2, "low": 3}

type analyticsService struct {
	repos *RepositoryManager
	now   func() time.Time
}

func NewAnalyticsService(repos *RepositoryManager) AnalyticsService {
	return &analyticsService{
		repos: repos,
		now:   time.Now,
	}
}

func (s *analyticsService) sinceDate(days int) string {
	return s.now().AddDate(0, 0, -days).Format(models.DateLayout)
}

// GetPerformanceTrends groups the daily analytics of the last days days by
// date and platform.
func (s *analyticsService) GetPerformanceTrends(ctx context.Context, brandID uuid.UUID, days int) (map[string]map[string]*TrendPoint, error) {
	if days <= 0 {
		days = 30
	}

	rows, err := s.repos.AnalyticsRepo.ListByBrandSince(ctx, brandID, s.sinceDate(days))
	if err != nil {
		return nil, fmt.Errorf("failed to get performance trends: %w", err)
	}

	trends := make(map[string]map[string]*TrendPoint)
	for _, row := range rows {
		byPlatform, ok := trends[row.Date]
		if !ok {
			byPlatform = make(map[string]*TrendPoint)
			trends[row.Date] = byPlatform
		}
		byPlatform[row.Platform] = &TrendPoint{
			VisibilityScore: row.VisibilityScore,
			TotalMentions:   row.TotalMentions,
			AvgSentiment:    row.AvgSentimentScore,
		}
	}
	return trends, nil
}

// GetCompetitorAnalysis aggregates the last week of snapshots of the brand's
// current competitors. platform is optional.
func (s *analyticsService) GetCompetitorAnalysis(ctx context.Context, brandID uuid.UUID, platform string) (map[string]*CompetitorMetrics, error) {
	brand, err := s.repos.BrandRepo.GetByID(ctx, brandID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return map[string]*CompetitorMetrics{}, nil
		}
		return nil, fmt.Errorf("failed to get brand %s: %w", brandID, err)
	}

	metrics := make(map[string]*CompetitorMetrics)
	if len(brand.Competitors) == 0 {
		return metrics, nil
	}

	snapshots, err := s.repos.CompetitorRepo.ListByBrandSince(ctx, brandID, s.sinceDate(recentWindowDays))
	if err != nil {
		return nil, fmt.Errorf("failed to get competitor snapshots: %w", err)
	}

	tracked := make(map[string]bool, len(brand.Competitors))
	for _, c := range brand.Competitors {
		tracked[c] = true
	}

	rowCounts := make(map[string]int)
	for _, snapshot := range snapshots {
		if !tracked[snapshot.CompetitorName] {
			continue
		}
		if platform != "" && snapshot.Platform != platform {
			continue
		}

		m, ok := metrics[snapshot.CompetitorName]
		if !ok {
			m = &CompetitorMetrics{Platforms: []string{}}
			metrics[snapshot.CompetitorName] = m
		}
		m.TotalMentions += snapshot.Mentions
		m.AvgVisibility += snapshot.VisibilityScore
		m.AvgSentiment += snapshot.AvgSentiment
		if !containsPlatform(m.Platforms, snapshot.Platform) {
			m.Platforms = append(m.Platforms, snapshot.Platform)
		}
		rowCounts[snapshot.CompetitorName]++
	}

	for name, m := range metrics {
		n := float64(rowCounts[name])
		m.AvgVisibility /= n
		m.AvgSentiment /= n
	}
	return metrics, nil
}

func containsPlatform(platforms []string, platform string) bool {
	for _, p := range platforms {
		if p == platform {
			return true
		}
	}
	return false
}

// CalculateVisibilityScore weighs every stored mention on platform in the
// last days days by position, mention type and confidence, and returns the
// mean on a 0-100 scale.
func (s *analyticsService) CalculateVisibilityScore(ctx context.Context, brandID uuid.UUID, platform string, days int) (float64, error) {
	if days <= 0 {
		days = 30
	}
	since := s.now().AddDate(0, 0, -days).Unix()

	mentionRows, err := s.repos.MentionRepo.ListByBrandPlatformSince(ctx, brandID, platform, since)
	if err != nil {
		return 0, fmt.Errorf("failed to calculate visibility score: %w", err)
	}
	if len(mentionRows) == 0 {
		return 0, nil
	}

	var total float64
	for _, m := range mentionRows {
		total += mentionWeight(&m.MentionRecord)
	}

	score := total / float64(len(mentionRows)) * 100
	if score > 100 {
		score = 100
	}
	return score, nil
}

func mentionWeight(m *models.MentionRecord) float64 {
	position := defaultPositionWeight
	if m.Position > 0 {
		position = 1.0 / float64(m.Position)
	}

	mentionType, ok := mentionTypeWeights[m.MentionType]
	if !ok {
		mentionType = defaultMentionWeight
	}

	confidence := m.ConfidenceScore
	if confidence == 0 {
		confidence = defaultConfidenceWeight
	}

	return position * mentionType * confidence
}

type platformStats struct {
	visibility float64
	sentiment  float64
	mentions   int
	rows       int
}

// GenerateOptimizationRecommendations inspects the last week of analytics
// and suggests up to ten actions, high priority first.
func (s *analyticsService) GenerateOptimizationRecommendations(ctx context.Context, brandID uuid.UUID) ([]competitive.Recommendation, error) {
	if _, err := s.repos.BrandRepo.GetByID(ctx, brandID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return []competitive.Recommendation{}, nil
		}
		return nil, fmt.Errorf("failed to get brand %s: %w", brandID, err)
	}

	rows, err := s.repos.AnalyticsRepo.ListByBrandSince(ctx, brandID, s.sinceDate(recentWindowDays))
	if err != nil {
		return nil, fmt.Errorf("failed to get recent analytics: %w", err)
	}

	if len(rows) == 0 {
		return []competitive.Recommendation{{
			Type:        "data_collection",
			Priority:    "high",
			Title:       "Start Data Collection",
			Description: "Begin tracking your brand mentions across AI platforms to establish baseline metrics.",
			Actions: []string{
				"Set up automated brand monitoring",
				"Define key search queries for your industry",
				"Configure competitor tracking",
			},
		}}, nil
	}

	var platforms []string
	stats := make(map[string]*platformStats)
	for _, row := range rows {
		st, ok := stats[row.Platform]
		if !ok {
			st = &platformStats{}
			stats[row.Platform] = st
			platforms = append(platforms, row.Platform)
		}
		st.visibility += row.VisibilityScore
		st.sentiment += row.AvgSentimentScore
		st.mentions += row.TotalMentions
		st.rows++
	}

	recs := []competitive.Recommendation{}
	for _, platform := range platforms {
		st := stats[platform]
		avgVisibility := st.visibility / float64(st.rows)
		avgSentiment := st.sentiment / float64(st.rows)
		name := competitive.TitleCase(platform)

		if avgVisibility < lowVisibilityThreshold {
			recs = append(recs, competitive.Recommendation{
				Type:        "visibility",
				Priority:    "high",
				Platform:    platform,
				Title:       fmt.Sprintf("Improve %s Visibility", name),
				Description: fmt.Sprintf("Your brand visibility on %s is below average (%.1f/100).", platform, avgVisibility),
				Actions: []string{
					"Create more authoritative content in your domain",
					"Optimize content for AI search queries",
					"Build high-quality backlinks to your content",
				},
			})
		}

		if avgSentiment < negativeSentimentCeiling {
			recs = append(recs, competitive.Recommendation{
				Type:        "sentiment",
				Priority:    "medium",
				Platform:    platform,
				Title:       fmt.Sprintf("Address Negative Sentiment on %s", name),
				Description: fmt.Sprintf("Your brand sentiment on %s is negative (%.2f).", platform, avgSentiment),
				Actions: []string{
					"Review and address customer concerns",
					"Create positive content and case studies",
					"Engage with community discussions",
				},
			})
		}

		if st.mentions < lowMentionVolume {
			recs = append(recs, competitive.Recommendation{
				Type:        "mentions",
				Priority:    "medium",
				Platform:    platform,
				Title:       fmt.Sprintf("Increase Brand Mentions on %s", name),
				Description: fmt.Sprintf("Your brand has low mention volume on %s (%d mentions).", platform, st.mentions),
				Actions: []string{
					"Create more searchable content",
					"Participate in industry discussions",
					"Develop thought leadership content",
				},
			})
		}
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return priorityRank(recs[i].Priority) < priorityRank(recs[j].Priority)
	})
	if len(recs) > maxOptimizationRecs {
		recs = recs[:maxOptimizationRecs]
	}
	return recs, nil
}

func priorityRank(priority string) int {
	if rank, ok := priorityOrder[priority]; ok {
		return rank
	}
	return priorityOrder["low"]
}
