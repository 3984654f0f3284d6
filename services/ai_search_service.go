// services/ai_search_service.go
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/AI-Template-SDK/brand-visibility/internal/config"
	"github.com/AI-Template-SDK/brand-visibility/internal/mentions"
	"github.com/AI-Template-SDK/brand-visibility/internal/models"
	"github.com/AI-Template-SDK/brand-visibility/internal/providers"
	"github.com/AI-Template-SDK/brand-visibility/internal/providers/common"
	"golang.org/x/sync/errgroup"
)

const notConfiguredReason = "platform not configured"

type aiSearchService struct {
	cfg       *config.Config
	platforms map[string]providers.Platform
	analyzer  *mentions.Analyzer
	limiter   *PlatformLimiter
	cache     *SearchCache
	metrics   *Metrics
	now       func() time.Time
}

// NewAISearchService creates the platform search service. platforms holds the
// configured providers only; a missing platform is answered with a mock
// response when cfg.Search.MockFallback is set. limiter, cache and metrics may
// be nil.
func NewAISearchService(cfg *config.Config, platforms map[string]providers.Platform, analyzer *mentions.Analyzer, limiter *PlatformLimiter, cache *SearchCache, metrics *Metrics) AISearchService {
	if analyzer == nil {
		analyzer = mentions.NewAnalyzer()
	}
	if platforms == nil {
		platforms = make(map[string]providers.Platform)
	}
	return &aiSearchService{
		cfg:       cfg,
		platforms: platforms,
		analyzer:  analyzer,
		limiter:   limiter,
		cache:     cache,
		metrics:   metrics,
		now:       time.Now,
	}
}

func (s *aiSearchService) Analyzer() *mentions.Analyzer {
	return s.analyzer
}

func isKnownPlatform(platform string) bool {
	for _, p := range models.AllPlatforms {
		if p == platform {
			return true
		}
	}
	return false
}

// SearchPlatform queries one platform and analyzes brandName in the answer.
// Platform failures are reported in the result; only an unknown platform
// name is an error.
func (s *aiSearchService) SearchPlatform(ctx context.Context, platform, query, brandName string) (*models.PlatformResult, error) {
	platform = strings.ToLower(strings.TrimSpace(platform))
	if !isKnownPlatform(platform) {
		return nil, fmt.Errorf("unsupported platform: %q", platform)
	}

	result := &models.PlatformResult{
		Platform:  platform,
		Query:     query,
		Timestamp: s.now(),
	}

	if cached, ok := s.cache.Get(platform, query); ok {
		s.metrics.RecordCacheHit(platform)
		s.metrics.RecordSearch(platform, "cached")
		fillFromResponse(result, cached)
		result.Cached = true
	} else if provider, ok := s.platforms[platform]; !ok {
		if !s.cfg.Search.MockFallback {
			s.metrics.RecordSearch(platform, "unconfigured")
			result.Error = fmt.Sprintf("%s: %s", platform, notConfiguredReason)
			return result, nil
		}
		s.metrics.RecordSearch(platform, "mock")
		result.Response = common.MockResponse(query, brandName, notConfiguredReason)
		result.Success = true
		result.Note = "Mock response due to: " + notConfiguredReason
	} else {
		resp, err := s.callPlatform(ctx, platform, provider, query)
		if err != nil {
			fmt.Printf("[AISearchService] ❌ %s search failed for %q: %v\n", platform, query, err)
			result.Error = err.Error()
			return result, nil
		}
		s.cache.Set(platform, query, resp)
		fillFromResponse(result, resp)
	}

	if brandName != "" {
		analysis := s.analyzer.Analyze(result.Response, brandName)
		result.Analysis = &analysis
		s.metrics.RecordScores(platform, analysis.VisibilityScore, analysis.SentimentScore)
	}
	return result, nil
}

func (s *aiSearchService) callPlatform(ctx context.Context, platform string, provider providers.Platform, query string) (*common.AIResponse, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx, platform); err != nil {
			s.metrics.RecordSearch(platform, "rate_limited")
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	start := time.Now()
	resp, err := provider.Search(ctx, query)
	s.metrics.RecordLatency(platform, time.Since(start).Seconds())
	if err != nil {
		s.metrics.RecordSearch(platform, "failed")
		return nil, err
	}
	s.metrics.RecordSearch(platform, "success")
	return resp, nil
}

func fillFromResponse(result *models.PlatformResult, resp *common.AIResponse) {
	result.Response = resp.Response
	result.TokensUsed = resp.TotalTokens()
	result.Cost = resp.Cost
	result.Success = true
}

// SearchAllPlatforms queries every platform concurrently. Results are in
// models.AllPlatforms order whatever the completion order.
func (s *aiSearchService) SearchAllPlatforms(ctx context.Context, query, brandName string) []*models.PlatformResult {
	results := make([]*models.PlatformResult, len(models.AllPlatforms))

	var g errgroup.Group
	for i, platform := range models.AllPlatforms {
		g.Go(func() error {
			result, err := s.SearchPlatform(ctx, platform, query, brandName)
			if err != nil {
				result = &models.PlatformResult{
					Platform:  platform,
					Query:     query,
					Error:     err.Error(),
					Timestamp: s.now(),
				}
			}
			results[i] = result
			return nil
		})
	}
	_ = g.Wait()

	return results
}
