// workflows/competitor_processor.go
package workflows

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/inngest/inngestgo"
	"github.com/inngest/inngestgo/step"

	"github.com/AI-Template-SDK/brand-visibility/services"
)

const (
	EventCompetitorAnalyze = "brand.competitors.analyze"
	defaultHistoryDays     = 30
)

type CompetitorProcessor struct {
	competitorService services.CompetitorAnalysisService
	analyticsService  services.AnalyticsService
	notifier          *SlackNotifier
	client            inngestgo.Client
}

func NewCompetitorProcessor(
	competitorService services.CompetitorAnalysisService,
	analyticsService services.AnalyticsService,
	notifier *SlackNotifier,
) *CompetitorProcessor {
	return &CompetitorProcessor{
		competitorService: competitorService,
		analyticsService:  analyticsService,
		notifier:          notifier,
	}
}

func (p *CompetitorProcessor) SetClient(client inngestgo.Client) {
	p.client = client
}

func (p *CompetitorProcessor) AnalyzeCompetitors() inngestgo.ServableFunction {
	fn, err := inngestgo.CreateFunction(
		p.client,
		inngestgo.FunctionOpts{
			ID:      "analyze-competitors",
			Name:    "Analyze Competitors - Competitive Positioning Pipeline",
			Retries: inngestgo.IntPtr(2),
		},
		inngestgo.EventTrigger(EventCompetitorAnalyze, nil),
		func(ctx context.Context, input inngestgo.Input[CompetitorAnalyzeEvent]) (any, error) {
			evt := input.Event.Data
			fmt.Printf("[AnalyzeCompetitors] Starting competitor analysis for brand: %s\n", evt.BrandID)

			brandID, err := uuid.Parse(evt.BrandID)
			if err != nil {
				return nil, fmt.Errorf("invalid brand ID %q: %w", evt.BrandID, err)
			}

			// Step 1: Profile competitors and run the competitive queries
			analysis, err := step.Run(ctx, "analyze-competitors", func(ctx context.Context) (*services.CompetitorAnalysis, error) {
				return p.competitorService.AnalyzeCompetitors(ctx, brandID)
			})
			if errors.Is(err, services.ErrNoCompetitors) {
				return map[string]interface{}{
					"brand_id": evt.BrandID,
					"status":   "skipped",
					"message":  services.ErrNoCompetitors.Error(),
				}, nil
			}
			if err != nil {
				reportFailure(ctx, p.notifier, "AnalyzeCompetitors", evt.BrandID, "", "analyze-competitors", err)
				return nil, fmt.Errorf("step 1 failed: %w", err)
			}

			days := evt.Days
			if days <= 0 {
				days = defaultHistoryDays
			}

			// Step 2: Load the snapshot history
			history, err := step.Run(ctx, "get-competitor-history", func(ctx context.Context) (map[string]*services.CompetitorHistory, error) {
				return p.competitorService.GetHistoricalCompetitorData(ctx, brandID, days)
			})
			if err != nil {
				reportFailure(ctx, p.notifier, "AnalyzeCompetitors", evt.BrandID, analysis.BrandName, "get-competitor-history", err)
				return nil, fmt.Errorf("step 2 failed: %w", err)
			}

			// Step 3: Aggregate the last week per competitor
			recent, err := step.Run(ctx, "get-competitor-metrics", func(ctx context.Context) (map[string]*services.CompetitorMetrics, error) {
				return p.analyticsService.GetCompetitorAnalysis(ctx, brandID, "")
			})
			if err != nil {
				reportFailure(ctx, p.notifier, "AnalyzeCompetitors", evt.BrandID, analysis.BrandName, "get-competitor-metrics", err)
				return nil, fmt.Errorf("step 3 failed: %w", err)
			}

			fmt.Printf("[AnalyzeCompetitors] ✅ Completed competitor analysis for %s\n", analysis.BrandName)
			return map[string]interface{}{
				"brand_id":           evt.BrandID,
				"brand_name":         analysis.BrandName,
				"status":             "completed",
				"triggered_by":       evt.TriggeredBy,
				"competitors":        len(analysis.Competitors),
				"competitive_checks": len(analysis.CompetitiveQueries),
				"mention_rate":       analysis.MarketPositioning.MentionRate,
				"category_strength":  analysis.MarketPositioning.CategoryStrength,
				"recommendations":    analysis.Recommendations,
				"history":            history,
				"recent_metrics":     recent,
			}, nil
		},
	)

	if err != nil {
		fmt.Printf("Failed to create competitor processor function: %v\n", err)
	}

	return fn
}

type CompetitorAnalyzeEvent struct {
	BrandID     string `json:"brand_id"`
	Days        int    `json:"days,omitempty"`
	TriggeredBy string `json:"triggered_by"`
}

// NewCompetitorAnalyzeEvent builds the event that starts a competitor analysis
func NewCompetitorAnalyzeEvent(brandID uuid.UUID, triggeredBy string) inngestgo.Event {
	return inngestgo.Event{
		Name: EventCompetitorAnalyze,
		Data: map[string]interface{}{
			"brand_id":     brandID.String(),
			"triggered_by": triggeredBy,
		},
	}
}
