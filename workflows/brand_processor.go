// workflows/brand_processor.go
package workflows

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/inngest/inngestgo"
	"github.com/inngest/inngestgo/step"

	"github.com/AI-Template-SDK/brand-visibility/internal/models"
	"github.com/AI-Template-SDK/brand-visibility/services"
)

const (
	EventBrandMonitor = "brand.monitor"
	trendWindowDays   = 30
)

type BrandProcessor struct {
	repos            *services.RepositoryManager
	monitorService   services.BrandMonitorService
	analyticsService services.AnalyticsService
	indexService     services.IndexService
	notifier         *SlackNotifier
	client           inngestgo.Client
}

// NewBrandProcessor creates the monitoring pipeline. indexService and
// notifier may be nil.
func NewBrandProcessor(
	repos *services.RepositoryManager,
	monitorService services.BrandMonitorService,
	analyticsService services.AnalyticsService,
	indexService services.IndexService,
	notifier *SlackNotifier,
) *BrandProcessor {
	return &BrandProcessor{
		repos:            repos,
		monitorService:   monitorService,
		analyticsService: analyticsService,
		indexService:     indexService,
		notifier:         notifier,
	}
}

func (p *BrandProcessor) SetClient(client inngestgo.Client) {
	p.client = client
}

func (p *BrandProcessor) ProcessBrand() inngestgo.ServableFunction {
	fn, err := inngestgo.CreateFunction(
		p.client,
		inngestgo.FunctionOpts{
			ID:      "process-brand",
			Name:    "Process Brand - AI Visibility Monitoring Pipeline",
			Retries: inngestgo.IntPtr(3),
		},
		inngestgo.EventTrigger(EventBrandMonitor, nil),
		func(ctx context.Context, input inngestgo.Input[BrandMonitorEvent]) (any, error) {
			evt := input.Event.Data
			fmt.Printf("[ProcessBrand] Starting monitoring pipeline for brand: %s\n", evt.BrandID)

			brandID, err := uuid.Parse(evt.BrandID)
			if err != nil {
				return nil, fmt.Errorf("invalid brand ID %q: %w", evt.BrandID, err)
			}

			// Step 1: Load the brand
			brand, err := step.Run(ctx, "get-brand", func(ctx context.Context) (*models.Brand, error) {
				return p.repos.BrandRepo.GetByID(ctx, brandID)
			})
			if err != nil {
				reportFailure(ctx, p.notifier, "ProcessBrand", evt.BrandID, "", "get-brand", err)
				return nil, fmt.Errorf("step 1 failed: %w", err)
			}

			// Step 2: Query every platform and store the results
			summary, err := step.Run(ctx, "monitor-brand", func(ctx context.Context) (*services.MonitorSummary, error) {
				fmt.Printf("[ProcessBrand] Step 2: Monitoring %s across AI platforms\n", brand.Name)
				return p.monitorService.MonitorBrand(ctx, brand.ID, evt.Queries)
			})
			if err != nil {
				reportFailure(ctx, p.notifier, "ProcessBrand", evt.BrandID, brand.Name, "monitor-brand", err)
				return nil, fmt.Errorf("step 2 failed: %w", err)
			}

			// Step 3: Index the responses; failures do not fail the run
			indexed, err := step.Run(ctx, "index-results", func(ctx context.Context) (*services.IndexSummary, error) {
				if p.indexService == nil {
					return &services.IndexSummary{}, nil
				}
				result, err := p.indexService.IndexResults(ctx, brand, summary.Results)
				if err != nil {
					fmt.Printf("[ProcessBrand] Warning: indexing failed for %s: %v\n", brand.Name, err)
				}
				if result == nil {
					result = &services.IndexSummary{}
				}
				return result, nil
			})
			if err != nil {
				fmt.Printf("[ProcessBrand] Warning: index step failed for %s: %v\n", brand.Name, err)
			}

			// Step 4: Refresh trends and recommendations
			insights, err := step.Run(ctx, "compute-insights", func(ctx context.Context) (*BrandInsights, error) {
				trends, err := p.analyticsService.GetPerformanceTrends(ctx, brand.ID, trendWindowDays)
				if err != nil {
					return nil, err
				}
				recommendations, err := p.analyticsService.GenerateOptimizationRecommendations(ctx, brand.ID)
				if err != nil {
					return nil, err
				}
				return &BrandInsights{
					TrendDays:       len(trends),
					Trends:          trends,
					Recommendations: len(recommendations),
				}, nil
			})
			if err != nil {
				reportFailure(ctx, p.notifier, "ProcessBrand", evt.BrandID, brand.Name, "compute-insights", err)
				return nil, fmt.Errorf("step 4 failed: %w", err)
			}

			fmt.Printf("[ProcessBrand] ✅ Completed pipeline for %s\n", brand.Name)
			return monitorRunResult(brand, summary, indexed, insights, evt.TriggeredBy), nil
		},
	)

	if err != nil {
		fmt.Printf("Failed to create brand processor function: %v\n", err)
	}

	return fn
}

// BrandInsights is the analytics snapshot taken at the end of a run
type BrandInsights struct {
	TrendDays       int                                        `json:"trend_days"`
	Trends          map[string]map[string]*services.TrendPoint `json:"trends"`
	Recommendations int                                        `json:"recommendations"`
}

func monitorRunResult(brand *models.Brand, summary *services.MonitorSummary, indexed *services.IndexSummary, insights *BrandInsights, triggeredBy string) map[string]interface{} {
	result := map[string]interface{}{
		"brand_id":           brand.ID.String(),
		"brand_name":         brand.Name,
		"status":             "completed",
		"triggered_by":       triggeredBy,
		"queries_tested":     summary.QueriesTested,
		"results":            len(summary.Results),
		"total_mentions":     summary.TotalMentions,
		"average_visibility": summary.AverageVisibility,
		"average_sentiment":  summary.AverageSentiment,
	}
	if indexed != nil {
		result["indexed_responses"] = indexed.Responses
		result["indexed_contexts"] = indexed.Contexts
	}
	if insights != nil {
		result["trend_days"] = insights.TrendDays
		result["recommendations"] = insights.Recommendations
	}
	return result
}

type BrandMonitorEvent struct {
	BrandID     string   `json:"brand_id"`
	Queries     []string `json:"queries,omitempty"`
	TriggeredBy string   `json:"triggered_by"`
	UserID      string   `json:"user_id,omitempty"`
}

// NewBrandMonitorEvent builds the event that starts a monitoring run
func NewBrandMonitorEvent(brandID uuid.UUID, triggeredBy string, queries ...string) inngestgo.Event {
	data := map[string]interface{}{
		"brand_id":     brandID.String(),
		"triggered_by": triggeredBy,
	}
	if len(queries) > 0 {
		data["queries"] = queries
	}
	return inngestgo.Event{
		Name: EventBrandMonitor,
		Data: data,
	}
}
