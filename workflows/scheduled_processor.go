// workflows/scheduled_processor.go
package workflows

import (
	"context"
	"fmt"
	"time"

	"github.com/inngest/inngestgo"
	"github.com/inngest/inngestgo/step"

	"github.com/AI-Template-SDK/brand-visibility/internal/models"
	"github.com/AI-Template-SDK/brand-visibility/services"
)

type ScheduledProcessor struct {
	repos            *services.RepositoryManager
	analyticsService services.AnalyticsService
	notifier         *SlackNotifier
	client           inngestgo.Client
}

func NewScheduledProcessor(repos *services.RepositoryManager, analyticsService services.AnalyticsService, notifier *SlackNotifier) *ScheduledProcessor {
	return &ScheduledProcessor{
		repos:            repos,
		analyticsService: analyticsService,
		notifier:         notifier,
	}
}

func (p *ScheduledProcessor) SetClient(client inngestgo.Client) {
	p.client = client
}

// brandRef is the part of a brand the schedulers pass between steps
type brandRef struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	HasCompetitors bool   `json:"has_competitors"`
}

func brandRefs(brands []*models.Brand) []brandRef {
	refs := make([]brandRef, 0, len(brands))
	for _, b := range brands {
		refs = append(refs, brandRef{
			ID:             b.ID.String(),
			Name:           b.Name,
			HasCompetitors: len(b.Competitors) > 0,
		})
	}
	return refs
}

func (p *ScheduledProcessor) getActiveBrands(ctx context.Context) ([]brandRef, error) {
	return step.Run(ctx, "get-active-brands", func(ctx context.Context) ([]brandRef, error) {
		brands, err := p.repos.BrandRepo.ListActive(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list active brands: %w", err)
		}
		return brandRefs(brands), nil
	})
}

func (p *ScheduledProcessor) DailyBrandMonitor() inngestgo.ServableFunction {
	fn, err := inngestgo.CreateFunction(
		p.client,
		inngestgo.FunctionOpts{
			ID:   "daily-brand-monitor",
			Name: "Daily Brand Monitor - All Active Brands",
		},
		inngestgo.CronTrigger("0 3 * * *"), // Every day at 3 AM UTC
		func(ctx context.Context, input inngestgo.Input[any]) (any, error) {
			now := time.Now()

			brands, err := p.getActiveBrands(ctx)
			if err != nil {
				return nil, err
			}

			// One idempotent step per brand so a retry only resends what failed
			sent := 0
			for _, brand := range brands {
				stepName := fmt.Sprintf("trigger-brand-monitor-%s", brand.ID)
				_, err := step.Run(ctx, stepName, func(ctx context.Context) (interface{}, error) {
					evt := inngestgo.Event{
						Name: EventBrandMonitor,
						Data: map[string]interface{}{
							"brand_id":     brand.ID,
							"triggered_by": "automatic_scheduler",
						},
					}
					return p.client.Send(ctx, evt)
				})
				if err != nil {
					// Keep going so one brand cannot block the others
					fmt.Printf("Warning: Failed to send monitor event for brand %s: %v\n", brand.ID, err)
					continue
				}
				sent++
			}

			return map[string]interface{}{
				"execution_date":     now.Format(models.DateLayout),
				"total_brands_found": len(brands),
				"events_sent":        sent,
				"message":            fmt.Sprintf("Triggered %d brand monitoring pipelines", sent),
			}, nil
		},
	)

	if err != nil {
		fmt.Printf("Failed to create daily brand monitor function: %v\n", err)
	}

	return fn
}

func (p *ScheduledProcessor) WeeklyCompetitorSweep() inngestgo.ServableFunction {
	fn, err := inngestgo.CreateFunction(
		p.client,
		inngestgo.FunctionOpts{
			ID:   "weekly-competitor-sweep",
			Name: "Weekly Competitor Sweep - Brands With Competitors",
		},
		inngestgo.CronTrigger("0 4 * * 1"), // Mondays at 4 AM UTC
		func(ctx context.Context, input inngestgo.Input[any]) (any, error) {
			brands, err := p.getActiveBrands(ctx)
			if err != nil {
				return nil, err
			}

			sent := 0
			for _, brand := range brands {
				if !brand.HasCompetitors {
					continue
				}
				stepName := fmt.Sprintf("trigger-competitor-analysis-%s", brand.ID)
				_, err := step.Run(ctx, stepName, func(ctx context.Context) (interface{}, error) {
					evt := inngestgo.Event{
						Name: EventCompetitorAnalyze,
						Data: map[string]interface{}{
							"brand_id":     brand.ID,
							"triggered_by": "automatic_scheduler",
						},
					}
					return p.client.Send(ctx, evt)
				})
				if err != nil {
					fmt.Printf("Warning: Failed to send competitor event for brand %s: %v\n", brand.ID, err)
					continue
				}
				sent++
			}

			return map[string]interface{}{
				"total_brands_found": len(brands),
				"events_sent":        sent,
			}, nil
		},
	)

	if err != nil {
		fmt.Printf("Failed to create weekly competitor sweep function: %v\n", err)
	}

	return fn
}
