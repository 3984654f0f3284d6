// workflows/monitoring.go
package workflows

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/inngest/inngestgo"
	"github.com/inngest/inngestgo/step"

	"github.com/AI-Template-SDK/brand-visibility/services"
)

const (
	digestWindowDays         = 7
	lowVisibilityDigestLimit = 30.0
)

// VisibilityDigestEntry is one brand's average visibility over the digest window
type VisibilityDigestEntry struct {
	BrandName       string             `json:"brand_name"`
	AvgVisibility   float64            `json:"avg_visibility"`
	TotalMentions   int                `json:"total_mentions"`
	PlatformAverage map[string]float64 `json:"platform_average"`
	DaysWithData    int                `json:"days_with_data"`
}

// WeeklyVisibilityDigest posts last week's visibility per brand to Slack
func (p *ScheduledProcessor) WeeklyVisibilityDigest() inngestgo.ServableFunction {
	fn, err := inngestgo.CreateFunction(
		p.client,
		inngestgo.FunctionOpts{
			ID:   "weekly-visibility-digest",
			Name: "Weekly Brand Visibility Digest",
		},
		inngestgo.CronTrigger("0 6 * * 1"), // Mondays at 6 AM UTC
		func(ctx context.Context, input inngestgo.Input[any]) (any, error) {
			brands, err := p.getActiveBrands(ctx)
			if err != nil {
				return nil, err
			}

			entries, err := step.Run(ctx, "summarize-visibility", func(ctx context.Context) ([]VisibilityDigestEntry, error) {
				var entries []VisibilityDigestEntry
				for _, brand := range brands {
					brandID, err := uuid.Parse(brand.ID)
					if err != nil {
						continue
					}
					trends, err := p.analyticsService.GetPerformanceTrends(ctx, brandID, digestWindowDays)
					if err != nil {
						return nil, err
					}
					entries = append(entries, summarizeTrends(brand.Name, trends))
				}
				return entries, nil
			})
			if err != nil {
				return nil, err
			}

			message := digestMessage(entries, lowVisibilityDigestLimit)
			_, err = step.Run(ctx, "post-digest", func(ctx context.Context) (bool, error) {
				err := p.notifier.PostMessage(ctx, message)
				if errors.Is(err, errSlackNotConfigured) {
					return false, nil
				}
				return err == nil, err
			})
			if err != nil {
				fmt.Printf("Warning: Failed to post visibility digest: %v\n", err)
			}

			return map[string]interface{}{
				"brands":  len(entries),
				"entries": entries,
				"digest":  message,
			}, nil
		},
	)

	if err != nil {
		// Log error
		fmt.Printf("Failed to create weekly visibility digest function: %v\n", err)
	}

	return fn
}

func summarizeTrends(brandName string, trends map[string]map[string]*services.TrendPoint) VisibilityDigestEntry {
	entry := VisibilityDigestEntry{
		BrandName:       brandName,
		PlatformAverage: make(map[string]float64),
		DaysWithData:    len(trends),
	}

	sums := make(map[string]float64)
	counts := make(map[string]int)
	var total float64
	var n int
	for _, byPlatform := range trends {
		for platform, point := range byPlatform {
			sums[platform] += point.VisibilityScore
			counts[platform]++
			total += point.VisibilityScore
			n++
			entry.TotalMentions += point.TotalMentions
		}
	}

	for platform, sum := range sums {
		entry.PlatformAverage[platform] = sum / float64(counts[platform])
	}
	if n > 0 {
		entry.AvgVisibility = total / float64(n)
	}
	return entry
}

// digestMessage lists brands from least to most visible, flagging those
// below threshold
func digestMessage(entries []VisibilityDigestEntry, threshold float64) string {
	if len(entries) == 0 {
		return ":bar_chart: *Weekly Brand Visibility*\nNo active brands."
	}

	sorted := append([]VisibilityDigestEntry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].AvgVisibility < sorted[j].AvgVisibility
	})

	var b strings.Builder
	b.WriteString(":bar_chart: *Weekly Brand Visibility*\n")
	for _, e := range sorted {
		marker := ":white_check_mark:"
		if e.DaysWithData == 0 {
			marker = ":grey_question:"
		} else if e.AvgVisibility < threshold {
			marker = ":warning:"
		}
		fmt.Fprintf(&b, "%s %s: %.1f/100 visibility, %d mentions over %d days\n",
			marker, e.BrandName, e.AvgVisibility, e.TotalMentions, e.DaysWithData)
	}
	return strings.TrimRight(b.String(), "\n")
}
