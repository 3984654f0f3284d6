package competitive

import "sort"

// CategoryStrength summarizes how present a brand is in its category.
type CategoryStrength string

const (
	CategoryStrong CategoryStrength = "Strong"
	CategoryMedium CategoryStrength = "Medium"
	CategoryWeak   CategoryStrength = "Weak"
)

const (
	strongMentionRate = 70.0
	mediumMentionRate = 40.0
)

// StrengthFor maps a mention rate percentage onto a category strength.
func StrengthFor(mentionRate float64) CategoryStrength {
	switch {
	case mentionRate >= strongMentionRate:
		return CategoryStrong
	case mentionRate >= mediumMentionRate:
		return CategoryMedium
	default:
		return CategoryWeak
	}
}

// QueryPositioning is what one query contributes to market positioning.
type QueryPositioning struct {
	Query                string   `json:"query"`
	BrandMentioned       bool     `json:"brand_mentioned"`
	BrandPosition        *float64 `json:"brand_position"`
	CompetitorsMentioned []string `json:"competitors_mentioned"`
}

// ObserveQuery analyses a single response for query.
func ObserveQuery(query, text, brandName string, competitorNames []string) QueryPositioning {
	positions := LocateRelativePositions(text, brandName, competitorNames)
	observation := QueryPositioning{
		Query:                query,
		BrandMentioned:       positions.BrandPosition != nil,
		CompetitorsMentioned: MentionedCompetitors(text, competitorNames),
	}
	if positions.BrandPosition != nil {
		p := float64(*positions.BrandPosition)
		observation.BrandPosition = &p
	}
	return observation
}

// CompetitorCount is the number of queries a competitor appeared in.
type CompetitorCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// MarketPositioning aggregates brand presence over a batch of queries.
// CompetitorDominance is sorted by descending count; ties keep the order in
// which competitors were first seen.
type MarketPositioning struct {
	MentionRate         float64           `json:"mention_rate"`
	AveragePosition     float64           `json:"average_position"`
	CompetitorDominance []CompetitorCount `json:"competitor_dominance"`
	CategoryStrength    CategoryStrength  `json:"category_strength"`
}

// TopCompetitor returns the most frequently mentioned competitor.
func (m MarketPositioning) TopCompetitor() (string, bool) {
	if len(m.CompetitorDominance) == 0 {
		return "", false
	}
	return m.CompetitorDominance[0].Name, true
}

// AggregatePositioning computes market positioning over queries. The average
// position covers only queries where the brand was found and is 0 when it
// never was.
func AggregatePositioning(queries []QueryPositioning) MarketPositioning {
	positioning := MarketPositioning{
		CompetitorDominance: []CompetitorCount{},
	}

	mentioned := 0
	positionSum := 0.0
	positionCount := 0
	counts := make(map[string]int)
	var order []string

	for _, q := range queries {
		if q.BrandMentioned {
			mentioned++
			if q.BrandPosition != nil {
				positionSum += *q.BrandPosition
				positionCount++
			}
		}
		for _, competitor := range q.CompetitorsMentioned {
			if _, ok := counts[competitor]; !ok {
				order = append(order, competitor)
			}
			counts[competitor]++
		}
	}

	if len(queries) > 0 {
		positioning.MentionRate = float64(mentioned) / float64(len(queries)) * 100
	}
	if positionCount > 0 {
		positioning.AveragePosition = positionSum / float64(positionCount)
	}

	for _, name := range order {
		positioning.CompetitorDominance = append(positioning.CompetitorDominance, CompetitorCount{Name: name, Count: counts[name]})
	}
	sort.SliceStable(positioning.CompetitorDominance, func(i, j int) bool {
		return positioning.CompetitorDominance[i].Count > positioning.CompetitorDominance[j].Count
	})

	positioning.CategoryStrength = StrengthFor(positioning.MentionRate)
	return positioning
}
