package competitive

import "sort"

// previewLength is the number of response characters kept in a preview.
const previewLength = 300

// PlatformObservation is how one platform answered a competitive query.
type PlatformObservation struct {
	BrandMentioned       bool     `json:"brand_mentioned"`
	CompetitorsMentioned []string `json:"competitors_mentioned"`
	BrandPosition        *int     `json:"brand_position"`
	TotalBrandsMentioned int      `json:"total_brands_mentioned"`
	ResponsePreview      string   `json:"response_preview"`
}

// ObservePlatform builds the observation for one platform response.
// directMentions is the brand's direct mention count from its analysis.
func ObservePlatform(text, brandName string, competitorNames []string, directMentions int) PlatformObservation {
	positions := LocateRelativePositions(text, brandName, competitorNames)
	return PlatformObservation{
		BrandMentioned:       directMentions > 0,
		CompetitorsMentioned: MentionedCompetitors(text, competitorNames),
		BrandPosition:        positions.BrandPosition,
		TotalBrandsMentioned: positions.TotalBrandsFound,
		ResponsePreview:      Preview(text),
	}
}

// Preview truncates text to previewLength characters followed by "...".
func Preview(text string) string {
	runes := []rune(text)
	if len(runes) > previewLength {
		runes = runes[:previewLength]
	}
	return string(runes) + "..."
}

// QueryResult collects the platform observations of one competitive query.
type QueryResult struct {
	Query                string                         `json:"query"`
	BrandMentioned       bool                           `json:"brand_mentioned"`
	CompetitorsMentioned []string                       `json:"competitors_mentioned"`
	PlatformResults      map[string]PlatformObservation `json:"platform_results"`
	platformOrder        []string
}

func NewQueryResult(query string) *QueryResult {
	return &QueryResult{
		Query:                query,
		CompetitorsMentioned: []string{},
		PlatformResults:      make(map[string]PlatformObservation),
	}
}

// Add records the observation of platform.
func (r *QueryResult) Add(platform string, obs PlatformObservation) {
	if _, ok := r.PlatformResults[platform]; !ok {
		r.platformOrder = append(r.platformOrder, platform)
	}
	r.PlatformResults[platform] = obs
	if obs.BrandMentioned {
		r.BrandMentioned = true
	}
	for _, competitor := range obs.CompetitorsMentioned {
		if !containsString(r.CompetitorsMentioned, competitor) {
			r.CompetitorsMentioned = append(r.CompetitorsMentioned, competitor)
		}
	}
}

// Platforms returns the platforms in the order they were added. A result
// decoded from JSON has no insertion order and lists them sorted.
func (r *QueryResult) Platforms() []string {
	if len(r.platformOrder) == len(r.PlatformResults) {
		return append([]string(nil), r.platformOrder...)
	}
	platforms := make([]string, 0, len(r.PlatformResults))
	for platform := range r.PlatformResults {
		platforms = append(platforms, platform)
	}
	sort.Strings(platforms)
	return platforms
}

// Positioning folds the platform observations into one query observation;
// the brand position is the mean over platforms that ranked the brand.
func (r *QueryResult) Positioning() QueryPositioning {
	q := QueryPositioning{
		Query:                r.Query,
		BrandMentioned:       r.BrandMentioned,
		CompetitorsMentioned: append([]string{}, r.CompetitorsMentioned...),
	}
	if !r.BrandMentioned {
		return q
	}

	sum, n := 0, 0
	for _, obs := range r.PlatformResults {
		if obs.BrandPosition != nil {
			sum += *obs.BrandPosition
			n++
		}
	}
	if n > 0 {
		avg := float64(sum) / float64(n)
		q.BrandPosition = &avg
	}
	return q
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
