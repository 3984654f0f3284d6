package competitive

import (
	"sort"
	"strings"

	"github.com/AI-Template-SDK/brand-visibility/internal/mentions"
)

// PositionResult orders the brands found in one response by where they are
// first mentioned.
type PositionResult struct {
	// BrandPosition is the 1-based rank of the brand, nil when the brand is
	// not mentioned.
	BrandPosition    *int     `json:"brand_position"`
	TotalBrandsFound int      `json:"total_brands_found"`
	OrderedNames     []string `json:"ordered_names"`
}

type located struct {
	name   string
	offset int
}

// LocateRelativePositions finds the first mention of the brand and of every
// competitor in text and ranks them by offset. Names that do not occur are
// skipped; ties keep the brand first, then the competitors in list order.
func LocateRelativePositions(text, brandName string, competitorNames []string) PositionResult {
	var found []located
	if pos, ok := mentions.FirstOccurrence(text, brandName); ok {
		found = append(found, located{name: brandName, offset: pos})
	}
	for _, competitor := range competitorNames {
		if pos, ok := mentions.FirstOccurrence(text, competitor); ok {
			found = append(found, located{name: competitor, offset: pos})
		}
	}

	sort.SliceStable(found, func(i, j int) bool {
		return found[i].offset < found[j].offset
	})

	result := PositionResult{
		TotalBrandsFound: len(found),
		OrderedNames:     make([]string, len(found)),
	}
	for i, l := range found {
		result.OrderedNames[i] = l.name
		if result.BrandPosition == nil && brandName != "" && strings.EqualFold(l.name, brandName) {
			rank := i + 1
			result.BrandPosition = &rank
		}
	}
	return result
}

// MentionedCompetitors returns the competitors whose name appears anywhere in
// text, in list order and without duplicates.
func MentionedCompetitors(text string, competitorNames []string) []string {
	var mentioned []string
	seen := make(map[string]struct{})
	for _, competitor := range competitorNames {
		if _, dup := seen[competitor]; dup {
			continue
		}
		if mentions.Contains(text, competitor) {
			seen[competitor] = struct{}{}
			mentioned = append(mentioned, competitor)
		}
	}
	return mentioned
}
