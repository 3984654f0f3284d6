package competitive

import "strings"

var featureKeywords = []string{
	"automation", "analytics", "integration", "dashboard", "reporting",
	"CRM", "email marketing", "lead generation", "conversion tracking",
	"A/B testing", "personalization", "segmentation", "workflow",
	"API", "mobile app", "real-time", "machine learning", "AI-powered",
}

// ExtractFeatures appends to features every product feature keyword that
// text mentions and features does not already hold.
func ExtractFeatures(text string, features []string) []string {
	lower := strings.ToLower(text)
	for _, keyword := range featureKeywords {
		if strings.Contains(lower, strings.ToLower(keyword)) && !containsString(features, keyword) {
			features = append(features, keyword)
		}
	}
	return features
}
