package common

import "errors"

// ErrNotConfigured is returned when a platform has no API key
var ErrNotConfigured = errors.New("platform not configured")

// AIResponse contains the response from an AI platform
// Defined here to avoid import cycles
type AIResponse struct {
	Response     string
	Model        string
	InputTokens  int
	OutputTokens int
	Cost         float64
}

// TotalTokens returns input plus output tokens
func (r *AIResponse) TotalTokens() int {
	return r.InputTokens + r.OutputTokens
}

// CostCalculator prices a platform call. services.CostService satisfies it.
type CostCalculator interface {
	CalculateCost(provider, model string, inputTokens, outputTokens int, websearch bool) float64
}

// StructuredAnswer is the JSON answer requested from platforms that support it
type StructuredAnswer struct {
	Answer    string   `json:"answer" jsonschema_description:"The comprehensive answer to the query, naming the relevant companies and brands"`
	KeyPoints []string `json:"key_points" jsonschema_description:"3-5 key points from the answer"`
	Sources   []string `json:"sources" jsonschema_description:"Sources or companies cited in the answer"`
}
