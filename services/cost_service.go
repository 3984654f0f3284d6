// services/cost_service.go
package services

import (
	"fmt"
	"strings"
)

type costService struct{}

func NewCostService() CostService {
	return &costService{}
}

// Cost per 1M tokens
var costPerToken = map[string]struct{ input, output float64 }{
	"gpt-4o-mini":              {input: 0.15, output: 0.60},
	"gpt-4o":                   {input: 2.50, output: 10.00},
	"gpt-4.1":                  {input: 3.00, output: 12.00},
	"gpt-3.5-turbo":            {input: 0.50, output: 1.50},
	"claude-3-haiku-20240307":  {input: 0.25, output: 1.25},
	"claude-sonnet-4-20250514": {input: 3.00, output: 15.00},
	"sonar":                    {input: 1.00, output: 1.00},
	"sonar-pro":                {input: 3.00, output: 15.00},
}

// Cost per 1000 web searches
var costPerWebSearch = map[string]float64{
	"chatgpt":    35.00,
	"claude":     10.00,
	"perplexity": 5.00,
}

const defaultCostModel = "gpt-4.1"

func (s *costService) CalculateCost(provider string, model string, inputTokens int, outputTokens int, websearch bool) float64 {
	modelCosts, exists := costPerToken[model]
	if !exists {
		// Unknown models are priced like gpt-4.1
		modelCosts = costPerToken[defaultCostModel]
	}

	inputCost := (float64(inputTokens) / 1_000_000.0) * modelCosts.input
	outputCost := (float64(outputTokens) / 1_000_000.0) * modelCosts.output
	totalCost := inputCost + outputCost

	if websearch {
		if searchCost, exists := costPerWebSearch[s.getProviderKey(provider)]; exists {
			totalCost += searchCost / 1000.0
		}
	}

	return totalCost
}

// GetCostByModel returns the input and output price per 1M tokens
func (s *costService) GetCostByModel(provider, model string) (float64, float64, error) {
	modelCosts, exists := costPerToken[model]
	if !exists {
		return 0, 0, fmt.Errorf("no pricing for %s model %s", provider, model)
	}
	return modelCosts.input, modelCosts.output, nil
}

func (s *costService) getProviderKey(provider string) string {
	provider = strings.ToLower(provider)
	if strings.Contains(provider, "openai") || strings.Contains(provider, "gpt") || strings.Contains(provider, "chatgpt") {
		return "chatgpt"
	}
	if strings.Contains(provider, "anthropic") || strings.Contains(provider, "claude") {
		return "claude"
	}
	if strings.Contains(provider, "perplexity") || strings.Contains(provider, "sonar") {
		return "perplexity"
	}
	return "chatgpt" // default
}
