package testutil

import (
	"time"

	"github.com/AI-Template-SDK/brand-visibility/internal/config"
	"github.com/AI-Template-SDK/brand-visibility/internal/models"
	"github.com/google/uuid"
)

// SampleConfig returns a test configuration with every platform configured
func SampleConfig() *config.Config {
	return &config.Config{
		Environment:      "test",
		OpenAIAPIKey:     "test-openai-key",
		AnthropicAPIKey:  "test-anthropic-key",
		PerplexityAPIKey: "test-perplexity-key",
		OpenAIModel:      "gpt-4o-mini",
		AnthropicModel:   "claude-3-haiku-20240307",
		PerplexityModel:  "sonar",
		EmbeddingModel:   "text-embedding-3-small",
		Search: config.SearchConfig{
			RatePerSecond: 1000,
			Burst:         1000,
			CacheTTL:      time.Minute,
			MockFallback:  true,
		},
		Scoring: config.ScoringConfig{
			ContextWindow:   150,
			SentimentWindow: 200,
			MaxContexts:     3,
		},
	}
}

// SampleBrand returns a brand with industry, keywords and competitors
func SampleBrand() *models.Brand {
	return &models.Brand{
		ID:          uuid.MustParse("6f1c2f4e-3b8a-4c0e-9d4f-2a7b5e8c1d00"),
		Name:        "Acme",
		Industry:    "CRM",
		Website:     "https://acme.example",
		Keywords:    models.StringList{"sales automation", "pipeline"},
		Competitors: models.StringList{"Globex", "Initech"},
		IsActive:    true,
		CreatedAt:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).Unix(),
	}
}

// SampleQueries returns test queries
func SampleQueries() []string {
	return []string{
		"What is the best CRM?",
		"Top sales automation tools",
		"Acme vs Globex",
	}
}

// SampleResponse is a platform answer mentioning the sample brand and its
// competitors
const SampleResponse = "Acme is the best and most trusted CRM for small teams. Globex is a popular alternative, while Initech is struggling with reliability."

// SampleChatCompletion returns an OpenAI chat completion body with content
func SampleChatCompletion(content string) map[string]interface{} {
	return map[string]interface{}{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-4o-mini",
		"choices": []map[string]interface{}{
			{
				"index":         0,
				"finish_reason": "stop",
				"message": map[string]interface{}{
					"role":    "assistant",
					"content": content,
				},
			},
		},
		"usage": map[string]interface{}{
			"prompt_tokens":     120,
			"completion_tokens": 80,
			"total_tokens":      200,
		},
	}
}

// SampleAnthropicMessage returns an Anthropic message body with text
func SampleAnthropicMessage(text string) map[string]interface{} {
	return map[string]interface{}{
		"id":            "msg_test",
		"type":          "message",
		"role":          "assistant",
		"model":         "claude-3-haiku-20240307",
		"stop_reason":   "end_turn",
		"stop_sequence": nil,
		"content": []map[string]interface{}{
			{"type": "text", "text": text},
		},
		"usage": map[string]interface{}{
			"input_tokens":  50,
			"output_tokens": 70,
		},
	}
}
