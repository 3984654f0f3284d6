package claude

import (
	"context"
	"fmt"
	"strings"

	"github.com/AI-Template-SDK/brand-visibility/internal/config"
	"github.com/AI-Template-SDK/brand-visibility/internal/providers/common"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// Provider answers queries through the Anthropic messages API
type Provider struct {
	client      *anthropic.Client
	model       string
	costService common.CostCalculator
}

func NewProvider(cfg *config.Config, model string, costService common.CostCalculator, opts ...option.RequestOption) *Provider {
	if cfg == nil {
		cfg = &config.Config{}
	}

	clientOpts := append([]option.RequestOption{option.WithAPIKey(cfg.AnthropicAPIKey)}, opts...)
	client := anthropic.NewClient(clientOpts...)

	return &Provider{
		client:      &client,
		model:       model,
		costService: costService,
	}
}

func (p *Provider) GetProviderName() string {
	return "claude"
}

func (p *Provider) Model() string {
	return p.model
}

func (p *Provider) Search(ctx context.Context, query string) (*common.AIResponse, error) {
	fmt.Printf("[ClaudeProvider] 🚀 Searching: %s\n", query)

	prompt := common.SearchPrompt(query) + `

Return ONLY a valid JSON object with this structure:
{"answer": "...", "key_points": ["..."], "sources": ["..."]}`

	response, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: 1000,
		System: []anthropic.TextBlockParam{
			{Text: common.SystemPrompt},
		},
		Messages: []anthropic.MessageParam{{
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: prompt},
			}},
			Role: anthropic.MessageParamRoleUser,
		}},
		Temperature: anthropic.Float(0.7),
	})
	if err != nil {
		return nil, fmt.Errorf("claude message failed: %w", err)
	}

	text := extractText(response)
	if text == "" {
		return nil, fmt.Errorf("no text content returned")
	}

	inputTokens := int(response.Usage.InputTokens)
	outputTokens := int(response.Usage.OutputTokens)

	return &common.AIResponse{
		Response:     common.FlattenAnswer(text),
		Model:        p.model,
		InputTokens:  inputTokens,
		OutputTokens: outputTokens,
		Cost:         p.costService.CalculateCost(p.GetProviderName(), p.model, inputTokens, outputTokens, false),
	}, nil
}

func extractText(message *anthropic.Message) string {
	var parts []string
	for _, block := range message.Content {
		switch variant := block.AsAny().(type) {
		case anthropic.TextBlock:
			parts = append(parts, variant.Text)
		}
	}
	return strings.Join(parts, "\n")
}
