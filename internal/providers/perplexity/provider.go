package perplexity

import (
	"context"
	"fmt"

	"github.com/AI-Template-SDK/brand-visibility/internal/config"
	"github.com/AI-Template-SDK/brand-visibility/internal/providers/common"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// BaseURL is Perplexity's OpenAI compatible endpoint
const BaseURL = "https://api.perplexity.ai/"

// Provider answers queries through Perplexity's Sonar models
type Provider struct {
	client      *openai.Client
	model       string
	costService common.CostCalculator
}

func NewProvider(cfg *config.Config, model string, costService common.CostCalculator, opts ...option.RequestOption) *Provider {
	if cfg == nil {
		cfg = &config.Config{}
	}

	clientOpts := append([]option.RequestOption{
		option.WithAPIKey(cfg.PerplexityAPIKey),
		option.WithBaseURL(BaseURL),
	}, opts...)
	client := openai.NewClient(clientOpts...)

	return &Provider{
		client:      &client,
		model:       model,
		costService: costService,
	}
}

func (p *Provider) GetProviderName() string {
	return "perplexity"
}

func (p *Provider) Model() string {
	return p.model
}

// Search runs the query with Sonar's built-in web search. Perplexity does
// not accept json_schema response formats on every model, so the answer is
// requested as plain text.
func (p *Provider) Search(ctx context.Context, query string) (*common.AIResponse, error) {
	fmt.Printf("[PerplexityProvider] 🚀 Searching: %s\n", query)

	response, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(common.SystemPrompt),
			openai.UserMessage(common.SearchPrompt(query)),
		},
		Model:       openai.ChatModel(p.model),
		Temperature: openai.Float(0.7),
		MaxTokens:   openai.Int(1000),
	})
	if err != nil {
		return nil, fmt.Errorf("perplexity completion failed: %w", err)
	}

	if len(response.Choices) == 0 {
		return nil, fmt.Errorf("no response choices returned")
	}

	inputTokens := int(response.Usage.PromptTokens)
	outputTokens := int(response.Usage.CompletionTokens)

	return &common.AIResponse{
		Response:     common.FlattenAnswer(response.Choices[0].Message.Content),
		Model:        p.model,
		InputTokens:  inputTokens,
		OutputTokens: outputTokens,
		Cost:         p.costService.CalculateCost(p.GetProviderName(), p.model, inputTokens, outputTokens, true),
	}, nil
}
