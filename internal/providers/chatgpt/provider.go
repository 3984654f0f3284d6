package chatgpt

import (
	"context"
	"fmt"

	"github.com/AI-Template-SDK/brand-visibility/internal/config"
	"github.com/AI-Template-SDK/brand-visibility/internal/providers/common"
	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Provider answers queries through the OpenAI chat completions API
type Provider struct {
	client      *openai.Client
	model       string
	costService common.CostCalculator
}

// answerSchema is generated once at init
var answerSchema = generateSchema[common.StructuredAnswer]()

func generateSchema[T any]() interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return reflector.Reflect(v)
}

// NewProvider creates a new ChatGPT provider. Extra request options are
// appended after the API key.
func NewProvider(cfg *config.Config, model string, costService common.CostCalculator, opts ...option.RequestOption) *Provider {
	if cfg == nil {
		cfg = &config.Config{}
	}

	clientOpts := append([]option.RequestOption{option.WithAPIKey(cfg.OpenAIAPIKey)}, opts...)
	client := openai.NewClient(clientOpts...)

	return &Provider{
		client:      &client,
		model:       model,
		costService: costService,
	}
}

func (p *Provider) GetProviderName() string {
	return "chatgpt"
}

func (p *Provider) Model() string {
	return p.model
}

// Search asks the model for a structured answer and flattens it to text
func (p *Provider) Search(ctx context.Context, query string) (*common.AIResponse, error) {
	fmt.Printf("[ChatGPTProvider] 🚀 Searching: %s\n", query)

	schemaParam := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:        "search_answer",
		Description: openai.String("Answer to a search query with the brands it mentions"),
		Schema:      answerSchema,
		Strict:      openai.Bool(true),
	}

	response, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(common.SystemPrompt),
			openai.UserMessage(common.SearchPrompt(query)),
		},
		Model: openai.ChatModel(p.model),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{JSONSchema: schemaParam},
		},
		Temperature: openai.Float(0.7),
		MaxTokens:   openai.Int(1000),
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
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
		Cost:         p.costService.CalculateCost(p.GetProviderName(), p.model, inputTokens, outputTokens, false),
	}, nil
}
