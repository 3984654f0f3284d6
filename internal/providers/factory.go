package providers

import (
	"fmt"
	"strings"

	"github.com/AI-Template-SDK/brand-visibility/internal/config"
	"github.com/AI-Template-SDK/brand-visibility/internal/models"
	"github.com/AI-Template-SDK/brand-visibility/internal/providers/chatgpt"
	"github.com/AI-Template-SDK/brand-visibility/internal/providers/claude"
	"github.com/AI-Template-SDK/brand-visibility/internal/providers/common"
	"github.com/AI-Template-SDK/brand-visibility/internal/providers/perplexity"
)

// NewPlatform creates the provider for a platform name. A platform whose API
// key is missing returns common.ErrNotConfigured.
func NewPlatform(name string, cfg *config.Config, costService common.CostCalculator) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case models.PlatformChatGPT:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("%s: %w", name, common.ErrNotConfigured)
		}
		fmt.Printf("[ProviderFactory] 🎯 Selected ChatGPT provider with model: %s\n", cfg.OpenAIModel)
		return chatgpt.NewProvider(cfg, cfg.OpenAIModel, costService), nil

	case models.PlatformClaude:
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("%s: %w", name, common.ErrNotConfigured)
		}
		fmt.Printf("[ProviderFactory] 🎯 Selected Claude provider with model: %s\n", cfg.AnthropicModel)
		return claude.NewProvider(cfg, cfg.AnthropicModel, costService), nil

	case models.PlatformPerplexity:
		if cfg.PerplexityAPIKey == "" {
			return nil, fmt.Errorf("%s: %w", name, common.ErrNotConfigured)
		}
		fmt.Printf("[ProviderFactory] 🎯 Selected Perplexity provider with model: %s\n", cfg.PerplexityModel)
		return perplexity.NewProvider(cfg, cfg.PerplexityModel, costService), nil
	}

	return nil, fmt.Errorf("unsupported platform: %q", name)
}

// NewPlatforms creates every configured platform, keyed by name. Platforms
// without an API key are left out.
func NewPlatforms(cfg *config.Config, costService common.CostCalculator) map[string]Platform {
	platforms := make(map[string]Platform)
	for _, name := range models.AllPlatforms {
		platform, err := NewPlatform(name, cfg, costService)
		if err != nil {
			fmt.Printf("[ProviderFactory] ⚠️ %s unavailable: %v\n", name, err)
			continue
		}
		platforms[name] = platform
	}
	return platforms
}
