package providers

import (
	"context"

	"github.com/AI-Template-SDK/brand-visibility/internal/providers/common"
)

// Platform is an AI assistant that answers free-text queries
type Platform interface {
	Search(ctx context.Context, query string) (*common.AIResponse, error)
	GetProviderName() string
	Model() string
}
