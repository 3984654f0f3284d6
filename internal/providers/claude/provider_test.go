package claude_test

import (
	"context"
	"testing"

	"github.com/AI-Template-SDK/brand-visibility/internal/providers/claude"
	"github.com/AI-Template-SDK/brand-visibility/internal/providers/testutil"
	"github.com/anthropics/anthropic-sdk-go/option"
)

func TestSearch(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{
			name:     "json answer",
			text:     `{"answer":"Acme leads.","key_points":[],"sources":[]}`,
			expected: "Acme leads.",
		},
		{
			name:     "plain text answer",
			text:     "Acme and Globex are both solid choices.",
			expected: "Acme and Globex are both solid choices.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := testutil.NewMockAPIServer(testutil.SampleAnthropicMessage(tt.text))
			defer server.Close()

			provider := claude.NewProvider(testutil.SampleConfig(), "claude-3-haiku-20240307", testutil.NewMockCostService(),
				option.WithBaseURL(server.URL()), option.WithMaxRetries(0))

			resp, err := provider.Search(context.Background(), "best crm")
			if err != nil {
				t.Fatalf("Search failed: %v", err)
			}
			if resp.Response != tt.expected {
				t.Errorf("Response = %q, want %q", resp.Response, tt.expected)
			}
			if resp.TotalTokens() != 120 {
				t.Errorf("TotalTokens() = %d, want 120", resp.TotalTokens())
			}

			paths := server.Paths()
			if len(paths) != 1 || paths[0] != "/v1/messages" {
				t.Errorf("unexpected request paths: %v", paths)
			}
		})
	}
}
