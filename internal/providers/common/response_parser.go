package common

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SearchPrompt wraps a query in the instruction sent to every platform
func SearchPrompt(query string) string {
	return fmt.Sprintf(`Please provide a comprehensive answer to this query: "%s"

Include relevant companies, brands, and sources in your response.
Be factual and cite specific examples where appropriate.`, query)
}

// SystemPrompt is the system message for platforms that accept one
const SystemPrompt = "You are a helpful AI assistant that provides comprehensive, factual responses with specific company and brand mentions when relevant."

// FlattenAnswer turns a StructuredAnswer JSON document into plain text.
// Anything that does not decode as one is returned trimmed and unchanged.
func FlattenAnswer(raw string) string {
	trimmed := strings.TrimSpace(raw)

	var answer StructuredAnswer
	if err := json.Unmarshal([]byte(trimmed), &answer); err != nil || answer.Answer == "" {
		return trimmed
	}

	var b strings.Builder
	b.WriteString(answer.Answer)
	if len(answer.KeyPoints) > 0 {
		b.WriteString("\n\nKey Points:\n")
		for _, point := range answer.KeyPoints {
			b.WriteString("• ")
			b.WriteString(point)
			b.WriteString("\n")
		}
	}
	return b.String()
}
