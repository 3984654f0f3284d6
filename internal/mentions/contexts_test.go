package mentions_test

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AI-Template-SDK/brand-visibility/internal/mentions"
)

func TestExtractContextsWindow(t *testing.T) {
	text := strings.Repeat("a", 100) + "Acme" + strings.Repeat("b", 100)

	contexts := mentions.ExtractContexts(text, "acme", 20)
	require.Len(t, contexts, 1)
	assert.Equal(t, strings.Repeat("a", 10)+"Acme"+strings.Repeat("b", 10), contexts[0].Snippet)
	assert.Equal(t, 100, contexts[0].SourceOffset)
}

func TestExtractContextsClipsAndTrims(t *testing.T) {
	contexts := mentions.ExtractContexts("  Acme rocks  ", "acme", 150)
	require.Len(t, contexts, 1)
	assert.Equal(t, "Acme rocks", contexts[0].Snippet)
}

func TestExtractContextsDeduplicates(t *testing.T) {
	// Both windows cover the whole text and produce the same snippet.
	contexts := mentions.ExtractContexts("Acme Acme", "acme", 150)
	require.Len(t, contexts, 1)
	assert.Equal(t, "Acme Acme", contexts[0].Snippet)
	assert.Equal(t, 0, contexts[0].SourceOffset)
}

func TestExtractContextsOrderAndNoCap(t *testing.T) {
	var sb strings.Builder
	// Distinct filler per block so no two snippets are equal.
	for i := 0; i < 5; i++ {
		sb.WriteString("Acme")
		sb.WriteString(strings.Repeat(strconv.Itoa(i), 40))
	}

	contexts := mentions.ExtractContexts(sb.String(), "acme", 10)
	require.Len(t, contexts, 5)
	for i := 1; i < len(contexts); i++ {
		assert.Greater(t, contexts[i].SourceOffset, contexts[i-1].SourceOffset)
	}
}

func TestExtractContextsInvalidUTF8(t *testing.T) {
	var contexts []mentions.MentionContext
	require.NotPanics(t, func() {
		contexts = mentions.ExtractContexts("\xff\xfeAcme\xff", "acme", 150)
	})
	require.Len(t, contexts, 1)
	assert.Equal(t, "\uFFFD\uFFFDAcme\uFFFD", contexts[0].Snippet)
	assert.Equal(t, 2, contexts[0].SourceOffset)
}

func TestExtractContextsEmptyInput(t *testing.T) {
	assert.Empty(t, mentions.ExtractContexts("", "acme", 150))
	assert.Empty(t, mentions.ExtractContexts("Acme", "", 150))
}
