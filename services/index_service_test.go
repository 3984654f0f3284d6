package services

import (
	"context"
	"testing"
	"time"

	"github.com/openai/openai-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AI-Template-SDK/brand-visibility/internal/mentions"
	"github.com/AI-Template-SDK/brand-visibility/internal/models"
	"github.com/AI-Template-SDK/brand-visibility/internal/providers/testutil"
)

func sampleResults() []*models.PlatformResult {
	analysis := mentions.NewAnalyzer().Analyze(testutil.SampleResponse, "Acme")
	return []*models.PlatformResult{
		{Platform: "chatgpt", Query: "best crm", Response: testutil.SampleResponse, Analysis: &analysis, Success: true, Timestamp: fixedNow},
		{Platform: "claude", Query: "best crm", Error: "overloaded"},
		{Platform: "perplexity", Query: "best crm", Response: "  ", Success: true},
		{Platform: "perplexity", Query: "top crm", Response: "No brands here.", Success: true, Timestamp: fixedNow},
	}
}

func TestIndexable(t *testing.T) {
	kept := indexable(sampleResults())

	require.Len(t, kept, 2)
	assert.Equal(t, "chatgpt", kept[0].Platform)
	assert.Equal(t, "top crm", kept[1].Query)
}

func TestResponsePoints(t *testing.T) {
	brand := testutil.SampleBrand()
	kept := indexable(sampleResults())
	vectors := [][]float32{{0.1, 0.2}, {0.3, 0.4}}

	points := responsePoints(brand, kept, vectors)

	require.Len(t, points, 2)
	payload := points[0].GetPayload()
	assert.Equal(t, brand.ID.String(), payload["brand_id"].GetStringValue())
	assert.Equal(t, "chatgpt", payload["platform"].GetStringValue())
	assert.Equal(t, "best crm", payload["query"].GetStringValue())
	assert.Equal(t, kept[0].Analysis.VisibilityScore, payload["visibility_score"].GetDoubleValue())
	assert.Equal(t, "direct", payload["mention_type"].GetStringValue())
	assert.NotEmpty(t, points[0].GetId().GetUuid())

	_, hasScore := points[1].GetPayload()["visibility_score"]
	assert.False(t, hasScore)

	assert.Len(t, responsePoints(brand, kept, vectors[:1]), 1)
}

func TestSimilarFromPayload(t *testing.T) {
	brand := testutil.SampleBrand()
	points := responsePoints(brand, indexable(sampleResults()), [][]float32{{1}, {2}})

	similar := similarFromPayload("id-1", 0.9, points[0].GetPayload())

	assert.Equal(t, "id-1", similar.ID)
	assert.Equal(t, float32(0.9), similar.Score)
	assert.Equal(t, "chatgpt", similar.Platform)
	assert.Equal(t, testutil.SampleResponse, similar.Response)
	assert.Positive(t, similar.VisibilityScore)

	empty := similarFromPayload("id-2", 0.1, nil)
	assert.Empty(t, empty.Platform)
}

func TestContextDocuments(t *testing.T) {
	brand := testutil.SampleBrand()
	kept := indexable(sampleResults())

	docs := contextDocuments(brand, kept, 1234)

	require.Len(t, docs, len(kept[0].Analysis.Contexts))
	doc := docs[0].(map[string]interface{})
	assert.Equal(t, kept[0].Analysis.Contexts[0].Snippet, doc["snippet"])
	assert.Equal(t, "Acme", doc["brand_name"])
	assert.Equal(t, "chatgpt", doc["platform"])
	assert.Equal(t, int64(1234), doc["created_at"])
}

func TestContextsSchema(t *testing.T) {
	schema := contextsSchema("mention_contexts")

	assert.Equal(t, "mention_contexts", schema.Name)
	require.NotNil(t, schema.DefaultSortingField)
	assert.Equal(t, "created_at", *schema.DefaultSortingField)

	names := make([]string, len(schema.Fields))
	for i, f := range schema.Fields {
		names[i] = f.Name
	}
	assert.Contains(t, names, "snippet")
	assert.Contains(t, names, "brand_id")
}

func TestIndexResultsWithoutStores(t *testing.T) {
	svc := NewIndexService(nil, nil, nil, testutil.SampleConfig())

	summary, err := svc.IndexResults(context.Background(), testutil.SampleBrand(), sampleResults())
	require.NoError(t, err)
	assert.Equal(t, &IndexSummary{}, summary)

	_, err = svc.SimilarResponses(context.Background(), testutil.SampleBrand().ID, "crm", 3)
	assert.Error(t, err)
	_, err = svc.SearchContexts(context.Background(), testutil.SampleBrand().ID, "crm", 3)
	assert.Error(t, err)
	assert.NoError(t, svc.EnsureCollections(context.Background()))
}

func TestOpenAIEmbedder(t *testing.T) {
	server := testutil.NewMockAPIServer(map[string]interface{}{
		"object": "list",
		"model":  "text-embedding-3-small",
		"data": []map[string]interface{}{
			{"object": "embedding", "index": 1, "embedding": []float64{0.5, 0.25}},
			{"object": "embedding", "index": 0, "embedding": []float64{1, 0}},
		},
		"usage": map[string]interface{}{"prompt_tokens": 4, "total_tokens": 4},
	})
	defer server.Close()

	embedder := NewOpenAIEmbedder(testutil.SampleConfig(), option.WithBaseURL(server.URL()), option.WithMaxRetries(0))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	vectors, err := embedder.Embed(ctx, []string{"first", "second"})
	require.NoError(t, err)

	assert.Equal(t, [][]float32{{1, 0}, {0.5, 0.25}}, vectors)
	assert.Equal(t, []string{"/embeddings"}, server.Paths())

	empty, err := embedder.Embed(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestOpenAIEmbedderCountMismatch(t *testing.T) {
	server := testutil.NewMockAPIServer(map[string]interface{}{
		"object": "list",
		"model":  "text-embedding-3-small",
		"data":   []map[string]interface{}{{"object": "embedding", "index": 0, "embedding": []float64{1}}},
		"usage":  map[string]interface{}{"prompt_tokens": 2, "total_tokens": 2},
	})
	defer server.Close()

	embedder := NewOpenAIEmbedder(testutil.SampleConfig(), option.WithBaseURL(server.URL()), option.WithMaxRetries(0))

	_, err := embedder.Embed(context.Background(), []string{"a", "b"})
	assert.Error(t, err)
}
