// services/index_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AI-Template-SDK/brand-visibility/internal/config"
	"github.com/AI-Template-SDK/brand-visibility/internal/models"
	"github.com/google/uuid"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/qdrant/go-client/qdrant"
	"github.com/typesense/typesense-go/v2/typesense"
	"github.com/typesense/typesense-go/v2/typesense/api"
)

// embeddingDimensions matches text-embedding-3-small
const embeddingDimensions = 1536

// Embedder turns texts into vectors, one per text in input order
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

type openAIEmbedder struct {
	client *openai.Client
	model  string
}

// NewOpenAIEmbedder creates an embedder on the OpenAI embeddings API
func NewOpenAIEmbedder(cfg *config.Config, opts ...option.RequestOption) Embedder {
	clientOpts := append([]option.RequestOption{option.WithAPIKey(cfg.OpenAIAPIKey)}, opts...)
	client := openai.NewClient(clientOpts...)
	return &openAIEmbedder{
		client: &client,
		model:  cfg.EmbeddingModel,
	}
}

func (e *openAIEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	resp, err := e.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: texts},
		Model: openai.EmbeddingModel(e.model),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create embeddings: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Data))
	}

	vectors := make([][]float32, len(texts))
	for _, d := range resp.Data {
		if d.Index < 0 || int(d.Index) >= len(texts) {
			return nil, fmt.Errorf("embedding index %d out of range", d.Index)
		}
		vector := make([]float32, len(d.Embedding))
		for i, v := range d.Embedding {
			vector[i] = float32(v)
		}
		vectors[d.Index] = vector
	}
	return vectors, nil
}

type indexService struct {
	qdrantClient    *qdrant.Client
	typesenseClient *typesense.Client
	embedder        Embedder
	cfg             *config.Config
	now             func() time.Time
}

// NewIndexService creates the response index. A nil qdrant client or embedder
// disables vector indexing; a nil typesense client disables context indexing.
func NewIndexService(qdrantClient *qdrant.Client, typesenseClient *typesense.Client, embedder Embedder, cfg *config.Config) IndexService {
	return &indexService{
		qdrantClient:    qdrantClient,
		typesenseClient: typesenseClient,
		embedder:        embedder,
		cfg:             cfg,
		now:             time.Now,
	}
}

func isAlreadyExists(err error) bool {
	return err != nil && strings.Contains(err.Error(), "already exists")
}

// EnsureCollections creates the qdrant and typesense collections if missing
func (s *indexService) EnsureCollections(ctx context.Context) error {
	if s.qdrantClient != nil {
		err := s.qdrantClient.CreateCollection(ctx, &qdrant.CreateCollection{
			CollectionName: s.cfg.Qdrant.Collection,
			VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
				Size:     embeddingDimensions,
				Distance: qdrant.Distance_Cosine,
			}),
		})
		if err != nil && !isAlreadyExists(err) {
			return fmt.Errorf("failed to create qdrant collection %s: %w", s.cfg.Qdrant.Collection, err)
		}
		fmt.Printf("[IndexService] Qdrant collection '%s' is ready\n", s.cfg.Qdrant.Collection)
	}

	if s.typesenseClient != nil {
		_, err := s.typesenseClient.Collections().Create(ctx, contextsSchema(s.cfg.Typesense.Collection))
		if err != nil && !isAlreadyExists(err) {
			return fmt.Errorf("failed to create typesense collection %s: %w", s.cfg.Typesense.Collection, err)
		}
		fmt.Printf("[IndexService] Typesense collection '%s' is ready\n", s.cfg.Typesense.Collection)
	}
	return nil
}

func contextsSchema(name string) *api.CollectionSchema {
	facet := true
	sort := true
	defaultSortField := "created_at"
	return &api.CollectionSchema{
		Name: name,
		Fields: []api.Field{
			{Name: "id", Type: "string"},
			{Name: "snippet", Type: "string"},
			{Name: "brand_id", Type: "string", Facet: &facet},
			{Name: "brand_name", Type: "string", Facet: &facet},
			{Name: "platform", Type: "string", Facet: &facet},
			{Name: "query", Type: "string"},
			{Name: "mention_type", Type: "string", Facet: &facet},
			{Name: "sentiment_score", Type: "float"},
			{Name: "created_at", Type: "int64", Sort: &sort},
		},
		DefaultSortingField: &defaultSortField,
	}
}

// indexable keeps the successful results that have a response
func indexable(results []*models.PlatformResult) []*models.PlatformResult {
	var kept []*models.PlatformResult
	for _, r := range results {
		if r != nil && r.Success && strings.TrimSpace(r.Response) != "" {
			kept = append(kept, r)
		}
	}
	return kept
}

// IndexResults stores each successful response in qdrant and each of its
// mention contexts in typesense. Both stores are attempted; the returned
// error joins their failures.
func (s *indexService) IndexResults(ctx context.Context, brand *models.Brand, results []*models.PlatformResult) (*IndexSummary, error) {
	kept := indexable(results)
	summary := &IndexSummary{}
	if len(kept) == 0 {
		return summary, nil
	}

	var errs []error

	if s.qdrantClient != nil && s.embedder != nil {
		if err := s.indexResponses(ctx, brand, kept); err != nil {
			errs = append(errs, err)
		} else {
			summary.Responses = len(kept)
		}
	}

	if s.typesenseClient != nil {
		docs := contextDocuments(brand, kept, s.now().Unix())
		if len(docs) > 0 {
			action := "upsert"
			_, err := s.typesenseClient.Collection(s.cfg.Typesense.Collection).Documents().Import(ctx, docs, &api.ImportDocumentsParams{Action: &action})
			if err != nil {
				errs = append(errs, fmt.Errorf("failed to import mention contexts: %w", err))
			} else {
				summary.Contexts = len(docs)
			}
		}
	}

	fmt.Printf("[IndexService] Indexed %d responses and %d contexts for %s\n", summary.Responses, summary.Contexts, brand.Name)
	return summary, errors.Join(errs...)
}

func (s *indexService) indexResponses(ctx context.Context, brand *models.Brand, results []*models.PlatformResult) error {
	texts := make([]string, len(results))
	for i, r := range results {
		texts[i] = r.Response
	}

	vectors, err := s.embedder.Embed(ctx, texts)
	if err != nil {
		return err
	}

	waitUpsert := true
	_, err = s.qdrantClient.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: s.cfg.Qdrant.Collection,
		Points:         responsePoints(brand, results, vectors),
		Wait:           &waitUpsert,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert responses to qdrant: %w", err)
	}
	return nil
}

func responsePoints(brand *models.Brand, results []*models.PlatformResult, vectors [][]float32) []*qdrant.PointStruct {
	points := make([]*qdrant.PointStruct, 0, len(results))
	for i, r := range results {
		if i >= len(vectors) {
			break
		}
		payload := map[string]any{
			"brand_id":   brand.ID.String(),
			"brand_name": brand.Name,
			"platform":   r.Platform,
			"query":      r.Query,
			"response":   r.Response,
			"timestamp":  r.Timestamp.Unix(),
		}
		if r.Analysis != nil {
			payload["visibility_score"] = r.Analysis.VisibilityScore
			payload["sentiment_score"] = r.Analysis.SentimentScore
			payload["mention_type"] = string(r.Analysis.MentionType)
		}
		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewID(uuid.New().String()),
			Vectors: qdrant.NewVectors(vectors[i]...),
			Payload: qdrant.NewValueMap(payload),
		})
	}
	return points
}

func contextDocuments(brand *models.Brand, results []*models.PlatformResult, createdAt int64) []interface{} {
	var docs []interface{}
	for _, r := range results {
		if r.Analysis == nil {
			continue
		}
		for _, c := range r.Analysis.Contexts {
			docs = append(docs, map[string]interface{}{
				"id":              uuid.New().String(),
				"snippet":         c.Snippet,
				"brand_id":        brand.ID.String(),
				"brand_name":      brand.Name,
				"platform":        r.Platform,
				"query":           r.Query,
				"mention_type":    string(r.Analysis.MentionType),
				"sentiment_score": r.Analysis.SentimentScore,
				"created_at":      createdAt,
			})
		}
	}
	return docs
}

// SimilarResponses returns the stored responses of the brand closest to text
func (s *indexService) SimilarResponses(ctx context.Context, brandID uuid.UUID, text string, limit uint64) ([]*SimilarResponse, error) {
	if s.qdrantClient == nil || s.embedder == nil {
		return nil, errors.New("vector index not configured")
	}
	if limit == 0 {
		limit = 5
	}

	vectors, err := s.embedder.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}

	points, err := s.qdrantClient.Query(ctx, &qdrant.QueryPoints{
		CollectionName: s.cfg.Qdrant.Collection,
		Query:          qdrant.NewQuery(vectors[0]...),
		Filter: &qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatch("brand_id", brandID.String()),
			},
		},
		Limit:       &limit,
		WithPayload: qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query qdrant: %w", err)
	}

	similar := make([]*SimilarResponse, 0, len(points))
	for _, p := range points {
		similar = append(similar, similarFromPayload(p.GetId().GetUuid(), p.GetScore(), p.GetPayload()))
	}
	return similar, nil
}

func similarFromPayload(id string, score float32, payload map[string]*qdrant.Value) *SimilarResponse {
	return &SimilarResponse{
		ID:              id,
		Score:           score,
		Platform:        payload["platform"].GetStringValue(),
		Query:           payload["query"].GetStringValue(),
		Response:        payload["response"].GetStringValue(),
		VisibilityScore: payload["visibility_score"].GetDoubleValue(),
	}
}

// SearchContexts runs a full-text search over the brand's mention contexts
func (s *indexService) SearchContexts(ctx context.Context, brandID uuid.UUID, q string, limit int) ([]string, error) {
	if s.typesenseClient == nil {
		return nil, errors.New("context index not configured")
	}
	if limit <= 0 {
		limit = 10
	}

	queryBy := "snippet"
	filterBy := "brand_id:=" + brandID.String()
	result, err := s.typesenseClient.Collection(s.cfg.Typesense.Collection).Documents().Search(ctx, &api.SearchCollectionParams{
		Q:        &q,
		QueryBy:  &queryBy,
		FilterBy: &filterBy,
		PerPage:  &limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search mention contexts: %w", err)
	}

	snippets := []string{}
	if result.Hits == nil {
		return snippets, nil
	}
	for _, hit := range *result.Hits {
		if hit.Document == nil {
			continue
		}
		if snippet, ok := (*hit.Document)["snippet"].(string); ok {
			snippets = append(snippets, snippet)
		}
	}
	return snippets, nil
}
