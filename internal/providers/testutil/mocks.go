package testutil

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"

	"github.com/AI-Template-SDK/brand-visibility/internal/providers/common"
)

// MockCostService is a mock implementation of CostService for testing
type MockCostService struct {
	CalculateCostFunc func(provider, model string, inputTokens, outputTokens int, websearch bool) float64
}

func (m *MockCostService) CalculateCost(provider, model string, inputTokens, outputTokens int, websearch bool) float64 {
	if m.CalculateCostFunc != nil {
		return m.CalculateCostFunc(provider, model, inputTokens, outputTokens, websearch)
	}
	return 0.0015 // Default mock cost
}

func (m *MockCostService) GetCostByModel(provider, model string) (float64, float64, error) {
	return 0.0, 0.0, nil
}

// NewMockCostService creates a new mock cost service
func NewMockCostService() *MockCostService {
	return &MockCostService{}
}

// MockPlatform is a scripted AI platform
type MockPlatform struct {
	Name       string
	ModelName  string
	SearchFunc func(ctx context.Context, query string) (*common.AIResponse, error)

	calls   atomic.Int32
	mu      sync.Mutex
	queries []string
}

// NewMockPlatform returns a platform that always answers with response
func NewMockPlatform(name, response string) *MockPlatform {
	return &MockPlatform{
		Name:      name,
		ModelName: name + "-model",
		SearchFunc: func(ctx context.Context, query string) (*common.AIResponse, error) {
			return &common.AIResponse{Response: response, InputTokens: 10, OutputTokens: 20, Cost: 0.001}, nil
		},
	}
}

func (m *MockPlatform) Search(ctx context.Context, query string) (*common.AIResponse, error) {
	m.calls.Add(1)
	m.mu.Lock()
	m.queries = append(m.queries, query)
	m.mu.Unlock()
	return m.SearchFunc(ctx, query)
}

func (m *MockPlatform) GetProviderName() string { return m.Name }

func (m *MockPlatform) Model() string { return m.ModelName }

// Calls returns how many times Search ran
func (m *MockPlatform) Calls() int { return int(m.calls.Load()) }

// Queries returns the queries received so far
func (m *MockPlatform) Queries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.queries...)
}

// MockAPIServer serves a fixed JSON body on every request and records the
// request paths
type MockAPIServer struct {
	Server *httptest.Server
	Status int

	mu    sync.Mutex
	paths []string
	body  interface{}
}

// NewMockAPIServer creates a server answering 200 with body
func NewMockAPIServer(body interface{}) *MockAPIServer {
	mock := &MockAPIServer{Status: http.StatusOK, body: body}
	mock.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.paths = append(mock.paths, r.URL.Path)
		status, body := mock.Status, mock.body
		mock.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}))
	return mock
}

// URL returns the server base URL with a trailing slash
func (m *MockAPIServer) URL() string {
	return m.Server.URL + "/"
}

// SetResponse changes the status and body served
func (m *MockAPIServer) SetResponse(status int, body interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Status = status
	m.body = body
}

// Paths returns the request paths received
func (m *MockAPIServer) Paths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.paths...)
}

// Close closes the mock server
func (m *MockAPIServer) Close() {
	m.Server.Close()
}
