package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/AI-Template-SDK/brand-visibility/internal/config"
	"github.com/AI-Template-SDK/brand-visibility/internal/mentions"
	"github.com/AI-Template-SDK/brand-visibility/internal/models"
	"github.com/AI-Template-SDK/brand-visibility/internal/providers"
	"github.com/AI-Template-SDK/brand-visibility/internal/providers/testutil"
	"github.com/AI-Template-SDK/brand-visibility/internal/repositories"
)

var fixedNow = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

const fixedDate = "2026-10-15"

func fixedClock() time.Time { return fixedNow }

func newTestRepos(t *testing.T) *RepositoryManager {
	t.Helper()
	db, err := repositories.OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	repos := NewRepositoryManager(db)
	t.Cleanup(func() { repos.Close() })
	return repos
}

func seedBrand(t *testing.T, repos *RepositoryManager) *models.Brand {
	t.Helper()
	brand := testutil.SampleBrand()
	require.NoError(t, repos.BrandRepo.Create(context.Background(), brand))
	return brand
}

// mockPlatforms returns one mock per platform answering response
func mockPlatforms(response string) map[string]*testutil.MockPlatform {
	mocks := make(map[string]*testutil.MockPlatform)
	for _, name := range models.AllPlatforms {
		mocks[name] = testutil.NewMockPlatform(name, response)
	}
	return mocks
}

func asPlatforms(mocks map[string]*testutil.MockPlatform) map[string]providers.Platform {
	platforms := make(map[string]providers.Platform, len(mocks))
	for name, m := range mocks {
		platforms[name] = m
	}
	return platforms
}

func newTestSearch(cfg *config.Config, mocks map[string]*testutil.MockPlatform, metrics *Metrics) *aiSearchService {
	svc := NewAISearchService(cfg, asPlatforms(mocks), mentions.NewAnalyzer(), NewPlatformLimiter(0, 1), nil, metrics).(*aiSearchService)
	svc.now = fixedClock
	return svc
}
