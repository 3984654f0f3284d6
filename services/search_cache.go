// services/search_cache.go
package services

import (
	"time"

	"github.com/AI-Template-SDK/brand-visibility/internal/providers/common"
	gocache "github.com/patrickmn/go-cache"
)

// SearchCache keeps raw platform answers per platform and query
type SearchCache struct {
	cache *gocache.Cache
}

// NewSearchCache returns nil when ttl is not positive; a nil cache never hits
func NewSearchCache(ttl time.Duration) *SearchCache {
	if ttl <= 0 {
		return nil
	}
	return &SearchCache{
		cache: gocache.New(ttl, 2*ttl),
	}
}

func cacheKey(platform, query string) string {
	return platform + "\x00" + query
}

func (c *SearchCache) Get(platform, query string) (*common.AIResponse, bool) {
	if c == nil {
		return nil, false
	}
	if val, found := c.cache.Get(cacheKey(platform, query)); found {
		resp := *val.(*common.AIResponse)
		return &resp, true
	}
	return nil, false
}

func (c *SearchCache) Set(platform, query string, resp *common.AIResponse) {
	if c == nil || resp == nil {
		return
	}
	stored := *resp
	c.cache.SetDefault(cacheKey(platform, query), &stored)
}

// Len returns the number of cached answers, expired ones included
func (c *SearchCache) Len() int {
	if c == nil {
		return 0
	}
	return c.cache.ItemCount()
}

func (c *SearchCache) Clear() {
	if c != nil {
		c.cache.Flush()
	}
}
