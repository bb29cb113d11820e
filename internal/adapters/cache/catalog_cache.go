package cache

import (
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"

	"currconv/internal/domain"
)

const catalogKey = "currency-catalog"

// RistrettoCatalogCache keeps one normalized currency catalog snapshot for a
// bounded TTL.
type RistrettoCatalogCache struct {
	cache *ristretto.Cache
	ttl   time.Duration
}

func NewCatalogCache(ttl time.Duration) (*RistrettoCatalogCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 64,
		MaxCost:     8,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create catalog cache failed: %w", err)
	}
	return &RistrettoCatalogCache{cache: c, ttl: ttl}, nil
}

func (c *RistrettoCatalogCache) Get() ([]domain.CurrencySummary, bool) {
	if v, ok := c.cache.Get(catalogKey); ok {
		currencies, ok := v.([]domain.CurrencySummary)
		return currencies, ok
	}
	return nil, false
}

// Set replaces the cached catalog. It waits for the write to settle so a
// read that follows immediately observes the fresh snapshot.
func (c *RistrettoCatalogCache) Set(currencies []domain.CurrencySummary) {
	c.cache.SetWithTTL(catalogKey, currencies, 1, c.ttl)
	c.cache.Wait()
}

func (c *RistrettoCatalogCache) Close() { c.cache.Close() }
