package cache

import (
	"fmt"
	"slices"
	"time"

	"p2parb/internal/domain"

	"github.com/dgraph-io/ristretto"
)

// RistrettoQuoteCache keeps recent marketplace responses keyed by
// (marketplace, fiat, side). Each entry costs 1 regardless of its length.
type RistrettoQuoteCache struct {
	cache *ristretto.Cache
}

func NewQuoteCache(maxItems int64) (*RistrettoQuoteCache, error) {
	if maxItems <= 0 {
		maxItems = 1000
	}
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10 * maxItems,
		MaxCost:     maxItems,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create quote cache failed: %w", err)
	}
	return &RistrettoQuoteCache{cache: c}, nil
}

func (c *RistrettoQuoteCache) Get(marketplace, fiat string, side domain.Side) ([]domain.RawQuote, bool) {
	if v, ok := c.cache.Get(toKey(marketplace, fiat, side)); ok {
		quotes, ok := v.([]domain.RawQuote)
		return slices.Clone(quotes), ok
	}
	return nil, false
}

// Set is a no-op for a non-positive ttl.
func (c *RistrettoQuoteCache) Set(marketplace, fiat string, side domain.Side, quotes []domain.RawQuote, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	c.cache.SetWithTTL(toKey(marketplace, fiat, side), slices.Clone(quotes), 1, ttl)
}

func (c *RistrettoQuoteCache) Close() { c.cache.Close() }

func toKey(marketplace, fiat string, side domain.Side) string {
	return marketplace + ":" + fiat + ":" + string(side)
}
