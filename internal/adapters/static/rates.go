package static

import (
	"context"
	"fmt"
	"maps"
)

// RateClient serves fixed conversion factors. It is only wired when
// fx.use_static_rates is set and replaces the live provider entirely.
type RateClient struct {
	rates map[string]float64
}

func NewRateClient(rates map[string]float64) *RateClient {
	return &RateClient{rates: maps.Clone(rates)}
}

func (c *RateClient) FetchRate(_ context.Context, from string) (float64, error) {
	v, ok := c.rates[from]
	if !ok || v <= 0 {
		return 0, fmt.Errorf("no static rate configured for currency %q", from)
	}
	return v, nil
}
