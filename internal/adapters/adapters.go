package adapters

import (
	"context"
	"time"

	"p2parb/internal/domain"
)

// RateClient returns how many units of the reference currency one unit of `from` is worth.
type RateClient interface {
	FetchRate(ctx context.Context, from string) (float64, error)
}

type QuoteClient interface {
	Name() string
	FetchQuotes(ctx context.Context, fiat string, side domain.Side) ([]domain.RawQuote, error)
}

type RateRepository interface {
	SaveRates(ctx context.Context, rates []domain.Rate) error
	LoadRates(ctx context.Context, reference string) ([]domain.Rate, error)
}

type QuoteCache interface {
	Get(marketplace, fiat string, side domain.Side) ([]domain.RawQuote, bool)
	Set(marketplace, fiat string, side domain.Side, quotes []domain.RawQuote, ttl time.Duration)
}
