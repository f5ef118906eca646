package opportunity

import (
	"context"
	"time"

	"p2parb/internal/domain"
	"p2parb/internal/fx"

	"github.com/stretchr/testify/mock"
)

type MockQuoteClient struct {
	mock.Mock
	name string
}

func (m *MockQuoteClient) Name() string { return m.name }

func (m *MockQuoteClient) FetchQuotes(ctx context.Context, fiat string, side domain.Side) ([]domain.RawQuote, error) {
	args := m.Called(ctx, fiat, side)
	quotes, _ := args.Get(0).([]domain.RawQuote)
	return quotes, args.Error(1)
}

type MockQuoteCache struct{ mock.Mock }

func (m *MockQuoteCache) Get(marketplace, fiat string, side domain.Side) ([]domain.RawQuote, bool) {
	args := m.Called(marketplace, fiat, side)
	quotes, _ := args.Get(0).([]domain.RawQuote)
	return quotes, args.Bool(1)
}

func (m *MockQuoteCache) Set(marketplace, fiat string, side domain.Side, quotes []domain.RawQuote, ttl time.Duration) {
	m.Called(marketplace, fiat, side, quotes, ttl)
}

type stubFetcher struct {
	quotes  []domain.RawQuote
	reports []SourceReport
	calls   int
}

func (s *stubFetcher) FetchAll(_ context.Context, _ []string) ([]domain.RawQuote, []SourceReport) {
	s.calls++
	return s.quotes, s.reports
}

var ratesAt = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newRates(values map[string]float64) *fx.Store {
	store := fx.NewStore("KES")
	rates := make([]domain.Rate, 0, len(values))
	for c, v := range values {
		rates = append(rates, domain.Rate{Currency: c, Reference: "KES", Value: v, UpdatedAt: ratesAt})
	}
	store.Apply(rates)
	return store
}

func quote(source, fiat string, side domain.Side, price float64) domain.RawQuote {
	return domain.RawQuote{Source: source, Fiat: fiat, Side: side, Price: price, Advertiser: source + "-trader"}
}

func normalized(source string, value float64) domain.NormalizedQuote {
	return domain.NormalizedQuote{RawQuote: quote(source, "KES", domain.SideSell, value), ReferenceValue: value}
}

var defaultThresholds = Thresholds{Executable: 2.5, Watch: 1.0}
