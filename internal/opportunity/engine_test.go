package opportunity

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"p2parb/internal/domain"
	"p2parb/internal/fx"

	"github.com/stretchr/testify/require"
)

var testPolicy = Policy{
	Mode:       ModeAllPairs,
	Capital:    10000,
	TopK:       10,
	Thresholds: defaultThresholds,
	Bounds:     Bounds{Min: 50, Max: 500},
}

func newTestEngine(f QuoteFetcher, rates *fx.Store) *Engine {
	e := NewEngine(f, rates, []string{"UGX", "TZS"}, testPolicy)
	e.now = func() time.Time { return ratesAt.Add(time.Minute) }
	return e
}

func TestNewEngine_FetchesReferenceFirst(t *testing.T) {
	e := NewEngine(&stubFetcher{}, newRates(nil), []string{"UGX", "KES", "UGX", "TZS"}, Policy{})

	require.Equal(t, []string{"KES", "UGX", "TZS"}, e.fiats)
	require.Equal(t, defaultThresholds, e.Policy().Thresholds)
}

func TestEngine_Opportunities_AllPairs(t *testing.T) {
	f := &stubFetcher{
		quotes: []domain.RawQuote{
			quote("binance", "KES", domain.SideSell, 148),
			quote("okx", "KES", domain.SideBuy, 150),
			quote("okx", "UGX", domain.SideSell, 3800),
			quote("okx", "TZS", domain.SideSell, 2400),
			quote("binance", "KES", domain.SideSell, 9999),
		},
		reports: []SourceReport{{Marketplace: "okx", Fiat: "TZS", Side: domain.SideBuy, Outcome: OutcomeError, Err: errors.New("down")}},
	}
	e := newTestEngine(f, newRates(map[string]float64{"UGX": 0.036}))

	res, err := e.Opportunities(context.Background(), Params{})

	require.NoError(t, err)
	require.Equal(t, ResultOK, res.Status)
	require.Equal(t, ModeAllPairs, res.Mode)
	require.Equal(t, "KES", res.Reference)
	require.True(t, res.RatesUpdatedAt.Equal(ratesAt))
	require.Equal(t, Dropped{RateUnavailable: 1, Implausible: 1}, res.Dropped)
	require.Len(t, res.Sources, 1)
	require.Len(t, res.Routes, 3)
	for _, r := range res.Routes {
		require.Equal(t, res.CycleID, r.CycleID)
	}
	best := res.Routes[0]
	require.Equal(t, "UGX", best.Buy.Fiat)
	require.InDelta(t, 136.80, best.Buy.ReferenceValue, 1e-9)
	require.Equal(t, 150.0, best.Sell.ReferenceValue)
	require.InDelta(t, 10000/136.8*13.2, best.Profit, 1e-6)
}

func TestEngine_Opportunities_Overrides(t *testing.T) {
	f := &stubFetcher{quotes: []domain.RawQuote{
		quote("binance", "KES", domain.SideSell, 128),
		quote("binance", "KES", domain.SideSell, 130),
		quote("okx", "KES", domain.SideBuy, 133),
	}}
	e := newTestEngine(f, newRates(nil))
	topK := 1

	res, err := e.Opportunities(context.Background(), Params{Capital: 500, TopK: &topK})

	require.NoError(t, err)
	require.Equal(t, 500.0, res.Capital)
	require.Equal(t, 1, res.TopK)
	require.Len(t, res.Routes, 1)
	require.InDelta(t, 500/128.0*5, res.Routes[0].Profit, 1e-9)
}

func TestEngine_Opportunities_InsufficientData(t *testing.T) {
	f := &stubFetcher{quotes: []domain.RawQuote{quote("binance", "KES", domain.SideSell, 130)}}
	e := newTestEngine(f, newRates(nil))

	res, err := e.Opportunities(context.Background(), Params{})

	require.NoError(t, err)
	require.Equal(t, ResultInsufficientData, res.Status)
	require.NotEmpty(t, res.Reason)
	require.Empty(t, res.Routes)
}

func TestEngine_Opportunities_NoQuotesAtAll(t *testing.T) {
	e := newTestEngine(&stubFetcher{}, newRates(nil))

	res, err := e.Opportunities(context.Background(), Params{Mode: ModeCorridor})

	require.NoError(t, err)
	require.Equal(t, ResultInsufficientData, res.Status)
	require.Equal(t, ModeCorridor, res.Mode)
}

func TestEngine_Opportunities_Corridor(t *testing.T) {
	f := &stubFetcher{quotes: []domain.RawQuote{
		quote("binance", "KES", domain.SideBuy, 130),
		quote("binance", "UGX", domain.SideSell, 3500),
	}}
	e := newTestEngine(f, newRates(map[string]float64{"UGX": 0.036}))

	res, err := e.Opportunities(context.Background(), Params{Mode: ModeCorridor})

	require.NoError(t, err)
	require.Equal(t, ResultOK, res.Status)
	require.Empty(t, res.Routes)
	require.Len(t, res.Corridors, 1)
	require.Equal(t, "binance:UGX→KES", res.Corridors[0].Route)
	require.Equal(t, res.CycleID, res.Corridors[0].CycleID)
}

func TestEngine_Opportunities_InternalError(t *testing.T) {
	f := &stubFetcher{quotes: []domain.RawQuote{
		quote("binance", "KES", domain.SideSell, 128),
		quote("okx", "KES", domain.SideBuy, 133),
	}}
	e := newTestEngine(f, newRates(nil))

	_, err := e.Opportunities(context.Background(), Params{Capital: math.Inf(1)})

	require.ErrorIs(t, err, domain.ErrInternalComputation)
}

func TestEngine_Opportunities_RecoversPanic(t *testing.T) {
	e := newTestEngine(panicFetcher{}, newRates(nil))

	_, err := e.Opportunities(context.Background(), Params{})

	require.ErrorIs(t, err, domain.ErrInternalComputation)
}

func TestEngine_Opportunities_Cancelled(t *testing.T) {
	e := newTestEngine(&stubFetcher{}, newRates(nil))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Opportunities(ctx, Params{})

	require.ErrorIs(t, err, context.Canceled)
}

func TestEngine_Quotes(t *testing.T) {
	f := &stubFetcher{quotes: []domain.RawQuote{
		quote("binance", "KES", domain.SideSell, 130),
		quote("binance", "UGX", domain.SideSell, 3600),
		quote("okx", "TZS", domain.SideSell, 2300),
	}}
	e := newTestEngine(f, newRates(map[string]float64{"UGX": 0.036}))

	snap, err := e.Quotes(context.Background())

	require.NoError(t, err)
	require.Len(t, snap.Books, 2)
	require.Equal(t, 1, snap.Dropped.RateUnavailable)
	require.Equal(t, 1, f.calls)
}

type panicFetcher struct{}

func (panicFetcher) FetchAll(context.Context, []string) ([]domain.RawQuote, []SourceReport) {
	panic("boom")
}
