package opportunity

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"p2parb/internal/domain"
	"p2parb/internal/fx"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type ResultStatus string

const (
	ResultOK               ResultStatus = "ok"
	ResultInsufficientData ResultStatus = "insufficient_data"
)

// Dropped counts quotes removed during normalization, by reason.
type Dropped struct {
	RateUnavailable int
	Implausible     int
}

type Result struct {
	CycleID        uuid.UUID
	Mode           Mode
	Status         ResultStatus
	Reason         string
	Reference      string
	RatesUpdatedAt time.Time
	GeneratedAt    time.Time
	Capital        float64
	TopK           int
	Routes         []domain.Route
	Corridors      []domain.CorridorDeviation
	Sources        []SourceReport
	Dropped        Dropped
}

// Snapshot is one cycle's normalized market view.
type Snapshot struct {
	CycleID     uuid.UUID
	Reference   string
	GeneratedAt time.Time
	Books       []Book
	Sources     []SourceReport
	Dropped     Dropped
}

type QuoteFetcher interface {
	FetchAll(ctx context.Context, fiats []string) ([]domain.RawQuote, []SourceReport)
}

type Engine struct {
	fetcher QuoteFetcher
	rates   *fx.Store
	fiats   []string
	policy  Policy
	now     func() time.Time
}

// NewEngine wires the cycle. currencies are the foreign fiats; the reference
// currency is always fetched as well.
func NewEngine(fetcher QuoteFetcher, rates *fx.Store, currencies []string, policy Policy) *Engine {
	fiats := []string{rates.Reference()}
	for _, c := range currencies {
		if !slices.Contains(fiats, c) {
			fiats = append(fiats, c)
		}
	}
	if policy.Thresholds == (Thresholds{}) {
		policy.Thresholds = Thresholds{Executable: DefaultExecutableThreshold, Watch: DefaultWatchThreshold}
	}
	return &Engine{
		fetcher: fetcher,
		rates:   rates,
		fiats:   fiats,
		policy:  policy,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (e *Engine) Rates() *fx.Snapshot { return e.rates.Snapshot() }

func (e *Engine) Policy() Policy { return e.policy }

// Opportunities runs one evaluation cycle. Missing data is not an error: the
// result carries ResultInsufficientData instead. Only domain.ErrInternalComputation
// and context errors are returned.
func (e *Engine) Opportunities(ctx context.Context, params Params) (res Result, err error) {
	policy := e.policy.with(params)

	defer func() {
		if r := recover(); r != nil {
			logrus.WithFields(logrus.Fields{"cycle_id": res.CycleID, "panic": r}).Error("Opportunity cycle panicked")
			res, err = Result{}, fmt.Errorf("%w: %v", domain.ErrInternalComputation, r)
		}
	}()

	snap, err := e.collect(ctx, policy.Bounds)
	if err != nil {
		return Result{}, err
	}
	res = Result{
		CycleID:        snap.CycleID,
		Mode:           policy.Mode,
		Status:         ResultOK,
		Reference:      snap.Reference,
		RatesUpdatedAt: snap.rates.LastUpdated(),
		GeneratedAt:    snap.GeneratedAt,
		Capital:        policy.Capital,
		TopK:           policy.TopK,
		Sources:        snap.Sources,
		Dropped:        snap.Dropped,
	}

	switch policy.Mode {
	case ModeCorridor:
		res.Corridors, err = SearchCorridors(snap.CycleID, snap.Books, snap.rates, policy.Capital, policy.Thresholds)
	default:
		res.Routes, err = SearchAllPairs(snap.CycleID, snap.flat, policy.Capital, policy.TopK, policy.Thresholds)
	}

	if errors.Is(err, domain.ErrInsufficientData) {
		res.Status = ResultInsufficientData
		res.Reason = err.Error()
		logrus.WithFields(logrus.Fields{"cycle_id": res.CycleID, "mode": policy.Mode}).Info(res.Reason)
		return res, nil
	}
	if err != nil {
		logrus.WithError(err).WithField("cycle_id", res.CycleID).Error("Opportunity cycle failed")
		return Result{}, err
	}

	logrus.WithFields(logrus.Fields{
		"cycle_id":  res.CycleID,
		"mode":      policy.Mode,
		"routes":    len(res.Routes),
		"corridors": len(res.Corridors),
	}).Debug("Opportunity cycle completed")
	return res, nil
}

// Quotes fetches and normalizes without searching.
func (e *Engine) Quotes(ctx context.Context) (Snapshot, error) {
	snap, err := e.collect(ctx, e.policy.Bounds)
	if err != nil {
		return Snapshot{}, err
	}
	return snap.Snapshot, nil
}

type cycle struct {
	Snapshot
	flat  []domain.NormalizedQuote
	rates *fx.Snapshot
}

// collect pins one FX snapshot for the whole cycle so every quote is
// normalized against the same rates.
func (e *Engine) collect(ctx context.Context, bounds Bounds) (cycle, error) {
	cycleID := uuid.New()
	rates := e.rates.Snapshot()

	raw, sources := e.fetcher.FetchAll(ctx, e.fiats)
	if err := ctx.Err(); err != nil {
		return cycle{}, err
	}

	agg := NewAggregator(cycleID)
	var dropped Dropped
	for _, q := range raw {
		n, err := NormalizeQuote(q, rates, bounds)
		switch {
		case errors.Is(err, domain.ErrRateUnavailable):
			dropped.RateUnavailable++
		case err != nil:
			dropped.Implausible++
			logrus.WithError(err).WithField("cycle_id", cycleID).Debug("Quote dropped")
		default:
			agg.Add(n)
		}
	}

	return cycle{
		Snapshot: Snapshot{
			CycleID:     cycleID,
			Reference:   rates.Reference(),
			GeneratedAt: e.now(),
			Books:       agg.Books(),
			Sources:     sources,
			Dropped:     dropped,
		},
		flat:  agg.Flat(),
		rates: rates,
	}, nil
}
