package opportunity

import (
	"context"
	"time"

	"p2parb/internal/adapters"
	"p2parb/internal/domain"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type Outcome string

const (
	OutcomeOK    Outcome = "ok"
	OutcomeEmpty Outcome = "empty"
	OutcomeError Outcome = "error"
)

// SourceReport describes one (marketplace, fiat, side) fetch of a cycle.
type SourceReport struct {
	Marketplace string
	Fiat        string
	Side        domain.Side
	Outcome     Outcome
	Count       int
	Cached      bool
	Err         error
}

type FetcherConfig struct {
	MaxConcurrency int
	CacheTTL       time.Duration
	Timeout        time.Duration
}

// Fetcher queries every marketplace for every fiat and both sides. A failing
// source is reported and skipped, the others still contribute.
type Fetcher struct {
	clients []adapters.QuoteClient
	cache   adapters.QuoteCache // optional
	cfg     FetcherConfig
}

func NewFetcher(clients []adapters.QuoteClient, cache adapters.QuoteCache, cfg FetcherConfig) *Fetcher {
	if cfg.MaxConcurrency <= 0 {
		cfg.MaxConcurrency = 4
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = perSourceTimeout
	}
	return &Fetcher{clients: clients, cache: cache, cfg: cfg}
}

const perSourceTimeout = 10 * time.Second

var sides = []domain.Side{domain.SideSell, domain.SideBuy}

func (f *Fetcher) FetchAll(ctx context.Context, fiats []string) ([]domain.RawQuote, []SourceReport) {
	type job struct {
		client adapters.QuoteClient
		fiat   string
		side   domain.Side
	}
	jobs := make([]job, 0, len(f.clients)*len(fiats)*len(sides))
	for _, c := range f.clients {
		for _, fiat := range fiats {
			for _, side := range sides {
				jobs = append(jobs, job{client: c, fiat: fiat, side: side})
			}
		}
	}

	reports := make([]SourceReport, len(jobs))
	results := make([][]domain.RawQuote, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.cfg.MaxConcurrency)
	for i, j := range jobs {
		g.Go(func() error {
			quotes, rep := f.fetchOne(gctx, j.client, j.fiat, j.side)
			results[i], reports[i] = quotes, rep
			// never fail the group, one source must not cancel the others
			return nil
		})
	}
	_ = g.Wait()

	all := make([]domain.RawQuote, 0)
	for _, quotes := range results {
		all = append(all, quotes...)
	}
	return all, reports
}

func (f *Fetcher) fetchOne(ctx context.Context, client adapters.QuoteClient, fiat string, side domain.Side) ([]domain.RawQuote, SourceReport) {
	rep := SourceReport{Marketplace: client.Name(), Fiat: fiat, Side: side}

	if f.cache != nil {
		if quotes, ok := f.cache.Get(rep.Marketplace, fiat, side); ok {
			rep.Cached = true
			rep.Count = len(quotes)
			rep.Outcome = outcomeOf(len(quotes))
			return quotes, rep
		}
	}

	reqCtx, cancel := context.WithTimeout(ctx, f.cfg.Timeout)
	defer cancel()

	quotes, err := client.FetchQuotes(reqCtx, fiat, side)
	if err != nil {
		rep.Outcome = OutcomeError
		rep.Err = err
		logrus.WithError(err).WithFields(logrus.Fields{
			"marketplace": rep.Marketplace, "fiat": fiat, "side": side,
		}).Warn("Quote source failed, skipping it this cycle")
		return nil, rep
	}

	rep.Count = len(quotes)
	rep.Outcome = outcomeOf(len(quotes))
	if f.cache != nil && len(quotes) > 0 {
		f.cache.Set(rep.Marketplace, fiat, side, quotes, f.cfg.CacheTTL)
	}
	return quotes, rep
}

func outcomeOf(n int) Outcome {
	if n == 0 {
		return OutcomeEmpty
	}
	return OutcomeOK
}
