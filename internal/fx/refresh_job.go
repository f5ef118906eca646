package fx

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"p2parb/internal/adapters"
	"p2parb/internal/domain"

	"github.com/sirupsen/logrus"
)

const numWorkers = 5
const perRequestTimeout = 10 * time.Second

var ErrRefreshFailed = errors.New("no rate could be refreshed")

type rateResult struct {
	Currency string
	Value    float64
	Err      error
}

type RefreshReport struct {
	ExecID  string
	Updated []string
	Failed  map[string]error
}

// Refresher pulls a rate for every supported currency and applies the
// successful ones to the store. One failed currency never blanks the others.
type Refresher struct {
	store      *Store
	client     adapters.RateClient
	repo       adapters.RateRepository // optional
	currencies []string
	now        func() time.Time
}

func NewRefresher(store *Store, client adapters.RateClient, repo adapters.RateRepository, currencies []string) *Refresher {
	return &Refresher{
		store:      store,
		client:     client,
		repo:       repo,
		currencies: supportedCurrencies(currencies, store.Reference()),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Refresh returns ErrRefreshFailed when every lookup failed; the store keeps
// serving its previous snapshot in that case.
func (r *Refresher) Refresh(ctx context.Context, execID string) (RefreshReport, error) {
	report := RefreshReport{ExecID: execID, Failed: map[string]error{}}
	if len(r.currencies) == 0 {
		return report, nil
	}

	// STEP 1: fetching rates in parallel
	results := processInParallel(ctx, r.client, r.currencies)

	// STEP 2: splitting successes from failures
	updatedAt := r.now()
	rates := make([]domain.Rate, 0, len(results))
	for _, res := range results {
		if res.Err != nil {
			report.Failed[res.Currency] = res.Err
			logrus.WithError(res.Err).WithFields(logrus.Fields{"currency": res.Currency, "exec_id": execID}).
				Warn("Rate wasn't refreshed, keeping previous value")
			continue
		}
		rates = append(rates, domain.Rate{
			Currency:  res.Currency,
			Reference: r.store.Reference(),
			Value:     res.Value,
			UpdatedAt: updatedAt,
		})
		report.Updated = append(report.Updated, res.Currency)
	}
	slices.Sort(report.Updated)

	if len(rates) == 0 {
		return report, fmt.Errorf("%w: %d currencies failed; execID: %s", ErrRefreshFailed, len(report.Failed), execID)
	}

	// STEP 3: swapping the snapshot, then persisting what was applied
	r.store.Apply(rates)
	if r.repo != nil {
		if err := r.repo.SaveRates(ctx, rates); err != nil {
			logrus.WithError(err).WithField("exec_id", execID).Warn("Refreshed rates weren't persisted")
		}
	}

	logrus.Infof("%d rates refreshed, %d failed; execID: %s", len(report.Updated), len(report.Failed), execID)
	return report, nil
}

// Seed loads persisted rates into the store. Used once at startup.
func (r *Refresher) Seed(ctx context.Context) (int, error) {
	if r.repo == nil {
		return 0, nil
	}
	rates, err := r.repo.LoadRates(ctx, r.store.Reference())
	if err != nil {
		return 0, fmt.Errorf("failed to load persisted rates: %w", err)
	}
	supported := make([]domain.Rate, 0, len(rates))
	for _, rt := range rates {
		if slices.Contains(r.currencies, rt.Currency) {
			supported = append(supported, rt)
		}
	}
	return r.store.Apply(supported), nil
}

func supportedCurrencies(currencies []string, reference string) []string {
	out := make([]string, 0, len(currencies))
	for _, c := range currencies {
		if c == "" || c == reference || slices.Contains(out, c) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// processInParallel runs workers, which fetch rates from the provider
func processInParallel(ctx context.Context, client adapters.RateClient, currencies []string) []rateResult {
	workQueue := make(chan string, len(currencies))
	for _, c := range currencies {
		workQueue <- c
	}
	close(workQueue)

	resultsCh := make(chan rateResult, len(currencies))

	var wg sync.WaitGroup
	for i := 0; i < min(numWorkers, len(currencies)); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runWorker(ctx, workQueue, client, resultsCh)
		}()
	}

	wg.Wait()
	close(resultsCh)

	results := make([]rateResult, 0, len(currencies))
	for res := range resultsCh {
		results = append(results, res)
	}
	// currencies never picked up because ctx was cancelled count as failures
	for _, c := range currencies {
		if !slices.ContainsFunc(results, func(r rateResult) bool { return r.Currency == c }) {
			results = append(results, rateResult{Currency: c, Err: ctx.Err()})
		}
	}
	return results
}

func runWorker(ctx context.Context, workQueue <-chan string, client adapters.RateClient, resultsCh chan<- rateResult) {
	for {
		select {
		case <-ctx.Done():
			return
		case currency, ok := <-workQueue:
			if !ok {
				return
			}
			resultsCh <- processCurrency(ctx, currency, client)
		}
	}
}

func processCurrency(ctx context.Context, currency string, client adapters.RateClient) rateResult {
	reqCtx, cancel := context.WithTimeout(ctx, perRequestTimeout)
	defer cancel()

	v, err := client.FetchRate(reqCtx, currency)
	if err == nil && v <= 0 {
		err = fmt.Errorf("%w: non-positive rate %v for %q", domain.ErrRateUnavailable, v, currency)
	}
	return rateResult{Currency: currency, Value: v, Err: err}
}
