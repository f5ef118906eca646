package fx

import (
	"context"
	"errors"
	"testing"
	"time"

	"p2parb/internal/domain"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)

func newTestRefresher(store *Store, client *MockRateClient, repo *MockRateRepository, currencies ...string) *Refresher {
	var r *Refresher
	if repo == nil {
		r = NewRefresher(store, client, nil, currencies)
	} else {
		r = NewRefresher(store, client, repo, currencies)
	}
	r.now = func() time.Time { return fixedNow }
	return r
}

func TestNewRefresher_DropsReferenceAndDuplicates(t *testing.T) {
	r := NewRefresher(NewStore("KES"), new(MockRateClient), nil, []string{"UGX", "KES", "TZS", "UGX", ""})
	require.Equal(t, []string{"UGX", "TZS"}, r.currencies)
}

func TestRefresh_AllSucceed(t *testing.T) {
	store := NewStore("KES")
	client := new(MockRateClient)
	client.On("FetchRate", mock.Anything, "UGX").Return(0.036, nil).Once()
	client.On("FetchRate", mock.Anything, "TZS").Return(0.058, nil).Once()

	report, err := newTestRefresher(store, client, nil, "UGX", "TZS").Refresh(context.Background(), "exec-1")

	require.NoError(t, err)
	require.Equal(t, []string{"TZS", "UGX"}, report.Updated)
	require.Empty(t, report.Failed)
	ugx, ok := store.Get("UGX")
	require.True(t, ok)
	require.InDelta(t, 0.036, ugx.Value, 1e-12)
	require.True(t, store.Snapshot().LastUpdated().Equal(fixedNow))
	client.AssertExpectations(t)
}

func TestRefresh_PartialFailureKeepsPreviousValue(t *testing.T) {
	store := NewStore("KES")
	earlier := fixedNow.Add(-time.Hour)
	store.Apply([]domain.Rate{{Currency: "UGX", Reference: "KES", Value: 0.035, UpdatedAt: earlier}})

	client := new(MockRateClient)
	client.On("FetchRate", mock.Anything, "UGX").Return(0.0, errors.New("provider down")).Once()
	client.On("FetchRate", mock.Anything, "TZS").Return(0.058, nil).Once()

	report, err := newTestRefresher(store, client, nil, "UGX", "TZS").Refresh(context.Background(), "exec-2")

	require.NoError(t, err)
	require.Equal(t, []string{"TZS"}, report.Updated)
	require.Contains(t, report.Failed, "UGX")

	ugx, ok := store.Get("UGX")
	require.True(t, ok)
	require.InDelta(t, 0.035, ugx.Value, 1e-12)
	require.True(t, ugx.UpdatedAt.Equal(earlier))
	tzs, ok := store.Get("TZS")
	require.True(t, ok)
	require.InDelta(t, 0.058, tzs.Value, 1e-12)
}

func TestRefresh_PartialFailureLeavesNeverFetchedUnknown(t *testing.T) {
	store := NewStore("KES")
	client := new(MockRateClient)
	client.On("FetchRate", mock.Anything, "UGX").Return(0.0, errors.New("timeout")).Once()
	client.On("FetchRate", mock.Anything, "TZS").Return(0.058, nil).Once()

	_, err := newTestRefresher(store, client, nil, "UGX", "TZS").Refresh(context.Background(), "exec-3")

	require.NoError(t, err)
	_, ok := store.Get("UGX")
	require.False(t, ok)
	_, ok = store.Get("TZS")
	require.True(t, ok)
}

func TestRefresh_NonPositiveRateCountsAsFailure(t *testing.T) {
	store := NewStore("KES")
	client := new(MockRateClient)
	client.On("FetchRate", mock.Anything, "UGX").Return(0.0, nil).Once()

	report, err := newTestRefresher(store, client, nil, "UGX").Refresh(context.Background(), "exec-4")

	require.ErrorIs(t, err, ErrRefreshFailed)
	require.ErrorIs(t, report.Failed["UGX"], domain.ErrRateUnavailable)
	_, ok := store.Get("UGX")
	require.False(t, ok)
}

func TestRefresh_AllFailKeepsSnapshot(t *testing.T) {
	store := NewStore("KES")
	store.Apply([]domain.Rate{{Currency: "UGX", Reference: "KES", Value: 0.035, UpdatedAt: fixedNow.Add(-time.Hour)}})
	before := store.Snapshot()

	client := new(MockRateClient)
	client.On("FetchRate", mock.Anything, mock.Anything).Return(0.0, errors.New("unreachable"))
	repo := new(MockRateRepository)

	_, err := newTestRefresher(store, client, repo, "UGX", "TZS").Refresh(context.Background(), "exec-5")

	require.ErrorIs(t, err, ErrRefreshFailed)
	require.Same(t, before, store.Snapshot())
	repo.AssertNotCalled(t, "SaveRates", mock.Anything, mock.Anything)
}

func TestRefresh_PersistsAppliedRates(t *testing.T) {
	store := NewStore("KES")
	client := new(MockRateClient)
	client.On("FetchRate", mock.Anything, "UGX").Return(0.036, nil).Once()
	repo := new(MockRateRepository)
	repo.On("SaveRates", mock.Anything, []domain.Rate{
		{Currency: "UGX", Reference: "KES", Value: 0.036, UpdatedAt: fixedNow},
	}).Return(nil).Once()

	_, err := newTestRefresher(store, client, repo, "UGX").Refresh(context.Background(), "exec-6")

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestRefresh_PersistErrorIsNotFatal(t *testing.T) {
	store := NewStore("KES")
	client := new(MockRateClient)
	client.On("FetchRate", mock.Anything, "UGX").Return(0.036, nil).Once()
	repo := new(MockRateRepository)
	repo.On("SaveRates", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()

	_, err := newTestRefresher(store, client, repo, "UGX").Refresh(context.Background(), "exec-7")

	require.NoError(t, err)
	_, ok := store.Get("UGX")
	require.True(t, ok)
	repo.AssertExpectations(t)
}

func TestRefresh_NoCurrencies(t *testing.T) {
	client := new(MockRateClient)
	report, err := newTestRefresher(NewStore("KES"), client, nil).Refresh(context.Background(), "exec-8")

	require.NoError(t, err)
	require.Empty(t, report.Updated)
	client.AssertNotCalled(t, "FetchRate", mock.Anything, mock.Anything)
}

func TestRefresh_CancelledContextFailsEverything(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	client := new(MockRateClient)
	client.On("FetchRate", mock.Anything, mock.Anything).Return(0.0, context.Canceled).Maybe()

	report, err := newTestRefresher(NewStore("KES"), client, nil, "UGX", "TZS").Refresh(ctx, "exec-9")

	require.ErrorIs(t, err, ErrRefreshFailed)
	require.Len(t, report.Failed, 2)
}

func TestSeed_LoadsSupportedRates(t *testing.T) {
	store := NewStore("KES")
	repo := new(MockRateRepository)
	repo.On("LoadRates", mock.Anything, "KES").Return([]domain.Rate{
		{Currency: "UGX", Reference: "KES", Value: 0.036, UpdatedAt: fixedNow},
		{Currency: "NGN", Reference: "KES", Value: 0.08, UpdatedAt: fixedNow},
	}, nil).Once()

	n, err := newTestRefresher(store, new(MockRateClient), repo, "UGX", "TZS").Seed(context.Background())

	require.NoError(t, err)
	require.Equal(t, 1, n)
	_, ok := store.Get("NGN")
	require.False(t, ok)
	ugx, ok := store.Get("UGX")
	require.True(t, ok)
	require.InDelta(t, 0.036, ugx.Value, 1e-12)
}

func TestSeed_RepoError(t *testing.T) {
	repo := new(MockRateRepository)
	repo.On("LoadRates", mock.Anything, "KES").Return(nil, errors.New("db down")).Once()

	_, err := newTestRefresher(NewStore("KES"), new(MockRateClient), repo, "UGX").Seed(context.Background())

	require.ErrorContains(t, err, "failed to load persisted rates")
}

func TestSeed_WithoutRepo(t *testing.T) {
	n, err := newTestRefresher(NewStore("KES"), new(MockRateClient), nil, "UGX").Seed(context.Background())
	require.NoError(t, err)
	require.Zero(t, n)
}
