package fx

import (
	"maps"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"p2parb/internal/domain"
)

// Snapshot is an immutable view of the known rates. A currency that was never
// fetched successfully is absent, it never reads as 0 or 1.
type Snapshot struct {
	reference   string
	rates       map[string]domain.Rate
	lastUpdated time.Time
}

func (s *Snapshot) Reference() string { return s.reference }

// LastUpdated is zero until the first successful refresh.
func (s *Snapshot) LastUpdated() time.Time { return s.lastUpdated }

func (s *Snapshot) Rate(currency string) (domain.Rate, bool) {
	r, ok := s.rates[currency]
	return r, ok
}

// Rates returns a copy of currency -> conversion factor.
func (s *Snapshot) Rates() map[string]float64 {
	out := make(map[string]float64, len(s.rates))
	for c, r := range s.rates {
		out[c] = r.Value
	}
	return out
}

func (s *Snapshot) Currencies() []string {
	return slices.Sorted(maps.Keys(s.rates))
}

// Store holds the latest snapshot. Readers never block and never see a
// partially applied refresh; writers replace the whole snapshot.
type Store struct {
	reference string
	writeMu   sync.Mutex
	current   atomic.Pointer[Snapshot]
}

func NewStore(reference string) *Store {
	s := &Store{reference: reference}
	s.current.Store(&Snapshot{reference: reference, rates: map[string]domain.Rate{}})
	return s
}

func (s *Store) Reference() string { return s.reference }

func (s *Store) Snapshot() *Snapshot { return s.current.Load() }

func (s *Store) Get(currency string) (domain.Rate, bool) {
	return s.Snapshot().Rate(currency)
}

// Apply overwrites the given currencies and keeps every other stored rate.
// Non-positive values, the reference itself and rates quoted against another
// reference are ignored. It returns how many rates were applied.
func (s *Store) Apply(rates []domain.Rate) int {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	prev := s.current.Load()
	next := &Snapshot{
		reference:   s.reference,
		rates:       maps.Clone(prev.rates),
		lastUpdated: prev.lastUpdated,
	}

	applied := 0
	for _, r := range rates {
		if r.Value <= 0 || r.Currency == s.reference || r.Reference != s.reference {
			continue
		}
		if cur, ok := next.rates[r.Currency]; ok && r.UpdatedAt.Before(cur.UpdatedAt) {
			continue
		}
		next.rates[r.Currency] = r
		if r.UpdatedAt.After(next.lastUpdated) {
			next.lastUpdated = r.UpdatedAt
		}
		applied++
	}

	if applied > 0 {
		s.current.Store(next)
	}
	return applied
}
