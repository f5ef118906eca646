package opportunity

import (
	"fmt"
	"math"

	"p2parb/internal/domain"
)

// RateLookup is the read side of an FX snapshot.
type RateLookup interface {
	Reference() string
	Rate(currency string) (domain.Rate, bool)
}

// Bounds is the plausibility band for a normalized unit price. Max <= 0 means no upper bound.
type Bounds struct {
	Min float64
	Max float64
}

func (b Bounds) contains(v float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 || v < b.Min {
		return false
	}
	return b.Max <= 0 || v <= b.Max
}

// Normalize converts a raw quote into the reference currency. The second
// return is false when the quote must be dropped.
func Normalize(q domain.RawQuote, rates RateLookup, bounds Bounds) (domain.NormalizedQuote, bool) {
	n, err := NormalizeQuote(q, rates, bounds)
	return n, err == nil
}

// NormalizeQuote is Normalize with the drop reason: domain.ErrRateUnavailable
// or domain.ErrImplausibleQuote.
func NormalizeQuote(q domain.RawQuote, rates RateLookup, bounds Bounds) (domain.NormalizedQuote, error) {
	value := q.Price
	if q.Fiat != rates.Reference() {
		rate, ok := rates.Rate(q.Fiat)
		if !ok {
			return domain.NormalizedQuote{}, fmt.Errorf("%w: %s", domain.ErrRateUnavailable, q.Fiat)
		}
		value = q.Price * rate.Value
	}

	if !bounds.contains(value) {
		return domain.NormalizedQuote{}, fmt.Errorf("%w: %s %s %v -> %v %s",
			domain.ErrImplausibleQuote, q.Source, q.Fiat, q.Price, value, rates.Reference())
	}
	return domain.NormalizedQuote{RawQuote: q, ReferenceValue: value}, nil
}
