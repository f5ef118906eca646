package opportunity

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"p2parb/internal/domain"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Deviation is the percentage gap between an implied and a market rate.
func Deviation(implied, market float64) float64 {
	return (implied - market) / market * 100
}

// SearchCorridors evaluates every (marketplace, fiat) corridor against the
// reference book of the same marketplace, in both directions:
//
//	ref -> fiat: buy the asset with ref at the best ask, sell it for fiat at the best bid;
//	             implied = fiat bid / ref ask, market = 1 / rate(fiat)
//	fiat -> ref: buy with fiat at the best ask, sell for ref at the best bid;
//	             implied = ref bid / fiat ask, market = rate(fiat)
//
// Corridors whose fiat rate is unknown are omitted. SKIP entries are dropped
// and the rest is ordered by deviation, highest first.
func SearchCorridors(cycleID uuid.UUID, books []Book, rates RateLookup, capital float64, th Thresholds) ([]domain.CorridorDeviation, error) {
	reference := rates.Reference()
	refBooks := make(map[string]Book)
	for _, b := range books {
		if b.Fiat == reference {
			refBooks[b.Marketplace] = b
		}
	}

	evaluated := 0
	out := make([]domain.CorridorDeviation, 0)
	for _, b := range books {
		if b.Fiat == reference {
			continue
		}
		refBook, ok := refBooks[b.Marketplace]
		if !ok {
			continue
		}
		rate, ok := rates.Rate(b.Fiat)
		if !ok || rate.Value <= 0 {
			logrus.WithFields(logrus.Fields{"marketplace": b.Marketplace, "currency": b.Fiat}).
				Debug("Corridor omitted, rate unknown")
			continue
		}

		legs := []struct {
			from, to string
			ask, bid func() (domain.NormalizedQuote, bool)
			market   float64
		}{
			{from: reference, to: b.Fiat, ask: refBook.BestAsk, bid: b.BestBid, market: 1 / rate.Value},
			{from: b.Fiat, to: reference, ask: b.BestAsk, bid: refBook.BestBid, market: rate.Value},
		}
		for _, leg := range legs {
			ask, okAsk := leg.ask()
			bid, okBid := leg.bid()
			if !okAsk || !okBid {
				continue
			}
			implied := bid.Price / ask.Price
			deviation := Deviation(implied, leg.market)
			if math.IsNaN(deviation) || math.IsInf(deviation, 0) {
				return nil, fmt.Errorf("%w: deviation for %s %s->%s is %v",
					domain.ErrInternalComputation, b.Marketplace, leg.from, leg.to, deviation)
			}
			evaluated++

			status := th.Classify(deviation)
			if status == domain.StatusSkip {
				continue
			}
			out = append(out, domain.CorridorDeviation{
				CycleID:     cycleID,
				Route:       fmt.Sprintf("%s:%s→%s", b.Marketplace, leg.from, leg.to),
				Marketplace: b.Marketplace,
				From:        leg.from,
				To:          leg.to,
				ImpliedRate: implied,
				MarketRate:  leg.market,
				Deviation:   deviation,
				// TODO: confirm with product whether profit should convert capital through the implied rate like all-pairs does.
				Profit: capital * deviation / 100,
				Status: status,
			})
		}
	}

	if evaluated == 0 {
		return nil, fmt.Errorf("%w: no corridor could be evaluated", domain.ErrInsufficientData)
	}

	slices.SortStableFunc(out, func(x, y domain.CorridorDeviation) int {
		return cmp.Compare(y.Deviation, x.Deviation)
	})
	return out, nil
}
