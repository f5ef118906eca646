package opportunity

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"p2parb/internal/domain"

	"github.com/google/uuid"
)

// SearchAllPairs pairs every quote with every higher-valued quote, buying at the
// lower one and selling at the higher one. Every pair is enumerated, not only
// neighbours; ranking alone decides what is returned. topK <= 0 returns all routes.
func SearchAllPairs(cycleID uuid.UUID, quotes []domain.NormalizedQuote, capital float64, topK int, th Thresholds) ([]domain.Route, error) {
	if len(quotes) < 2 {
		return nil, fmt.Errorf("%w: %d usable quotes, need at least 2", domain.ErrInsufficientData, len(quotes))
	}

	sorted := slices.Clone(quotes)
	slices.SortStableFunc(sorted, func(x, y domain.NormalizedQuote) int {
		return cmp.Compare(x.ReferenceValue, y.ReferenceValue)
	})

	routes := make([]domain.Route, 0, len(sorted))
	for i := 0; i < len(sorted); i++ {
		buy := sorted[i]
		if buy.ReferenceValue <= 0 {
			return nil, fmt.Errorf("%w: non-positive buy value %v from %s", domain.ErrInternalComputation, buy.ReferenceValue, buy.Source)
		}
		for j := i + 1; j < len(sorted); j++ {
			sell := sorted[j]
			spread := sell.ReferenceValue - buy.ReferenceValue
			if spread <= 0 {
				continue
			}
			profit := capital / buy.ReferenceValue * spread
			if math.IsNaN(profit) || math.IsInf(profit, 0) {
				return nil, fmt.Errorf("%w: profit for %s/%s is %v", domain.ErrInternalComputation, buy.Source, sell.Source, profit)
			}
			routes = append(routes, domain.Route{
				CycleID: cycleID,
				Buy:     buy,
				Sell:    sell,
				Spread:  spread,
				Profit:  profit,
				Status:  th.Classify(spread / buy.ReferenceValue * 100),
			})
		}
	}

	slices.SortStableFunc(routes, func(x, y domain.Route) int {
		return cmp.Compare(y.Profit, x.Profit)
	})
	if topK > 0 && len(routes) > topK {
		routes = routes[:topK]
	}
	return routes, nil
}
