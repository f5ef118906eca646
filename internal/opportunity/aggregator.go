package opportunity

import (
	"cmp"
	"slices"

	"p2parb/internal/domain"

	"github.com/google/uuid"
)

// Book is the per-corridor view: adverts of one marketplace in one fiat,
// split by what sellers charge (asks) and what buyers pay (bids).
type Book struct {
	Marketplace string
	Fiat        string
	Asks        []domain.NormalizedQuote // counterparty SELL, ascending price
	Bids        []domain.NormalizedQuote // counterparty BUY, descending price
}

func (b Book) BestAsk() (domain.NormalizedQuote, bool) {
	if len(b.Asks) == 0 {
		return domain.NormalizedQuote{}, false
	}
	return b.Asks[0], true
}

func (b Book) BestBid() (domain.NormalizedQuote, bool) {
	if len(b.Bids) == 0 {
		return domain.NormalizedQuote{}, false
	}
	return b.Bids[0], true
}

// Aggregator collects the normalized quotes of one cycle. Flat and Books are
// views over the same entries.
type Aggregator struct {
	cycleID uuid.UUID
	quotes  []domain.NormalizedQuote
}

func NewAggregator(cycleID uuid.UUID) *Aggregator {
	return &Aggregator{cycleID: cycleID}
}

func (a *Aggregator) CycleID() uuid.UUID { return a.cycleID }

func (a *Aggregator) Add(quotes ...domain.NormalizedQuote) {
	a.quotes = append(a.quotes, quotes...)
}

func (a *Aggregator) Len() int { return len(a.quotes) }

// Flat returns all quotes ordered ascending by reference value. Ties keep insertion order.
func (a *Aggregator) Flat() []domain.NormalizedQuote {
	out := slices.Clone(a.quotes)
	slices.SortStableFunc(out, func(x, y domain.NormalizedQuote) int {
		return cmp.Compare(x.ReferenceValue, y.ReferenceValue)
	})
	return out
}

// Books groups quotes by (marketplace, fiat), ordered by marketplace then fiat.
func (a *Aggregator) Books() []Book {
	type key struct{ market, fiat string }
	index := make(map[key]int)
	books := make([]Book, 0)

	for _, q := range a.quotes {
		k := key{q.Source, q.Fiat}
		i, ok := index[k]
		if !ok {
			i = len(books)
			index[k] = i
			books = append(books, Book{Marketplace: q.Source, Fiat: q.Fiat})
		}
		switch q.Side {
		case domain.SideSell:
			books[i].Asks = append(books[i].Asks, q)
		case domain.SideBuy:
			books[i].Bids = append(books[i].Bids, q)
		}
	}

	for i := range books {
		slices.SortStableFunc(books[i].Asks, func(x, y domain.NormalizedQuote) int { return cmp.Compare(x.Price, y.Price) })
		slices.SortStableFunc(books[i].Bids, func(x, y domain.NormalizedQuote) int { return cmp.Compare(y.Price, x.Price) })
	}
	slices.SortFunc(books, func(x, y Book) int {
		if c := cmp.Compare(x.Marketplace, y.Marketplace); c != 0 {
			return c
		}
		return cmp.Compare(x.Fiat, y.Fiat)
	})
	return books
}
