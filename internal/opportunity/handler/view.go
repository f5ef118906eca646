package handler

import (
	"time"

	"p2parb/internal/domain"
	"p2parb/internal/opportunity"

	"github.com/shopspring/decimal"
)

// money rounds to 2dp for display. Computation never sees rounded values.
func money(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

type QuoteView struct {
	Marketplace    string  `json:"marketplace" example:"binance"`
	Fiat           string  `json:"fiat" example:"UGX"`
	Side           string  `json:"side" example:"SELL"`
	Price          float64 `json:"price" example:"3800"`
	Advertiser     string  `json:"advertiser,omitempty"`
	ReferenceValue float64 `json:"reference_value" example:"136.8"`
}

type RouteView struct {
	Buy    QuoteView `json:"buy"`
	Sell   QuoteView `json:"sell"`
	Spread float64   `json:"spread" example:"2"`
	Profit float64   `json:"profit" example:"135.14"`
	Status string    `json:"status" example:"WATCH"`
}

type CorridorView struct {
	Route       string  `json:"route" example:"binance:UGX→KES"`
	Marketplace string  `json:"marketplace" example:"binance"`
	From        string  `json:"from" example:"UGX"`
	To          string  `json:"to" example:"KES"`
	ImpliedRate float64 `json:"implied_rate" example:"0.037143"`
	MarketRate  float64 `json:"market_rate" example:"0.036"`
	Deviation   float64 `json:"deviation_pct" example:"3.17"`
	Profit      float64 `json:"profit" example:"317.46"`
	Status      string  `json:"status" example:"EXECUTABLE"`
}

type SourceView struct {
	Marketplace string `json:"marketplace" example:"okx"`
	Fiat        string `json:"fiat" example:"TZS"`
	Side        string `json:"side" example:"BUY"`
	Outcome     string `json:"outcome" example:"ok"`
	Count       int    `json:"count" example:"10"`
	Cached      bool   `json:"cached"`
	Error       string `json:"error,omitempty"`
}

type DroppedView struct {
	RateUnavailable int `json:"rate_unavailable"`
	Implausible     int `json:"implausible"`
}

type BookView struct {
	Marketplace string      `json:"marketplace" example:"okx"`
	Fiat        string      `json:"fiat" example:"KES"`
	Asks        []QuoteView `json:"asks"`
	Bids        []QuoteView `json:"bids"`
}

func toQuoteView(q domain.NormalizedQuote) QuoteView {
	return QuoteView{
		Marketplace:    q.Source,
		Fiat:           q.Fiat,
		Side:           string(q.Side),
		Price:          q.Price,
		Advertiser:     q.Advertiser,
		ReferenceValue: money(q.ReferenceValue),
	}
}

func toQuoteViews(quotes []domain.NormalizedQuote) []QuoteView {
	out := make([]QuoteView, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, toQuoteView(q))
	}
	return out
}

func toRouteViews(routes []domain.Route) []RouteView {
	out := make([]RouteView, 0, len(routes))
	for _, r := range routes {
		out = append(out, RouteView{
			Buy:    toQuoteView(r.Buy),
			Sell:   toQuoteView(r.Sell),
			Spread: money(r.Spread),
			Profit: money(r.Profit),
			Status: string(r.Status),
		})
	}
	return out
}

func toCorridorViews(corridors []domain.CorridorDeviation) []CorridorView {
	out := make([]CorridorView, 0, len(corridors))
	for _, c := range corridors {
		out = append(out, CorridorView{
			Route:       c.Route,
			Marketplace: c.Marketplace,
			From:        c.From,
			To:          c.To,
			ImpliedRate: c.ImpliedRate,
			MarketRate:  c.MarketRate,
			Deviation:   money(c.Deviation),
			Profit:      money(c.Profit),
			Status:      string(c.Status),
		})
	}
	return out
}

func toSourceViews(reports []opportunity.SourceReport) []SourceView {
	out := make([]SourceView, 0, len(reports))
	for _, r := range reports {
		v := SourceView{
			Marketplace: r.Marketplace,
			Fiat:        r.Fiat,
			Side:        string(r.Side),
			Outcome:     string(r.Outcome),
			Count:       r.Count,
			Cached:      r.Cached,
		}
		if r.Err != nil {
			v.Error = r.Err.Error()
		}
		out = append(out, v)
	}
	return out
}

func toDroppedView(d opportunity.Dropped) DroppedView {
	return DroppedView{RateUnavailable: d.RateUnavailable, Implausible: d.Implausible}
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
