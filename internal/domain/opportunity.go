package domain

import "github.com/google/uuid"

type Status string

const (
	StatusExecutable Status = "EXECUTABLE"
	StatusWatch      Status = "WATCH"
	StatusSkip       Status = "SKIP"
)

type Route struct {
	CycleID uuid.UUID
	Buy     NormalizedQuote
	Sell    NormalizedQuote
	Spread  float64
	Profit  float64
	Status  Status
}

// CorridorDeviation compares the cross-rate implied by one marketplace's
// adverts with the market FX rate for the same currency pair.
type CorridorDeviation struct {
	CycleID     uuid.UUID
	Route       string
	Marketplace string
	From        string
	To          string
	ImpliedRate float64
	MarketRate  float64
	Deviation   float64
	Profit      float64
	Status      Status
}
