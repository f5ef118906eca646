package domain

import "errors"

var (
	ErrRateNotFound        = errors.New("rate not found")
	ErrRateUnavailable     = errors.New("fx rate unavailable")
	ErrQuoteFetchFailure   = errors.New("quote fetch failed")
	ErrImplausibleQuote    = errors.New("implausible quote")
	ErrInsufficientData    = errors.New("insufficient data")
	ErrInternalComputation = errors.New("internal computation error")
)
