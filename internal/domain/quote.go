package domain

import (
	"strings"
	"time"
)

// Side is the direction the counterparty of an advert trades.
// A SELL advert is a price we can buy at, a BUY advert is a price we can sell at.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

func ParseSide(s string) (Side, bool) {
	switch Side(strings.ToUpper(strings.TrimSpace(s))) {
	case SideBuy:
		return SideBuy, true
	case SideSell:
		return SideSell, true
	}
	return "", false
}

type RawQuote struct {
	Source     string
	Fiat       string
	Side       Side
	Price      float64
	Advertiser string
	ReceivedAt time.Time
}

type NormalizedQuote struct {
	RawQuote
	ReferenceValue float64
}
