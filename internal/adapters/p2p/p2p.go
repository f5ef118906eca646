// Package p2p holds marketplace clients returning raw P2P adverts as domain quotes.
package p2p

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"p2parb/internal/domain"
)

const maxErrorBody = 512

func parsePrice(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

func checkStatus(resp *http.Response, market, fiat string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return fmt.Errorf("%w: %s %s: unexpected status code %d: %s",
		domain.ErrQuoteFetchFailure, market, fiat, resp.StatusCode, strings.TrimSpace(string(body)))
}
