package p2p

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"p2parb/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestBinanceClient_FetchQuotes_Success(t *testing.T) {
	var got binanceSearchRequest
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"code": "000000",
			"success": true,
			"data": [
				{"adv": {"price": "129.50", "tradeType": "SELL"}, "advertiser": {"nickName": "alice"}},
				{"adv": {"price": "oops", "tradeType": "SELL"}, "advertiser": {"nickName": "bob"}},
				{"adv": {"price": "130.10", "tradeType": "SELL"}, "advertiser": {"nickName": "carol"}}
			]
		}`))
	}))
	t.Cleanup(srv.Close)

	c := NewBinanceClient(srv.Client(), srv.URL+"/", "USDT", 5)

	quotes, err := c.FetchQuotes(context.Background(), "KES", domain.SideSell)
	require.NoError(t, err)
	require.Equal(t, binanceSearchPath, gotPath)
	require.Equal(t, "USDT", got.Asset)
	require.Equal(t, "KES", got.Fiat)
	require.Equal(t, "BUY", got.TradeType) // taker buys from sellers
	require.Equal(t, 5, got.Rows)

	require.Len(t, quotes, 2)
	require.Equal(t, BinanceName, quotes[0].Source)
	require.Equal(t, domain.SideSell, quotes[0].Side)
	require.InDelta(t, 129.5, quotes[0].Price, 1e-9)
	require.Equal(t, "alice", quotes[0].Advertiser)
	require.InDelta(t, 130.1, quotes[1].Price, 1e-9)
}

func TestBinanceClient_FetchQuotes_BuySideAsksForSellers(t *testing.T) {
	var got binanceSearchRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"code":"000000","success":true,"data":[]}`))
	}))
	t.Cleanup(srv.Close)

	c := NewBinanceClient(srv.Client(), srv.URL, "USDT", 0)

	quotes, err := c.FetchQuotes(context.Background(), "UGX", domain.SideBuy)
	require.NoError(t, err)
	require.Empty(t, quotes)
	require.Equal(t, "SELL", got.TradeType)
	require.Equal(t, 10, got.Rows)
}

func TestBinanceClient_FetchQuotes_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	t.Cleanup(srv.Close)

	c := NewBinanceClient(srv.Client(), srv.URL, "USDT", 10)

	_, err := c.FetchQuotes(context.Background(), "KES", domain.SideSell)
	require.ErrorIs(t, err, domain.ErrQuoteFetchFailure)
	require.Contains(t, err.Error(), "unexpected status code 429")
}

func TestBinanceClient_FetchQuotes_APICodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":"100001","message":"illegal parameter","success":false}`))
	}))
	t.Cleanup(srv.Close)

	c := NewBinanceClient(srv.Client(), srv.URL, "USDT", 10)

	_, err := c.FetchQuotes(context.Background(), "KES", domain.SideSell)
	require.ErrorIs(t, err, domain.ErrQuoteFetchFailure)
	require.Contains(t, err.Error(), "illegal parameter")
}

func TestBinanceClient_FetchQuotes_Malformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[`))
	}))
	t.Cleanup(srv.Close)

	c := NewBinanceClient(srv.Client(), srv.URL, "USDT", 10)

	_, err := c.FetchQuotes(context.Background(), "KES", domain.SideSell)
	require.ErrorIs(t, err, domain.ErrQuoteFetchFailure)
	require.Contains(t, err.Error(), "decode response")
}
