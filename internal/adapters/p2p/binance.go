package p2p

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"p2parb/internal/domain"
)

const (
	BinanceName        = "binance"
	binanceSearchPath  = "/bapi/c2c/v2/friendly/c2c/adv/search"
	binanceSuccessCode = "000000"
)

type BinanceClient struct {
	http    *http.Client
	baseURL string
	asset   string
	rows    int
}

type binanceSearchRequest struct {
	Asset     string   `json:"asset"`
	Fiat      string   `json:"fiat"`
	TradeType string   `json:"tradeType"`
	Page      int      `json:"page"`
	Rows      int      `json:"rows"`
	PayTypes  []string `json:"payTypes"`
}

type binanceSearchResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Success bool   `json:"success"`
	Data    []struct {
		Adv struct {
			Price     string `json:"price"`
			TradeType string `json:"tradeType"`
		} `json:"adv"`
		Advertiser struct {
			NickName string `json:"nickName"`
		} `json:"advertiser"`
	} `json:"data"`
}

func (c *BinanceClient) Name() string { return BinanceName }

// FetchQuotes returns adverts whose owner trades on `side`.
// Binance filters by the taker's intent, so the request asks for the opposite side.
func (c *BinanceClient) FetchQuotes(ctx context.Context, fiat string, side domain.Side) ([]domain.RawQuote, error) {
	takerSide := domain.SideBuy
	if side == domain.SideBuy {
		takerSide = domain.SideSell
	}

	payload, err := json.Marshal(binanceSearchRequest{
		Asset:     c.asset,
		Fiat:      fiat,
		TradeType: string(takerSide),
		Page:      1,
		Rows:      c.rows,
		PayTypes:  []string{},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode binance request for %q: %w", fiat, err)
	}

	url := strings.TrimSuffix(c.baseURL, "/") + binanceSearchPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create binance request for %q: %w", fiat, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: binance %s: %v", domain.ErrQuoteFetchFailure, fiat, err)
	}
	defer resp.Body.Close()

	if err = checkStatus(resp, BinanceName, fiat); err != nil {
		return nil, err
	}

	var body binanceSearchResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: binance %s: decode response: %v", domain.ErrQuoteFetchFailure, fiat, err)
	}
	if body.Code != binanceSuccessCode {
		return nil, fmt.Errorf("%w: binance %s: api code %s: %s", domain.ErrQuoteFetchFailure, fiat, body.Code, body.Message)
	}

	now := time.Now().UTC()
	quotes := make([]domain.RawQuote, 0, len(body.Data))
	for _, item := range body.Data {
		price, ok := parsePrice(item.Adv.Price)
		if !ok {
			continue
		}
		quotes = append(quotes, domain.RawQuote{
			Source:     BinanceName,
			Fiat:       fiat,
			Side:       side,
			Price:      price,
			Advertiser: item.Advertiser.NickName,
			ReceivedAt: now,
		})
	}
	return quotes, nil
}

func NewBinanceClient(httpClient *http.Client, baseURL, asset string, rows int) *BinanceClient {
	if rows <= 0 {
		rows = 10
	}
	return &BinanceClient{http: httpClient, baseURL: baseURL, asset: asset, rows: rows}
}
