package p2p

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"p2parb/internal/domain"
)

const (
	OKXName      = "okx"
	okxBooksPath = "/v3/c2c/tradingOrders/books"
)

type OKXClient struct {
	http    *http.Client
	baseURL string
	asset   string
	rows    int
}

type okxAdvert struct {
	Price    string `json:"price"`
	NickName string `json:"nickName"`
}

type okxBooksResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data struct {
		Buy  []okxAdvert `json:"buy"`
		Sell []okxAdvert `json:"sell"`
	} `json:"data"`
}

func (c *OKXClient) Name() string { return OKXName }

func (c *OKXClient) FetchQuotes(ctx context.Context, fiat string, side domain.Side) ([]domain.RawQuote, error) {
	u, err := url.Parse(strings.TrimSuffix(c.baseURL, "/") + okxBooksPath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse okx base URL: %w", err)
	}
	q := u.Query()
	q.Set("quoteCurrency", strings.ToLower(fiat))
	q.Set("baseCurrency", strings.ToLower(c.asset))
	q.Set("side", strings.ToLower(string(side)))
	q.Set("paymentMethod", "all")
	q.Set("userType", "all")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create okx request for %q: %w", fiat, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: okx %s: %v", domain.ErrQuoteFetchFailure, fiat, err)
	}
	defer resp.Body.Close()

	if err = checkStatus(resp, OKXName, fiat); err != nil {
		return nil, err
	}

	var body okxBooksResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: okx %s: decode response: %v", domain.ErrQuoteFetchFailure, fiat, err)
	}
	if body.Code != 0 {
		return nil, fmt.Errorf("%w: okx %s: api code %d: %s", domain.ErrQuoteFetchFailure, fiat, body.Code, body.Msg)
	}

	adverts := body.Data.Sell
	if side == domain.SideBuy {
		adverts = body.Data.Buy
	}
	if len(adverts) > c.rows {
		adverts = adverts[:c.rows]
	}

	now := time.Now().UTC()
	quotes := make([]domain.RawQuote, 0, len(adverts))
	for _, ad := range adverts {
		price, ok := parsePrice(ad.Price)
		if !ok {
			continue
		}
		quotes = append(quotes, domain.RawQuote{
			Source:     OKXName,
			Fiat:       fiat,
			Side:       side,
			Price:      price,
			Advertiser: ad.NickName,
			ReceivedAt: now,
		})
	}
	return quotes, nil
}

func NewOKXClient(httpClient *http.Client, baseURL, asset string, rows int) *OKXClient {
	if rows <= 0 {
		rows = 10
	}
	return &OKXClient{http: httpClient, baseURL: baseURL, asset: asset, rows: rows}
}
