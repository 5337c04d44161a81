// Package marketdata fetches daily price history and ticker metadata
// from an EODHD-compatible market data API.
package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lalax124/arthaai/internal/config"
	"github.com/lalax124/arthaai/internal/models"
)

// Client handles integration with the market data provider
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
	log     *logrus.Logger
}

// NewClient initializes a new market data client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		baseURL: cfg.EODHDURL,
		apiKey:  cfg.EODHDAPIKey,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// eodBar is the provider's end-of-day row shape
type eodBar struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// fromDate maps a period token to the first date of the window
func fromDate(period string, now time.Time) time.Time {
	switch period {
	case "1d":
		// A week back covers weekends and holidays; callers take the last bar
		return now.AddDate(0, 0, -7)
	case "1mo":
		return now.AddDate(0, -1, 0)
	case "3mo":
		return now.AddDate(0, -3, 0)
	default: // "1y"
		return now.AddDate(-1, 0, 0)
	}
}

// History returns the time-ordered daily bars for a ticker over the
// given period ("1d", "1mo", "3mo" or "1y"). An unknown ticker yields an
// empty slice, not an error.
func (c *Client) History(ctx context.Context, ticker, period string) ([]models.PriceBar, error) {
	from := fromDate(period, time.Now()).Format("2006-01-02")
	addr := fmt.Sprintf("%s/api/eod/%s?fmt=json&period=d&from=%s&api_token=%s",
		c.baseURL, url.PathEscape(ticker), from, url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("market data request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		c.log.Debugf("No market data for ticker %s", ticker)
		return []models.PriceBar{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code from market data provider: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read market data response: %w", err)
	}

	var raw []eodBar
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse market data response: %w", err)
	}

	bars := make([]models.PriceBar, len(raw))
	for i, b := range raw {
		bars[i] = models.PriceBar{
			Date:   b.Date,
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: b.Volume,
		}
	}

	c.log.Debugf("Fetched %d bars for %s over %s", len(bars), ticker, period)
	return bars, nil
}

// fundamentals is the subset of the provider's fundamentals document we use
type fundamentals struct {
	General struct {
		Name string `json:"Name"`
	} `json:"General"`
	Highlights struct {
		PERatio       *float64 `json:"PERatio"`
		DividendYield *float64 `json:"DividendYield"`
	} `json:"Highlights"`
}

// Info returns descriptive metadata for a ticker. Individual fields may
// be absent from the provider; a missing ticker is an error.
func (c *Client) Info(ctx context.Context, ticker string) (*models.TickerInfo, error) {
	addr := fmt.Sprintf("%s/api/fundamentals/%s?fmt=json&filter=General,Highlights&api_token=%s",
		c.baseURL, url.PathEscape(ticker), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fundamentals request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code from market data provider: %d", resp.StatusCode)
	}

	var doc fundamentals
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse fundamentals response: %w", err)
	}

	return &models.TickerInfo{
		Name:          doc.General.Name,
		PERatio:       doc.Highlights.PERatio,
		DividendYield: doc.Highlights.DividendYield,
	}, nil
}
