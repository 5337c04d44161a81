// Package rates fetches daily foreign-exchange reference rates from the
// ECB XML feed.
package rates

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/beevik/etree"
	"github.com/sirupsen/logrus"

	"github.com/lalax124/arthaai/internal/config"
)

// Rates holds one day of reference rates against the euro
type Rates struct {
	Date  string             `json:"date"`
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// Client handles integration with the ECB reference-rate feed
type Client struct {
	url    string
	client *http.Client
	log    *logrus.Logger
}

// NewClient initializes a new rates client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		url: cfg.ECBRatesURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// Daily fetches the latest daily reference rates
func (c *Client) Daily(ctx context.Context) (*Rates, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rates request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code from rates feed: %d", resp.StatusCode)
	}

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(resp.Body); err != nil {
		return nil, fmt.Errorf("failed to parse rates XML: %w", err)
	}

	return parseDocument(doc)
}

func parseDocument(doc *etree.Document) (*Rates, error) {
	dayCube := doc.FindElement("//Cube[@time]")
	if dayCube == nil {
		return nil, fmt.Errorf("no rate data found in XML")
	}

	rates := &Rates{
		Date:  dayCube.SelectAttrValue("time", ""),
		Base:  "EUR",
		Rates: make(map[string]float64),
	}

	for _, el := range dayCube.FindElements("./Cube[@currency]") {
		currency := el.SelectAttrValue("currency", "")
		rateStr := el.SelectAttrValue("rate", "")
		rate, err := strconv.ParseFloat(rateStr, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse rate for %s: %w", currency, err)
		}
		rates.Rates[currency] = rate
	}

	if len(rates.Rates) == 0 {
		return nil, fmt.Errorf("no currencies found in rates XML")
	}
	return rates, nil
}

// Convert converts an amount between two currencies using the daily
// rates. EUR is the base; converting to or from EUR uses a rate of 1.
func (r *Rates) Convert(amount float64, from, to string) (float64, error) {
	fromRate, err := r.rate(from)
	if err != nil {
		return 0, err
	}
	toRate, err := r.rate(to)
	if err != nil {
		return 0, err
	}
	return amount / fromRate * toRate, nil
}

func (r *Rates) rate(currency string) (float64, error) {
	if currency == r.Base {
		return 1, nil
	}
	rate, ok := r.Rates[currency]
	if !ok {
		return 0, fmt.Errorf("no rate for currency %s", currency)
	}
	return rate, nil
}
