// Package exchangerate implements the ExchangeRate-API price source for
// fiat currencies. The provider quotes base->code rates (units of code per 1
// base unit), so each rate is inverted into the canonical code->base form.
package exchangerate

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/etnz/valutatrade"
	"github.com/shopspring/decimal"
)

// Config is the static configuration of the adapter.
type Config struct {
	URL        string // API root, e.g. "https://v6.exchangerate-api.com/v6"
	APIKey     string
	Base       string   // base currency code, e.g. "USD"
	Currencies []string // fiat codes to quote
	Timeout    time.Duration
}

// Client fetches fiat rates from ExchangeRate-API.
type Client struct {
	cfg  Config
	http *http.Client
}

// New returns a client using cfg. The request timeout applies per fetch.
func New(cfg Config) *Client {
	return &Client{cfg: cfg, http: &http.Client{Timeout: cfg.Timeout}}
}

// Name returns the provider name recorded in history entries.
func (c *Client) Name() string { return "ExchangeRate-API" }

// FetchRates queries the provider's latest endpoint for the base currency
// and returns inverted, base-denominated rates keyed by canonical pair key.
// A missing API key, transport failure or non-success provider status all
// yield a SourceUnavailableError and no rates. A raw rate of exactly zero is
// omitted rather than stored, so downstream divisions stay defined.
func (c *Client) FetchRates() (map[string]valutatrade.SourceRate, error) {
	if c.cfg.APIKey == "" {
		return nil, &valutatrade.SourceUnavailableError{
			Source: c.Name(),
			Err:    errors.New("EXCHANGERATE_API_KEY is not set"),
		}
	}
	addr := fmt.Sprintf("%s/%s/latest/%s", strings.TrimSuffix(c.cfg.URL, "/"), c.cfg.APIKey, c.cfg.Base)

	var payload struct {
		Result            string                     `json:"result"`
		TimeLastUpdateUTC string                     `json:"time_last_update_utc"`
		Rates             map[string]decimal.Decimal `json:"rates"`
	}
	info, err := jwget(c.http, addr, &payload)
	if err != nil {
		return nil, &valutatrade.SourceUnavailableError{Source: c.Name(), Err: err}
	}
	if payload.Result != "success" {
		return nil, &valutatrade.SourceUnavailableError{
			Source: c.Name(),
			Err:    fmt.Errorf("provider status %q", payload.Result),
		}
	}

	rates := make(map[string]valutatrade.SourceRate)
	for _, code := range c.cfg.Currencies {
		raw, ok := payload.Rates[code]
		if !ok || raw.IsZero() {
			continue
		}
		rates[valutatrade.PairKey(code, c.cfg.Base)] = valutatrade.SourceRate{
			Rate: decimal.NewFromInt(1).Div(raw).InexactFloat64(),
			Meta: valutatrade.Meta{
				"raw_rate":             raw.InexactFloat64(),
				"request_ms":           float64(info.elapsed.Milliseconds()),
				"status_code":          info.status,
				"time_last_update_utc": payload.TimeLastUpdateUTC,
			},
		}
	}
	return rates, nil
}
