// Package coingecko implements the CoinGecko price source. Crypto assets
// are quoted by the provider directly in the base currency, so normalized
// rates are copied through unchanged.
package coingecko

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/valutatrade"
)

// Config is the static configuration of the adapter.
type Config struct {
	URL        string            // simple/price endpoint
	Base       string            // base currency code, e.g. "USD"
	Currencies []string          // crypto codes to quote
	IDMap      map[string]string // currency code -> CoinGecko asset id
	Timeout    time.Duration
}

// Client fetches crypto rates from CoinGecko. It is stateless aside from
// its configuration.
type Client struct {
	cfg  Config
	http *http.Client
}

// New returns a client using cfg. The request timeout applies per fetch.
func New(cfg Config) *Client {
	return &Client{cfg: cfg, http: &http.Client{Timeout: cfg.Timeout}}
}

// Name returns the provider name recorded in history entries.
func (c *Client) Name() string { return "CoinGecko" }

// FetchRates queries the provider once for all configured currencies and
// returns base-denominated rates keyed by canonical pair key. On any
// transport or provider failure it returns a SourceUnavailableError and no
// rates.
func (c *Client) FetchRates() (map[string]valutatrade.SourceRate, error) {
	vs := strings.ToLower(c.cfg.Base)
	ids := make([]string, 0, len(c.cfg.Currencies))
	for _, code := range c.cfg.Currencies {
		if id, ok := c.cfg.IDMap[code]; ok {
			ids = append(ids, id)
		}
	}
	addr := fmt.Sprintf("%s?ids=%s&vs_currencies=%s", c.cfg.URL, strings.Join(ids, ","), vs)

	// The payload is keyed by asset id, so it is navigated dynamically:
	// {"bitcoin": {"usd": 50000}, ...}
	var payload any
	info, err := jwget(c.http, addr, &payload)
	if err != nil {
		return nil, &valutatrade.SourceUnavailableError{Source: c.Name(), Err: err}
	}

	rates := make(map[string]valutatrade.SourceRate)
	for _, code := range c.cfg.Currencies {
		id, ok := c.cfg.IDMap[code]
		if !ok {
			continue
		}
		jval, err := jsonpath.Get(fmt.Sprintf("$[%q][%q]", id, vs), payload)
		if err != nil {
			// Asset absent from the response, skip the pair.
			continue
		}
		rate, ok := jval.(float64)
		if !ok {
			continue
		}
		rates[valutatrade.PairKey(code, c.cfg.Base)] = valutatrade.SourceRate{
			Rate: rate,
			Meta: valutatrade.Meta{
				"raw_id":      id,
				"request_ms":  float64(info.elapsed.Milliseconds()),
				"status_code": info.status,
				"etag":        info.etag,
			},
		}
	}
	return rates, nil
}
