package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/etnz/valutatrade"
	"github.com/shopspring/decimal"
)

func TestRates(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 30, 5, 0, time.Local)
	table := &valutatrade.RateTable{
		Pairs: map[string]valutatrade.RatePair{
			"BTC_USD": {Rate: 50000, UpdatedAt: at, Source: "CoinGecko"},
			"EUR_USD": {Rate: 1.08, UpdatedAt: at, Source: "ExchangeRate-API"},
		},
		LastRefresh: at,
	}

	got := Rates(table, "USD", "")
	for _, want := range []string{
		"base: USD",
		"| BTC_USD | 50000 | 2026-03-01T12:30:05 | CoinGecko |",
		"| EUR_USD | 1.08 | 2026-03-01T12:30:05 | ExchangeRate-API |",
		"Last refresh: 2026-03-01T12:30:05",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("rendered rates missing %q:\n%s", want, got)
		}
	}
	// Rows come out sorted by pair key.
	if strings.Index(got, "BTC_USD") > strings.Index(got, "EUR_USD") {
		t.Error("rows are not sorted by pair key")
	}
}

func TestRates_CurrencyFilter(t *testing.T) {
	at := time.Now()
	table := &valutatrade.RateTable{
		Pairs: map[string]valutatrade.RatePair{
			"BTC_USD": {Rate: 50000, UpdatedAt: at, Source: "CoinGecko"},
			"EUR_USD": {Rate: 1.08, UpdatedAt: at, Source: "ExchangeRate-API"},
		},
		LastRefresh: at,
	}

	got := Rates(table, "USD", "BTC")
	if !strings.Contains(got, "BTC_USD") {
		t.Error("filtered output is missing the matching pair")
	}
	if strings.Contains(got, "EUR_USD") {
		t.Error("filtered output contains a non-matching pair")
	}
}

func TestRates_Empty(t *testing.T) {
	table := &valutatrade.RateTable{Pairs: map[string]valutatrade.RatePair{}}
	got := Rates(table, "USD", "")
	if !strings.Contains(got, "No cached pairs.") {
		t.Errorf("empty table should render the placeholder, got:\n%s", got)
	}
}

func TestPortfolio(t *testing.T) {
	usd, _ := valutatrade.LookupCurrency("USD")
	btc, _ := valutatrade.LookupCurrency("BTC")
	eth, _ := valutatrade.LookupCurrency("ETH")
	pv := &valutatrade.PortfolioValue{
		Base: "USD",
		Lines: []valutatrade.ValueLine{
			{Currency: btc, Balance: decimal.RequireFromString("0.5"), Value: decimal.RequireFromString("25000")},
			{Currency: eth, Balance: decimal.RequireFromString("2"), Unavailable: true},
			{Currency: usd, Balance: decimal.RequireFromString("100"), Value: decimal.RequireFromString("100")},
		},
		Total: decimal.RequireFromString("25100"),
	}

	got := Portfolio("alice", pv)
	for _, want := range []string{
		"Portfolio of alice (base: USD)",
		"[CRYPTO] BTC",
		"0.5000",
		"unavailable",
		"Total: $25,100.00",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("rendered portfolio missing %q:\n%s", want, got)
		}
	}
}

func TestPortfolio_Empty(t *testing.T) {
	pv := &valutatrade.PortfolioValue{Base: "USD"}
	got := Portfolio("alice", pv)
	if !strings.Contains(got, "The portfolio is empty.") {
		t.Errorf("empty portfolio should render the placeholder, got:\n%s", got)
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount string
		code   string
		want   string
	}{
		{"25100", "USD", "$25,100.00"},
		{"1.5", "EUR", "€1.50"},
		{"0.5", "BTC", "0.5000 BTC"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got := formatMoney(decimal.RequireFromString(tt.amount), tt.code)
			if got != tt.want {
				t.Errorf("formatMoney(%s, %s) = %q, want %q", tt.amount, tt.code, got, tt.want)
			}
		})
	}
}
