package valutatrade

import (
	"fmt"
	"strings"
)

// CurrencyKind distinguishes fiat currencies from crypto assets.
type CurrencyKind int

const (
	Fiat CurrencyKind = iota
	Crypto
)

// Currency describes one tradable currency known to the ledger.
// Fiat currencies carry an issuing country; crypto assets carry their
// consensus algorithm and last known market capitalization.
type Currency struct {
	Code           string
	Name           string
	Kind           CurrencyKind
	IssuingCountry string  // fiat only
	Algorithm      string  // crypto only
	MarketCap      float64 // crypto only, in base currency units
}

// DisplayInfo returns the human-readable description used in listings.
func (c Currency) DisplayInfo() string {
	switch c.Kind {
	case Crypto:
		return fmt.Sprintf("[CRYPTO] %s - %s (Algo: %s, MCAP: %.2e)", c.Code, c.Name, c.Algorithm, c.MarketCap)
	default:
		return fmt.Sprintf("[FIAT] %s - %s (Issuing: %s)", c.Code, c.Name, c.IssuingCountry)
	}
}

var currencies = map[string]Currency{}

// RegisterCurrency adds a currency to the registry, replacing any previous
// definition for the same code.
func RegisterCurrency(c Currency) {
	currencies[c.Code] = c
}

// LookupCurrency returns the registered currency for code. The code is
// normalized to upper case, so "btc" and "BTC" are equivalent.
func LookupCurrency(code string) (Currency, error) {
	c, ok := currencies[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return Currency{}, &UnknownCurrencyError{Code: code}
	}
	return c, nil
}

// NormalizeCurrency validates code against the registry and returns its
// canonical (upper case) form.
func NormalizeCurrency(code string) (string, error) {
	c, err := LookupCurrency(code)
	if err != nil {
		return "", err
	}
	return c.Code, nil
}

func init() {
	RegisterCurrency(Currency{Code: "USD", Name: "US Dollar", Kind: Fiat, IssuingCountry: "United States"})
	RegisterCurrency(Currency{Code: "EUR", Name: "Euro", Kind: Fiat, IssuingCountry: "Eurozone"})
	RegisterCurrency(Currency{Code: "GBP", Name: "Pound Sterling", Kind: Fiat, IssuingCountry: "United Kingdom"})
	RegisterCurrency(Currency{Code: "RUB", Name: "Russian Ruble", Kind: Fiat, IssuingCountry: "Russia"})
	RegisterCurrency(Currency{Code: "BTC", Name: "Bitcoin", Kind: Crypto, Algorithm: "SHA-256", MarketCap: 1.12e12})
	RegisterCurrency(Currency{Code: "ETH", Name: "Ethereum", Kind: Crypto, Algorithm: "Ethash", MarketCap: 4.50e11})
	RegisterCurrency(Currency{Code: "SOL", Name: "Solana", Kind: Crypto, Algorithm: "PoH", MarketCap: 8.00e10})
}
