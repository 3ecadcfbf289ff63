package valutatrade

import (
	"errors"
	"fmt"
)

// ErrNoCachedRates is returned when the rate table has never been populated.
// It is a user-facing condition: the fix is to run an update cycle.
var ErrNoCachedRates = errors.New("no cached rates, run 'vth update' to fetch them")

// ErrNotFound is returned by record lookups when no record matches.
var ErrNotFound = errors.New("record not found")

// UnknownCurrencyError reports a currency code absent from the registry.
type UnknownCurrencyError struct {
	Code string
}

func (e *UnknownCurrencyError) Error() string {
	return fmt.Sprintf("unknown currency %q", e.Code)
}

// PairUnavailableError reports a pair that has no usable cached rate, even
// after a refresh attempt. A stored rate that is zero or negative is treated
// the same way: degenerate values are never served.
type PairUnavailableError struct {
	Pair string
}

func (e *PairUnavailableError) Error() string {
	return fmt.Sprintf("rate for %s is unavailable", e.Pair)
}

// SourceUnavailableError reports that a single provider could not deliver
// rates: transport failure, non-success provider status, or a missing
// credential. The aggregation cycle recovers from it locally.
type SourceUnavailableError struct {
	Source string
	Err    error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("source %s unavailable: %v", e.Source, e.Err)
}

func (e *SourceUnavailableError) Unwrap() error { return e.Err }

// RefreshFailedError reports that a staleness-triggered refresh could not
// produce the required pair. Unlike SourceUnavailableError it reaches the
// resolver's caller: freshness is a correctness guarantee, so a stale value
// is never served silently.
type RefreshFailedError struct {
	Pair string
	Err  error
}

func (e *RefreshFailedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("could not refresh rate for %s: %v", e.Pair, e.Err)
	}
	return fmt.Sprintf("could not refresh rate for %s: all sources failed", e.Pair)
}

func (e *RefreshFailedError) Unwrap() error { return e.Err }

// InsufficientFundsError reports a withdrawal larger than the wallet balance.
type InsufficientFundsError struct {
	Currency  string
	Available string
	Required  string
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: %s %s available, %s required",
		e.Available, e.Currency, e.Required)
}
