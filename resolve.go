package valutatrade

import (
	"time"
)

// RateUpdater is the slice of the Updater the resolver needs to trigger a
// refresh cycle. It is an interface so staleness behavior can be tested with
// a fake.
type RateUpdater interface {
	RunUpdate(filters ...string) (int, error)
}

// Resolver answers currency-pair rate queries from the cached table,
// enforcing the freshness window. It only ever reads the table; when a
// required pair is stale or missing it runs one full aggregation cycle
// through the updater instead of patching the table itself.
type Resolver struct {
	store   *Store
	updater RateUpdater
	base    string
	ttl     time.Duration
	now     func() time.Time
}

// NewResolver returns a resolver reading from store, refreshing through
// updater, with all cached rates denominated in base and considered stale
// after ttl.
func NewResolver(store *Store, updater RateUpdater, base string, ttl time.Duration) *Resolver {
	return &Resolver{store: store, updater: updater, base: base, ttl: ttl, now: time.Now}
}

// Base returns the pivot currency all cached rates are denominated in.
func (r *Resolver) Base() string { return r.base }

func (r *Resolver) stale(p RatePair, now time.Time) bool {
	return now.Sub(p.UpdatedAt) > r.ttl
}

// lookup returns the usable rate for key. A missing entry and a stored rate
// that is not strictly positive are both reported as unavailable.
func lookup(table *RateTable, key string) (RatePair, error) {
	p, ok := table.Pair(key)
	if !ok || p.Rate <= 0 {
		return RatePair{}, &PairUnavailableError{Pair: key}
	}
	return p, nil
}

// Resolve returns the rate from one currency to another together with the
// timestamp the rate is valid as of.
//
// Identical codes short-circuit to 1.0. Otherwise the rate is computed from
// the cached base-denominated table: directly when to is the base, as the
// multiplicative inverse when from is the base, and by triangulation through
// the base otherwise (the reported timestamp is then the later of the two
// component timestamps).
//
// Error conditions are distinct and user-facing: UnknownCurrencyError,
// ErrNoCachedRates when no table was ever written, RefreshFailedError when a
// staleness-triggered refresh could not restore freshness, and
// PairUnavailableError when a pair is absent even after a refresh.
func (r *Resolver) Resolve(from, to string) (float64, time.Time, error) {
	from, err := NormalizeCurrency(from)
	if err != nil {
		return 0, time.Time{}, err
	}
	to, err = NormalizeCurrency(to)
	if err != nil {
		return 0, time.Time{}, err
	}

	now := r.now()
	if from == to {
		return 1.0, now, nil
	}

	table, err := r.store.RateTable()
	if err != nil {
		return 0, time.Time{}, err
	}
	if table == nil {
		return 0, time.Time{}, ErrNoCachedRates
	}

	// Keys required for this query: one per side that is not the base.
	var needed []string
	if from != r.base {
		needed = append(needed, PairKey(from, r.base))
	}
	if to != r.base {
		needed = append(needed, PairKey(to, r.base))
	}

	refresh := false
	for _, key := range needed {
		p, ok := table.Pair(key)
		if !ok || r.stale(p, now) {
			refresh = true
			break
		}
	}

	if refresh {
		n, err := r.updater.RunUpdate()
		if err != nil {
			return 0, time.Time{}, &RefreshFailedError{Pair: PairKey(from, to), Err: err}
		}
		if fresh, err := r.store.RateTable(); err == nil && fresh != nil {
			table = fresh
		}
		if n == 0 {
			// Nothing was updated: serve only if every required pair is
			// somehow present and fresh, fail otherwise.
			for _, key := range needed {
				p, ok := table.Pair(key)
				if !ok || r.stale(p, now) {
					return 0, time.Time{}, &RefreshFailedError{Pair: key}
				}
			}
		}
	}

	switch {
	case to == r.base:
		p, err := lookup(table, PairKey(from, r.base))
		if err != nil {
			return 0, time.Time{}, err
		}
		return p.Rate, p.UpdatedAt, nil

	case from == r.base:
		p, err := lookup(table, PairKey(to, r.base))
		if err != nil {
			return 0, time.Time{}, err
		}
		return 1 / p.Rate, p.UpdatedAt, nil

	default:
		pFrom, err := lookup(table, PairKey(from, r.base))
		if err != nil {
			return 0, time.Time{}, err
		}
		pTo, err := lookup(table, PairKey(to, r.base))
		if err != nil {
			return 0, time.Time{}, err
		}
		asOf := pFrom.UpdatedAt
		if pTo.UpdatedAt.After(asOf) {
			asOf = pTo.UpdatedAt
		}
		return pFrom.Rate / pTo.Rate, asOf, nil
	}
}
