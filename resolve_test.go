package valutatrade

import (
	"errors"
	"testing"
	"time"
)

// fakeUpdater is a scripted RateUpdater: each call rewrites the table held in
// the store with the configured pairs and counts the invocation.
type fakeUpdater struct {
	store *Store
	pairs map[string]float64
	err   error
	calls int
}

func (f *fakeUpdater) RunUpdate(filters ...string) (int, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	if len(f.pairs) == 0 {
		return 0, nil
	}
	now := time.Now()
	table := &RateTable{Pairs: map[string]RatePair{}, LastRefresh: now}
	for key, rate := range f.pairs {
		table.Pairs[key] = RatePair{Rate: rate, UpdatedAt: now, Source: "fake"}
	}
	if err := f.store.SaveRateTable(table); err != nil {
		return 0, err
	}
	return len(f.pairs), nil
}

func seedTable(t *testing.T, s *Store, at time.Time, pairs map[string]float64) {
	t.Helper()
	table := &RateTable{Pairs: map[string]RatePair{}, LastRefresh: at}
	for key, rate := range pairs {
		table.Pairs[key] = RatePair{Rate: rate, UpdatedAt: at, Source: "seed"}
	}
	if err := s.SaveRateTable(table); err != nil {
		t.Fatal(err)
	}
}

func newTestResolver(s *Store, u RateUpdater, at time.Time) *Resolver {
	r := NewResolver(s, u, "USD", 5*time.Minute)
	r.now = func() time.Time { return at }
	return r
}

func TestResolver_Resolve(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	fresh := now.Add(-time.Minute)

	tests := []struct {
		name     string
		from, to string
		want     float64
	}{
		{"direct to base", "BTC", "USD", 50000},
		{"inverse from base", "USD", "EUR", 1 / 0.9},
		{"triangulated", "BTC", "EUR", 50000 / 0.9},
		{"identity", "BTC", "BTC", 1.0},
		{"lowercase input", "btc", "usd", 50000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			seedTable(t, s, fresh, map[string]float64{"BTC_USD": 50000, "EUR_USD": 0.9})
			u := &fakeUpdater{store: s}
			r := newTestResolver(s, u, now)

			rate, asOf, err := r.Resolve(tt.from, tt.to)
			if err != nil {
				t.Fatalf("Resolve(%s, %s) unexpected error = %v", tt.from, tt.to, err)
			}
			if rate != tt.want {
				t.Errorf("Resolve(%s, %s) = %v, want %v", tt.from, tt.to, rate, tt.want)
			}
			if u.calls != 0 {
				t.Errorf("fresh cache triggered %d refreshes, want 0", u.calls)
			}
			if asOf.IsZero() {
				t.Error("asOf must be set on success")
			}
		})
	}
}

func TestResolver_TriangulationAsOf(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	older := now.Add(-2 * time.Minute)
	newer := now.Add(-time.Minute)

	s := newTestStore(t)
	if err := s.SaveRateTable(&RateTable{
		Pairs: map[string]RatePair{
			"BTC_USD": {Rate: 50000, UpdatedAt: older, Source: "seed"},
			"EUR_USD": {Rate: 0.9, UpdatedAt: newer, Source: "seed"},
		},
		LastRefresh: newer,
	}); err != nil {
		t.Fatal(err)
	}
	r := newTestResolver(s, &fakeUpdater{store: s}, now)

	_, asOf, err := r.Resolve("BTC", "EUR")
	if err != nil {
		t.Fatal(err)
	}
	if !asOf.Equal(newer) {
		t.Errorf("asOf = %v, want the later component timestamp %v", asOf, newer)
	}
}

func TestResolver_UnknownCurrency(t *testing.T) {
	s := newTestStore(t)
	r := newTestResolver(s, &fakeUpdater{store: s}, time.Now())

	_, _, err := r.Resolve("XYZ", "USD")
	var unknown *UnknownCurrencyError
	if !errors.As(err, &unknown) {
		t.Fatalf("Resolve(XYZ, USD) error = %v, want UnknownCurrencyError", err)
	}
	if unknown.Code != "XYZ" {
		t.Errorf("error carries code %q, want XYZ", unknown.Code)
	}
}

func TestResolver_NoCachedRates(t *testing.T) {
	s := newTestStore(t)
	r := newTestResolver(s, &fakeUpdater{store: s}, time.Now())

	_, _, err := r.Resolve("BTC", "USD")
	if !errors.Is(err, ErrNoCachedRates) {
		t.Errorf("Resolve() on an empty store error = %v, want ErrNoCachedRates", err)
	}
}

func TestResolver_StaleTriggersOneRefresh(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	stale := now.Add(-time.Hour)

	s := newTestStore(t)
	seedTable(t, s, stale, map[string]float64{"BTC_USD": 49000})
	u := &fakeUpdater{store: s, pairs: map[string]float64{"BTC_USD": 50000}}
	r := newTestResolver(s, u, now)

	rate, _, err := r.Resolve("BTC", "USD")
	if err != nil {
		t.Fatalf("Resolve() unexpected error = %v", err)
	}
	if u.calls != 1 {
		t.Errorf("stale pair triggered %d refreshes, want exactly 1", u.calls)
	}
	if rate != 50000 {
		t.Errorf("rate = %v, want refreshed value 50000", rate)
	}
}

func TestResolver_RefreshError(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	s := newTestStore(t)
	seedTable(t, s, now.Add(-time.Hour), map[string]float64{"BTC_USD": 49000})
	u := &fakeUpdater{store: s, err: errors.New("persist failed")}
	r := newTestResolver(s, u, now)

	_, _, err := r.Resolve("BTC", "USD")
	var failed *RefreshFailedError
	if !errors.As(err, &failed) {
		t.Fatalf("Resolve() error = %v, want RefreshFailedError", err)
	}
	if failed.Pair != "BTC_USD" {
		t.Errorf("error carries pair %q, want BTC_USD", failed.Pair)
	}
}

func TestResolver_RefreshUpdatesNothing(t *testing.T) {
	// Every source failing reads as n == 0 with no error; the stale pair is
	// still stale, so the query must fail rather than serve outdated data.
	now := time.Now().Truncate(time.Second)
	s := newTestStore(t)
	seedTable(t, s, now.Add(-time.Hour), map[string]float64{"BTC_USD": 49000})
	u := &fakeUpdater{store: s}
	r := newTestResolver(s, u, now)

	_, _, err := r.Resolve("BTC", "USD")
	var failed *RefreshFailedError
	if !errors.As(err, &failed) {
		t.Fatalf("Resolve() error = %v, want RefreshFailedError", err)
	}
}

func TestResolver_PairMissingAfterRefresh(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	s := newTestStore(t)
	seedTable(t, s, now.Add(-time.Minute), map[string]float64{"EUR_USD": 0.9})
	// The refresh succeeds but still quotes nothing for BTC.
	u := &fakeUpdater{store: s, pairs: map[string]float64{"EUR_USD": 0.9}}
	r := newTestResolver(s, u, now)

	_, _, err := r.Resolve("BTC", "USD")
	var unavailable *PairUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("Resolve() error = %v, want PairUnavailableError", err)
	}
	if unavailable.Pair != "BTC_USD" {
		t.Errorf("error carries pair %q, want BTC_USD", unavailable.Pair)
	}
}

func TestResolver_RejectsDegenerateRate(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	s := newTestStore(t)
	seedTable(t, s, now.Add(-time.Minute), map[string]float64{"BTC_USD": 0})
	r := newTestResolver(s, &fakeUpdater{store: s, pairs: map[string]float64{"BTC_USD": 0}}, now)

	_, _, err := r.Resolve("USD", "BTC")
	var unavailable *PairUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("a zero stored rate must be unavailable, got %v", err)
	}
}
