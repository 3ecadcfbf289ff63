package valutatrade

import (
	"encoding/json"
	"fmt"
	"time"
)

// TimeLayout is the timestamp format used in every persisted document.
// It is second-precise and sorts lexicographically within a timezone.
const TimeLayout = "2006-01-02T15:04:05"

// Meta is a provider-specific diagnostic payload attached to a history
// record (latency, status code, raw provider identifiers). It is opaque to
// the resolver and only kept for traceability.
type Meta map[string]any

// PairKey returns the canonical identifier for a cached rate: "{code}_{base}".
func PairKey(code, base string) string { return code + "_" + base }

// RatePair is one live entry of the rate table: the price of 1 unit of the
// pair's currency expressed in the base currency.
type RatePair struct {
	Rate      float64
	UpdatedAt time.Time
	Source    string
}

// RateTable maps canonical pair keys to their last fetched rate. The table
// is replaced wholesale on every successful aggregation cycle; readers never
// mutate it.
type RateTable struct {
	Pairs       map[string]RatePair
	LastRefresh time.Time
}

// Pair returns the entry for the given pair key.
func (t *RateTable) Pair(key string) (RatePair, bool) {
	p, ok := t.Pairs[key]
	return p, ok
}

// HistoryRecord is one immutable fact of the append-only history: a rate
// observed from one source during one cycle. Its ID is deterministic, so
// re-appending the same cycle replaces rather than duplicates.
type HistoryRecord struct {
	ID           string
	FromCurrency string
	ToCurrency   string
	Rate         float64
	Timestamp    time.Time
	Source       string
	Meta         Meta
}

// HistoryID builds the deterministic record id "{from}_{to}_{timestamp}".
func HistoryID(from, to string, ts time.Time) string {
	return fmt.Sprintf("%s_%s_%s", from, to, ts.Format(TimeLayout))
}

// Wire representations. Persisted documents use snake_case fields and the
// fixed TimeLayout, matching the files read by concurrent CLI invocations.

type jPair struct {
	Rate      float64 `json:"rate"`
	UpdatedAt string  `json:"updated_at"`
	Source    string  `json:"source"`
}

type jTable struct {
	Pairs       map[string]jPair `json:"pairs"`
	LastRefresh string           `json:"last_refresh"`
}

type jRecord struct {
	ID           string  `json:"id"`
	FromCurrency string  `json:"from_currency"`
	ToCurrency   string  `json:"to_currency"`
	Rate         float64 `json:"rate"`
	Timestamp    string  `json:"timestamp"`
	Source       string  `json:"source"`
	Meta         Meta    `json:"meta"`
}

func encodeRateTable(t *RateTable) ([]byte, error) {
	jt := jTable{
		Pairs:       make(map[string]jPair, len(t.Pairs)),
		LastRefresh: t.LastRefresh.Format(TimeLayout),
	}
	for key, p := range t.Pairs {
		jt.Pairs[key] = jPair{
			Rate:      p.Rate,
			UpdatedAt: p.UpdatedAt.Format(TimeLayout),
			Source:    p.Source,
		}
	}
	return json.MarshalIndent(jt, "", "    ")
}

func decodeRateTable(data []byte) (*RateTable, error) {
	var jt jTable
	if err := json.Unmarshal(data, &jt); err != nil {
		return nil, fmt.Errorf("malformed rate table: %w", err)
	}
	t := &RateTable{Pairs: make(map[string]RatePair, len(jt.Pairs))}
	if jt.LastRefresh != "" {
		refresh, err := time.ParseInLocation(TimeLayout, jt.LastRefresh, time.Local)
		if err != nil {
			return nil, fmt.Errorf("malformed last_refresh %q: %w", jt.LastRefresh, err)
		}
		t.LastRefresh = refresh
	}
	for key, jp := range jt.Pairs {
		updated, err := time.ParseInLocation(TimeLayout, jp.UpdatedAt, time.Local)
		if err != nil {
			return nil, fmt.Errorf("malformed updated_at for %q: %w", key, err)
		}
		t.Pairs[key] = RatePair{Rate: jp.Rate, UpdatedAt: updated, Source: jp.Source}
	}
	return t, nil
}

func encodeHistory(records []HistoryRecord) ([]byte, error) {
	jrs := make([]jRecord, 0, len(records))
	for _, r := range records {
		jrs = append(jrs, jRecord{
			ID:           r.ID,
			FromCurrency: r.FromCurrency,
			ToCurrency:   r.ToCurrency,
			Rate:         r.Rate,
			Timestamp:    r.Timestamp.Format(TimeLayout),
			Source:       r.Source,
			Meta:         r.Meta,
		})
	}
	return json.MarshalIndent(jrs, "", "    ")
}

func decodeHistory(data []byte) ([]HistoryRecord, error) {
	var jrs []jRecord
	if err := json.Unmarshal(data, &jrs); err != nil {
		return nil, fmt.Errorf("malformed history: %w", err)
	}
	records := make([]HistoryRecord, 0, len(jrs))
	for _, jr := range jrs {
		ts, err := time.ParseInLocation(TimeLayout, jr.Timestamp, time.Local)
		if err != nil {
			return nil, fmt.Errorf("malformed timestamp in record %q: %w", jr.ID, err)
		}
		records = append(records, HistoryRecord{
			ID:           jr.ID,
			FromCurrency: jr.FromCurrency,
			ToCurrency:   jr.ToCurrency,
			Rate:         jr.Rate,
			Timestamp:    ts,
			Source:       jr.Source,
			Meta:         jr.Meta,
		})
	}
	return records, nil
}
