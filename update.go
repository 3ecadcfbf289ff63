package valutatrade

import (
	"log"
	"strings"
	"time"
)

// Updater runs aggregation cycles: it asks every configured source for its
// normalized rates, merges them into one table, and persists table and
// history through the store. It is the only producer of RateTable and
// HistoryRecord values.
type Updater struct {
	store   *Store
	sources []Source
}

// NewUpdater returns an updater over the given sources. The slice order is
// the merge precedence: when two sources quote the same pair, the later one
// wins.
func NewUpdater(store *Store, sources ...Source) *Updater {
	return &Updater{store: store, sources: sources}
}

// normalizeSourceName strips punctuation and spaces and lowercases, so that
// "ExchangeRate-API" and "exchangerateapi" compare equal.
func normalizeSourceName(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, "-", "")
	name = strings.ReplaceAll(name, " ", "")
	return name
}

// RunUpdate executes one aggregation cycle and returns the number of pairs
// updated. Zero means every source failed (or none matched the filter): the
// caller can distinguish total failure from partial success without reading
// logs.
//
// If filters is non-empty, only sources whose normalized name matches one of
// the normalized filters are queried. A failing source is logged and skipped;
// it never aborts the cycle. All records of one cycle share one timestamp.
// History is built from the merged table, one record per pair, so a pair
// quoted by two sources yields a single record carrying the winning quote.
// The rate table is replaced wholesale only when the cycle produced at least
// one pair; the previously persisted table is untouched otherwise.
func (u *Updater) RunUpdate(filters ...string) (int, error) {
	log.Println("starting rates update")
	cycle := time.Now()

	wanted := make(map[string]bool, len(filters))
	for _, f := range filters {
		wanted[normalizeSourceName(f)] = true
	}

	merged := make(map[string]RatePair)
	metas := make(map[string]Meta)

	for _, src := range u.sources {
		if len(wanted) > 0 && !wanted[normalizeSourceName(src.Name())] {
			continue
		}
		rates, err := src.FetchRates()
		if err != nil {
			log.Printf("fetching from %s failed: %v", src.Name(), err)
			continue
		}
		log.Printf("fetching from %s: OK (%d rates)", src.Name(), len(rates))
		for key, sr := range rates {
			if _, _, ok := strings.Cut(key, "_"); !ok {
				log.Printf("skipping malformed pair key %q from %s", key, src.Name())
				continue
			}
			merged[key] = RatePair{Rate: sr.Rate, UpdatedAt: cycle, Source: src.Name()}
			metas[key] = sr.Meta
		}
	}

	if len(merged) == 0 {
		return 0, nil
	}

	records := make([]HistoryRecord, 0, len(merged))
	for key, p := range merged {
		from, to, _ := strings.Cut(key, "_")
		records = append(records, HistoryRecord{
			ID:           HistoryID(from, to, cycle),
			FromCurrency: from,
			ToCurrency:   to,
			Rate:         p.Rate,
			Timestamp:    cycle,
			Source:       p.Source,
			Meta:         metas[key],
		})
	}

	if err := u.store.AppendHistory(records); err != nil {
		return 0, err
	}
	table := &RateTable{Pairs: merged, LastRefresh: cycle}
	if err := u.store.SaveRateTable(table); err != nil {
		return 0, err
	}
	log.Printf("wrote %d rates to %s", len(merged), u.store.path(ratesFilename))
	return len(merged), nil
}
