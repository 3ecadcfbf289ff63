package renderer

import (
	"sort"
	"strconv"

	"github.com/etnz/valutatrade"
)

// RatesView is the flattened, display-ready form of a rate table.
type RatesView struct {
	Base        string
	LastRefresh string
	Rows        []RateRow
}

// RateRow is one line of the rates table.
type RateRow struct {
	Pair      string
	Rate      string
	UpdatedAt string
	Source    string
}

// NewRatesView flattens the table into sorted rows. An optional currency
// filter keeps only pairs whose from-currency matches.
func NewRatesView(t *valutatrade.RateTable, base, currencyFilter string) *RatesView {
	v := &RatesView{
		Base:        base,
		LastRefresh: t.LastRefresh.Format(valutatrade.TimeLayout),
	}
	keys := make([]string, 0, len(t.Pairs))
	for key := range t.Pairs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if currencyFilter != "" && !hasFrom(key, currencyFilter) {
			continue
		}
		p := t.Pairs[key]
		v.Rows = append(v.Rows, RateRow{
			Pair:      key,
			Rate:      strconv.FormatFloat(p.Rate, 'f', -1, 64),
			UpdatedAt: p.UpdatedAt.Format(valutatrade.TimeLayout),
			Source:    p.Source,
		})
	}
	return v
}

func hasFrom(pairKey, code string) bool {
	for i := range pairKey {
		if pairKey[i] == '_' {
			return pairKey[:i] == code
		}
	}
	return false
}

// Rates renders the rate table as a markdown table.
func Rates(t *valutatrade.RateTable, base, currencyFilter string) string {
	return renderTemplate("rates", "rates.md", NewRatesView(t, base, currencyFilter))
}
