package valutatrade

// SourceRate is one normalized quote from a provider: the price of 1 unit of
// the pair's currency in the configured base currency, plus provider
// diagnostics for the history record.
type SourceRate struct {
	Rate float64
	Meta Meta
}

// Source is the capability every price provider adapter implements.
//
// FetchRates returns the provider's quotes keyed by canonical pair key
// ("{code}_{base}"). On failure it returns an empty map together with a
// *SourceUnavailableError, never a partially filled one, so the aggregator
// can skip just that source.
//
// Adapters are stateless aside from their static configuration and perform
// no side effects beyond the network call.
type Source interface {
	Name() string
	FetchRates() (map[string]SourceRate, error)
}
