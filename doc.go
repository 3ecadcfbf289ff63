// Package valutatrade implements a personal multi-currency ledger.
//
// The heart of the package is the exchange-rate pipeline: provider-specific
// adapters (see the coingecko and exchangerate subpackages) normalize
// heterogeneous price feeds into base-currency rates, an Updater merges one
// refresh cycle into a single rate table and an append-only history, a Store
// persists both atomically on disk, and a Resolver answers arbitrary
// currency-pair queries (direct, inverse or triangulated through the base)
// while enforcing a freshness window.
//
// Around that pipeline the package keeps the simple ledger bookkeeping:
// user accounts, per-user portfolios of currency wallets, and buy/sell
// operations valued through the Resolver.
package valutatrade
