// Package cmd implements the CLI application to manage the ledger.
package cmd

import (
	"flag"
	"fmt"
	"log"

	"github.com/etnz/valutatrade"
	"github.com/etnz/valutatrade/coingecko"
	"github.com/etnz/valutatrade/exchangerate"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on
// the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&updateCmd{}, "rates")
	c.Register(&rateCmd{}, "rates")
	c.Register(&ratesCmd{}, "rates")
	c.Register(&watchCmd{}, "rates")

	c.Register(&registerCmd{}, "accounts")
	c.Register(&loginCmd{}, "accounts")

	c.Register(&depositCmd{}, "portfolio")
	c.Register(&withdrawCmd{}, "portfolio")
	c.Register(&buyCmd{}, "portfolio")
	c.Register(&sellCmd{}, "portfolio")
	c.Register(&portfolioCmd{}, "portfolio")

	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to
// use global variables.

var configFile = flag.String("config", "vth.yaml", "Path to the configuration file (YAML)")

// App holds the wired ledger components shared by every subcommand: one
// store per process, the updater over the configured sources, and the
// resolver reading through it.
type App struct {
	Settings *valutatrade.Settings
	Store    *valutatrade.Store
	Updater  *valutatrade.Updater
	Resolver *valutatrade.Resolver
	Actions  *valutatrade.ActionLog
}

// openApp loads settings and constructs the component graph.
func openApp() (*App, error) {
	settings, err := valutatrade.LoadSettings(*configFile)
	if err != nil {
		return nil, err
	}
	store := valutatrade.NewStore(settings.DataDir)

	// Source order is the merge precedence: on a pair-key collision the
	// later source wins, so fiat quotes take precedence over crypto ones
	// for any overlapping pair.
	sources := []valutatrade.Source{
		coingecko.New(coingecko.Config{
			URL:        settings.CoinGecko.URL,
			Base:       settings.BaseCurrency,
			Currencies: settings.CoinGecko.Currencies,
			IDMap:      settings.CoinGecko.IDMap,
			Timeout:    settings.RequestTimeout,
		}),
		exchangerate.New(exchangerate.Config{
			URL:        settings.ExchangeRate.URL,
			APIKey:     settings.ExchangeRate.APIKey,
			Base:       settings.BaseCurrency,
			Currencies: settings.ExchangeRate.Currencies,
			Timeout:    settings.RequestTimeout,
		}),
	}

	updater := valutatrade.NewUpdater(store, sources...)
	resolver := valutatrade.NewResolver(store, updater, settings.BaseCurrency, settings.RatesTTL)

	actions, err := valutatrade.OpenActionLog(settings.ActionLogPath)
	if err != nil {
		log.Printf("warning: action log disabled: %v", err)
		actions = nil
	}

	return &App{
		Settings: settings,
		Store:    store,
		Updater:  updater,
		Resolver: resolver,
		Actions:  actions,
	}, nil
}

// Close releases the app's resources.
func (a *App) Close() {
	a.Actions.Close()
}

// requireUser looks up the account behind the -u flag shared by the
// portfolio commands.
func requireUser(a *App, username string) (valutatrade.User, error) {
	if username == "" {
		return valutatrade.User{}, fmt.Errorf("the -u <username> flag is required")
	}
	return valutatrade.FindUser(a.Store, username)
}

// parseAmount parses a positive decimal command-line argument.
func parseAmount(arg string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(arg)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q", arg)
	}
	if !amount.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("amount must be a positive number")
	}
	return amount, nil
}
