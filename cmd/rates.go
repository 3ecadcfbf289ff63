package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/valutatrade"
	"github.com/etnz/valutatrade/renderer"
	"github.com/google/subcommands"
)

type ratesCmd struct {
	currency string
}

func (*ratesCmd) Name() string     { return "rates" }
func (*ratesCmd) Synopsis() string { return "display the cached exchange-rate table" }
func (*ratesCmd) Usage() string {
	return `vth rates [-c <currency>]

  Displays the cached rate table as stored, without triggering a refresh.

Usage Examples:
$ vth rates
$ vth rates -c BTC

`
}

func (c *ratesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.currency, "c", "", "Only show pairs for this currency.")
}

func (c *ratesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	app, err := openApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer app.Close()

	table, err := app.Store.RateTable()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if table == nil {
		fmt.Fprintln(os.Stderr, valutatrade.ErrNoCachedRates)
		return subcommands.ExitFailure
	}

	filter := strings.ToUpper(strings.TrimSpace(c.currency))
	printMarkdown(renderer.Rates(table, app.Settings.BaseCurrency, filter))
	return subcommands.ExitSuccess
}
