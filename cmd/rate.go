package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/etnz/valutatrade"
	"github.com/google/subcommands"
)

type rateCmd struct{}

func (*rateCmd) Name() string     { return "rate" }
func (*rateCmd) Synopsis() string { return "resolve the current rate for one currency pair" }
func (*rateCmd) Usage() string {
	return `vth rate <from> [<to>]

  Resolves the rate from one currency to another, refreshing the cache first
  when the pair is older than the freshness window. <to> defaults to the
  base currency.

Usage Examples:
$ vth rate BTC
$ vth rate EUR BTC

`
}

func (c *rateCmd) SetFlags(f *flag.FlagSet) {}

func (c *rateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 1 || f.NArg() > 2 {
		fmt.Fprintln(os.Stderr, "expected: vth rate <from> [<to>]")
		return subcommands.ExitUsageError
	}
	app, err := openApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer app.Close()

	from := f.Arg(0)
	to := app.Settings.BaseCurrency
	if f.NArg() == 2 {
		to = f.Arg(1)
	}

	rate, asOf, err := app.Resolver.Resolve(from, to)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("1 %s = %s %s (as of %s)\n",
		from, strconv.FormatFloat(rate, 'f', -1, 64), to,
		asOf.Format(valutatrade.TimeLayout))
	return subcommands.ExitSuccess
}
