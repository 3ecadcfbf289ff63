package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
)

type updateCmd struct {
	sources string
}

func (*updateCmd) Name() string { return "update" }
func (*updateCmd) Synopsis() string {
	return "fetch the latest exchange rates from the configured providers"
}
func (*updateCmd) Usage() string {
	return `vth update [-s <sources>]

  Runs one aggregation cycle: every configured provider is queried, the
  results are merged into the cached rate table, and one history record per
  pair is appended. A failing provider is skipped; the command fails only
  when every provider failed.

Usage Examples:
# Refresh all providers.
$ vth update
# Refresh only CoinGecko.
$ vth update -s coingecko

`
}

func (c *updateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.sources, "s", "", "Comma-separated provider name filter (e.g. coingecko,exchangerateapi).")
}

func (c *updateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "no arguments expected")
		return subcommands.ExitUsageError
	}
	app, err := openApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer app.Close()

	var filters []string
	if c.sources != "" {
		filters = strings.Split(c.sources, ",")
	}
	n, err := app.Updater.RunUpdate(filters...)
	app.Actions.Record("UPDATE", err, "sources", c.sources, "updated", n)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if n == 0 {
		fmt.Fprintln(os.Stderr, "no rates updated: every source failed")
		return subcommands.ExitFailure
	}
	fmt.Printf("Updated %d pairs.\n", n)
	return subcommands.ExitSuccess
}
