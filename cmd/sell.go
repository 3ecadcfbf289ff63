package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/valutatrade"
	"github.com/google/subcommands"
)

type sellCmd struct {
	username string
	verbose  bool
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell an amount of a currency" }
func (*sellCmd) Usage() string {
	return `vth sell -u <username> [-v] <currency> <amount>

  Debits the amount from the user's wallet for that currency and prints the
  estimated revenue in the base currency, valued at the current cached rate.

Usage Examples:
$ vth sell -u alice BTC 0.1

`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.username, "u", "", "Account to operate on.")
	f.BoolVar(&c.verbose, "v", false, "Also print the balance change.")
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "expected: vth sell -u <username> <currency> <amount>")
		return subcommands.ExitUsageError
	}
	app, err := openApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer app.Close()

	user, err := requireUser(app, c.username)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	amount, err := parseAmount(f.Arg(1))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	trade, err := valutatrade.Sell(app.Store, app.Resolver, user.ID, f.Arg(0), amount)
	app.Actions.Record("SELL", err, "user_id", user.ID, "currency", f.Arg(0), "amount", amount.String())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Sold %s %s at %.2f %s/%s.\n",
		trade.Amount.StringFixed(4), trade.Currency, trade.UnitRate, trade.Base, trade.Currency)
	if c.verbose {
		fmt.Printf("Balance change: %s -> %s %s\n",
			trade.OldBalance.StringFixed(4), trade.NewBalance.StringFixed(4), trade.Currency)
	}
	fmt.Printf("Estimated revenue: %s %s\n", trade.Value.StringFixed(2), trade.Base)
	return subcommands.ExitSuccess
}
