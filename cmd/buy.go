package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/valutatrade"
	"github.com/google/subcommands"
)

type buyCmd struct {
	username string
	verbose  bool
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "buy an amount of a currency" }
func (*buyCmd) Usage() string {
	return `vth buy -u <username> [-v] <currency> <amount>

  Credits the amount to the user's wallet for that currency (created on
  first buy) and prints the estimated cost in the base currency, valued at
  the current cached rate.

Usage Examples:
$ vth buy -u alice BTC 0.25

`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.username, "u", "", "Account to operate on.")
	f.BoolVar(&c.verbose, "v", false, "Also print the balance change.")
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "expected: vth buy -u <username> <currency> <amount>")
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

	trade, err := valutatrade.Buy(app.Store, app.Resolver, user.ID, f.Arg(0), amount)
	app.Actions.Record("BUY", err, "user_id", user.ID, "currency", f.Arg(0), "amount", amount.String())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Bought %s %s at %.2f %s/%s.\n",
		trade.Amount.StringFixed(4), trade.Currency, trade.UnitRate, trade.Base, trade.Currency)
	if c.verbose {
		fmt.Printf("Balance change: %s -> %s %s\n",
			trade.OldBalance.StringFixed(4), trade.NewBalance.StringFixed(4), trade.Currency)
	}
	fmt.Printf("Estimated cost: %s %s\n", trade.Value.StringFixed(2), trade.Base)
	return subcommands.ExitSuccess
}
