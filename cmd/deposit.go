package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/valutatrade"
	"github.com/google/subcommands"
)

type depositCmd struct {
	username string
}

func (*depositCmd) Name() string     { return "deposit" }
func (*depositCmd) Synopsis() string { return "credit an amount to a wallet" }
func (*depositCmd) Usage() string {
	return `vth deposit -u <username> <currency> <amount>

  Credits the amount to the user's wallet for that currency without any
  rate valuation. The wallet is created on first use.

`
}

func (c *depositCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.username, "u", "", "Account to operate on.")
}

func (c *depositCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "expected: vth deposit -u <username> <currency> <amount>")
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
	code, err := valutatrade.NormalizeCurrency(f.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	amount, err := parseAmount(f.Arg(1))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	p, err := valutatrade.LoadPortfolio(app.Store, user.ID)
	if err == nil {
		if err = p.Deposit(code, amount); err == nil {
			err = valutatrade.SavePortfolio(app.Store, p)
		}
	}
	app.Actions.Record("DEPOSIT", err, "user_id", user.ID, "currency", code, "amount", amount.String())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Deposited %s %s.\n", amount.StringFixed(4), code)
	return subcommands.ExitSuccess
}
