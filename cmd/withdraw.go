package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/valutatrade"
	"github.com/google/subcommands"
)

type withdrawCmd struct {
	username string
}

func (*withdrawCmd) Name() string     { return "withdraw" }
func (*withdrawCmd) Synopsis() string { return "debit an amount from a wallet" }
func (*withdrawCmd) Usage() string {
	return `vth withdraw -u <username> <currency> <amount>

  Debits the amount from the user's wallet for that currency. Fails when
  the balance does not cover the amount.

`
}

func (c *withdrawCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.username, "u", "", "Account to operate on.")
}

func (c *withdrawCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "expected: vth withdraw -u <username> <currency> <amount>")
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
		if err = p.Withdraw(code, amount); err == nil {
			err = valutatrade.SavePortfolio(app.Store, p)
		}
	}
	app.Actions.Record("WITHDRAW", err, "user_id", user.ID, "currency", code, "amount", amount.String())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Withdrew %s %s.\n", amount.StringFixed(4), code)
	return subcommands.ExitSuccess
}
