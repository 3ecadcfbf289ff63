package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/valutatrade"
	"github.com/google/subcommands"
)

type registerCmd struct {
	username string
	password string
}

func (*registerCmd) Name() string     { return "register" }
func (*registerCmd) Synopsis() string { return "create a new user account" }
func (*registerCmd) Usage() string {
	return `vth register -u <username> -p <password>

  Creates a new account with an empty portfolio holding one base-currency
  wallet.

`
}

func (c *registerCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.username, "u", "", "Username for the new account.")
	f.StringVar(&c.password, "p", "", "Password for the new account.")
}

func (c *registerCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.username == "" || c.password == "" {
		fmt.Fprintln(os.Stderr, "both -u and -p are required")
		return subcommands.ExitUsageError
	}
	app, err := openApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer app.Close()

	user, err := valutatrade.RegisterUser(app.Store, c.username, c.password, app.Settings.BaseCurrency)
	app.Actions.Record("REGISTER", err, "username", c.username)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Registered user %q (id %d).\n", user.Username, user.ID)
	return subcommands.ExitSuccess
}
