package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/valutatrade"
	"github.com/google/subcommands"
)

type loginCmd struct {
	username string
	password string
}

func (*loginCmd) Name() string     { return "login" }
func (*loginCmd) Synopsis() string { return "verify an account's credentials" }
func (*loginCmd) Usage() string {
	return `vth login -u <username> -p <password>

  Checks the username/password combination and prints the account details.

`
}

func (c *loginCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.username, "u", "", "Username of the account.")
	f.StringVar(&c.password, "p", "", "Password of the account.")
}

func (c *loginCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	user, err := valutatrade.Authenticate(app.Store, c.username, c.password)
	app.Actions.Record("LOGIN", err, "username", c.username)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Welcome back, %s.\n%s\n", user.Username, user.Info())
	return subcommands.ExitSuccess
}
