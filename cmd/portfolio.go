package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/valutatrade"
	"github.com/etnz/valutatrade/renderer"
	"github.com/google/subcommands"
)

type portfolioCmd struct {
	username string
}

func (*portfolioCmd) Name() string     { return "portfolio" }
func (*portfolioCmd) Synopsis() string { return "display a user's portfolio valued in the base currency" }
func (*portfolioCmd) Usage() string {
	return `vth portfolio -u <username>

  Values every wallet of the user's portfolio in the base currency through
  the rate cache. A wallet whose rate is unavailable is shown as such and
  counts as zero in the total.

`
}

func (c *portfolioCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.username, "u", "", "Account to display.")
}

func (c *portfolioCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	p, err := valutatrade.LoadPortfolio(app.Store, user.ID)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	pv := valutatrade.ValuePortfolio(p, app.Resolver)
	printMarkdown(renderer.Portfolio(user.Username, pv))
	return subcommands.ExitSuccess
}
