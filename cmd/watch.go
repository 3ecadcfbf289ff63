package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/etnz/valutatrade"
	"github.com/google/subcommands"
)

type watchCmd struct {
	interval time.Duration
	backoff  time.Duration
}

func (*watchCmd) Name() string { return "watch" }
func (*watchCmd) Synopsis() string {
	return "keep refreshing the rate cache on a fixed interval"
}
func (*watchCmd) Usage() string {
	return `vth watch [-i <interval>] [-b <backoff>]

  Runs aggregation cycles in a loop until interrupted. A failed cycle is
  logged and retried after the shorter backoff interval; the loop never
  terminates on its own.

Usage Examples:
$ vth watch
$ vth watch -i 15m -b 30s

`
}

func (c *watchCmd) SetFlags(f *flag.FlagSet) {
	f.DurationVar(&c.interval, "i", 0, "Refresh interval (defaults to the configured refresh_interval).")
	f.DurationVar(&c.backoff, "b", 0, "Retry delay after a failed cycle (defaults to the configured error_backoff).")
}

func (c *watchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	app, err := openApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer app.Close()

	interval := c.interval
	if interval == 0 {
		interval = app.Settings.RefreshInterval
	}
	backoff := c.backoff
	if backoff == 0 {
		backoff = app.Settings.ErrorBackoff
	}

	sched := valutatrade.NewScheduler(app.Updater, interval, backoff)
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		sched.Stop()
	}()
	sched.Run()
	return subcommands.ExitSuccess
}
