package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/costbasis/date"
	"github.com/etnz/costbasis/renderer"
	"github.com/google/subcommands"
)

type resolveCmd struct {
	on string
}

func (*resolveCmd) Name() string     { return "resolve" }
func (*resolveCmd) Synopsis() string { return "display the price used to value an event" }
func (*resolveCmd) Usage() string {
	return `resolve -on <date>

  Displays the trading date, and its closing price, used to value an event on <date>.
  When there is none, the last known closing price before <date> is reported instead.
`
}

func (c *resolveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.on, "on", "", "event date (YYYY-MM-DD)")
}

func (c *resolveCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := date.Parse(c.on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	prices, err := DecodePrices()
	if err != nil {
		return fail(err)
	}
	effective, price, err := prices.Resolve(on)
	if err != nil {
		if last, price, ok := prices.Previous(on); ok {
			fmt.Fprintf(os.Stderr, "last known close before %s: %s on %s\n", on, renderer.Money(price, appCurrency()), last)
		}
		return fail(err)
	}
	fmt.Printf("%s\t%s\n", effective, renderer.Money(price, appCurrency()))
	return subcommands.ExitSuccess
}
