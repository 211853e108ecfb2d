package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/costbasis"
	"github.com/etnz/costbasis/renderer"
	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
)

type reconstructCmd struct {
	shares float64
	log    bool
	html   string
}

func (*reconstructCmd) Name() string     { return "reconstruct" }
func (*reconstructCmd) Synopsis() string { return "display the share count history" }
func (*reconstructCmd) Usage() string {
	return `reconstruct -shares <n> [-log] [-html <file>]

  Displays the number of shares held, and their value, on every trading date,
  given the number of shares held on the most recent one.
`
}

func (c *reconstructCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.shares, "shares", 0, "number of shares currently held")
	f.BoolVar(&c.log, "log", false, "append the share count transitions")
	f.StringVar(&c.html, "html", "", "also write the report as an HTML page into this file")
}

func (c *reconstructCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.shares <= 0 {
		fmt.Fprintln(os.Stderr, "-shares must be a positive number")
		return subcommands.ExitUsageError
	}

	prices, err := DecodePrices()
	if err != nil {
		return fail(err)
	}
	timeline, err := DecodeTimeline()
	if err != nil {
		return fail(err)
	}

	series, err := costbasis.Reconstruct(prices, timeline, c.shares)
	if err != nil {
		return fail(err)
	}
	latest, _ := prices.Latest()
	log.Debug().Int("points", series.Len()).Int("events", len(timeline)).Stringer("held on", latest).Msg("reconstructed")

	name := securityName()
	md := renderer.HistoryMarkdown(name, series, renderer.Options{Currency: appCurrency(), Transitions: c.log})
	if c.html != "" {
		page, err := renderer.HTML(name, md)
		if err != nil {
			return fail(err)
		}
		if err := os.WriteFile(c.html, page, 0644); err != nil {
			return fail(err)
		}
		log.Info().Str("file", c.html).Msg("report written")
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}
