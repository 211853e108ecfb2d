// Package cmd implements the CLI application to reconstruct a share count history.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/costbasis"
	"github.com/etnz/costbasis/ingest"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&reconstructCmd{}, "history")
	c.Register(&timelineCmd{}, "history")
	c.Register(&resolveCmd{}, "history")
	c.Register(&batchCmd{}, "history")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	priceFile          = flag.String("price-history", "history.csv", "CSV or JSON file that contains the daily price history for the investment")
	dividendFile       = flag.String("dividends", "dividends.csv", "CSV or JSON file that contains the dividend history for the investment")
	splitFile          = flag.String("splits", "splits.csv", "CSV or JSON file that contains the split history for the investment (optional)")
	priceDateFormat    = flag.String("price-date-format", ingest.PriceDateFormat, "date format of the price history")
	dividendDateFormat = flag.String("dividend-date-format", ingest.DividendDateFormat, "date format of the dividend history")
	splitDateFormat    = flag.String("split-date-format", ingest.SplitDateFormat, "date format of the split history")
	currency           = flag.String("currency", "", "ISO code of the price currency, used to format values")
	Verbose            = flag.Bool("v", false, "log debug messages")
)

// setting returns the value of the flag name, unless it was not set on the command
// line and the environment variable env is.
func setting(name, env string) string {
	f := flag.Lookup(name)
	set := false
	flag.Visit(func(v *flag.Flag) { set = set || v == f })
	if v, ok := os.LookupEnv(env); ok && !set {
		return v
	}
	return f.Value.String()
}

// SetupLogging configures the global logger, on stderr.
func SetupLogging() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	verbose, _ := strconv.ParseBool(setting("v", EnvVerbose))
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// sources returns the app price, dividend and split sources.
func sources() (prices, dividends, splits ingest.Source) {
	prices = ingest.Source{Path: setting("price-history", EnvPriceFile), Format: setting("price-date-format", EnvPriceDateFormat)}
	dividends = ingest.Source{Path: setting("dividends", EnvDividendFile), Format: setting("dividend-date-format", EnvDividendDateFormat)}
	splits = ingest.Source{Path: setting("splits", EnvSplitFile), Format: setting("split-date-format", EnvSplitDateFormat)}
	return
}

// securityName names the security after its price history file.
func securityName() string {
	base := filepath.Base(setting("price-history", EnvPriceFile))
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// appCurrency returns the currency used to format values.
func appCurrency() string { return setting("currency", EnvCurrency) }

// DecodePrices decodes the app price history.
func DecodePrices() (*costbasis.PriceSeries, error) {
	prices, _, _ := sources()
	return ingest.Prices(prices)
}

// DecodeTimeline decodes the app dividend and split histories, and merges them.
func DecodeTimeline() (costbasis.Timeline, error) {
	_, dividends, splits := sources()
	div, err := ingest.Dividends(dividends)
	if err != nil {
		return nil, err
	}
	spl, err := ingest.Splits(splits)
	if err != nil {
		return nil, err
	}
	return costbasis.Merge(div, spl), nil
}

// printMarkdown renders md for the terminal, or prints it verbatim when stdout is not one.
func printMarkdown(md string) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Print(md)
		return
	}
	out, err := glamour.Render(md, "auto")
	if err != nil {
		log.Debug().Err(err).Msg("cannot render markdown")
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}
