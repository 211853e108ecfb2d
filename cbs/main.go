// Command cbs reconstructs the share count history of an investment.
package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"os"
	"path"

	"github.com/etnz/costbasis/cmd"
	"github.com/etnz/costbasis/docs"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
	"github.com/rs/zerolog/log"
)

func main() {
	completion().Complete("cbs")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	// .env values never override the actual environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg("cannot load .env")
	}
	cmd.SetupLogging()

	if name := flag.Arg(0); name != "" && !registered(commander, name) {
		if found, code := cmd.RunExtension(name, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}

// registered reports whether name is a built-in subcommand.
func registered(c *subcommands.Commander, name string) bool {
	found := false
	c.VisitCommands(func(_ *subcommands.CommandGroup, sc subcommands.Command) {
		found = found || sc.Name() == name
	})
	return found
}

// completion describes the command line for shell completion.
func completion() *complete.Command {
	topics, _ := docs.GetAllTopics()
	csv := predict.Files("*.csv")
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"price-history":        predict.Or(csv, predict.Files("*.json")),
			"dividends":            predict.Or(csv, predict.Files("*.json")),
			"splits":               predict.Or(csv, predict.Files("*.json")),
			"price-date-format":    predict.Nothing,
			"dividend-date-format": predict.Nothing,
			"split-date-format":    predict.Nothing,
			"currency":             predict.Set{"USD", "EUR", "GBP", "CHF", "JPY", "CAD"},
			"v":                    predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"reconstruct": {Flags: map[string]complete.Predictor{
				"shares": predict.Nothing,
				"log":    predict.Nothing,
				"html":   predict.Files("*.html"),
			}},
			"resolve":  {Flags: map[string]complete.Predictor{"on": predict.Nothing}},
			"timeline": {},
			"batch":    {Args: predict.Files("*.yaml")},
			"topic":    {Args: predict.Set(topics)},
		},
	}
}
