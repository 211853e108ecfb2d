package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/rs/zerolog/log"
)

// Environment variables used as defaults for the global flags, and passed to extensions.
const (
	EnvPriceFile          = "CBS_PRICE_FILE"
	EnvDividendFile       = "CBS_DIVIDEND_FILE"
	EnvSplitFile          = "CBS_SPLIT_FILE"
	EnvPriceDateFormat    = "CBS_PRICE_DATE_FORMAT"
	EnvDividendDateFormat = "CBS_DIVIDEND_DATE_FORMAT"
	EnvSplitDateFormat    = "CBS_SPLIT_DATE_FORMAT"
	EnvCurrency           = "CBS_CURRENCY"
	EnvVerbose            = "CBS_VERBOSE"
)

// settings maps every global flag to its environment variable.
var settings = []struct{ flag, env string }{
	{"price-history", EnvPriceFile},
	{"dividends", EnvDividendFile},
	{"splits", EnvSplitFile},
	{"price-date-format", EnvPriceDateFormat},
	{"dividend-date-format", EnvDividendDateFormat},
	{"split-date-format", EnvSplitDateFormat},
	{"currency", EnvCurrency},
	{"v", EnvVerbose},
}

// RunExtension attempts to find and execute an external cbs-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found or executed.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := "cbs-" + subcommand

	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		log.Debug().Err(err).Str("command", externalCmdName).Msg("external command not found in PATH")
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	// Pass global flags as environment variables
	cmd.Env = os.Environ()
	for _, s := range settings {
		cmd.Env = append(cmd.Env, s.env+"="+setting(s.flag, s.env))
	}

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1 // Indicate that an attempt was made, but it failed
	}
	return true, 0
}
