package cmd

import (
	"context"
	"flag"

	"github.com/etnz/costbasis/renderer"
	"github.com/google/subcommands"
)

type timelineCmd struct{}

func (*timelineCmd) Name() string     { return "timeline" }
func (*timelineCmd) Synopsis() string { return "display the dividends and splits" }
func (*timelineCmd) Usage() string {
	return `timeline

  Displays the dividends and splits, merged by date, most recent first.
`
}

func (c *timelineCmd) SetFlags(f *flag.FlagSet) {}

func (c *timelineCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	timeline, err := DecodeTimeline()
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.TimelineMarkdown(securityName(), timeline, appCurrency()))
	return subcommands.ExitSuccess
}
