package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/openvc/fundflow/renderer"
)

type scheduleCmd struct {
	fund string
}

func (*scheduleCmd) Name() string     { return "schedule" }
func (*scheduleCmd) Synopsis() string { return "display the fund's cash flow schedule" }
func (*scheduleCmd) Usage() string {
	return `vfl schedule [-f <fund>]

  Displays the capital calls and exit events of the fund record in quarter
  order, with the running called-to-date amounts.
`
}

func (c *scheduleCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.fund, "f", "", "Fund record to report on. Defaults to the only record if one exists.")
}

func (c *scheduleCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	fund, err := DecodeFund(c.fund)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.ScheduleMarkdown(fund))
	return subcommands.ExitSuccess
}
