package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/openvc/fundflow"
	"github.com/openvc/fundflow/renderer"
)

type feesCmd struct {
	fund    string
	through string
}

func (*feesCmd) Name() string     { return "fees" }
func (*feesCmd) Synopsis() string { return "display the management fee accruals and their drag" }
func (*feesCmd) Usage() string {
	return `vfl fees [-f <fund>] [-through <quarter>]

  Displays the quarterly management fee accruals and the fee impact on the
  fund's multiples.
`
}

func (c *feesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.fund, "f", "", "Fund record to report on. Defaults to the only record if one exists.")
	f.StringVar(&c.through, "through", "", "Last quarter to accrue (defaults to the record's last quarter)")
}

func (c *feesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	fund, err := DecodeFund(c.fund)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	var through fundflow.Quarter
	if c.through != "" {
		through, err = fundflow.ParseQuarter(c.through)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing quarter: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	printMarkdown(renderer.FeesMarkdown(fund, through))
	return subcommands.ExitSuccess
}
