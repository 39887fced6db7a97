package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/openvc/fundflow"
)

type fmtCmd struct {
	fund string
}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the fund record into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `vfl fmt [-f <fund>]

  Validates and formats the fund record. This command reads all events,
  validates them, applies available quick-fixes (like filling the fund
  currency), sorts them by quarter, and writes them back in a canonical
  JSONL format. By default, it formats all records in-place. Use -f to
  specify a single record.
`
}

func (p *fmtCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.fund, "f", "", "Fund record to format. Formats all by default.")
}

func (p *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	funds, err := fundflow.FindFunds(*fundDir, p.fund)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load fund records: %v\n", err)
		return subcommands.ExitFailure
	}

	if len(funds) == 0 {
		fmt.Fprintf(os.Stderr, "Warning: no fund records found to format.\n")
		return subcommands.ExitSuccess
	}

	// Default case: format all matching records in-place
	for _, fund := range funds {
		name := fund.File()
		fmt.Fprintf(os.Stderr, "Formatting fund record %q...\n", name)

		formatted, err := fund.Fmt()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error formatting fund record %q: %v\n", name, err)
			continue
		}

		if err := fundflow.SaveFund(*fundDir, formatted); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving fund record %q: %v\n", name, err)
			continue
		}
		fmt.Fprintf(os.Stderr, "Finished formatting fund record %q.\n", name)
	}

	fmt.Fprintf(os.Stderr, "✅ Successfully formatted fund records.\n")
	return subcommands.ExitSuccess
}
