package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"
	"github.com/openvc/fundflow"
)

// exportCmd exports the fund's cash flow schedule as a plan document.
type exportCmd struct {
	fund   string
	output string
}

func (*exportCmd) Name() string { return "export" }
func (*exportCmd) Synopsis() string {
	return "export the fund's cash flow schedule as a JSON plan"
}
func (*exportCmd) Usage() string {
	return `vfl export [-f <fund>] [-o <file>]

  Writes the fund's capital calls and exit events as a JSON planning
  document, the same shape the import command reads. By default the plan is
  written to stdout.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.fund, "f", "", "Fund record to export. Defaults to the only record if one exists.")
	f.StringVar(&c.output, "o", "-", "Output file, - writes to stdout")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	fund, err := DecodeFund(c.fund)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	var w io.Writer = os.Stdout
	if c.output != "-" {
		out, err := os.Create(c.output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output file %q: %v\n", c.output, err)
			return subcommands.ExitFailure
		}
		defer out.Close()
		w = out
	}

	if err := fundflow.ExportPlan(w, fund); err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting plan: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
