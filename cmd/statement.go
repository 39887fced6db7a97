package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/openvc/fundflow"
	"github.com/openvc/fundflow/renderer"
)

// statementCmd holds the flags for the 'statement' subcommand.
type statementCmd struct {
	fund     string
	through  string
	skipRows bool
	jsonOut  bool
}

func (*statementCmd) Name() string     { return "statement" }
func (*statementCmd) Synopsis() string { return "display the LP capital account statement" }
func (*statementCmd) Usage() string {
	return `vfl statement [-f <fund>] [-through <quarter>] [-skip-rows] [-json]

  Displays the capital account statement: commitments, paid-in capital,
  distributions, DPI, TVPI, net IRR and the GP carry position, with the
  distribution ledger and fee impact attached.
`
}

func (c *statementCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.fund, "f", "", "Fund record to report on. Defaults to the only record if one exists.")
	f.StringVar(&c.through, "through", "", "Last quarter of the statement (defaults to the record's last quarter)")
	f.BoolVar(&c.skipRows, "skip-rows", false, "Leave the per-event distribution ledger out")
	f.BoolVar(&c.jsonOut, "json", false, "Emit the statement as JSON instead of markdown")
}

func (c *statementCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	statement := renderer.NewStatement(fund, through)

	if c.jsonOut {
		out, err := json.MarshalIndent(statement, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding statement: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Println(string(out))
		return subcommands.ExitSuccess
	}

	printMarkdown(renderer.RenderStatement(statement, renderer.StatementRenderOptions{SkipRows: c.skipRows}))
	return subcommands.ExitSuccess
}
