package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/openvc/fundflow/renderer"
)

// waterfallCmd holds the flags for the 'waterfall' subcommand.
type waterfallCmd struct {
	fund    string
	jsonOut bool
}

func (*waterfallCmd) Name() string     { return "waterfall" }
func (*waterfallCmd) Synopsis() string { return "display the fund's distribution waterfall ledger" }
func (*waterfallCmd) Usage() string {
	return `vfl waterfall [-f <fund>] [-json]

  Replays the fund record through the distribution waterfall and displays
  the resulting ledger, one row per exit event plus the running totals.
`
}

func (c *waterfallCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.fund, "f", "", "Fund record to report on. Defaults to the only record if one exists.")
	f.BoolVar(&c.jsonOut, "json", false, "Emit the ledger as JSON instead of markdown")
}

func (c *waterfallCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	fund, err := DecodeFund(c.fund)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if c.jsonOut {
		out, err := json.MarshalIndent(fund.Waterfall(), "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding ledger: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Println(string(out))
		return subcommands.ExitSuccess
	}

	var sb strings.Builder
	renderer.WaterfallMarkdown(&sb, fund)
	printMarkdown(sb.String())
	return subcommands.ExitSuccess
}
