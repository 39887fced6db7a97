package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/openvc/fundflow"
)

// checkCmd replays truth case files through the waterfall.
type checkCmd struct{}

func (*checkCmd) Name() string { return "check" }
func (*checkCmd) Synopsis() string {
	return "replay truth case files and verify the waterfall outcomes"
}
func (*checkCmd) Usage() string {
	return `vfl check <cases.json>...

  Replays each truth case file through the distribution waterfall and
  verifies the aggregate outcomes. A truth case pairs a waterfall
  configuration and cash flow schedule with the DPI, TVPI, recycling and
  carry figures the ledger must reproduce.
`
}

func (c *checkCmd) SetFlags(f *flag.FlagSet) {}

func (c *checkCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}

	failed := 0
	total := 0
	for _, filename := range f.Args() {
		in, err := os.Open(filename)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening case file %q: %v\n", filename, err)
			return subcommands.ExitFailure
		}
		cases, err := fundflow.DecodeTruthCases(in)
		in.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading case file %q: %v\n", filename, err)
			return subcommands.ExitFailure
		}

		for _, tc := range cases {
			total++
			if err := tc.Verify(); err != nil {
				failed++
				fmt.Printf("FAIL %s: %v\n", tc.Name, err)
				continue
			}
			fmt.Printf("ok   %s\n", tc.Name)
		}
	}

	if failed > 0 {
		fmt.Printf("%d of %d cases failed\n", failed, total)
		return subcommands.ExitFailure
	}
	fmt.Printf("all %d cases passed\n", total)
	return subcommands.ExitSuccess
}
