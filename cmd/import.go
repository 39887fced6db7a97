package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/openvc/fundflow"
)

// importCmd imports a cash flow plan from a JSON document.
type importCmd struct {
	fund          string
	file          string
	addr          string
	currency      string
	contributions string
	exits         string
}

func (*importCmd) Name() string { return "import" }
func (*importCmd) Synopsis() string {
	return "import a cash flow plan from a JSON document into the fund record"
}
func (*importCmd) Usage() string {
	return `vfl import [-from <file> | -addr <url>] [-c <currency>] [-contributions <jsonpath>] [-exits <jsonpath>]

  Reads a planning document, extracts the capital calls and exit events with
  JSONPath queries, and appends them to the fund record. Use -from - to read
  from stdin. Responses fetched with -addr are cached for a day.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.fund, "f", "", "Fund record to append to. Defaults to the only record if one exists.")
	f.StringVar(&c.file, "from", "", "Input file, - reads from stdin")
	f.StringVar(&c.addr, "addr", "", "HTTP address serving the planning document")
	f.StringVar(&c.currency, "c", "", "Currency of the plan amounts (defaults to the fund currency)")
	f.StringVar(&c.contributions, "contributions", "", "JSONPath query selecting the capital calls")
	f.StringVar(&c.exits, "exits", "", "JSONPath query selecting the exit events")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if (c.file == "") == (c.addr == "") {
		fmt.Fprintln(os.Stderr, "Error: exactly one of -from or -addr is required.")
		return subcommands.ExitUsageError
	}

	fund, err := OpenFund(c.fund)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	currency := c.currency
	if currency == "" {
		currency = fund.Currency()
	}

	queries := fundflow.DefaultPlanQueries()
	if c.contributions != "" {
		queries.Contributions = c.contributions
	}
	if c.exits != "" {
		queries.Exits = c.exits
	}

	var events []fundflow.Event
	if c.addr != "" {
		events, err = fundflow.FetchPlan(c.addr, currency, queries)
	} else if c.file == "-" {
		events, err = fundflow.ImportPlan(os.Stdin, currency, queries)
	} else {
		in, ferr := os.Open(c.file)
		if ferr != nil {
			fmt.Fprintf(os.Stderr, "Error opening plan file %q: %v\n", c.file, ferr)
			return subcommands.ExitFailure
		}
		defer in.Close()
		events, err = fundflow.ImportPlan(in, currency, queries)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing plan: %v\n", err)
		return subcommands.ExitFailure
	}
	if len(events) == 0 {
		fmt.Println("The plan holds no cash flows, nothing to import.")
		return subcommands.ExitSuccess
	}

	return EncodeEvents(fund, events...)
}
