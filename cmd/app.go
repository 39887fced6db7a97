// Package cmd implements the CLI application to manage a venture fund record.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/subcommands"
	"github.com/openvc/fundflow"
)

// Commands lists the subcommands of the application.
// A main package registers them on a commander and executes the user-selected one.
var Commands = []subcommands.Command{
	&termsCmd{},
	&callCmd{},
	&exitCmd{},

	&waterfallCmd{},
	&statementCmd{},
	&scheduleCmd{},
	&feesCmd{},

	&fmtCmd{},
	&importCmd{},
	&exportCmd{},
	&checkCmd{},
	&topicCmd{},
	&assistCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var fundDir = flag.String("fund-dir", ".", "Path to the directory holding fund records (JSONL format)")
var defaultCurrency = flag.String("default-currency", "", "Reporting currency for fund records that do not declare one")
var Verbose = flag.Bool("v", false, "enable verbose output")

// DecodeFund loads the unique fund record matching the query from the fund
// directory. An empty query matches the only record there is, or a fresh
// default record when the directory holds none.
func DecodeFund(query string) (*fundflow.Fund, error) {
	return fundflow.FindFund(*fundDir, query)
}

// OpenFund is DecodeFund for record commands: a query that matches nothing
// opens a fresh record under that name instead of failing.
func OpenFund(query string) (*fundflow.Fund, error) {
	return fundflow.OpenFund(*fundDir, query)
}

// fundFilePath returns the path of the fund's record file.
func fundFilePath(fund *fundflow.Fund) string {
	return filepath.Join(*fundDir, fund.File()+".jsonl")
}

// EncodeEvents validates events against the fund record and appends them to
// its file, creating the file if it doesn't exist. Nothing is written unless
// the whole batch validates.
func EncodeEvents(fund *fundflow.Fund, events ...fundflow.Event) subcommands.ExitStatus {
	validated := make([]fundflow.Event, 0, len(events))
	for _, ev := range events {
		v, err := fund.Validate(ev)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		// Later events of the batch validate against the updated record.
		fund.Append(v)
		validated = append(validated, v)
	}

	filename := fundFilePath(fund)
	// Record names may hold directories, like "vintages/fund-iii".
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating fund directory for %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}
	// Open the file in append mode, creating it if it doesn't exist.
	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening fund file %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	for _, ev := range validated {
		if err := fundflow.EncodeEvent(f, ev); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing to fund file %q: %v\n", filename, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Successfully appended %s to %s\n", ev.What(), filename)
	}
	return subcommands.ExitSuccess
}
