package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/openvc/fundflow"
)

// --- Terms Command ---

type termsCmd struct {
	fund     string
	quarter  string
	name     string
	currency string
	memo     string

	carry  float64
	hurdle float64

	recycling       bool
	recyclingCap    float64
	recyclingTake   float64
	recyclingWindow string

	clawback      bool
	clawbackFloor float64

	feeRate        float64
	feeBasis       string
	feeStepQuarter string
	feeStepRate    float64
}

func (*termsCmd) Name() string     { return "terms" }
func (*termsCmd) Synopsis() string { return "declare the fund's name, currency and waterfall terms" }
func (*termsCmd) Usage() string {
	return `vfl terms [-q <quarter>] [-name <name>] [-c <currency>] [-carry <rate>] [-hurdle <rate>] [-m <memo>]

  Declares the fund's identity and economics. A record usually opens with a
  terms event, a later one supersedes it. Rates are fractions, 0.2 means 20%.
`
}

func (c *termsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.fund, "f", "", "Fund record to append to. Defaults to the only record if one exists.")
	f.StringVar(&c.quarter, "q", "Q1", "Quarter the terms take effect in")
	f.StringVar(&c.name, "name", "", "Fund display name")
	f.StringVar(&c.currency, "c", "", "Reporting currency (3-letter code)")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note for the event")

	f.Float64Var(&c.carry, "carry", 0.20, "GP carried interest above capital return and hurdle")
	f.Float64Var(&c.hurdle, "hurdle", 0, "Preferred return on outstanding capital, 0 disables it")

	f.BoolVar(&c.recycling, "recycling", false, "Enable the recycling skim on LP distributions")
	f.Float64Var(&c.recyclingCap, "recycling-cap", 0, "Lifetime recycling cap as a share of committed capital")
	f.Float64Var(&c.recyclingTake, "recycling-take", 0, "Share of each event's LP proceeds skimmed for recycling")
	f.StringVar(&c.recyclingWindow, "recycling-window", "", "Last quarter recycling may happen in, like Q20")

	f.BoolVar(&c.clawback, "clawback", false, "Enable the end-of-fund GP clawback")
	f.Float64Var(&c.clawbackFloor, "clawback-floor", 0, "LP floor as a multiple of paid-in, defaults to 1.0")

	f.Float64Var(&c.feeRate, "fee-rate", 0, "Annual management fee rate, 0 means the fund charges none")
	f.StringVar(&c.feeBasis, "fee-basis", "committed", "Fee basis (committed, called, invested, drawn, fmv, nav)")
	f.StringVar(&c.feeStepQuarter, "fee-step-quarter", "", "Quarter the fee rate steps down in, like Q21")
	f.Float64Var(&c.feeStepRate, "fee-step-rate", 0, "Fee rate after the step down")
}

func (c *termsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	quarter, err := fundflow.ParseQuarter(c.quarter)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing quarter: %v\n", err)
		return subcommands.ExitUsageError
	}

	currency := c.currency
	if currency == "" {
		currency = *defaultCurrency
	}

	waterfall := fundflow.WaterfallConfig{
		CarryPct:         fundflow.R(c.carry),
		HurdleRate:       fundflow.R(c.hurdle),
		RecyclingEnabled: c.recycling,
		ClawbackEnabled:  c.clawback,
	}
	if c.recycling {
		waterfall.RecyclingCapPctOfCommitted = fundflow.R(c.recyclingCap)
		waterfall.RecyclingTakePctPerEvent = fundflow.R(c.recyclingTake)
		if c.recyclingWindow != "" {
			window, err := fundflow.ParseQuarter(c.recyclingWindow)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error parsing recycling window: %v\n", err)
				return subcommands.ExitUsageError
			}
			waterfall.RecyclingWindowQuarters = window
		}
	}
	if c.clawback && c.clawbackFloor > 0 {
		waterfall.ClawbackLPHurdleMultiple = fundflow.X(c.clawbackFloor)
	}

	var fees *fundflow.FeeTerms
	if c.feeRate > 0 {
		basis, err := fundflow.ParseFeeBasis(c.feeBasis)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing fee basis: %v\n", err)
			return subcommands.ExitUsageError
		}
		fees = &fundflow.FeeTerms{AnnualRate: fundflow.R(c.feeRate), Basis: basis}
		if c.feeStepQuarter != "" {
			stepQuarter, err := fundflow.ParseQuarter(c.feeStepQuarter)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error parsing fee step-down quarter: %v\n", err)
				return subcommands.ExitUsageError
			}
			fees.StepDownQuarter = stepQuarter
			fees.StepDownRate = fundflow.R(c.feeStepRate)
		}
	}

	fund, err := OpenFund(c.fund)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return EncodeEvents(fund, fundflow.NewTerms(quarter, c.memo, c.name, currency, waterfall, fees))
}

// --- Call Command ---

type callCmd struct {
	fund    string
	quarter string
	amount  float64
	memo    string
}

func (*callCmd) Name() string     { return "call" }
func (*callCmd) Synopsis() string { return "record a capital call paid in by the limited partners" }
func (*callCmd) Usage() string {
	return `vfl call -q <quarter> -a <amount> [-m <memo>]

  Records capital called from the LPs and released into the fund in a given
  quarter.
`
}

func (c *callCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.fund, "f", "", "Fund record to append to. Defaults to the only record if one exists.")
	f.StringVar(&c.quarter, "q", "", "Quarter the capital settles in, like Q3")
	f.Float64Var(&c.amount, "a", 0, "Amount called, in the fund currency")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note for the event")
}

func (c *callCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.quarter == "" || c.amount <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	quarter, err := fundflow.ParseQuarter(c.quarter)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing quarter: %v\n", err)
		return subcommands.ExitUsageError
	}

	fund, err := OpenFund(c.fund)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	amount := fundflow.M(c.amount, fund.Currency())
	return EncodeEvents(fund, fundflow.NewContribution(quarter, c.memo, amount))
}

// --- Exit Command ---

type exitCmd struct {
	fund    string
	quarter string
	amount  float64
	memo    string
}

func (*exitCmd) Name() string     { return "exit" }
func (*exitCmd) Synopsis() string { return "record an exit event distributing proceeds through the waterfall" }
func (*exitCmd) Usage() string {
	return `vfl exit -q <quarter> -a <gross_proceeds> [-m <memo>]

  Records a liquidity event. The gross proceeds are distributed through the
  waterfall when reports are generated, nothing is computed at record time.
`
}

func (c *exitCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.fund, "f", "", "Fund record to append to. Defaults to the only record if one exists.")
	f.StringVar(&c.quarter, "q", "", "Quarter the exit settles in, like Q12")
	f.Float64Var(&c.amount, "a", 0, "Gross proceeds of the exit, in the fund currency")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note for the event")
}

func (c *exitCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.quarter == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	quarter, err := fundflow.ParseQuarter(c.quarter)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing quarter: %v\n", err)
		return subcommands.ExitUsageError
	}

	fund, err := OpenFund(c.fund)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	proceeds := fundflow.M(c.amount, fund.Currency())
	return EncodeEvents(fund, fundflow.NewExit(quarter, c.memo, proceeds))
}
