package renderer

import (
	"fmt"
	"io"

	"github.com/openvc/fundflow"
)

// WaterfallMarkdown renders a fund's distribution waterfall to markdown: the
// declared terms, one table line per exit event, and the cumulative totals.
func WaterfallMarkdown(w io.Writer, fund *fundflow.Fund) bool {
	ledger := fund.Waterfall()
	terms := fund.WaterfallTerms()

	fmt.Fprintf(w, "# Distribution Waterfall: %s\n\n", fund.Name())
	fmt.Fprintf(w, "*As of %s*\n\n", Now().Format("2006-01-02 15:04:05"))

	renderTerms(w, terms)

	if len(ledger.Rows) == 0 {
		fmt.Fprintln(w, "No exit events recorded yet.")
		return true
	}

	// Header
	fmt.Fprint(w, "| Quarter | Gross Proceeds | Capital Return | LP Profit | GP Carry | Recycled | DPI | TVPI |\n")

	// Separator
	fmt.Fprint(w, "|:---|---:|---:|---:|---:|---:|---:|---:|\n")

	// Rows
	for _, row := range ledger.Rows {
		fmt.Fprintf(w, "| %s | %s | %s | %s | %s | %s | %s | %s |\n",
			row.Quarter,
			row.GrossProceeds,
			row.LPCapitalReturn,
			row.LPProfitShare,
			row.GPCarry.SignedString(),
			row.RecycledAmount,
			row.DPI,
			row.TVPI,
		)
	}
	fmt.Fprintln(w, "")

	// Totals
	totals := ledger.Totals

	fmt.Fprint(w, "| | |\n")
	fmt.Fprint(w, "|:---|---:|\n")

	printRow := func(label string, value string) {
		fmt.Fprintf(w, "| %s | %s |\n", label, value)
	}

	printRowBold := func(label string, value string) {
		fmt.Fprintf(w, "| **%s** | **%s** |\n", label, value)
	}

	printRow("Paid-In Capital", totals.PaidIn.String())
	printRow("Distributed", totals.Distributed.String())
	printRow("Recycled", totals.Recycled.String())
	printRow("Unrealized Capital", totals.UnrealizedCapital.String())
	printRow("GP Carry Accrued", totals.GPCarryTotal.String())

	// This section is printed only when the fund clawed carry back from the GP.
	if totals.ClawbackFired() {
		printRow("GP Clawback", totals.GPClawback.Neg().SignedString())
		printRow("GP Carry Net", totals.GPCarryNet.String())
	}

	printRowBold("DPI", totals.DPI.String())
	printRowBold("TVPI", totals.TVPI.String())

	ConditionalBlock(w, func(w io.Writer) bool {
		if !totals.ClawbackFired() {
			return false
		}
		fmt.Fprintf(w, "\nThe LP floor was missed at the end of the fund: the GP returned %s of carried interest and kept %s.\n",
			totals.GPClawback, totals.GPCarryNet)
		return true
	})

	return true
}

// renderTerms writes the declared economics as a single sentence.
func renderTerms(w io.Writer, terms fundflow.WaterfallConfig) {
	fmt.Fprintf(w, "Carried interest of %s", terms.CarryPct)
	if terms.HurdleRate.IsPositive() {
		fmt.Fprintf(w, ", hurdle of %s on outstanding capital", terms.HurdleRate)
	}
	if terms.RecyclingEnabled {
		fmt.Fprintf(w, ", recycling up to %s of committed capital through %s",
			terms.RecyclingCapPctOfCommitted, terms.RecyclingWindowQuarters)
	}
	if terms.ClawbackEnabled {
		fmt.Fprintf(w, ", clawback to a %s LP floor", terms.ClawbackLPHurdleMultiple)
	}
	fmt.Fprint(w, ".\n\n")
}
