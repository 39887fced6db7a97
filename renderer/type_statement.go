package renderer

import (
	"os"
	"time"

	"github.com/openvc/fundflow"
)

// Now is the current time used in reports.
// it has to be a global variable so that tests can override it.
func Now() time.Time {
	if os.Getenv("FUNDFLOW_TESTING_NOW") != "" {
		t, err := time.Parse("2006-01-02 15:04:05", os.Getenv("FUNDFLOW_TESTING_NOW"))
		if err != nil {
			panic(err)
		}
		return t
	}
	return time.Now()
}

// Statement is a struct to represent a capital account statement for
// rendering: the fund's lifetime cash flows, the waterfall ledger and the
// headline multiples, all preformatted.
type Statement struct {
	Name     string `json:"name"`
	AsOf     string `json:"asOf"`
	Through  string `json:"through"`
	Currency string `json:"currency"`

	Committed         string `json:"committed"`
	PaidIn            string `json:"paidIn"`
	Distributed       string `json:"distributed"`
	Recycled          string `json:"recycled"`
	UnrealizedCapital string `json:"unrealizedCapital"`

	DPI    string `json:"dpi"`
	TVPI   string `json:"tvpi"`
	NetIRR string `json:"netIrr"`

	GPCarryTotal  string `json:"gpCarryTotal"`
	ClawbackFired bool   `json:"clawbackFired"`
	GPClawback    string `json:"gpClawback,omitempty"`
	GPCarryNet    string `json:"gpCarryNet,omitempty"`

	HasFees   bool   `json:"hasFees"`
	FeesTotal string `json:"feesTotal,omitempty"`
	GrossTVPI string `json:"grossTvpi,omitempty"`
	NetTVPI   string `json:"netTvpi,omitempty"`
	FeeDrag   string `json:"feeDrag,omitempty"`

	Rows []StatementRow `json:"rows"`
}

// StatementRow holds the data for a single ledger line in a statement.
type StatementRow struct {
	Quarter         string `json:"quarter"`
	GrossProceeds   string `json:"grossProceeds"`
	LPCapitalReturn string `json:"lpCapitalReturn"`
	LPProfitShare   string `json:"lpProfitShare"`
	GPCarry         string `json:"gpCarry"`
	RecycledAmount  string `json:"recycledAmount"`
	DPI             string `json:"dpi"`
	TVPI            string `json:"tvpi"`
}

// NewStatement builds the statement view of a fund through the given
// quarter. A zero quarter means through the fund's last event.
func NewStatement(fund *fundflow.Fund, through fundflow.Quarter) *Statement {
	if through == 0 {
		through = fund.LastQuarter()
	}
	ledger := fund.Waterfall()
	totals := ledger.Totals

	st := &Statement{
		Name:     fund.Name(),
		AsOf:     Now().Format("2006-01-02 15:04:05"),
		Through:  through.String(),
		Currency: ledger.Currency,

		Committed:         fund.Committed().String(),
		PaidIn:            totals.PaidIn.String(),
		Distributed:       totals.Distributed.String(),
		Recycled:          totals.Recycled.String(),
		UnrealizedCapital: totals.UnrealizedCapital.String(),

		DPI:  totals.DPI.String(),
		TVPI: totals.TVPI.String(),

		GPCarryTotal:  totals.GPCarryTotal.String(),
		ClawbackFired: totals.ClawbackFired(),
	}

	if irr, ok := fund.NetIRR(); ok {
		st.NetIRR = irr.String()
	} else {
		st.NetIRR = "n/a"
	}

	if st.ClawbackFired {
		st.GPClawback = totals.GPClawback.String()
		st.GPCarryNet = totals.GPCarryNet.String()
	}

	if fund.FeeTerms() != nil {
		impact := fund.FeeImpact(through)
		st.HasFees = true
		st.FeesTotal = impact.FeesTotal.String()
		st.GrossTVPI = impact.GrossTVPI.String()
		st.NetTVPI = impact.NetTVPI.String()
		st.FeeDrag = impact.FeeDrag.String()
	}

	for _, row := range ledger.Rows {
		st.Rows = append(st.Rows, StatementRow{
			Quarter:         row.Quarter.String(),
			GrossProceeds:   row.GrossProceeds.String(),
			LPCapitalReturn: row.LPCapitalReturn.String(),
			LPProfitShare:   row.LPProfitShare.String(),
			GPCarry:         row.GPCarry.String(),
			RecycledAmount:  row.RecycledAmount.String(),
			DPI:             row.DPI.String(),
			TVPI:            row.TVPI.String(),
		})
	}
	return st
}
