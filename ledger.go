package fundflow

import "iter"

// Row is one line of the distribution ledger: the split of a single exit
// event plus a snapshot of the fund's running totals just after it. A
// clawback true-up appends one synthetic row carrying the returned carry.
//
// Rows are append-only and ordered by quarter.
type Row struct {
	Quarter         Quarter // Quarter is the quarter the event settled in.
	GrossProceeds   Money   // GrossProceeds is the distributable cash of the event, clamped to zero when negative.
	LPCapitalReturn Money   // LPCapitalReturn is the slice returning LP capital, always served first.
	LPProfitShare   Money   // LPProfitShare is the LP's slice of the profit above capital return.
	GPCarry         Money   // GPCarry is the GP's carried interest on the event, negative on a clawback row.
	RecycledAmount  Money   // RecycledAmount is the slice skimmed back into investable capital.
	GPClawback      Money   // GPClawback is the carry returned by the GP, only set on the synthetic clawback row.

	// running snapshot, taken just after the event is applied.
	PaidIn            Money    // PaidIn is the cumulative capital released into the ledger so far.
	Distributed       Money    // Distributed is the cumulative cash paid out to LPs so far.
	Recycled          Money    // Recycled is the cumulative cash skimmed for recycling so far.
	UnrealizedCapital Money    // UnrealizedCapital is the paid-in capital not yet returned.
	DPI               Multiple // DPI is distributed over paid-in, 0 while nothing is paid in.
	TVPI              Multiple // TVPI is distributed plus unrealized over paid-in, 0 while nothing is paid in.
}

// MarshalJSON implements the json.Marshaler interface for Row.
func (r Row) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("quarter", r.Quarter)
	w.Append("grossProceeds", r.GrossProceeds.rounded())
	w.Append("lpCapitalReturn", r.LPCapitalReturn.rounded())
	w.Append("lpProfitShare", r.LPProfitShare.rounded())
	w.Append("gpCarry", r.GPCarry.rounded())
	w.Append("recycledAmount", r.RecycledAmount.rounded())
	if r.GPClawback.IsPositive() {
		w.Append("gpClawback", r.GPClawback.rounded())
	}
	w.Append("paidIn", r.PaidIn.rounded())
	w.Append("distributed", r.Distributed.rounded())
	w.Append("recycled", r.Recycled.rounded())
	w.Append("unrealizedCapital", r.UnrealizedCapital.rounded())
	w.Append("dpi", r.DPI)
	w.Append("tvpi", r.TVPI)
	return w.MarshalJSON()
}

// Totals is the ledger's final cumulative state. GPClawback and GPCarryNet
// are only reported when the clawback fired.
type Totals struct {
	PaidIn            Money
	Distributed       Money
	Recycled          Money
	UnrealizedCapital Money
	DPI               Multiple
	TVPI              Multiple
	GPCarryTotal      Money // GPCarryTotal is the carry accrued across events, before any clawback.
	GPClawback        Money
	GPCarryNet        Money // GPCarryNet is GPCarryTotal less GPClawback.
}

// ClawbackFired reports whether the ledger ends with a clawback true-up.
func (t Totals) ClawbackFired() bool { return t.GPClawback.IsPositive() }

// MarshalJSON implements the json.Marshaler interface for Totals.
func (t Totals) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("paidIn", t.PaidIn.rounded())
	w.Append("distributed", t.Distributed.rounded())
	w.Append("recycled", t.Recycled.rounded())
	w.Append("unrealizedCapital", t.UnrealizedCapital.rounded())
	w.Append("dpi", t.DPI)
	w.Append("tvpi", t.TVPI)
	w.Append("gpCarryTotal", t.GPCarryTotal.rounded())
	if t.ClawbackFired() {
		w.Append("gpClawback", t.GPClawback.rounded())
		w.Append("gpCarryNet", t.GPCarryNet.rounded())
	}
	return w.MarshalJSON()
}

// Ledger is the output of one waterfall computation: one row per exit event
// in quarter order, an optional clawback row, and the final totals. It is a
// value, recomputed from the fund record on demand and never stored.
type Ledger struct {
	Currency string
	Rows     []Row
	Totals   Totals
}

// MarshalJSON implements the json.Marshaler interface for Ledger.
func (l *Ledger) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("currency", l.Currency)
	w.Append("rows", l.Rows)
	w.Append("totals", l.Totals)
	return w.MarshalJSON()
}

// Events returns an iterator over the ledger rows in quarter order.
func (l *Ledger) Events() iter.Seq2[int, Row] {
	return func(yield func(int, Row) bool) {
		for i, row := range l.Rows {
			if !yield(i, row) {
				return
			}
		}
	}
}

// LastRow returns the last row of the ledger, or false when the ledger has
// no rows.
func (l *Ledger) LastRow() (Row, bool) {
	if len(l.Rows) == 0 {
		return Row{}, false
	}
	return l.Rows[len(l.Rows)-1], true
}
