package fundflow

import (
	"encoding/json"
	"fmt"
)

// FeeBasis defines the capital base a management fee accrues on.
type FeeBasis int

const (
	// CommittedCapital accrues on total committed capital, whatever is called.
	CommittedCapital FeeBasis = iota
	// CalledCapital accrues on capital called through the accrual quarter.
	CalledCapital
	// InvestedCapital accrues on called capital not yet returned to LPs.
	InvestedCapital
	// DrawnCapital accrues on called capital net of recycled proceeds.
	DrawnCapital
	// FairMarketValue accrues on the unreturned capital at cost, the engine
	// carries no interim marks.
	FairMarketValue
	// NetAssetValue accrues on the same base as FairMarketValue.
	NetAssetValue
)

func (b FeeBasis) String() string {
	switch b {
	case CommittedCapital:
		return "committed"
	case CalledCapital:
		return "called"
	case InvestedCapital:
		return "invested"
	case DrawnCapital:
		return "drawn"
	case FairMarketValue:
		return "fmv"
	case NetAssetValue:
		return "nav"
	}
	return "unknown"
}

// ParseFeeBasis parses a string into a FeeBasis.
func ParseFeeBasis(s string) (FeeBasis, error) {
	switch s {
	case "committed":
		return CommittedCapital, nil
	case "called":
		return CalledCapital, nil
	case "invested":
		return InvestedCapital, nil
	case "drawn":
		return DrawnCapital, nil
	case "fmv":
		return FairMarketValue, nil
	case "nav":
		return NetAssetValue, nil
	}
	return 0, fmt.Errorf("unknown fee basis %q", s)
}

// MarshalJSON implements the json.Marshaler interface for FeeBasis.
func (b FeeBasis) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface for FeeBasis.
func (b *FeeBasis) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseFeeBasis(s)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// FeeTerms carries a fund's management fee terms: an annual rate on a
// capital basis, optionally stepping down to a lower rate from a given
// quarter on, the usual shape once the investment period ends.
type FeeTerms struct {
	AnnualRate      Rate     `json:"annualRate"`
	Basis           FeeBasis `json:"basis"`
	StepDownQuarter Quarter  `json:"stepDownQuarter,omitempty"` // 0 means the rate never steps down.
	StepDownRate    Rate     `json:"stepDownRate"`
}

// Validate checks that the fee terms are in their legal ranges.
func (t *FeeTerms) Validate() error {
	if t.AnnualRate.IsNegative() {
		return fmt.Errorf("fee rate must not be negative, got %v", t.AnnualRate)
	}
	if t.StepDownQuarter < 0 {
		return fmt.Errorf("step-down quarter must not be negative, got %d", t.StepDownQuarter)
	}
	if t.StepDownQuarter > 0 && t.StepDownRate.IsNegative() {
		return fmt.Errorf("step-down rate must not be negative, got %v", t.StepDownRate)
	}
	return nil
}

// Equal reports whether two fee terms are the same, nil meaning no fees.
func (t *FeeTerms) Equal(o *FeeTerms) bool {
	if t == nil || o == nil {
		return t == o
	}
	return t.AnnualRate.Equal(o.AnnualRate) && t.Basis == o.Basis &&
		t.StepDownQuarter == o.StepDownQuarter && t.StepDownRate.Equal(o.StepDownRate)
}

// MarshalJSON implements the json.Marshaler interface for FeeTerms.
func (t FeeTerms) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("annualRate", t.AnnualRate)
	w.Append("basis", t.Basis)
	if t.StepDownQuarter > 0 {
		w.Append("stepDownQuarter", t.StepDownQuarter)
		w.Append("stepDownRate", t.StepDownRate)
	}
	return w.MarshalJSON()
}

// rateFor returns the annual rate in force in the given quarter.
func (t *FeeTerms) rateFor(q Quarter) Rate {
	if t.StepDownQuarter > 0 && q >= t.StepDownQuarter {
		return t.StepDownRate
	}
	return t.AnnualRate
}

// FeeAccrual is one quarter of management fee: the base it was computed on,
// the annual rate in force, and the quarterly amount.
type FeeAccrual struct {
	Quarter Quarter
	Basis   Money
	Rate    Rate
	Amount  Money
}

// AccrueFees accrues the fund's management fee quarter by quarter, from the
// fund's first quarter through the given one. A fund with no declared fee
// terms accrues nothing.
func (f *Fund) AccrueFees(through Quarter) []FeeAccrual {
	terms := f.FeeTerms()
	if terms == nil || through < 1 {
		return nil
	}
	ledger := f.Waterfall()

	accruals := make([]FeeAccrual, 0, int(through))
	for q := Quarter(1); q <= through; q++ {
		basis := f.feeBasisAt(terms.Basis, ledger, q)
		rate := terms.rateFor(q)
		accruals = append(accruals, FeeAccrual{
			Quarter: q,
			Basis:   basis,
			Rate:    rate,
			Amount:  rate.Quarterly().Of(basis),
		})
	}
	return accruals
}

// feeBasisAt evaluates a fee basis at the end of the given quarter.
func (f *Fund) feeBasisAt(basis FeeBasis, ledger *Ledger, q Quarter) Money {
	switch basis {
	case CommittedCapital:
		return f.Committed()
	case CalledCapital:
		return f.CalledThrough(q)
	case InvestedCapital:
		return f.CalledThrough(q).Sub(ledger.capitalReturnedThrough(q)).floor()
	case DrawnCapital:
		return f.CalledThrough(q).Sub(ledger.recycledThrough(q)).floor()
	case FairMarketValue, NetAssetValue:
		return ledger.valueAt(q, f.CalledThrough(q))
	}
	return M(0, f.Currency())
}

// capitalReturnedThrough sums the LP capital returned in or before the given
// quarter.
func (l *Ledger) capitalReturnedThrough(q Quarter) Money {
	total := M(0, l.Currency)
	for _, row := range l.Rows {
		if row.Quarter <= q {
			total = total.Add(row.LPCapitalReturn)
		}
	}
	return total
}

// recycledThrough returns the cumulative recycled capital in or before the
// given quarter.
func (l *Ledger) recycledThrough(q Quarter) Money {
	total := M(0, l.Currency)
	for _, row := range l.Rows {
		if row.Quarter <= q {
			total = total.Add(row.RecycledAmount)
		}
	}
	return total
}

// valueAt returns the fund's unreturned capital at cost as of the given
// quarter: the last ledger snapshot at or before it, or everything called
// while no exit has settled yet.
func (l *Ledger) valueAt(q Quarter, calledSoFar Money) Money {
	value := calledSoFar
	for _, row := range l.Rows {
		if row.Quarter > q {
			break
		}
		value = row.UnrealizedCapital
	}
	return value
}

// FeeImpact summarizes what management fees and carry cost the LPs over the
// fund's life so far, in the multiples fund reports quote.
type FeeImpact struct {
	FeesTotal Money    // FeesTotal is the management fee accrued through the horizon.
	GrossTVPI Multiple // GrossTVPI is fund value over paid-in before carry and fees.
	NetTVPI   Multiple // NetTVPI is LP value over paid-in after carry and fees.
	FeeDrag   Multiple // FeeDrag is the gap between the two.
}

// FeeImpact computes the fund's fee impact through the given quarter.
func (f *Fund) FeeImpact(through Quarter) FeeImpact {
	ledger := f.Waterfall()
	totals := ledger.Totals

	fees := M(0, f.Currency())
	for _, accrual := range f.AccrueFees(through) {
		fees = fees.Add(accrual.Amount)
	}

	impact := FeeImpact{FeesTotal: fees, GrossTVPI: X(0), NetTVPI: X(0), FeeDrag: X(0)}
	if !totals.PaidIn.IsPositive() {
		return impact
	}

	carryKept := totals.GPCarryTotal
	if totals.ClawbackFired() {
		carryKept = totals.GPCarryNet
	}
	lpValue := totals.Distributed.Add(totals.UnrealizedCapital)
	impact.GrossTVPI = lpValue.Add(carryKept).Ratio(totals.PaidIn)
	impact.NetTVPI = lpValue.Sub(fees).Ratio(totals.PaidIn)
	impact.FeeDrag = impact.GrossTVPI.Sub(impact.NetTVPI)
	return impact
}
