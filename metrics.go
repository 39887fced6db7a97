package fundflow

import "math"

// NetIRR solves the annual rate that zeroes the net present value of the
// LP's cash flows: capital calls out, distributions net of recycling and
// management fees in, and the unreturned capital as a terminal value at the
// fund's last quarter. Flows compound quarterly, at the end of the quarter
// they settle in.
//
// The solve is a fixed-iteration bisection, so identical records always
// produce the identical rate. It reports false when the record has no sign
// change to bracket, an all-loss or not-yet-invested fund has no IRR.
func (f *Fund) NetIRR() (Rate, bool) {
	ledger := f.Waterfall()

	type cashFlow struct {
		years  float64
		amount float64
	}
	flows := make([]cashFlow, 0)
	for c := range f.Contributions() {
		flows = append(flows, cashFlow{c.When().Years(), -c.Amount.value.InexactFloat64()})
	}
	for _, row := range ledger.Rows {
		received := row.LPCapitalReturn.Add(row.LPProfitShare).Sub(row.RecycledAmount)
		flows = append(flows, cashFlow{row.Quarter.Years(), received.value.InexactFloat64()})
	}
	last := f.LastQuarter()
	for _, accrual := range f.AccrueFees(last) {
		flows = append(flows, cashFlow{accrual.Quarter.Years(), -accrual.Amount.value.InexactFloat64()})
	}
	if unrealized := ledger.Totals.UnrealizedCapital; unrealized.IsPositive() {
		flows = append(flows, cashFlow{last.Years(), unrealized.value.InexactFloat64()})
	}

	npv := func(rate float64) float64 {
		var sum float64
		for _, fl := range flows {
			sum += fl.amount / math.Pow(1+rate, fl.years)
		}
		return sum
	}

	lo, hi := -0.9999, 10.0
	nl, nh := npv(lo), npv(hi)
	if (nl < 0) == (nh < 0) {
		return R(0), false
	}
	for i := 0; i < 128; i++ {
		mid := (lo + hi) / 2
		if nm := npv(mid); (nm < 0) == (nl < 0) {
			lo, nl = mid, nm
		} else {
			hi = mid
		}
	}
	return R((lo + hi) / 2), true
}
