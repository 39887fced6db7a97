package fundflow

import (
	"fmt"
	"sort"
)

// WaterfallConfig carries the distribution terms of an American-style
// waterfall. The zero value is a valid no-hurdle, no-recycling, no-clawback
// fund with zero carry.
type WaterfallConfig struct {
	CarryPct   Rate `json:"carryPct"`   // CarryPct is the GP's share of profit above capital return and hurdle.
	HurdleRate Rate `json:"hurdleRate"` // HurdleRate is the preferred return applied to outstanding capital, 0 means none.

	RecyclingEnabled           bool    `json:"recyclingEnabled"`           // RecyclingEnabled turns the recycling skim on.
	RecyclingCapPctOfCommitted Rate    `json:"recyclingCapPctOfCommitted"` // RecyclingCapPctOfCommitted caps lifetime recycling against committed capital.
	RecyclingTakePctPerEvent   Rate    `json:"recyclingTakePctPerEvent"`   // RecyclingTakePctPerEvent is the slice skimmed from each event's LP proceeds.
	RecyclingWindowQuarters    Quarter `json:"recyclingWindowQuarters"`    // RecyclingWindowQuarters is the last quarter recycling may happen in.

	ClawbackEnabled          bool     `json:"clawbackEnabled"`          // ClawbackEnabled turns the end-of-fund GP carry true-up on.
	ClawbackLPHurdleMultiple Multiple `json:"clawbackLpHurdleMultiple"` // ClawbackLPHurdleMultiple is the LP floor as a multiple of paid-in, defaults to 1.0.
}

// withDefaults resolves the optional terms once, so the algorithm body never
// has to.
func (c WaterfallConfig) withDefaults() WaterfallConfig {
	if c.ClawbackLPHurdleMultiple.IsZero() {
		c.ClawbackLPHurdleMultiple = X(1)
	}
	return c
}

// Validate checks that every term is in its legal range.
func (c WaterfallConfig) Validate() error {
	one := R(1)
	if c.CarryPct.IsNegative() || c.CarryPct.GreaterThan(one) {
		return fmt.Errorf("carry must be a fraction in [0,1], got %v", c.CarryPct)
	}
	if c.HurdleRate.IsNegative() {
		return fmt.Errorf("hurdle rate must not be negative, got %v", c.HurdleRate)
	}
	if c.RecyclingEnabled {
		if c.RecyclingCapPctOfCommitted.IsNegative() || c.RecyclingCapPctOfCommitted.GreaterThan(one) {
			return fmt.Errorf("recycling cap must be a fraction in [0,1], got %v", c.RecyclingCapPctOfCommitted)
		}
		if c.RecyclingTakePctPerEvent.IsNegative() || c.RecyclingTakePctPerEvent.GreaterThan(one) {
			return fmt.Errorf("recycling take must be a fraction in [0,1], got %v", c.RecyclingTakePctPerEvent)
		}
		if c.RecyclingWindowQuarters < 0 {
			return fmt.Errorf("recycling window must not be negative, got %d", c.RecyclingWindowQuarters)
		}
	}
	if c.ClawbackLPHurdleMultiple.IsNegative() {
		return fmt.Errorf("clawback LP hurdle multiple must not be negative, got %v", c.ClawbackLPHurdleMultiple)
	}
	return nil
}

// Equal reports whether two configurations carry the same terms.
func (c WaterfallConfig) Equal(o WaterfallConfig) bool {
	return c.CarryPct.Equal(o.CarryPct) && c.HurdleRate.Equal(o.HurdleRate) &&
		c.RecyclingEnabled == o.RecyclingEnabled &&
		c.RecyclingCapPctOfCommitted.Equal(o.RecyclingCapPctOfCommitted) &&
		c.RecyclingTakePctPerEvent.Equal(o.RecyclingTakePctPerEvent) &&
		c.RecyclingWindowQuarters == o.RecyclingWindowQuarters &&
		c.ClawbackEnabled == o.ClawbackEnabled &&
		c.ClawbackLPHurdleMultiple.Equal(o.ClawbackLPHurdleMultiple)
}

// MarshalJSON implements the json.Marshaler interface for WaterfallConfig.
// Disabled term groups are left out entirely.
func (c WaterfallConfig) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("carryPct", c.CarryPct)
	if c.HurdleRate.IsPositive() {
		w.Append("hurdleRate", c.HurdleRate)
	}
	if c.RecyclingEnabled {
		w.Append("recyclingEnabled", true)
		w.Append("recyclingCapPctOfCommitted", c.RecyclingCapPctOfCommitted)
		w.Append("recyclingTakePctPerEvent", c.RecyclingTakePctPerEvent)
		w.Append("recyclingWindowQuarters", c.RecyclingWindowQuarters)
	}
	if c.ClawbackEnabled {
		w.Append("clawbackEnabled", true)
		w.Append("clawbackLpHurdleMultiple", c.withDefaults().ClawbackLPHurdleMultiple)
	}
	return w.MarshalJSON()
}

// ledgerState is the accumulator of the waterfall fold. Each step takes the
// state by value and returns the next one, so a single step stays a pure
// function that can be tested on its own.
type ledgerState struct {
	cfg WaterfallConfig
	cur string

	committed    Money // sum of all capital calls, the recycling cap base
	paidIn       Money
	distributed  Money
	recycled     Money
	gpCarryTotal Money
	gpClawback   Money
}

func newLedgerState(cfg WaterfallConfig, currency string, committed Money) ledgerState {
	zero := M(0, currency)
	return ledgerState{
		cfg:          cfg,
		cur:          currency,
		committed:    committed,
		paidIn:       zero,
		distributed:  zero,
		recycled:     zero,
		gpCarryTotal: zero,
		gpClawback:   zero,
	}
}

// unrealized is the paid-in capital not yet given back.
func (s ledgerState) unrealized() Money { return s.paidIn.Sub(s.distributed).floor() }

// ratios returns DPI and TVPI, both 0 while nothing is paid in.
func (s ledgerState) ratios() (dpi, tvpi Multiple) {
	if !s.paidIn.IsPositive() {
		return X(0), X(0)
	}
	return s.distributed.Ratio(s.paidIn), s.distributed.Add(s.unrealized()).Ratio(s.paidIn)
}

// fill completes a row with the running snapshot.
func (s ledgerState) fill(row Row) Row {
	row.PaidIn = s.paidIn
	row.Distributed = s.distributed
	row.Recycled = s.recycled
	row.UnrealizedCapital = s.unrealized()
	row.DPI, row.TVPI = s.ratios()
	return row
}

// step applies one exit event: release freshly absorbed capital calls, then
// split the proceeds into capital return, profit share and carry, then skim
// recycling. It returns the next state and the emitted row.
func (s ledgerState) step(e Exit, released Money) (ledgerState, Row) {
	s.paidIn = s.paidIn.Add(released)

	zero := M(0, s.cur)
	gross := e.GrossProceeds.floor()
	row := Row{
		Quarter:         e.When(),
		GrossProceeds:   gross,
		LPCapitalReturn: zero,
		LPProfitShare:   zero,
		GPCarry:         zero,
		RecycledAmount:  zero,
		GPClawback:      zero,
	}

	// With no capital paid in there is nothing to return and nobody to
	// recognize profit for, the event degenerates to a zero split.
	if !s.paidIn.IsPositive() {
		return s, s.fill(row)
	}

	// Capital comes back before any profit is recognized.
	outstanding := s.paidIn.Sub(s.distributed).floor()
	row.LPCapitalReturn = least(gross, outstanding)
	remaining := gross.Sub(row.LPCapitalReturn)

	// The hurdle only suppresses carry, it never touches capital return.
	hurdleFloor := zero
	if s.cfg.HurdleRate.IsPositive() {
		hurdleFloor = s.cfg.HurdleRate.Of(outstanding)
	}
	excessProfit := remaining.Sub(hurdleFloor).floor()
	row.GPCarry = s.cfg.CarryPct.Of(excessProfit)
	row.LPProfitShare = remaining.Sub(row.GPCarry)

	// Recycling skims what would otherwise be distributed, so it can never
	// push distributed negative.
	if s.cfg.RecyclingEnabled && e.When() <= s.cfg.RecyclingWindowQuarters {
		capRoom := s.cfg.RecyclingCapPctOfCommitted.Of(s.committed).Sub(s.recycled).floor()
		if capRoom.IsPositive() {
			take := s.cfg.RecyclingTakePctPerEvent.Of(row.LPCapitalReturn.Add(row.LPProfitShare))
			row.RecycledAmount = least(take, capRoom)
		}
	}

	s.distributed = s.distributed.Add(row.LPCapitalReturn).Add(row.LPProfitShare).Sub(row.RecycledAmount)
	s.recycled = s.recycled.Add(row.RecycledAmount)
	s.gpCarryTotal = s.gpCarryTotal.Add(row.GPCarry)
	return s, s.fill(row)
}

// totals snapshots the final cumulative state.
func (s ledgerState) totals() Totals {
	dpi, tvpi := s.ratios()
	return Totals{
		PaidIn:            s.paidIn,
		Distributed:       s.distributed,
		Recycled:          s.recycled,
		UnrealizedCapital: s.unrealized(),
		DPI:               dpi,
		TVPI:              tvpi,
		GPCarryTotal:      s.gpCarryTotal,
		GPClawback:        s.gpClawback,
		GPCarryNet:        s.gpCarryTotal.Sub(s.gpClawback),
	}
}

// flowCurrency returns the first declared currency of the given flows, or
// DefaultCurrency when none carries one.
func flowCurrency(contributions []Contribution, exits []Exit) string {
	for _, c := range contributions {
		if cur := c.Amount.Currency(); cur != "" {
			return cur
		}
	}
	for _, e := range exits {
		if cur := e.GrossProceeds.Currency(); cur != "" {
			return cur
		}
	}
	return DefaultCurrency
}

// ComputeWaterfall folds the exit events, in quarter order, into a
// distribution ledger under the given terms. The fold owns all of its
// running state, two calls on the same input produce byte-identical
// ledgers. It never fails: degenerate inputs (negative proceeds, no
// contributions) come out as zero-valued rows, never as an error.
func ComputeWaterfall(config WaterfallConfig, contributions []Contribution, exits []Exit) *Ledger {
	cfg := config.withDefaults()
	currency := flowCurrency(contributions, exits)
	account := newCallAccount(currency, contributions)

	ordered := make([]Exit, len(exits))
	copy(ordered, exits)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].When() < ordered[j].When() })

	state := newLedgerState(cfg, currency, account.committed())
	rows := make([]Row, 0, len(ordered)+1)
	for _, e := range ordered {
		var row Row
		state, row = state.step(e, account.release(e.When()))
		rows = append(rows, row)
	}

	if len(rows) > 0 {
		if next, row, fired := state.clawback(rows[len(rows)-1].Quarter); fired {
			state, rows = next, append(rows, row)
		}
	}

	return &Ledger{Currency: currency, Rows: rows, Totals: state.totals()}
}
