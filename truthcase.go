package fundflow

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

// TruthCase is one golden vector: a waterfall configuration and cash-flow
// schedule paired with the aggregate outcome the ledger must reproduce.
// Cases are kept in version-controlled JSON files and replayed by the test
// suite and the check command alike.
type TruthCase struct {
	Name          string          `json:"name"`
	Config        WaterfallConfig `json:"config"`
	Contributions []TruthFlow     `json:"contributions"`
	Exits         []TruthExit     `json:"exits"`
	Expected      TruthExpect     `json:"expected"`
}

// TruthFlow is a capital call of a truth case.
type TruthFlow struct {
	Quarter Quarter         `json:"quarter"`
	Amount  decimal.Decimal `json:"amount"`
}

// TruthExit is an exit event of a truth case.
type TruthExit struct {
	Quarter       Quarter         `json:"quarter"`
	GrossProceeds decimal.Decimal `json:"grossProceeds"`
}

// TruthExpect is the expected aggregate outcome of a truth case. The ratio
// and carry fields are always checked, the pointer fields only when the
// case declares them.
type TruthExpect struct {
	DPI            decimal.Decimal  `json:"dpi"`
	TVPI           decimal.Decimal  `json:"tvpi"`
	Recycled       decimal.Decimal  `json:"recycled"`
	GPCarryAccrued decimal.Decimal  `json:"gpCarryAccrued"`
	PaidIn         *decimal.Decimal `json:"paidIn,omitempty"`
	Distributed    *decimal.Decimal `json:"distributed,omitempty"`
	GPClawback     *decimal.Decimal `json:"gpClawback,omitempty"`
	GPCarryNet     *decimal.Decimal `json:"gpCarryNet,omitempty"`
}

// DecodeTruthCases reads a JSON array of truth cases.
func DecodeTruthCases(r io.Reader) ([]TruthCase, error) {
	var cases []TruthCase
	if err := json.NewDecoder(r).Decode(&cases); err != nil {
		return nil, fmt.Errorf("cannot parse truth cases: %w", err)
	}
	return cases, nil
}

// Run replays the case through the waterfall.
func (c TruthCase) Run() *Ledger {
	contributions := make([]Contribution, 0, len(c.Contributions))
	for _, f := range c.Contributions {
		contributions = append(contributions, NewContribution(f.Quarter, "", M(f.Amount, DefaultCurrency)))
	}
	exits := make([]Exit, 0, len(c.Exits))
	for _, e := range c.Exits {
		exits = append(exits, NewExit(e.Quarter, "", M(e.GrossProceeds, DefaultCurrency)))
	}
	return ComputeWaterfall(c.Config, contributions, exits)
}

// Verify replays the case and compares the ledger totals against the
// expected values, ratios within 3 decimal places and amounts within 2. It
// returns the first mismatch found.
func (c TruthCase) Verify() error {
	totals := c.Run().Totals

	if err := closeRatio("dpi", totals.DPI.value, c.Expected.DPI); err != nil {
		return err
	}
	if err := closeRatio("tvpi", totals.TVPI.value, c.Expected.TVPI); err != nil {
		return err
	}
	if err := closeAmount("recycled", totals.Recycled.value, c.Expected.Recycled); err != nil {
		return err
	}
	if err := closeAmount("gpCarryAccrued", totals.GPCarryTotal.value, c.Expected.GPCarryAccrued); err != nil {
		return err
	}
	if c.Expected.PaidIn != nil {
		if err := closeAmount("paidIn", totals.PaidIn.value, *c.Expected.PaidIn); err != nil {
			return err
		}
	}
	if c.Expected.Distributed != nil {
		if err := closeAmount("distributed", totals.Distributed.value, *c.Expected.Distributed); err != nil {
			return err
		}
	}
	if c.Expected.GPClawback != nil {
		if err := closeAmount("gpClawback", totals.GPClawback.value, *c.Expected.GPClawback); err != nil {
			return err
		}
	}
	if c.Expected.GPCarryNet != nil {
		if err := closeAmount("gpCarryNet", totals.GPCarryNet.value, *c.Expected.GPCarryNet); err != nil {
			return err
		}
	}
	return nil
}

// ratios must agree to 3 decimal places.
func closeRatio(field string, got, want decimal.Decimal) error {
	return closeTo(field, got, want, decimal.New(5, -4))
}

// amounts must agree to 2 decimal places.
func closeAmount(field string, got, want decimal.Decimal) error {
	return closeTo(field, got, want, decimal.New(5, -3))
}

func closeTo(field string, got, want, tolerance decimal.Decimal) error {
	if got.Sub(want).Abs().GreaterThan(tolerance) {
		return fmt.Errorf("%s: got %s, want %s", field, got, want)
	}
	return nil
}
