package fundflow

// clawback runs the end-of-fund GP carry true-up. It fires only when carry
// was taken, capital was paid in, the fund ended profitable overall, and
// LP distributions still fell short of the contractual floor. The test is
// shortfall-proportional rather than a cliff: the GP keeps carry on
// whatever profit remains once LPs are topped up to the floor, instead of
// losing everything the moment the floor is merely unmet.
//
// On firing it returns the corrective state and a synthetic row at the last
// exit's quarter, carrying the returned carry as negative GP carry and as
// LP capital return.
func (s ledgerState) clawback(last Quarter) (ledgerState, Row, bool) {
	if !s.cfg.ClawbackEnabled || !s.paidIn.IsPositive() || !s.gpCarryTotal.IsPositive() {
		return s, Row{}, false
	}

	zero := M(0, s.cur)
	totalFundProfit := s.distributed.Add(s.gpCarryTotal).Sub(s.paidIn)
	lpRequiredFloor := s.cfg.ClawbackLPHurdleMultiple.Of(s.paidIn)

	gpClawback := zero
	if totalFundProfit.IsPositive() && s.distributed.LessThan(lpRequiredFloor) {
		lpShortfall := lpRequiredFloor.Sub(s.distributed)
		// The GP keeps carry on the profit left after the LP top-up, floored
		// at zero when the shortfall eats all of it.
		allowedGpCarry := zero
		if totalFundProfit.GreaterThan(lpShortfall) {
			allowedGpCarry = s.cfg.CarryPct.Of(totalFundProfit.Sub(lpShortfall))
		}
		gpClawback = s.gpCarryTotal.Sub(allowedGpCarry).floor()
	}
	if !gpClawback.IsPositive() {
		return s, Row{}, false
	}

	// The GP returns cash to LPs.
	s.distributed = s.distributed.Add(gpClawback)
	s.gpClawback = gpClawback

	row := Row{
		Quarter:         last,
		GrossProceeds:   zero,
		LPCapitalReturn: gpClawback,
		LPProfitShare:   zero,
		GPCarry:         gpClawback.Neg(),
		RecycledAmount:  zero,
		GPClawback:      gpClawback,
	}
	return s, s.fill(row), true
}
