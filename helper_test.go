package fundflow

// EUR is a helper for test to create euro money from const
func EUR(v float64) Money { return M(v, "EUR") }

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// NO is a helper for test to create money from const wit no currency set
func NO(v float64) Money { return M(v, "") }

// carry20 is the plain 20% carried interest deal with no hurdle, no
// recycling and no clawback, the baseline in most tests.
func carry20() WaterfallConfig {
	return WaterfallConfig{CarryPct: R(0.20)}
}

// call is a helper for test to create a capital call in usd.
func call(q Quarter, amount float64) Contribution {
	return NewContribution(q, "", USD(amount))
}

// sale is a helper for test to create an exit event in usd.
func sale(q Quarter, proceeds float64) Exit {
	return NewExit(q, "", USD(proceeds))
}
