package fundflow

import "sort"

// callAccount accumulates capital calls and releases them into the ledger
// the first time an exit event reaches their quarter. Each call is absorbed
// exactly once, and calls settling after the last exit stay pending forever.
type callAccount struct {
	calls []Contribution // quarter-ascending
	next  int            // calls[:next] have been released
	cur   string
}

func newCallAccount(currency string, contributions []Contribution) *callAccount {
	calls := make([]Contribution, len(contributions))
	copy(calls, contributions)
	sort.SliceStable(calls, func(i, j int) bool { return calls[i].When() < calls[j].When() })
	return &callAccount{calls: calls, cur: currency}
}

// committed returns the sum of all calls, released or not.
func (a *callAccount) committed() Money {
	total := M(0, a.cur)
	for _, c := range a.calls {
		total = total.Add(c.Amount)
	}
	return total
}

// release returns the sum of the pending calls whose quarter is at or before
// the given quarter, and marks them released.
func (a *callAccount) release(through Quarter) Money {
	released := M(0, a.cur)
	for a.next < len(a.calls) && a.calls[a.next].When() <= through {
		released = released.Add(a.calls[a.next].Amount)
		a.next++
	}
	return released
}
