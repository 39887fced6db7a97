package fundflow

import (
	"math"
	"testing"
)

func TestFund_NetIRR(t *testing.T) {
	// One call of 10,000,000 at the end of Q1, one LP receipt of 14,000,000
	// at the end of Q10: the rate solves (1+r)^2.25 = 1.4.
	fund := NewFund()
	fund.Append(
		NewTerms(1, "", "Acme", "USD", carry20(), nil),
		call(1, 10_000_000),
		sale(10, 15_000_000),
	)

	got, ok := fund.NetIRR()
	if !ok {
		t.Fatal("NetIRR() reported no solution")
	}
	want := math.Pow(1.4, 1/2.25) - 1
	if diff := math.Abs(got.value.InexactFloat64() - want); diff > 1e-9 {
		t.Errorf("NetIRR() = %v, want %.6f within 1e-9", got, want)
	}
}

func TestFund_NetIRRBreakEven(t *testing.T) {
	// Capital comes back one quarter later to the cent, the rate is zero.
	fund := NewFund()
	fund.Append(call(1, 10_000_000), sale(2, 10_000_000))

	got, ok := fund.NetIRR()
	if !ok {
		t.Fatal("NetIRR() reported no solution")
	}
	if diff := math.Abs(got.value.InexactFloat64()); diff > 1e-9 {
		t.Errorf("NetIRR() = %v, want 0 within 1e-9", got)
	}
}

func TestFund_NetIRRCountsUnrealizedCapital(t *testing.T) {
	// Only half the capital came back in cash, the other half is still held
	// at cost and enters as a terminal value in the same quarter. Together
	// they break even.
	fund := NewFund()
	fund.Append(call(1, 10_000_000), sale(2, 5_000_000))

	got, ok := fund.NetIRR()
	if !ok {
		t.Fatal("NetIRR() reported no solution")
	}
	if diff := math.Abs(got.value.InexactFloat64()); diff > 1e-9 {
		t.Errorf("NetIRR() = %v, want 0 within 1e-9", got)
	}
}

func TestFund_NetIRRFeesDrag(t *testing.T) {
	build := func(fees *FeeTerms) *Fund {
		fund := NewFund()
		fund.Append(
			NewTerms(1, "", "Acme", "USD", carry20(), fees),
			call(1, 10_000_000),
			sale(10, 15_000_000),
		)
		return fund
	}

	gross, ok := build(nil).NetIRR()
	if !ok {
		t.Fatal("NetIRR() reported no solution for the fee-free fund")
	}
	net, ok := build(&FeeTerms{AnnualRate: R(0.02), Basis: CommittedCapital}).NetIRR()
	if !ok {
		t.Fatal("NetIRR() reported no solution for the fee-charging fund")
	}

	if !net.LessThan(gross) {
		t.Errorf("NetIRR() with fees = %v, want below the fee-free %v", net, gross)
	}
}

func TestFund_NetIRRNoSolution(t *testing.T) {
	// A fund that only ever called capital has nothing to bracket a root
	// with.
	fund := NewFund()
	fund.Append(call(1, 10_000_000))

	if _, ok := fund.NetIRR(); ok {
		t.Error("NetIRR() reported a solution for a calls-only fund")
	}

	// Same for an empty record.
	if _, ok := NewFund().NetIRR(); ok {
		t.Error("NetIRR() reported a solution for an empty fund")
	}
}
