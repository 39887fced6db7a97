package fundflow

import (
	"encoding/json"
	"testing"
)

// feeFund builds a fund with one early call, a late call, and one partially
// recycled exit, enough to tell the fee bases apart.
func feeFund(fees *FeeTerms) *Fund {
	cfg := WaterfallConfig{
		CarryPct:                   R(0.20),
		RecyclingEnabled:           true,
		RecyclingCapPctOfCommitted: R(0.10),
		RecyclingTakePctPerEvent:   R(0.50),
		RecyclingWindowQuarters:    8,
	}
	fund := NewFund()
	fund.Append(
		NewTerms(1, "", "Acme Ventures I", "USD", cfg, fees),
		call(1, 10_000_000),
		call(5, 2_000_000),
		sale(2, 6_000_000),
	)
	return fund
}

func TestFund_FeeBasisAt(t *testing.T) {
	// The exit returns 6,000,000 of capital and recycles 1,200,000 of it,
	// the lifetime cap on a 12,000,000 committed fund.
	fund := feeFund(&FeeTerms{AnnualRate: R(0.02), Basis: CommittedCapital})
	ledger := fund.Waterfall()

	testCases := []struct {
		name    string
		basis   FeeBasis
		quarter Quarter
		want    Money
	}{
		{name: "committed is constant", basis: CommittedCapital, quarter: 1, want: USD(12_000_000)},
		{name: "committed ignores the clock", basis: CommittedCapital, quarter: 8, want: USD(12_000_000)},
		{name: "called before the late call", basis: CalledCapital, quarter: 1, want: USD(10_000_000)},
		{name: "called after the late call", basis: CalledCapital, quarter: 5, want: USD(12_000_000)},
		{name: "invested nets out returned capital", basis: InvestedCapital, quarter: 2, want: USD(4_000_000)},
		{name: "invested counts the late call", basis: InvestedCapital, quarter: 5, want: USD(6_000_000)},
		{name: "drawn nets out recycling", basis: DrawnCapital, quarter: 2, want: USD(8_800_000)},
		{name: "drawn after the late call", basis: DrawnCapital, quarter: 5, want: USD(10_800_000)},
		{name: "fmv before any exit is called capital", basis: FairMarketValue, quarter: 1, want: USD(10_000_000)},
		{name: "nav tracks the ledger snapshot", basis: NetAssetValue, quarter: 2, want: USD(5_200_000)},
		{name: "nav holds the last snapshot", basis: NetAssetValue, quarter: 8, want: USD(5_200_000)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := fund.feeBasisAt(tc.basis, ledger, tc.quarter)
			if !got.Equal(tc.want) {
				t.Errorf("feeBasisAt(%s, %s) = %v, want %v", tc.basis, tc.quarter, got, tc.want)
			}
		})
	}
}

func TestFund_AccrueFees(t *testing.T) {
	fund := NewFund()
	fund.Append(
		NewTerms(1, "", "Acme", "USD", carry20(),
			&FeeTerms{AnnualRate: R(0.02), Basis: CommittedCapital}),
		call(1, 10_000_000),
	)

	accruals := fund.AccrueFees(8)
	if len(accruals) != 8 {
		t.Fatalf("AccrueFees(Q8) produced %d accruals, want 8", len(accruals))
	}

	total := USD(0)
	for i, accrual := range accruals {
		if accrual.Quarter != Quarter(i+1) {
			t.Errorf("accruals[%d].Quarter = %v, want %v", i, accrual.Quarter, Quarter(i+1))
		}
		// 2% a year on 10,000,000 is 50,000 a quarter.
		assertMoney(t, "accrual.Amount", accrual.Amount, USD(50_000))
		total = total.Add(accrual.Amount)
	}
	assertMoney(t, "total fees", total, USD(400_000))
}

func TestFund_AccrueFeesStepDown(t *testing.T) {
	fund := NewFund()
	fund.Append(
		NewTerms(1, "", "Acme", "USD", carry20(), &FeeTerms{
			AnnualRate:      R(0.02),
			Basis:           CommittedCapital,
			StepDownQuarter: 5,
			StepDownRate:    R(0.01),
		}),
		call(1, 10_000_000),
	)

	accruals := fund.AccrueFees(8)
	total := USD(0)
	for _, accrual := range accruals {
		want := USD(50_000)
		if accrual.Quarter >= 5 {
			want = USD(25_000)
		}
		if !accrual.Amount.Equal(want) {
			t.Errorf("accrual %s = %v, want %v", accrual.Quarter, accrual.Amount, want)
		}
		total = total.Add(accrual.Amount)
	}
	assertMoney(t, "total fees", total, USD(300_000))
}

func TestFund_AccrueFeesWithoutTerms(t *testing.T) {
	fund := NewFund()
	fund.Append(call(1, 10_000_000))

	if accruals := fund.AccrueFees(8); accruals != nil {
		t.Errorf("AccrueFees() = %v, want nil on a fund with no fee terms", accruals)
	}
}

func TestFund_FeeImpact(t *testing.T) {
	fund := NewFund()
	fund.Append(
		NewTerms(1, "", "Acme", "USD", carry20(),
			&FeeTerms{AnnualRate: R(0.02), Basis: CommittedCapital}),
		call(1, 10_000_000),
		sale(10, 15_000_000),
	)

	impact := fund.FeeImpact(10)
	assertMoney(t, "impact.FeesTotal", impact.FeesTotal, USD(500_000))
	// Gross counts the carry the GP kept, net deducts fees from LP value.
	assertMultiple(t, "impact.GrossTVPI", impact.GrossTVPI, X(1.5))
	assertMultiple(t, "impact.NetTVPI", impact.NetTVPI, X(1.35))
	assertMultiple(t, "impact.FeeDrag", impact.FeeDrag, X(0.15))
}

func TestFund_FeeImpactEmptyFund(t *testing.T) {
	impact := NewFund().FeeImpact(10)
	assertMultiple(t, "impact.GrossTVPI", impact.GrossTVPI, X(0))
	assertMultiple(t, "impact.NetTVPI", impact.NetTVPI, X(0))
}

func TestParseFeeBasis(t *testing.T) {
	for _, basis := range []FeeBasis{
		CommittedCapital, CalledCapital, InvestedCapital,
		DrawnCapital, FairMarketValue, NetAssetValue,
	} {
		parsed, err := ParseFeeBasis(basis.String())
		if err != nil {
			t.Errorf("ParseFeeBasis(%q) returned an unexpected error: %v", basis.String(), err)
		}
		if parsed != basis {
			t.Errorf("ParseFeeBasis(%q) = %v, want %v", basis.String(), parsed, basis)
		}
	}

	if _, err := ParseFeeBasis("goodwill"); err == nil {
		t.Error("ParseFeeBasis(\"goodwill\") = nil, want an error")
	}
}

func TestFeeTerms_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		terms   FeeTerms
		wantErr bool
	}{
		{name: "plain", terms: FeeTerms{AnnualRate: R(0.02)}, wantErr: false},
		{name: "zero rate", terms: FeeTerms{}, wantErr: false},
		{name: "negative rate", terms: FeeTerms{AnnualRate: R(-0.02)}, wantErr: true},
		{
			name:    "negative step-down rate",
			terms:   FeeTerms{AnnualRate: R(0.02), StepDownQuarter: 5, StepDownRate: R(-0.01)},
			wantErr: true,
		},
		{
			name:    "negative step-down quarter",
			terms:   FeeTerms{AnnualRate: R(0.02), StepDownQuarter: -1},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.terms.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestFeeTerms_MarshalJSON(t *testing.T) {
	plain := FeeTerms{AnnualRate: R(0.02), Basis: NetAssetValue}
	got, err := json.Marshal(plain)
	if err != nil {
		t.Fatalf("Marshal() returned an unexpected error: %v", err)
	}
	if want := `{"annualRate":0.02,"basis":"nav"}`; string(got) != want {
		t.Errorf("got %s, want %s", got, want)
	}

	stepped := FeeTerms{AnnualRate: R(0.02), Basis: CommittedCapital, StepDownQuarter: 5, StepDownRate: R(0.01)}
	got, err = json.Marshal(stepped)
	if err != nil {
		t.Fatalf("Marshal() returned an unexpected error: %v", err)
	}
	want := `{"annualRate":0.02,"basis":"committed","stepDownQuarter":5,"stepDownRate":0.01}`
	if string(got) != want {
		t.Errorf("got %s, want %s", got, want)
	}
}
