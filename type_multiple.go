package fundflow

import "github.com/shopspring/decimal"

// Multiple is a unitless ratio of two amounts, 1.4 meaning 1.40x. DPI and
// TVPI are multiples, and so is the LP hurdle floor of the clawback.
type Multiple struct {
	value decimal.Decimal
}

func X[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Multiple {
	return Multiple{value: newDecimal(value)}
}

// Of applies the multiple to an amount.
func (x Multiple) Of(m Money) Money { return Money{value: m.value.Mul(x.value), cur: m.cur} }

func (x Multiple) Equal(y Multiple) bool       { return x.value.Equal(y.value) }
func (x Multiple) LessThan(y Multiple) bool    { return x.value.LessThan(y.value) }
func (x Multiple) GreaterThan(y Multiple) bool { return x.value.GreaterThan(y.value) }
func (x Multiple) IsZero() bool                { return x.value.IsZero() }
func (x Multiple) IsPositive() bool            { return x.value.IsPositive() }
func (x Multiple) IsNegative() bool            { return x.value.IsNegative() }

// Sub returns the difference of two multiples, the natural unit of fee drag.
func (x Multiple) Sub(y Multiple) Multiple { return Multiple{value: x.value.Sub(y.value)} }

// String formats the multiple the way fund reports quote them, "1.40x".
func (x Multiple) String() string {
	return x.value.StringFixed(2) + "x"
}

// rounded returns the value rounded to four places, the form ratios take in
// ledger rows.
func (x Multiple) rounded() decimal.Decimal { return x.value.Round(4) }

// MarshalJSON implements the json.Marshaler interface for Multiple.
func (x Multiple) MarshalJSON() ([]byte, error) {
	return x.rounded().MarshalJSON()
}
func (x *Multiple) UnmarshalJSON(decimalBytes []byte) error {
	return x.value.UnmarshalJSON(decimalBytes)
}
