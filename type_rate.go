package fundflow

import "github.com/shopspring/decimal"

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt32(int32(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}

}

// Rate is a fractional rate, 0.2 meaning 20%. It is the unit for carried
// interest, hurdle, recycling and fee terms.
type Rate struct {
	value decimal.Decimal
}

func R[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Rate {
	return Rate{value: newDecimal(value)}
}

// Of applies the rate to an amount.
func (r Rate) Of(m Money) Money { return Money{value: m.value.Mul(r.value), cur: m.cur} }

// Quarterly returns the rate spread evenly over four quarters.
func (r Rate) Quarterly() Rate { return Rate{value: r.value.Div(newDecimal(4))} }

func (r Rate) Equal(s Rate) bool       { return r.value.Equal(s.value) }
func (r Rate) LessThan(s Rate) bool    { return r.value.LessThan(s.value) }
func (r Rate) GreaterThan(s Rate) bool { return r.value.GreaterThan(s.value) }
func (r Rate) IsZero() bool            { return r.value.IsZero() }
func (r Rate) IsPositive() bool        { return r.value.IsPositive() }
func (r Rate) IsNegative() bool        { return r.value.IsNegative() }

// String formats the rate in percent, "0.2" prints as "20.00%".
func (r Rate) String() string {
	return r.value.Shift(2).StringFixed(2) + "%"
}

// MarshalJSON implements the json.Marshaler interface for Rate.
func (r Rate) MarshalJSON() ([]byte, error) {
	return r.value.MarshalJSON()
}
func (r *Rate) UnmarshalJSON(decimalBytes []byte) error {
	return r.value.UnmarshalJSON(decimalBytes)
}
