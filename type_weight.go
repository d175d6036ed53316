package rebalancer

import "github.com/shopspring/decimal"

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}

// Weight is a fraction of the total portfolio value, 1 being the whole portfolio.
type Weight struct {
	value decimal.Decimal
}

// W returns the Weight 'value'; W(0.4) is 40%.
func W[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) Weight {
	return Weight{value: newDecimal(value)}
}

var one = decimal.NewFromInt(1)

func (w Weight) Decimal() decimal.Decimal     { return w.value }
func (w Weight) Equal(v Weight) bool          { return w.value.Equal(v.value) }
func (w Weight) Add(v Weight) Weight          { return Weight{value: w.value.Add(v.value)} }
func (w Weight) Sub(v Weight) Weight          { return Weight{value: w.value.Sub(v.value)} }
func (w Weight) LessThan(v Weight) bool       { return w.value.LessThan(v.value) }
func (w Weight) GreaterThan(v Weight) bool    { return w.value.GreaterThan(v.value) }
func (w Weight) IsPositive() bool             { return w.value.IsPositive() }
func (w Weight) IsNegative() bool             { return w.value.IsNegative() }
func (w Weight) IsZero() bool                 { return w.value.IsZero() }
func (w Weight) String() string               { return w.value.String() }
func (w Weight) Percent() Percent             { return Percent(w.value.Shift(2).InexactFloat64()) }
func (w Weight) MarshalJSON() ([]byte, error) { return w.value.MarshalJSON() }

func (w *Weight) UnmarshalJSON(data []byte) error {
	return w.value.UnmarshalJSON(data)
}

// inUnitRange reports whether 0 < w <= 1, the bounds of a single allocation.
func (w Weight) inUnitRange() bool {
	return w.value.IsPositive() && w.value.LessThanOrEqual(one)
}
