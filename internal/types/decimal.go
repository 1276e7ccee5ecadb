package types

import "github.com/shopspring/decimal"

// DecimalBounds returns the inclusive representable range of an exact
// decimal type: ±(10^precision − 1) / 10^scale. ok is false for
// non-decimal categories and for unspecified or inconsistent parameters.
func DecimalBounds(s SemanticType) (min, max decimal.Decimal, ok bool) {
	if s.Category != CategoryDecimal || s.Precision <= 0 || s.Scale < 0 || s.Scale > s.Precision {
		return decimal.Zero, decimal.Zero, false
	}
	max = decimal.New(1, int32(s.Precision)).Sub(decimal.New(1, 0)).Shift(int32(-s.Scale))
	return max.Neg(), max, true
}
