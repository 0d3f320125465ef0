package hand

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Cents converts a currency amount to integer minor units, rounding half
// away from zero.
func Cents(d decimal.Decimal) int64 {
	return d.Mul(hundred).Round(0).IntPart()
}

// FromCents converts minor units back to a currency amount.
func FromCents(c int64) decimal.Decimal {
	return decimal.New(c, -2)
}

// Sum adds amounts.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// SumMap adds every value of m.
func SumMap(m map[string]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range m {
		total = total.Add(v)
	}
	return total
}
