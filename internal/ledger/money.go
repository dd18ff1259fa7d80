package ledger

import (
	"fmt"
	"math"
)

// Money is an amount in minor currency units (tiyin, 1/100 som).
// All server-side arithmetic is integer; decimal values exist only at
// the HTTP boundary.
type Money int64

// FromMajor converts a decimal major-unit amount coming from the API
// into minor units, rounding half away from zero.
func FromMajor(v float64) Money {
	return Money(math.Round(v * 100))
}

// Major converts back to decimal major units for API responses.
func (m Money) Major() float64 {
	return float64(m) / 100
}

func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", int64(m)/100, abs64(int64(m)%100))
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// MonthlyRate applies a discount in basis points to a group's monthly
// price, rounding half up: rate = price * (10000 - bp) / 10000.
func MonthlyRate(price Money, discountBp int) Money {
	num := int64(price) * int64(10000-discountBp)
	rate := num / 10000
	if num%10000 >= 5000 {
		rate++
	}
	return Money(rate)
}

// PercentOf returns pct% of amount rounded half up to the minor unit.
// Used for per_student teacher compensation.
func PercentOf(amount Money, pct int) Money {
	num := int64(amount) * int64(pct)
	v := num / 100
	if num%100 >= 50 {
		v++
	}
	return Money(v)
}

// BasisPoints converts an API discount percentage (0–100, fractions
// allowed) into integer basis points.
func BasisPoints(pct float64) int {
	return int(math.Round(pct * 100))
}

// PercentFromBp is the inverse of BasisPoints, for responses.
func PercentFromBp(bp int) float64 {
	return float64(bp) / 100
}
