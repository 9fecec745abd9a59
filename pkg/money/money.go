// Package money holds the rounding rules shared by pricing, aggregation and
// reporting. All monetary values are float64 at the edges and decimal inside.
package money

import (
	"math"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Sanitize turns NaN and ±Inf into 0 so downstream arithmetic always yields a number.
func Sanitize(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return x
}

// NonNegative sanitizes x and clamps it at zero.
func NonNegative(x float64) float64 {
	x = Sanitize(x)
	if x < 0 {
		return 0
	}
	return x
}

// Dec converts a float to a decimal after sanitizing it.
func Dec(x float64) decimal.Decimal {
	return decimal.NewFromFloat(Sanitize(x))
}

// Float converts a decimal back, rounded half-up to 2 places.
func Float(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

// Round2 rounds x to 2 decimal places, half away from zero.
// 1.005 rounds to 1.01 because the decimal is built from the shortest
// float representation rather than the binary value.
func Round2(x float64) float64 {
	return Float(Dec(x))
}

// RoundTo rounds x half away from zero to the given number of places
func RoundTo(x float64, places int32) float64 {
	f, _ := Dec(x).Round(places).Float64()
	return f
}

// Percent returns base * pct / 100, unrounded.
func Percent(base decimal.Decimal, pct float64) decimal.Decimal {
	return base.Mul(Dec(pct)).Div(hundred)
}

// Sum adds already-rounded values and rounds the result.
func Sum(values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(Dec(v))
	}
	return Float(total)
}
