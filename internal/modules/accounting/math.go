package accounting

import "github.com/shopspring/decimal"

// Monetary arithmetic is routed through decimals so binary floating-point
// representation error never leaks into running totals. Intermediate results
// keep 4 decimal places (sub-cent precision); Round2 is applied only at
// reporting boundaries.
const precision = 4

// Add returns a+b rounded to 4 decimal places.
func Add(a, b float64) float64 {
	return decimal.NewFromFloat(a).
		Add(decimal.NewFromFloat(b)).
		Round(precision).
		InexactFloat64()
}

// Sub returns a-b rounded to 4 decimal places.
func Sub(a, b float64) float64 {
	return decimal.NewFromFloat(a).
		Sub(decimal.NewFromFloat(b)).
		Round(precision).
		InexactFloat64()
}

// Mul returns a*b rounded to 4 decimal places.
func Mul(a, b float64) float64 {
	return decimal.NewFromFloat(a).
		Mul(decimal.NewFromFloat(b)).
		Round(precision).
		InexactFloat64()
}

// Div returns a/b rounded to 4 decimal places. A zero denominator returns 0:
// it commonly arises right after a full liquidation and is a defined no-op,
// not an error.
func Div(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return decimal.NewFromFloat(a).
		Div(decimal.NewFromFloat(b)).
		Round(precision).
		InexactFloat64()
}

// Round2 rounds to cents for final display/aggregation.
func Round2(x float64) float64 {
	return decimal.NewFromFloat(x).Round(2).InexactFloat64()
}
