// Package money holds the monetary rounding rule used across sales and reports.
package money

import "github.com/shopspring/decimal"

// Round2 rounds to 2 decimal places, half away from zero. Line subtotals,
// costs and aggregate totals all go through here so stored amounts match
// what a cash register prints.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
