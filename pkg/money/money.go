// Package money provides integer-cents arithmetic for billing amounts.
//
// All amounts in the engine are int64 minor units. Rates are float64
// and every float computation is rounded back to cents exactly once,
// at the boundary of the stage that produced it.
package money

import "math"

// Round converts a raw float amount to cents, rounding half up.
func Round(raw float64) int64 {
	if raw < 0 {
		return -int64(math.Floor(-raw + 0.5))
	}
	return int64(math.Floor(raw + 0.5))
}

// ApplyRate returns rate percent of amount, rounded to cents.
// rate is expressed as a percentage (5.0 = 5%).
func ApplyRate(amount int64, rate float64) int64 {
	return Round(float64(amount) * rate / 100)
}

// Distribute splits total into n shares that sum exactly to total.
// Each share gets the truncated even split; the remainder goes to the
// last share so no drift accumulates across shares.
func Distribute(total int64, n int) []int64 {
	if n <= 0 {
		return nil
	}
	shares := make([]int64, n)
	base := total / int64(n)
	for i := range shares {
		shares[i] = base
	}
	shares[n-1] += total - base*int64(n)
	return shares
}
