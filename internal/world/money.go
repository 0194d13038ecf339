package world

import "math"

// RoundCents rounds a money amount to two decimals using half-to-even
// (banker's) rounding, the rounding the reference dataset was generated
// with. Gift card balances and exchange price differences always pass
// through here before being stored.
func RoundCents(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}
