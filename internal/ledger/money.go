// Package ledger implements the balance and settlement engine: rebuilding
// every member's net position from the raw transaction log, and turning a set
// of net positions into a bounded sequence of point-to-point transfers that
// zeroes all balances.
//
// Both entry points are pure functions over data already materialized in
// memory. They perform no I/O, never retry, and are safe to call concurrently
// on snapshots.
package ledger

import "math"

// Epsilon is the tolerance below which a balance or residual is treated as
// already settled.
const Epsilon = 1e-6

// Round2 rounds a money value to two decimal places (cents), half away from
// zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// settled reports whether a residual is within Epsilon of zero.
func settled(v float64) bool {
	return math.Abs(v) <= Epsilon
}

// finite reports whether v is a usable money value (not NaN or ±Inf).
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
