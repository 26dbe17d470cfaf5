// Package oit holds the arithmetic behind the OIT metric: duration in hours
// rounded half-up to one decimal place.
package oit

import (
	"fmt"
	"math"
)

// epsilon nudges values sitting exactly on a rounding midpoint past binary
// representation error, so 0.15 rounds to 0.2 rather than 0.1.
const epsilon = 1e-9

// RoundHalfUp1 rounds to one decimal place, half away from zero.
func RoundHalfUp1(x float64) float64 {
	if x < 0 {
		return -math.Floor(-x*10+0.5+epsilon) / 10
	}
	return math.Floor(x*10+0.5+epsilon) / 10
}

// FromMinutes converts a minute count to OIT hours.
func FromMinutes(minutes int) float64 {
	return RoundHalfUp1(float64(minutes) / 60)
}

// SumEntryOIT sums per-entry OIT values and rounds the sum once. Aggregate
// OIT is always this second rounding pass over already-rounded entry values,
// never FromMinutes over the summed minutes; the two can differ by a tenth.
func SumEntryOIT(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return RoundHalfUp1(sum)
}

// FormatHM renders a minute total as "H:MM" for report display.
func FormatHM(totalMinutes int) string {
	return fmt.Sprintf("%d:%02d", totalMinutes/60, totalMinutes%60)
}
