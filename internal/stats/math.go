package stats

import (
	"math"
	"slices"
)

// ratio divides with a minimum divisor of 1.
func ratio(n, d int) float64 {
	return float64(n) / float64(max(1, d))
}

// Percent is part as a percentage of whole, 0 when whole is not positive.
func Percent(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// MedianInt finds the median of a slice of integers without mutating it.
func MedianInt(values []int) float64 {
	if len(values) == 0 {
		return 0
	}

	temp := slices.Clone(values)
	slices.Sort(temp)

	n := len(temp)
	if n%2 == 1 {
		return float64(temp[n/2])
	}
	return float64(temp[n/2-1]+temp[n/2]) / 2.0
}
