package utils

import "math"

// ToMinorUnits converts a decimal amount to the gateway's smallest currency
// unit (cents).
func ToMinorUnits(v float64) int64 {
	return int64(math.Round(v * 100))
}

func FromMinorUnits(v int64) float64 {
	return float64(v) / 100
}
