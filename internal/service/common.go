package service

import (
	"fmt"
	"math"
)

func validateNonNegativeFloat(name string, value float64) error {
	if value < 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%s must be >= 0", name)
	}
	return nil
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
