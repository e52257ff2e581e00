package store

import (
	"fmt"
	"math"
)

func validateNonNegativeInt(name string, value int) error {
	if value < 0 {
		return fmt.Errorf("%s must be >= 0", name)
	}
	return nil
}

func validateNonNegativeFloat(name string, value float64) error {
	if value < 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%s must be >= 0", name)
	}
	return nil
}

func validateRange(name string, value, lo, hi float64, unit string) error {
	if math.IsNaN(value) || math.IsInf(value, 0) || value < lo || value > hi {
		return fmt.Errorf("%s must be between %g and %g%s", name, lo, hi, unit)
	}
	return nil
}
