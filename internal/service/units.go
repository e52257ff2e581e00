package service

import (
	"fmt"
	"strings"
)

const (
	kgPerLb   = 0.45359237
	cmPerInch = 2.54
)

type WeightUnit string

const (
	WeightKg WeightUnit = "kg"
	WeightLb WeightUnit = "lb"
)

type HeightUnit string

const (
	HeightCm HeightUnit = "cm"
	HeightIn HeightUnit = "in"
)

func ParseWeightUnit(unit string) (WeightUnit, error) {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "", "kg", "kgs":
		return WeightKg, nil
	case "lb", "lbs":
		return WeightLb, nil
	default:
		return "", fmt.Errorf("invalid weight unit %q (use kg or lb)", unit)
	}
}

func ParseHeightUnit(unit string) (HeightUnit, error) {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "", "cm":
		return HeightCm, nil
	case "in", "inch", "inches":
		return HeightIn, nil
	default:
		return "", fmt.Errorf("invalid height unit %q (use cm or in)", unit)
	}
}

func (u WeightUnit) ToKg(value float64) float64 {
	if u == WeightLb {
		return value * kgPerLb
	}
	return value
}

func (u WeightUnit) FromKg(kg float64) float64 {
	if u == WeightLb {
		return kg / kgPerLb
	}
	return kg
}

func (u HeightUnit) ToCm(value float64) float64 {
	if u == HeightIn {
		return value * cmPerInch
	}
	return value
}

func (u HeightUnit) FromCm(cm float64) float64 {
	if u == HeightIn {
		return cm / cmPerInch
	}
	return cm
}
