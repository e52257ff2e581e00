// Package nutrition holds the pure calculators: daily targets from a
// profile, macro breakdowns of logged totals, and weight goal estimates.
// Nothing in this package reads the clock or touches storage.
package nutrition

import (
	"math"

	"github.com/MEME-CORP/calaiweb/internal/model"
)

const (
	// MinimumCalories is the floor applied to every computed calorie target.
	MinimumCalories = 1200.0

	weightLossDeficit = 500.0
	muscleGainSurplus = 300.0

	KcalPerGramProtein = 4.0
	KcalPerGramCarbs   = 4.0
	KcalPerGramFat     = 9.0
)

// MacroSplit is the share of calories assigned to each macro, as fractions
// summing to 1.
type MacroSplit struct {
	Protein float64
	Carbs   float64
	Fat     float64
}

var activityMultipliers = map[model.ActivityLevel]float64{
	model.ActivitySedentary:        1.2,
	model.ActivityLightlyActive:    1.375,
	model.ActivityModeratelyActive: 1.55,
	model.ActivityVeryActive:       1.725,
	model.ActivityExtremelyActive:  1.9,
}

var goalSplits = map[model.GoalType]MacroSplit{
	model.GoalWeightLoss:  {Protein: 0.40, Carbs: 0.30, Fat: 0.30},
	model.GoalMaintenance: {Protein: 0.30, Carbs: 0.40, Fat: 0.30},
	model.GoalMuscleGain:  {Protein: 0.35, Carbs: 0.45, Fat: 0.20},
}

// DefaultTargets is returned whenever the profile lacks weight, height or age.
func DefaultTargets() model.NutritionalTargets {
	return model.NutritionalTargets{Calories: 2000, ProteinG: 150, CarbsG: 200, FatG: 65}
}

// ComputeTargets derives daily calorie and macro targets from a profile.
// It never fails; incomplete profiles get DefaultTargets.
func ComputeTargets(p model.UserProfile) model.NutritionalTargets {
	if p.WeightKg == nil || p.HeightCm == nil || p.Age == nil {
		return DefaultTargets()
	}

	bmr := BMR(*p.WeightKg, *p.HeightCm, *p.Age, p.Gender)
	tdee := bmr * ActivityMultiplier(p.ActivityLevel)
	calories := math.Max(MinimumCalories, adjustForGoal(tdee, p.GoalType))

	split := SplitFor(p.GoalType)
	// Grams come from the unrounded calorie value; calories are rounded last.
	return model.NutritionalTargets{
		Calories: int(math.Round(calories)),
		ProteinG: math.Round(calories * split.Protein / KcalPerGramProtein),
		CarbsG:   math.Round(calories * split.Carbs / KcalPerGramCarbs),
		FatG:     math.Round(calories * split.Fat / KcalPerGramFat),
	}
}

// BMR is the Mifflin-St Jeor basal metabolic rate. Every gender other than
// male, including an unknown one, takes the -161 offset.
func BMR(weightKg, heightCm float64, age int, gender *model.Gender) float64 {
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if gender != nil && *gender == model.GenderMale {
		return bmr + 5
	}
	return bmr - 161
}

// ActivityMultiplier returns the TDEE multiplier for a level; nil or unknown
// levels count as sedentary.
func ActivityMultiplier(level *model.ActivityLevel) float64 {
	if level == nil {
		return activityMultipliers[model.ActivitySedentary]
	}
	if m, ok := activityMultipliers[*level]; ok {
		return m
	}
	return activityMultipliers[model.ActivitySedentary]
}

func SplitFor(goal model.GoalType) MacroSplit {
	if s, ok := goalSplits[goal]; ok {
		return s
	}
	return goalSplits[model.GoalMaintenance]
}

// MacroCalories is the energy implied by the macro grams of a target set.
func MacroCalories(t model.NutritionalTargets) float64 {
	return t.ProteinG*KcalPerGramProtein + t.CarbsG*KcalPerGramCarbs + t.FatG*KcalPerGramFat
}

func adjustForGoal(tdee float64, goal model.GoalType) float64 {
	switch goal {
	case model.GoalWeightLoss:
		return tdee - weightLossDeficit
	case model.GoalMuscleGain:
		return tdee + muscleGainSurplus
	default:
		return tdee
	}
}
