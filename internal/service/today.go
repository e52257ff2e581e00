package service

import (
	"time"

	"github.com/MEME-CORP/calaiweb/internal/model"
	"github.com/MEME-CORP/calaiweb/internal/nutrition"
	"github.com/MEME-CORP/calaiweb/internal/store"
)

type TodayStatus struct {
	Date              string                  `json:"date"`
	Meals             int                     `json:"meals"`
	Calories          int                     `json:"calories"`
	ProteinG          float64                 `json:"protein_g"`
	CarbsG            float64                 `json:"carbs_g"`
	FatG              float64                 `json:"fat_g"`
	GoalCalories      int                     `json:"goal_calories"`
	GoalProteinG      float64                 `json:"goal_protein_g"`
	GoalCarbsG        float64                 `json:"goal_carbs_g"`
	GoalFatG          float64                 `json:"goal_fat_g"`
	RemainingCalories int                     `json:"remaining_calories"`
	RemainingProteinG float64                 `json:"remaining_protein_g"`
	RemainingCarbsG   float64                 `json:"remaining_carbs_g"`
	RemainingFatG     float64                 `json:"remaining_fat_g"`
	Percentages       model.MacroPercentages  `json:"macro_percentages"`
	Progress          nutrition.MacroProgress `json:"progress"`
}

// TodaySummary reports the day's intake against the active targets.
// Remaining amounts stop at zero once a target is exceeded.
func TodaySummary(meals *store.MealStore, day time.Time) *TodayStatus {
	totals := meals.DailyTotals(day)
	targets := meals.Targets()

	status := &TodayStatus{
		Date:         store.DayKey(day),
		Meals:        len(meals.MealsOn(day)),
		Calories:     totals.Calories,
		ProteinG:     totals.ProteinG,
		CarbsG:       totals.CarbsG,
		FatG:         totals.FatG,
		GoalCalories: targets.Calories,
		GoalProteinG: targets.ProteinG,
		GoalCarbsG:   targets.CarbsG,
		GoalFatG:     targets.FatG,
		Percentages:  nutrition.Percentages(totals),
		Progress:     nutrition.ProgressAll(totals, targets),
	}
	status.RemainingCalories = int(nonNegative(float64(targets.Calories - totals.Calories)))
	status.RemainingProteinG = nonNegative(targets.ProteinG - totals.ProteinG)
	status.RemainingCarbsG = nonNegative(targets.CarbsG - totals.CarbsG)
	status.RemainingFatG = nonNegative(targets.FatG - totals.FatG)
	return status
}
