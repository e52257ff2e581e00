package nutrition

import (
	"math"

	"github.com/MEME-CORP/calaiweb/internal/model"
)

const (
	maintenanceProgress = 50.0
	maxLossFraction     = 0.3
	maxGainFraction     = 0.2
)

type WeightGoalEstimate struct {
	DiffKg          float64 `json:"diff_kg"`
	ProgressPercent float64 `json:"progress_percent"`
	WeeklyRateKg    float64 `json:"weekly_rate_kg"`
	Weeks           int     `json:"weeks"`
}

// EstimateWeightGoal reports how far a target weight sits from the current
// one and how many weeks the chosen rate needs to close the gap. A nil rate
// is treated as moderate.
func EstimateWeightGoal(currentKg, targetKg float64, goal model.GoalType, rate *model.WeightChangeRate) WeightGoalEstimate {
	diff := targetKg - currentKg
	out := WeightGoalEstimate{
		DiffKg:          diff,
		ProgressPercent: weightGoalProgress(currentKg, diff, goal),
	}
	if goal == model.GoalMaintenance || diff == 0 {
		return out
	}
	out.WeeklyRateKg = WeeklyRateKg(goal, rate)
	out.Weeks = int(math.Ceil(math.Abs(diff) / out.WeeklyRateKg))
	return out
}

func WeeklyRateKg(goal model.GoalType, rate *model.WeightChangeRate) float64 {
	r := model.RateModerate
	if rate != nil {
		r = *rate
	}
	switch r {
	case model.RateSlow:
		return 0.25
	case model.RateFast:
		if goal == model.GoalMuscleGain {
			return 0.75
		}
		return 1.0
	default:
		return 0.5
	}
}

func weightGoalProgress(currentKg, diff float64, goal model.GoalType) float64 {
	switch goal {
	case model.GoalWeightLoss:
		if diff >= 0 {
			return 0
		}
		maxLoss := maxLossFraction * currentKg
		if maxLoss <= 0 {
			return 0
		}
		return clamp(100-100*math.Abs(diff)/maxLoss, 0, 100)
	case model.GoalMuscleGain:
		if diff <= 0 {
			return 0
		}
		maxGain := maxGainFraction * currentKg
		if maxGain <= 0 {
			return 0
		}
		return clamp(100*diff/maxGain, 0, 100)
	default:
		return maintenanceProgress
	}
}
