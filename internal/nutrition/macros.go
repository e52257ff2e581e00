package nutrition

import (
	"math"

	"github.com/MEME-CORP/calaiweb/internal/model"
)

// evenSplit is reported when nothing has been eaten; it still sums to 100.
var evenSplit = model.MacroPercentages{Protein: 33.33, Carbs: 33.33, Fat: 33.34}

// MacroProgress is the per-metric progress, in percent, of totals against
// targets.
type MacroProgress struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
}

// Percentages splits the logged macro grams into percent of the macro sum.
// Each share is rounded on its own, so the three values may not add up to
// exactly 100.
func Percentages(t model.NutritionalTotals) model.MacroPercentages {
	sum := t.ProteinG + t.CarbsG + t.FatG
	if sum == 0 {
		return evenSplit
	}
	return model.MacroPercentages{
		Protein: math.Round(100 * t.ProteinG / sum),
		Carbs:   math.Round(100 * t.CarbsG / sum),
		Fat:     math.Round(100 * t.FatG / sum),
	}
}

// Progress is total as a percent of target, clamped to [0, 100]. A zero
// target yields 0.
func Progress(total, target float64) int {
	if target == 0 {
		return 0
	}
	return int(clamp(math.Round(100*total/target), 0, 100))
}

func ProgressAll(totals model.NutritionalTotals, targets model.NutritionalTargets) MacroProgress {
	return MacroProgress{
		Calories: Progress(float64(totals.Calories), float64(targets.Calories)),
		Protein:  Progress(totals.ProteinG, targets.ProteinG),
		Carbs:    Progress(totals.CarbsG, targets.CarbsG),
		Fat:      Progress(totals.FatG, targets.FatG),
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
