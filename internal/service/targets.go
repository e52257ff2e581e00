package service

import (
	"github.com/MEME-CORP/calaiweb/internal/model"
	"github.com/MEME-CORP/calaiweb/internal/store"
)

// TargetsComparison pairs the active targets with what the calculator
// recommends for the current profile.
type TargetsComparison struct {
	Active      model.NutritionalTargets `json:"active"`
	Recommended model.NutritionalTargets `json:"recommended"`
	Missing     []string                 `json:"missing,omitempty"`
}

func CompareTargets(st *State) TargetsComparison {
	return TargetsComparison{
		Active:      st.Meals.Targets(),
		Recommended: st.Profile.RecommendedTargets(),
		Missing:     st.Profile.Missing(),
	}
}

// ApplyRecommendedTargets recomputes targets from the profile and makes
// them the active set. Targets never follow profile edits on their own.
func ApplyRecommendedTargets(profile *store.ProfileStore, meals *store.MealStore) (model.NutritionalTargets, error) {
	targets := profile.RecommendedTargets()
	if err := meals.SetTargets(targets); err != nil {
		return model.NutritionalTargets{}, err
	}
	return targets, nil
}
