package service

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/MEME-CORP/calaiweb/internal/db"
	"github.com/MEME-CORP/calaiweb/internal/model"
	"github.com/MEME-CORP/calaiweb/internal/store"
)

type DoctorReport struct {
	UndecodableState  []string `json:"undecodable_state,omitempty"`
	UnknownState      []string `json:"unknown_state,omitempty"`
	DuplicateMealIDs  []string `json:"duplicate_meal_ids,omitempty"`
	InvalidMeals      int      `json:"invalid_meals"`
	InvalidProfile    string   `json:"invalid_profile,omitempty"`
	OnboardingInvalid bool     `json:"onboarding_out_of_range"`
	ResetState        []string `json:"reset_state,omitempty"`
}

// Healthy reports whether the check found nothing to complain about.
func (r DoctorReport) Healthy() bool {
	return len(r.UndecodableState) == 0 && len(r.DuplicateMealIDs) == 0 &&
		r.InvalidMeals == 0 && r.InvalidProfile == "" && !r.OnboardingInvalid
}

// RunDoctor inspects the raw state rows without going through the stores,
// which fall back to defaults and refuse writes on bad data. With fix set,
// undecodable rows are deleted so the owning store starts fresh.
func RunDoctor(sqldb *sql.DB, fix bool) (DoctorReport, error) {
	report := DoctorReport{}
	entries, err := db.ListState(sqldb)
	if err != nil {
		return report, fmt.Errorf("doctor state query: %w", err)
	}

	for _, e := range entries {
		var decodeErr error
		switch e.Key {
		case store.KeyProfile:
			var p model.UserProfile
			if decodeErr = json.Unmarshal(e.Value, &p); decodeErr == nil {
				if p.GoalType == "" {
					p.GoalType = model.GoalWeightLoss
				}
				if err := store.ValidateProfile(p); err != nil {
					report.InvalidProfile = err.Error()
				}
			}
		case store.KeyMeals:
			var state struct {
				Meals []model.Meal `json:"meals"`
			}
			if decodeErr = json.Unmarshal(e.Value, &state); decodeErr == nil {
				checkMeals(&report, state.Meals)
			}
		case store.KeyOnboarding:
			var o model.OnboardingState
			if decodeErr = json.Unmarshal(e.Value, &o); decodeErr == nil {
				report.OnboardingInvalid = o.Step < 1 || o.Step > store.TotalSteps
			}
		default:
			report.UnknownState = append(report.UnknownState, e.Key)
			continue
		}
		if decodeErr != nil {
			report.UndecodableState = append(report.UndecodableState, e.Key)
		}
	}

	if fix {
		for _, key := range report.UndecodableState {
			if err := db.DeleteState(sqldb, key); err != nil {
				return report, fmt.Errorf("doctor fix: %w", err)
			}
			report.ResetState = append(report.ResetState, key)
		}
	}
	return report, nil
}

func checkMeals(report *DoctorReport, meals []model.Meal) {
	seen := map[string]int{}
	for _, m := range meals {
		if err := store.ValidateMeal(m); err != nil {
			report.InvalidMeals++
		}
		seen[m.ID]++
		if seen[m.ID] == 2 {
			report.DuplicateMealIDs = append(report.DuplicateMealIDs, m.ID)
		}
	}
}

