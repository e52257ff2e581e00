package service

import (
	"fmt"
	"time"

	"github.com/MEME-CORP/calaiweb/internal/model"
	"github.com/MEME-CORP/calaiweb/internal/store"
)

const exportVersion = 1

type ExportData struct {
	Version    int                      `json:"version"`
	ExportedAt time.Time                `json:"exported_at"`
	Profile    model.UserProfile        `json:"profile"`
	Onboarding model.OnboardingState    `json:"onboarding"`
	Targets    model.NutritionalTargets `json:"targets"`
	Meals      []model.Meal             `json:"meals"`
}

type ImportMode string

const (
	ImportModeFail    ImportMode = "fail"
	ImportModeSkip    ImportMode = "skip"
	ImportModeMerge   ImportMode = "merge"
	ImportModeReplace ImportMode = "replace"
)

type ImportOptions struct {
	Mode   ImportMode
	DryRun bool
}

type ImportReport struct {
	Inserted  int      `json:"inserted"`
	Updated   int      `json:"updated"`
	Skipped   int      `json:"skipped"`
	Conflicts int      `json:"conflicts"`
	Warnings  []string `json:"warnings,omitempty"`
}

func ParseImportMode(value string) (ImportMode, error) {
	switch mode := ImportMode(value); mode {
	case ImportModeFail, ImportModeSkip, ImportModeMerge, ImportModeReplace:
		return mode, nil
	case "":
		return ImportModeMerge, nil
	default:
		return "", fmt.Errorf("invalid import mode %q (use fail, skip, merge, or replace)", value)
	}
}

func ExportDataSnapshot(st *State, now time.Time) *ExportData {
	return &ExportData{
		Version:    exportVersion,
		ExportedAt: now,
		Profile:    st.Profile.Profile(),
		Onboarding: st.Onboarding.State(),
		Targets:    st.Meals.Targets(),
		Meals:      st.Meals.Meals(),
	}
}

func ImportDataSnapshot(st *State, data *ExportData) (ImportReport, error) {
	return ImportDataSnapshotWithOptions(st, data, ImportOptions{Mode: ImportModeMerge})
}

// ImportDataSnapshotWithOptions loads a snapshot into st. Meals are matched
// by id and resolved by mode. Profile, targets and onboarding are only
// taken over in replace mode; the other modes keep the local ones.
//
// Every check runs before the first write, so a failing import or a dry run
// leaves st untouched.
func ImportDataSnapshotWithOptions(st *State, data *ExportData, opts ImportOptions) (ImportReport, error) {
	report := ImportReport{}
	if data == nil {
		return report, fmt.Errorf("import data is required")
	}
	if data.Version > exportVersion {
		return report, fmt.Errorf("unsupported export version %d", data.Version)
	}
	mode, err := ParseImportMode(string(opts.Mode))
	if err != nil {
		return report, err
	}

	if mode == ImportModeReplace {
		if err := store.ValidateProfile(withDefaultGoal(data.Profile)); err != nil {
			return report, fmt.Errorf("import profile: %w", err)
		}
		if err := checkTargets(data.Targets); err != nil {
			return report, fmt.Errorf("import targets: %w", err)
		}
	}

	existing := map[string]bool{}
	if mode != ImportModeReplace {
		for _, m := range st.Meals.Meals() {
			existing[m.ID] = true
		}
	}

	type action struct {
		meal   model.Meal
		update bool
	}
	plan := make([]action, 0, len(data.Meals))
	for idx, m := range data.Meals {
		if err := store.ValidateMeal(m); err != nil {
			report.Warnings = append(report.Warnings, fmt.Sprintf("meal[%d] %v", idx, err))
			report.Conflicts++
			continue
		}
		if !existing[m.ID] {
			plan = append(plan, action{meal: m})
			report.Inserted++
			continue
		}
		switch mode {
		case ImportModeFail:
			report.Conflicts++
			return report, fmt.Errorf("import conflict for meal %q", m.ID)
		case ImportModeSkip:
			report.Skipped++
		default:
			plan = append(plan, action{meal: m, update: true})
			report.Updated++
		}
	}
	if mode != ImportModeReplace {
		report.Warnings = append(report.Warnings, "profile, targets and onboarding kept (use replace mode to import them)")
	}

	if opts.DryRun {
		return report, nil
	}

	if mode == ImportModeReplace {
		if err := st.Profile.Replace(withDefaultGoal(data.Profile)); err != nil {
			return report, fmt.Errorf("import profile: %w", err)
		}
		st.Meals.Reset()
		if err := st.Meals.SetTargets(data.Targets); err != nil {
			return report, fmt.Errorf("import targets: %w", err)
		}
		st.Onboarding.Restore(data.Onboarding)
	}
	for _, a := range plan {
		if a.update {
			if _, err := st.Meals.Edit(a.meal.ID, fullPatch(a.meal)); err != nil {
				return report, fmt.Errorf("merge meal %q: %w", a.meal.ID, err)
			}
			continue
		}
		if err := st.Meals.Add(a.meal); err != nil {
			return report, fmt.Errorf("import meal %q: %w", a.meal.ID, err)
		}
	}
	return report, nil
}

func withDefaultGoal(p model.UserProfile) model.UserProfile {
	if p.GoalType == "" {
		p.GoalType = model.GoalWeightLoss
	}
	return p
}

func checkTargets(t model.NutritionalTargets) error {
	if t.Calories < 0 {
		return fmt.Errorf("calories must be >= 0")
	}
	for name, v := range map[string]float64{"protein": t.ProteinG, "carbs": t.CarbsG, "fat": t.FatG} {
		if err := validateNonNegativeFloat(name, v); err != nil {
			return err
		}
	}
	return nil
}

func fullPatch(m model.Meal) model.MealPatch {
	return model.MealPatch{
		Name:     &m.Name,
		Portion:  &m.Portion,
		Calories: &m.Calories,
		ProteinG: &m.ProteinG,
		CarbsG:   &m.CarbsG,
		FatG:     &m.FatG,
		Category: &m.Category,
		LoggedAt: &m.LoggedAt,
	}
}
