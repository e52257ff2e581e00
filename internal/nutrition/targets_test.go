package nutrition_test

import (
	"math"
	"testing"

	"github.com/MEME-CORP/calaiweb/internal/model"
	"github.com/MEME-CORP/calaiweb/internal/nutrition"
)

func intPtr(v int) *int                                   { return &v }
func floatPtr(v float64) *float64                         { return &v }
func genderPtr(g model.Gender) *model.Gender              { return &g }
func levelPtr(l model.ActivityLevel) *model.ActivityLevel { return &l }

func profile(weight, height float64, age int, gender model.Gender, level model.ActivityLevel, goal model.GoalType) model.UserProfile {
	return model.UserProfile{
		GoalType:      goal,
		Age:           intPtr(age),
		Gender:        genderPtr(gender),
		HeightCm:      floatPtr(height),
		WeightKg:      floatPtr(weight),
		ActivityLevel: levelPtr(level),
	}
}

func TestComputeTargetsMaintenanceReferenceProfile(t *testing.T) {
	t.Parallel()
	p := profile(70, 175, 30, model.GenderMale, model.ActivitySedentary, model.GoalMaintenance)

	if bmr := nutrition.BMR(70, 175, 30, p.Gender); bmr != 1693.75 {
		t.Fatalf("expected bmr 1693.75, got %v", bmr)
	}
	got := nutrition.ComputeTargets(p)
	want := model.NutritionalTargets{Calories: 2033, ProteinG: 152, CarbsG: 203, FatG: 68}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestComputeTargetsByGoal(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		in   model.UserProfile
		want model.NutritionalTargets
	}{
		{
			name: "weight loss female lightly active",
			in:   profile(60, 165, 25, model.GenderFemale, model.ActivityLightlyActive, model.GoalWeightLoss),
			want: model.NutritionalTargets{Calories: 1350, ProteinG: 135, CarbsG: 101, FatG: 45},
		},
		{
			name: "muscle gain male very active",
			in:   profile(80, 180, 28, model.GenderMale, model.ActivityVeryActive, model.GoalMuscleGain),
			want: model.NutritionalTargets{Calories: 3388, ProteinG: 296, CarbsG: 381, FatG: 75},
		},
		{
			name: "floor at minimum calories",
			in:   profile(45, 150, 60, model.GenderFemale, model.ActivitySedentary, model.GoalWeightLoss),
			want: model.NutritionalTargets{Calories: 1200, ProteinG: 120, CarbsG: 90, FatG: 40},
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := nutrition.ComputeTargets(tc.in); got != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestComputeTargetsFallsBackWithoutBiometrics(t *testing.T) {
	t.Parallel()
	p := profile(70, 175, 30, model.GenderMale, model.ActivitySedentary, model.GoalMaintenance)
	p.Age = nil
	if got := nutrition.ComputeTargets(p); got != nutrition.DefaultTargets() {
		t.Fatalf("expected default targets, got %+v", got)
	}
	if got := nutrition.ComputeTargets(model.UserProfile{}); got != (model.NutritionalTargets{Calories: 2000, ProteinG: 150, CarbsG: 200, FatG: 65}) {
		t.Fatalf("expected documented fallback, got %+v", got)
	}
}

func TestOtherGenderUsesFemaleOffset(t *testing.T) {
	t.Parallel()
	female := profile(65, 170, 40, model.GenderFemale, model.ActivityModeratelyActive, model.GoalMaintenance)
	other := profile(65, 170, 40, model.GenderOther, model.ActivityModeratelyActive, model.GoalMaintenance)
	if nutrition.ComputeTargets(female) != nutrition.ComputeTargets(other) {
		t.Fatalf("expected OTHER to match the female formula")
	}
	if nutrition.BMR(65, 170, 40, nil) != nutrition.BMR(65, 170, 40, genderPtr(model.GenderFemale)) {
		t.Fatalf("expected unknown gender to match the female formula")
	}
}

func TestMissingActivityLevelIsSedentary(t *testing.T) {
	t.Parallel()
	if got := nutrition.ActivityMultiplier(nil); got != 1.2 {
		t.Fatalf("expected 1.2, got %v", got)
	}
	p := profile(70, 175, 30, model.GenderMale, model.ActivitySedentary, model.GoalMaintenance)
	withoutLevel := p
	withoutLevel.ActivityLevel = nil
	if nutrition.ComputeTargets(p) != nutrition.ComputeTargets(withoutLevel) {
		t.Fatalf("expected absent activity level to compute like sedentary")
	}
}

func TestComputedTargetsAreMacroConsistentAndDeterministic(t *testing.T) {
	t.Parallel()
	for _, goal := range model.GoalTypes {
		for _, level := range model.ActivityLevels {
			p := profile(82, 178, 35, model.GenderMale, level, goal)
			first := nutrition.ComputeTargets(p)
			second := nutrition.ComputeTargets(p)
			if first != second {
				t.Fatalf("non-deterministic targets for %s/%s: %+v vs %+v", goal, level, first, second)
			}
			// Each macro may be off by half a gram after rounding.
			tolerance := 0.5*nutrition.KcalPerGramProtein + 0.5*nutrition.KcalPerGramCarbs + 0.5*nutrition.KcalPerGramFat + 0.5
			if diff := math.Abs(float64(first.Calories) - nutrition.MacroCalories(first)); diff > tolerance {
				t.Fatalf("macro calories drift %.2f for %s/%s: %+v", diff, goal, level, first)
			}
		}
	}
}
