package service_test

import (
	"testing"

	"github.com/MEME-CORP/calaiweb/internal/model"
	"github.com/MEME-CORP/calaiweb/internal/nutrition"
	"github.com/MEME-CORP/calaiweb/internal/service"
	"github.com/MEME-CORP/calaiweb/internal/store"
)

func TestApplyRecommendedTargetsIsExplicit(t *testing.T) {
	t.Parallel()
	st := service.NewState(store.NewMemoryPersister())
	age, height, weight := 30, 175.0, 70.0
	gender, level, goal := model.GenderMale, model.ActivitySedentary, model.GoalMaintenance
	err := st.Profile.Update(store.ProfilePatch{
		GoalType: &goal, Age: &age, Gender: &gender, HeightCm: &height, WeightKg: &weight, ActivityLevel: &level,
	})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if st.Meals.Targets() != nutrition.DefaultTargets() {
		t.Fatalf("expected profile edits to leave targets alone")
	}

	cmp := service.CompareTargets(st)
	want := model.NutritionalTargets{Calories: 2033, ProteinG: 152, CarbsG: 203, FatG: 68}
	if cmp.Recommended != want || cmp.Active != nutrition.DefaultTargets() || len(cmp.Missing) != 0 {
		t.Fatalf("unexpected comparison %+v", cmp)
	}

	applied, err := service.ApplyRecommendedTargets(st.Profile, st.Meals)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if applied != want || st.Meals.Targets() != want {
		t.Fatalf("expected active targets %+v, got %+v", want, st.Meals.Targets())
	}
}

func TestNewStateCompletesOnboardingWithProfileCommit(t *testing.T) {
	t.Parallel()
	p := store.NewMemoryPersister()
	st := service.NewState(p)
	st.Profile.SetName("Kai")
	for i := 0; i < store.TotalSteps; i++ {
		if err := st.Onboarding.Advance(); err != nil {
			t.Fatalf("advance: %v", err)
		}
	}
	reloaded := service.NewState(p)
	if !reloaded.Onboarding.Completed() || reloaded.Profile.Profile().Name != "Kai" {
		t.Fatalf("expected completed onboarding with persisted profile")
	}
}
