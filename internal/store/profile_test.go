package store_test

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/MEME-CORP/calaiweb/internal/model"
	"github.com/MEME-CORP/calaiweb/internal/nutrition"
	"github.com/MEME-CORP/calaiweb/internal/store"
)

func TestProfileStoreDefaults(t *testing.T) {
	t.Parallel()
	s := store.NewProfileStore(store.NewMemoryPersister())
	p := s.Profile()
	if p.GoalType != model.GoalWeightLoss {
		t.Fatalf("expected default goal WEIGHT_LOSS, got %q", p.GoalType)
	}
	if p.DietaryPreferences == nil || len(p.DietaryPreferences) != 0 {
		t.Fatalf("expected empty preference list, got %#v", p.DietaryPreferences)
	}
	if got := s.Missing(); !reflect.DeepEqual(got, []string{"age", "height", "weight"}) {
		t.Fatalf("expected all biometrics missing, got %v", got)
	}
	if s.RecommendedTargets() != nutrition.DefaultTargets() {
		t.Fatalf("expected default targets for empty profile")
	}
}

func TestProfileStoreRejectsOutOfRangeValues(t *testing.T) {
	t.Parallel()
	s := store.NewProfileStore(store.NewMemoryPersister())

	cases := []struct {
		name string
		fn   func() error
		msg  string
	}{
		{"age low", func() error { return s.SetAge(12) }, "age must be between 13 and 120"},
		{"age high", func() error { return s.SetAge(121) }, "age must be between 13 and 120"},
		{"height low", func() error { return s.SetHeight(99.9) }, "height must be between"},
		{"weight high", func() error { return s.SetWeight(300.5) }, "weight must be between"},
		{"weight inf", func() error { return s.SetWeight(math.Inf(1)) }, "weight must be between"},
		{"target low", func() error { return s.SetTargetWeight(29) }, "target weight must be between"},
		{"bad rate", func() error { return s.SetWeightChangeRate("TURBO") }, "invalid weight change rate"},
		{"bad goal", func() error { return s.SetGoalType("BULK") }, "invalid goal type"},
		{"bad gender", func() error { return s.SetGender("ROBOT") }, "invalid gender"},
		{"lower-case gender", func() error { return s.SetGender("male") }, "invalid gender"},
		{"bad activity", func() error { return s.SetActivityLevel("COUCH") }, "invalid activity level"},
		{"bad activity patch", func() error {
			level := model.ActivityLevel("COUCH")
			return s.Update(store.ProfilePatch{ActivityLevel: &level})
		}, "invalid activity level"},
	}
	for _, tc := range cases {
		err := tc.fn()
		if err == nil || !strings.Contains(err.Error(), tc.msg) {
			t.Fatalf("%s: expected error containing %q, got %v", tc.name, tc.msg, err)
		}
	}
	p := s.Profile()
	if p.Age != nil || p.HeightCm != nil || p.WeightKg != nil || p.TargetWeightKg != nil || p.WeightChangeRate != nil ||
		p.Gender != nil || p.ActivityLevel != nil {
		t.Fatalf("expected rejected values to leave profile untouched, got %+v", p)
	}
}

func TestProfileStoreAcceptsBoundaryValues(t *testing.T) {
	t.Parallel()
	s := store.NewProfileStore(store.NewMemoryPersister())
	if err := s.SetAge(13); err != nil {
		t.Fatalf("age 13: %v", err)
	}
	if err := s.SetAge(120); err != nil {
		t.Fatalf("age 120: %v", err)
	}
	if err := s.SetHeight(100); err != nil {
		t.Fatalf("height 100: %v", err)
	}
	if err := s.SetWeight(300); err != nil {
		t.Fatalf("weight 300: %v", err)
	}
}

func TestProfileStoreSnapshotsWeightChangeGoal(t *testing.T) {
	t.Parallel()
	s := store.NewProfileStore(store.NewMemoryPersister())
	if err := s.SetTargetWeight(70); err != nil {
		t.Fatalf("set target: %v", err)
	}
	if s.Profile().WeightChangeGoal != nil {
		t.Fatalf("expected no snapshot until a rate is chosen")
	}
	if err := s.SetWeightChangeRate(model.RateFast); err != nil {
		t.Fatalf("set rate: %v", err)
	}
	goal := s.Profile().WeightChangeGoal
	if goal == nil || goal.CurrentWeightKg != 0 || goal.TargetWeightKg != 70 || goal.Rate != model.RateFast {
		t.Fatalf("expected snapshot {0 70 FAST}, got %+v", goal)
	}

	if err := s.SetWeight(82); err != nil {
		t.Fatalf("set weight: %v", err)
	}
	if got := s.Profile().WeightChangeGoal.CurrentWeightKg; got != 82 {
		t.Fatalf("expected snapshot current weight 82, got %v", got)
	}
}

func TestProfileStoreDietaryPreferences(t *testing.T) {
	t.Parallel()
	s := store.NewProfileStore(store.NewMemoryPersister())
	s.SetDietaryPreferences([]string{"vegan", " vegan ", "", "gluten-free"})
	if got := s.Profile().DietaryPreferences; !reflect.DeepEqual(got, []string{"vegan", "gluten-free"}) {
		t.Fatalf("expected deduped preferences, got %v", got)
	}
	if err := s.AddDietaryPreference("vegan"); err != nil {
		t.Fatalf("add existing: %v", err)
	}
	if err := s.AddDietaryPreference("keto"); err != nil {
		t.Fatalf("add keto: %v", err)
	}
	if err := s.AddDietaryPreference("   "); err == nil {
		t.Fatalf("expected blank preference to be rejected")
	}
	s.RemoveDietaryPreference("vegan")
	if got := s.Profile().DietaryPreferences; !reflect.DeepEqual(got, []string{"gluten-free", "keto"}) {
		t.Fatalf("unexpected preferences %v", got)
	}
}

func TestProfileStoreUpdateIsAllOrNothing(t *testing.T) {
	t.Parallel()
	s := store.NewProfileStore(store.NewMemoryPersister())
	age := 30
	height := 400.0
	if err := s.Update(store.ProfilePatch{Age: &age, HeightCm: &height}); err == nil {
		t.Fatalf("expected invalid height to fail the patch")
	}
	if s.Profile().Age != nil {
		t.Fatalf("expected age untouched after failed patch")
	}

	height = 175
	weight := 70.0
	gender := model.GenderMale
	level := model.ActivitySedentary
	goal := model.GoalMaintenance
	err := s.Update(store.ProfilePatch{
		GoalType:      &goal,
		Age:           &age,
		Gender:        &gender,
		HeightCm:      &height,
		WeightKg:      &weight,
		ActivityLevel: &level,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	want := model.NutritionalTargets{Calories: 2033, ProteinG: 152, CarbsG: 203, FatG: 68}
	if got := s.RecommendedTargets(); got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
	if len(s.Missing()) != 0 {
		t.Fatalf("expected nothing missing, got %v", s.Missing())
	}
}

func TestProfileStoreWeightGoal(t *testing.T) {
	t.Parallel()
	s := store.NewProfileStore(store.NewMemoryPersister())
	if _, ok := s.WeightGoal(); ok {
		t.Fatalf("expected no estimate without weights")
	}
	if err := s.Update(store.ProfilePatch{WeightKg: floatPtr(80), TargetWeightKg: floatPtr(70)}); err != nil {
		t.Fatalf("update: %v", err)
	}
	est, ok := s.WeightGoal()
	if !ok {
		t.Fatalf("expected estimate")
	}
	if est.DiffKg != -10 || est.WeeklyRateKg != 0.5 || est.Weeks != 20 {
		t.Fatalf("unexpected estimate %+v", est)
	}
}

func TestProfileStoreReloadAndReset(t *testing.T) {
	t.Parallel()
	p := store.NewMemoryPersister()
	s := store.NewProfileStore(p)
	s.SetName("  Ana ")
	if err := s.SetGender(model.GenderFemale); err != nil {
		t.Fatalf("set gender: %v", err)
	}
	if err := s.SetAge(41); err != nil {
		t.Fatalf("set age: %v", err)
	}

	reloaded := store.NewProfileStore(p).Profile()
	if reloaded.Name != "Ana" || reloaded.Age == nil || *reloaded.Age != 41 {
		t.Fatalf("expected persisted profile, got %+v", reloaded)
	}
	if reloaded.Gender == nil || *reloaded.Gender != model.GenderFemale {
		t.Fatalf("expected persisted gender, got %v", reloaded.Gender)
	}

	s.Reset()
	after := store.NewProfileStore(p).Profile()
	if after.Age != nil || after.Name != "" || after.GoalType != model.GoalWeightLoss {
		t.Fatalf("expected reset profile, got %+v", after)
	}
}

func TestProfileReturnsCopy(t *testing.T) {
	t.Parallel()
	s := store.NewProfileStore(store.NewMemoryPersister())
	s.SetDietaryPreferences([]string{"vegan"})
	p := s.Profile()
	p.DietaryPreferences[0] = "mutated"
	if s.Profile().DietaryPreferences[0] != "vegan" {
		t.Fatalf("expected Profile to return an independent copy")
	}
}

func TestProfileStoreReplaceValidates(t *testing.T) {
	t.Parallel()
	s := store.NewProfileStore(store.NewMemoryPersister())
	bad := model.UserProfile{GoalType: model.GoalMaintenance, HeightCm: floatPtr(20)}
	if err := s.Replace(bad); err == nil {
		t.Fatalf("expected out of range height to be rejected")
	}
	gender := model.Gender("ROBOT")
	if err := s.Replace(model.UserProfile{Gender: &gender}); err == nil {
		t.Fatalf("expected unknown gender to be rejected")
	}

	good := model.UserProfile{Name: " Bo ", WeightKg: floatPtr(64), DietaryPreferences: []string{"vegan", "vegan"}}
	if err := s.Replace(good); err != nil {
		t.Fatalf("replace: %v", err)
	}
	p := s.Profile()
	if p.Name != "Bo" || p.GoalType != model.GoalWeightLoss || len(p.DietaryPreferences) != 1 {
		t.Fatalf("unexpected replaced profile %+v", p)
	}
}
