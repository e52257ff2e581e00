package store

import (
	"fmt"
	"slices"
	"strings"

	"github.com/MEME-CORP/calaiweb/internal/model"
	"github.com/MEME-CORP/calaiweb/internal/nutrition"
)

// Biometric bounds accepted by the profile setters.
const (
	MinAge      = 13
	MaxAge      = 120
	MinHeightCm = 100.0
	MaxHeightCm = 300.0
	MinWeightKg = 30.0
	MaxWeightKg = 300.0
)

// ProfilePatch is a partial profile update; nil fields are left untouched.
type ProfilePatch struct {
	Name               *string
	GoalType           *model.GoalType
	Age                *int
	Gender             *model.Gender
	HeightCm           *float64
	WeightKg           *float64
	ActivityLevel      *model.ActivityLevel
	DietaryPreferences []string
	TargetWeightKg     *float64
	WeightChangeRate   *model.WeightChangeRate
}

type ProfileStore struct {
	p       Persister
	profile model.UserProfile
}

func NewProfileStore(p Persister) *ProfileStore {
	s := &ProfileStore{p: p, profile: defaultProfile()}
	if loaded, ok := load[model.UserProfile](p, KeyProfile); ok {
		if loaded.GoalType == "" {
			loaded.GoalType = model.GoalWeightLoss
		}
		s.profile = loaded.Clone()
	}
	return s
}

func defaultProfile() model.UserProfile {
	return model.UserProfile{
		GoalType:           model.GoalWeightLoss,
		DietaryPreferences: []string{},
	}
}

// Profile returns a copy of the current profile.
func (s *ProfileStore) Profile() model.UserProfile {
	return s.profile.Clone()
}

func (s *ProfileStore) SetName(name string) {
	s.profile.Name = strings.TrimSpace(name)
	s.persist()
}

func (s *ProfileStore) SetGoalType(goal model.GoalType) error {
	if err := validateGoal(goal); err != nil {
		return err
	}
	s.profile.GoalType = goal
	s.persist()
	return nil
}

func (s *ProfileStore) SetAge(age int) error {
	if err := validateAge(age); err != nil {
		return err
	}
	s.profile.Age = &age
	s.persist()
	return nil
}

func (s *ProfileStore) SetGender(gender model.Gender) error {
	if !slices.Contains(model.Genders, gender) {
		return fmt.Errorf("invalid gender %q", gender)
	}
	s.profile.Gender = &gender
	s.persist()
	return nil
}

func (s *ProfileStore) SetHeight(cm float64) error {
	if err := validateRange("height", cm, MinHeightCm, MaxHeightCm, " cm"); err != nil {
		return err
	}
	s.profile.HeightCm = &cm
	s.persist()
	return nil
}

func (s *ProfileStore) SetWeight(kg float64) error {
	if err := validateRange("weight", kg, MinWeightKg, MaxWeightKg, " kg"); err != nil {
		return err
	}
	s.profile.WeightKg = &kg
	s.snapshotWeightChangeGoal()
	s.persist()
	return nil
}

func (s *ProfileStore) SetActivityLevel(level model.ActivityLevel) error {
	if !slices.Contains(model.ActivityLevels, level) {
		return fmt.Errorf("invalid activity level %q", level)
	}
	s.profile.ActivityLevel = &level
	s.persist()
	return nil
}

// SetDietaryPreferences replaces the preference set. Blank and repeated
// values are dropped; first occurrence order is kept.
func (s *ProfileStore) SetDietaryPreferences(prefs []string) {
	s.profile.DietaryPreferences = dedupePreferences(prefs)
	s.persist()
}

func (s *ProfileStore) AddDietaryPreference(pref string) error {
	pref = strings.TrimSpace(pref)
	if pref == "" {
		return fmt.Errorf("dietary preference is required")
	}
	for _, existing := range s.profile.DietaryPreferences {
		if existing == pref {
			return nil
		}
	}
	s.profile.DietaryPreferences = append(s.profile.DietaryPreferences, pref)
	s.persist()
	return nil
}

func (s *ProfileStore) RemoveDietaryPreference(pref string) {
	pref = strings.TrimSpace(pref)
	kept := make([]string, 0, len(s.profile.DietaryPreferences))
	for _, existing := range s.profile.DietaryPreferences {
		if existing != pref {
			kept = append(kept, existing)
		}
	}
	if len(kept) == len(s.profile.DietaryPreferences) {
		return
	}
	s.profile.DietaryPreferences = kept
	s.persist()
}

func (s *ProfileStore) SetTargetWeight(kg float64) error {
	if err := validateRange("target weight", kg, MinWeightKg, MaxWeightKg, " kg"); err != nil {
		return err
	}
	s.profile.TargetWeightKg = &kg
	s.snapshotWeightChangeGoal()
	s.persist()
	return nil
}

func (s *ProfileStore) SetWeightChangeRate(rate model.WeightChangeRate) error {
	if err := validateRate(rate); err != nil {
		return err
	}
	s.profile.WeightChangeRate = &rate
	s.snapshotWeightChangeGoal()
	s.persist()
	return nil
}

// SetWeightChangeGoal replaces the weight change snapshot wholesale.
func (s *ProfileStore) SetWeightChangeGoal(goal model.WeightChangeGoal) error {
	if err := validateNonNegativeFloat("current weight", goal.CurrentWeightKg); err != nil {
		return err
	}
	if err := validateRange("target weight", goal.TargetWeightKg, MinWeightKg, MaxWeightKg, " kg"); err != nil {
		return err
	}
	if err := validateRate(goal.Rate); err != nil {
		return err
	}
	s.profile.WeightChangeGoal = &goal
	s.persist()
	return nil
}

// Update validates every field of the patch before applying any of them.
func (s *ProfileStore) Update(patch ProfilePatch) error {
	if patch.GoalType != nil {
		if err := validateGoal(*patch.GoalType); err != nil {
			return err
		}
	}
	if patch.Age != nil {
		if err := validateAge(*patch.Age); err != nil {
			return err
		}
	}
	if patch.Gender != nil && !slices.Contains(model.Genders, *patch.Gender) {
		return fmt.Errorf("invalid gender %q", *patch.Gender)
	}
	if patch.HeightCm != nil {
		if err := validateRange("height", *patch.HeightCm, MinHeightCm, MaxHeightCm, " cm"); err != nil {
			return err
		}
	}
	if patch.WeightKg != nil {
		if err := validateRange("weight", *patch.WeightKg, MinWeightKg, MaxWeightKg, " kg"); err != nil {
			return err
		}
	}
	if patch.ActivityLevel != nil && !slices.Contains(model.ActivityLevels, *patch.ActivityLevel) {
		return fmt.Errorf("invalid activity level %q", *patch.ActivityLevel)
	}
	if patch.TargetWeightKg != nil {
		if err := validateRange("target weight", *patch.TargetWeightKg, MinWeightKg, MaxWeightKg, " kg"); err != nil {
			return err
		}
	}
	if patch.WeightChangeRate != nil {
		if err := validateRate(*patch.WeightChangeRate); err != nil {
			return err
		}
	}

	next := s.profile.Clone()
	if patch.Name != nil {
		next.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.GoalType != nil {
		next.GoalType = *patch.GoalType
	}
	if patch.Age != nil {
		v := *patch.Age
		next.Age = &v
	}
	if patch.Gender != nil {
		v := *patch.Gender
		next.Gender = &v
	}
	if patch.HeightCm != nil {
		v := *patch.HeightCm
		next.HeightCm = &v
	}
	if patch.WeightKg != nil {
		v := *patch.WeightKg
		next.WeightKg = &v
	}
	if patch.ActivityLevel != nil {
		v := *patch.ActivityLevel
		next.ActivityLevel = &v
	}
	if patch.DietaryPreferences != nil {
		next.DietaryPreferences = dedupePreferences(patch.DietaryPreferences)
	}
	if patch.TargetWeightKg != nil {
		v := *patch.TargetWeightKg
		next.TargetWeightKg = &v
	}
	if patch.WeightChangeRate != nil {
		v := *patch.WeightChangeRate
		next.WeightChangeRate = &v
	}
	s.profile = next
	s.snapshotWeightChangeGoal()
	s.persist()
	return nil
}

// Replace swaps in a whole profile, checked against the same bounds as the
// individual setters.
func (s *ProfileStore) Replace(p model.UserProfile) error {
	if p.GoalType == "" {
		p.GoalType = model.GoalWeightLoss
	}
	if err := ValidateProfile(p); err != nil {
		return err
	}
	next := p.Clone()
	next.Name = strings.TrimSpace(next.Name)
	next.DietaryPreferences = dedupePreferences(next.DietaryPreferences)
	s.profile = next
	s.persist()
	return nil
}

func (s *ProfileStore) Reset() {
	s.profile = defaultProfile()
	s.persist()
}

// Commit writes the accumulated profile as one snapshot. Onboarding calls
// it on its terminal step.
func (s *ProfileStore) Commit() {
	s.persist()
}

// RecommendedTargets runs the target calculator against the current profile.
func (s *ProfileStore) RecommendedTargets() model.NutritionalTargets {
	return nutrition.ComputeTargets(s.profile)
}

// WeightGoal estimates progress toward the target weight. It reports false
// until both the current and the target weight are known.
func (s *ProfileStore) WeightGoal() (nutrition.WeightGoalEstimate, bool) {
	if s.profile.WeightKg == nil || s.profile.TargetWeightKg == nil {
		return nutrition.WeightGoalEstimate{}, false
	}
	return nutrition.EstimateWeightGoal(*s.profile.WeightKg, *s.profile.TargetWeightKg, s.profile.GoalType, s.profile.WeightChangeRate), true
}

// Missing lists the biometric fields the target calculator still needs.
func (s *ProfileStore) Missing() []string {
	out := make([]string, 0, 3)
	if s.profile.Age == nil {
		out = append(out, "age")
	}
	if s.profile.HeightCm == nil {
		out = append(out, "height")
	}
	if s.profile.WeightKg == nil {
		out = append(out, "weight")
	}
	return out
}

func (s *ProfileStore) snapshotWeightChangeGoal() {
	if s.profile.TargetWeightKg == nil || s.profile.WeightChangeRate == nil {
		return
	}
	current := 0.0
	if s.profile.WeightKg != nil {
		current = *s.profile.WeightKg
	}
	s.profile.WeightChangeGoal = &model.WeightChangeGoal{
		CurrentWeightKg: current,
		TargetWeightKg:  *s.profile.TargetWeightKg,
		Rate:            *s.profile.WeightChangeRate,
	}
}

func (s *ProfileStore) persist() {
	save(s.p, KeyProfile, s.profile)
}

// ValidateProfile reports the first field of p outside the accepted bounds.
func ValidateProfile(p model.UserProfile) error {
	if err := validateGoal(p.GoalType); err != nil {
		return err
	}
	if p.Age != nil {
		if err := validateAge(*p.Age); err != nil {
			return err
		}
	}
	if p.Gender != nil && !slices.Contains(model.Genders, *p.Gender) {
		return fmt.Errorf("invalid gender %q", *p.Gender)
	}
	if p.HeightCm != nil {
		if err := validateRange("height", *p.HeightCm, MinHeightCm, MaxHeightCm, " cm"); err != nil {
			return err
		}
	}
	if p.WeightKg != nil {
		if err := validateRange("weight", *p.WeightKg, MinWeightKg, MaxWeightKg, " kg"); err != nil {
			return err
		}
	}
	if p.ActivityLevel != nil && !slices.Contains(model.ActivityLevels, *p.ActivityLevel) {
		return fmt.Errorf("invalid activity level %q", *p.ActivityLevel)
	}
	if p.TargetWeightKg != nil {
		if err := validateRange("target weight", *p.TargetWeightKg, MinWeightKg, MaxWeightKg, " kg"); err != nil {
			return err
		}
	}
	if p.WeightChangeRate != nil {
		if err := validateRate(*p.WeightChangeRate); err != nil {
			return err
		}
	}
	if g := p.WeightChangeGoal; g != nil {
		if err := validateNonNegativeFloat("current weight", g.CurrentWeightKg); err != nil {
			return err
		}
		if err := validateRate(g.Rate); err != nil {
			return err
		}
	}
	return nil
}

func validateAge(age int) error {
	if age < MinAge || age > MaxAge {
		return fmt.Errorf("age must be between %d and %d", MinAge, MaxAge)
	}
	return nil
}

func validateGoal(goal model.GoalType) error {
	for _, g := range model.GoalTypes {
		if g == goal {
			return nil
		}
	}
	return fmt.Errorf("invalid goal type %q", goal)
}

func validateRate(rate model.WeightChangeRate) error {
	for _, r := range model.WeightChangeRates {
		if r == rate {
			return nil
		}
	}
	return fmt.Errorf("invalid weight change rate %q", rate)
}

func dedupePreferences(prefs []string) []string {
	out := make([]string, 0, len(prefs))
	seen := make(map[string]struct{}, len(prefs))
	for _, p := range prefs {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
