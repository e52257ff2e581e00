package model

import (
	"fmt"
	"strings"
	"time"
)

type GoalType string

const (
	GoalWeightLoss  GoalType = "WEIGHT_LOSS"
	GoalMaintenance GoalType = "MAINTENANCE"
	GoalMuscleGain  GoalType = "MUSCLE_GAIN"
)

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

type ActivityLevel string

const (
	ActivitySedentary        ActivityLevel = "SEDENTARY"
	ActivityLightlyActive    ActivityLevel = "LIGHTLY_ACTIVE"
	ActivityModeratelyActive ActivityLevel = "MODERATELY_ACTIVE"
	ActivityVeryActive       ActivityLevel = "VERY_ACTIVE"
	ActivityExtremelyActive  ActivityLevel = "EXTREMELY_ACTIVE"
)

type WeightChangeRate string

const (
	RateSlow     WeightChangeRate = "SLOW"
	RateModerate WeightChangeRate = "MODERATE"
	RateFast     WeightChangeRate = "FAST"
)

type MealCategory string

const (
	CategoryBreakfast MealCategory = "BREAKFAST"
	CategoryLunch     MealCategory = "LUNCH"
	CategoryDinner    MealCategory = "DINNER"
	CategorySnack     MealCategory = "SNACK"
)

var (
	GoalTypes         = []GoalType{GoalWeightLoss, GoalMaintenance, GoalMuscleGain}
	Genders           = []Gender{GenderMale, GenderFemale, GenderOther}
	ActivityLevels    = []ActivityLevel{ActivitySedentary, ActivityLightlyActive, ActivityModeratelyActive, ActivityVeryActive, ActivityExtremelyActive}
	WeightChangeRates = []WeightChangeRate{RateSlow, RateModerate, RateFast}
	MealCategories    = []MealCategory{CategoryBreakfast, CategoryLunch, CategoryDinner, CategorySnack}
)

// WeightChangeGoal is a snapshot taken when the target weight or the rate
// changes. It is replaced, never edited.
type WeightChangeGoal struct {
	CurrentWeightKg float64          `json:"current_weight_kg"`
	TargetWeightKg  float64          `json:"target_weight_kg"`
	Rate            WeightChangeRate `json:"rate"`
}

type UserProfile struct {
	Name               string            `json:"name,omitempty"`
	GoalType           GoalType          `json:"goal_type"`
	Age                *int              `json:"age,omitempty"`
	Gender             *Gender           `json:"gender,omitempty"`
	HeightCm           *float64          `json:"height_cm,omitempty"`
	WeightKg           *float64          `json:"weight_kg,omitempty"`
	ActivityLevel      *ActivityLevel    `json:"activity_level,omitempty"`
	DietaryPreferences []string          `json:"dietary_preferences"`
	TargetWeightKg     *float64          `json:"target_weight_kg,omitempty"`
	WeightChangeRate   *WeightChangeRate `json:"weight_change_rate,omitempty"`
	WeightChangeGoal   *WeightChangeGoal `json:"weight_change_goal,omitempty"`
}

// Clone returns a deep copy so callers cannot mutate store-owned state.
func (p UserProfile) Clone() UserProfile {
	out := p
	out.Age = clonePtr(p.Age)
	out.Gender = clonePtr(p.Gender)
	out.HeightCm = clonePtr(p.HeightCm)
	out.WeightKg = clonePtr(p.WeightKg)
	out.ActivityLevel = clonePtr(p.ActivityLevel)
	out.TargetWeightKg = clonePtr(p.TargetWeightKg)
	out.WeightChangeRate = clonePtr(p.WeightChangeRate)
	out.WeightChangeGoal = clonePtr(p.WeightChangeGoal)
	out.DietaryPreferences = append([]string(nil), p.DietaryPreferences...)
	if out.DietaryPreferences == nil {
		out.DietaryPreferences = []string{}
	}
	return out
}

type NutritionalTargets struct {
	Calories int     `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

type NutritionalTotals struct {
	Calories int     `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

type MacroPercentages struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
}

type Meal struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Portion  string       `json:"portion"`
	Calories int          `json:"calories"`
	ProteinG float64      `json:"protein_g"`
	CarbsG   float64      `json:"carbs_g"`
	FatG     float64      `json:"fat_g"`
	Category MealCategory `json:"category"`
	LoggedAt time.Time    `json:"logged_at"`
}

// MealPatch carries the fields of an edit; nil fields are left untouched.
type MealPatch struct {
	Name     *string
	Portion  *string
	Calories *int
	ProteinG *float64
	CarbsG   *float64
	FatG     *float64
	Category *MealCategory
	LoggedAt *time.Time
}

type OnboardingState struct {
	Step      int  `json:"step"`
	Completed bool `json:"completed"`
}

func ParseGoalType(value string) (GoalType, error) {
	key := enumKey(value)
	for _, g := range GoalTypes {
		if string(g) == key {
			return g, nil
		}
	}
	return "", fmt.Errorf("invalid goal %q (use weight-loss, maintenance, or muscle-gain)", value)
}

func ParseGender(value string) (Gender, error) {
	key := enumKey(value)
	for _, g := range Genders {
		if string(g) == key {
			return g, nil
		}
	}
	return "", fmt.Errorf("invalid gender %q (use male, female, or other)", value)
}

func ParseActivityLevel(value string) (ActivityLevel, error) {
	key := enumKey(value)
	for _, a := range ActivityLevels {
		if string(a) == key {
			return a, nil
		}
	}
	return "", fmt.Errorf("invalid activity level %q (use sedentary, lightly-active, moderately-active, very-active, or extremely-active)", value)
}

func ParseWeightChangeRate(value string) (WeightChangeRate, error) {
	key := enumKey(value)
	for _, r := range WeightChangeRates {
		if string(r) == key {
			return r, nil
		}
	}
	return "", fmt.Errorf("invalid rate %q (use slow, moderate, or fast)", value)
}

func ParseMealCategory(value string) (MealCategory, error) {
	key := enumKey(value)
	if key == "SNACKS" {
		key = string(CategorySnack)
	}
	for _, c := range MealCategories {
		if string(c) == key {
			return c, nil
		}
	}
	return "", fmt.Errorf("invalid category %q (use breakfast, lunch, dinner, or snack)", value)
}

// Label renders an enum wire value as lower-case kebab text, e.g.
// WEIGHT_LOSS -> weight-loss.
func Label[T ~string](v T) string {
	return strings.ReplaceAll(strings.ToLower(string(v)), "_", "-")
}

func enumKey(value string) string {
	key := strings.ToUpper(strings.TrimSpace(value))
	return strings.NewReplacer("-", "_", " ", "_").Replace(key)
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
