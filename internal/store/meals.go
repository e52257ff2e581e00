package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/MEME-CORP/calaiweb/internal/model"
	"github.com/MEME-CORP/calaiweb/internal/nutrition"
)

const dayLayout = "2006-01-02"

type mealState struct {
	Meals   []model.Meal             `json:"meals"`
	Targets model.NutritionalTargets `json:"targets"`
}

// MealStore owns the meal log and the active target set.
//
// Meal ids are not checked for uniqueness. Lookups, edits and deletes act
// on the first meal carrying the id.
type MealStore struct {
	p     Persister
	state mealState
}

func NewMealStore(p Persister) *MealStore {
	s := &MealStore{p: p, state: mealState{Meals: []model.Meal{}, Targets: nutrition.DefaultTargets()}}
	if loaded, ok := load[mealState](p, KeyMeals); ok {
		if loaded.Meals == nil {
			loaded.Meals = []model.Meal{}
		}
		s.state = loaded
	}
	return s
}

// DayKey is the calendar date a timestamp belongs to: the leading
// YYYY-MM-DD of its ISO form, in the timestamp's own offset.
func DayKey(t time.Time) string {
	return t.Format(dayLayout)
}

// ValidateMeal reports the first field of m that cannot be logged.
func ValidateMeal(m model.Meal) error {
	if strings.TrimSpace(m.ID) == "" {
		return fmt.Errorf("meal id is required")
	}
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("meal name is required")
	}
	if err := validateNonNegativeInt("calories", m.Calories); err != nil {
		return err
	}
	if err := validateNonNegativeFloat("protein", m.ProteinG); err != nil {
		return err
	}
	if err := validateNonNegativeFloat("carbs", m.CarbsG); err != nil {
		return err
	}
	if err := validateNonNegativeFloat("fat", m.FatG); err != nil {
		return err
	}
	if _, err := model.ParseMealCategory(string(m.Category)); err != nil {
		return err
	}
	if m.LoggedAt.IsZero() {
		return fmt.Errorf("logged time is required")
	}
	if y := m.LoggedAt.Year(); y < 1 || y > 9999 {
		return fmt.Errorf("logged time year %d is out of range", y)
	}
	return nil
}

// Add appends a meal to the log.
func (s *MealStore) Add(m model.Meal) error {
	normalizeMeal(&m)
	if err := ValidateMeal(m); err != nil {
		return err
	}
	s.state.Meals = append(s.state.Meals, m)
	s.persist()
	return nil
}

// Edit merges patch into the first meal with id. It reports false, and
// changes nothing, when no meal has that id.
func (s *MealStore) Edit(id string, patch model.MealPatch) (bool, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return false, nil
	}
	m := s.state.Meals[idx]
	if patch.Name != nil {
		m.Name = *patch.Name
	}
	if patch.Portion != nil {
		m.Portion = *patch.Portion
	}
	if patch.Calories != nil {
		m.Calories = *patch.Calories
	}
	if patch.ProteinG != nil {
		m.ProteinG = *patch.ProteinG
	}
	if patch.CarbsG != nil {
		m.CarbsG = *patch.CarbsG
	}
	if patch.FatG != nil {
		m.FatG = *patch.FatG
	}
	if patch.Category != nil {
		m.Category = *patch.Category
	}
	if patch.LoggedAt != nil {
		m.LoggedAt = *patch.LoggedAt
	}
	normalizeMeal(&m)
	if err := ValidateMeal(m); err != nil {
		return true, err
	}
	s.state.Meals[idx] = m
	s.persist()
	return true, nil
}

// normalizeMeal trims the text fields and rewrites a category spelled in any
// accepted form ("breakfast", "Breakfast") to its canonical value.
func normalizeMeal(m *model.Meal) {
	m.Name = strings.TrimSpace(m.Name)
	m.Portion = strings.TrimSpace(m.Portion)
	if c, err := model.ParseMealCategory(string(m.Category)); err == nil {
		m.Category = c
	}
}

// Delete removes the first meal with id and reports whether one existed.
func (s *MealStore) Delete(id string) bool {
	idx := s.indexOf(id)
	if idx < 0 {
		return false
	}
	s.state.Meals = append(s.state.Meals[:idx], s.state.Meals[idx+1:]...)
	s.persist()
	return true
}

func (s *MealStore) Meal(id string) (model.Meal, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return model.Meal{}, false
	}
	return s.state.Meals[idx], true
}

// Meals returns a copy of the log in insertion order.
func (s *MealStore) Meals() []model.Meal {
	return append([]model.Meal{}, s.state.Meals...)
}

func (s *MealStore) MealsOn(day time.Time) []model.Meal {
	key := DayKey(day)
	out := make([]model.Meal, 0)
	for _, m := range s.state.Meals {
		if DayKey(m.LoggedAt) == key {
			out = append(out, m)
		}
	}
	return out
}

// DailyTotals sums the meals logged on day's calendar date.
func (s *MealStore) DailyTotals(day time.Time) model.NutritionalTotals {
	return SumMeals(s.MealsOn(day))
}

func (s *MealStore) Percentages(day time.Time) model.MacroPercentages {
	return nutrition.Percentages(s.DailyTotals(day))
}

func (s *MealStore) Progress(day time.Time) nutrition.MacroProgress {
	return nutrition.ProgressAll(s.DailyTotals(day), s.state.Targets)
}

// Targets returns the active targets. They change only through SetTargets.
func (s *MealStore) Targets() model.NutritionalTargets {
	return s.state.Targets
}

func (s *MealStore) SetTargets(t model.NutritionalTargets) error {
	if err := validateNonNegativeInt("calories", t.Calories); err != nil {
		return err
	}
	if err := validateNonNegativeFloat("protein", t.ProteinG); err != nil {
		return err
	}
	if err := validateNonNegativeFloat("carbs", t.CarbsG); err != nil {
		return err
	}
	if err := validateNonNegativeFloat("fat", t.FatG); err != nil {
		return err
	}
	s.state.Targets = t
	s.persist()
	return nil
}

// Reset clears the log and restores the default targets.
func (s *MealStore) Reset() {
	s.state = mealState{Meals: []model.Meal{}, Targets: nutrition.DefaultTargets()}
	s.persist()
}

func SumMeals(meals []model.Meal) model.NutritionalTotals {
	var out model.NutritionalTotals
	for _, m := range meals {
		out.Calories += m.Calories
		out.ProteinG += m.ProteinG
		out.CarbsG += m.CarbsG
		out.FatG += m.FatG
	}
	return out
}

func (s *MealStore) indexOf(id string) int {
	for i, m := range s.state.Meals {
		if m.ID == id {
			return i
		}
	}
	return -1
}

func (s *MealStore) persist() {
	save(s.p, KeyMeals, s.state)
}
