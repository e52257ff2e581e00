package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/MEME-CORP/calaiweb/internal/model"
	"github.com/MEME-CORP/calaiweb/internal/store"
)

const DefaultAdherenceTolerance = 0.10

type CategoryBreakdown struct {
	Category string  `json:"category"`
	Meals    int     `json:"meals"`
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein_g"`
	Carbs    float64 `json:"carbs_g"`
	Fat      float64 `json:"fat_g"`
}

type DaySummary struct {
	Date     string  `json:"date"`
	Meals    int     `json:"meals"`
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein_g"`
	Carbs    float64 `json:"carbs_g"`
	Fat      float64 `json:"fat_g"`
}

type AnalyticsReport struct {
	FromDate              string              `json:"from_date"`
	ToDate                string              `json:"to_date"`
	TotalCalories         int                 `json:"total_calories"`
	TotalProtein          float64             `json:"total_protein_g"`
	TotalCarbs            float64             `json:"total_carbs_g"`
	TotalFat              float64             `json:"total_fat_g"`
	DaysWithMeals         int                 `json:"days_with_meals"`
	AverageCaloriesPerDay float64             `json:"avg_calories_per_day"`
	AverageProteinPerDay  float64             `json:"avg_protein_per_day"`
	AverageCarbsPerDay    float64             `json:"avg_carbs_per_day"`
	AverageFatPerDay      float64             `json:"avg_fat_per_day"`
	HighestDay            *DaySummary         `json:"highest_day,omitempty"`
	LowestDay             *DaySummary         `json:"lowest_day,omitempty"`
	Adherence             AdherenceSummary    `json:"adherence"`
	ByCategory            []CategoryBreakdown `json:"by_category"`
	Days                  []DaySummary        `json:"days"`
}

type AdherenceSummary struct {
	Tolerance      float64 `json:"tolerance"`
	EvaluatedDays  int     `json:"evaluated_days"`
	WithinGoalDays int     `json:"within_goal_days"`
	PercentWithin  float64 `json:"percent_within_goal"`
}

// AnalyticsRange summarizes the meals logged between from and to, both
// inclusive by calendar date. Only days with at least one meal are
// reported. Adherence is judged against the single active target set.
func AnalyticsRange(meals []model.Meal, targets model.NutritionalTargets, from, to time.Time, tolerance float64) (*AnalyticsReport, error) {
	fromKey, toKey := store.DayKey(from), store.DayKey(to)
	if fromKey > toKey {
		return nil, fmt.Errorf("from date must be <= to date")
	}
	if err := validateNonNegativeFloat("tolerance", tolerance); err != nil {
		return nil, err
	}

	report := &AnalyticsReport{FromDate: fromKey, ToDate: toKey}

	byDay := map[string]*DaySummary{}
	byCategory := map[string]*CategoryBreakdown{}
	for _, m := range meals {
		key := store.DayKey(m.LoggedAt)
		if key < fromKey || key > toKey {
			continue
		}
		d, ok := byDay[key]
		if !ok {
			d = &DaySummary{Date: key}
			byDay[key] = d
		}
		d.Meals++
		d.Calories += m.Calories
		d.Protein += m.ProteinG
		d.Carbs += m.CarbsG
		d.Fat += m.FatG

		name := model.Label(m.Category)
		c, ok := byCategory[name]
		if !ok {
			c = &CategoryBreakdown{Category: name}
			byCategory[name] = c
		}
		c.Meals++
		c.Calories += m.Calories
		c.Protein += m.ProteinG
		c.Carbs += m.CarbsG
		c.Fat += m.FatG
	}

	days := make([]DaySummary, 0, len(byDay))
	for _, d := range byDay {
		days = append(days, *d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	report.Days = days
	report.DaysWithMeals = len(days)

	for i := range days {
		report.TotalCalories += days[i].Calories
		report.TotalProtein += days[i].Protein
		report.TotalCarbs += days[i].Carbs
		report.TotalFat += days[i].Fat
	}
	if report.DaysWithMeals > 0 {
		div := float64(report.DaysWithMeals)
		report.AverageCaloriesPerDay = float64(report.TotalCalories) / div
		report.AverageProteinPerDay = report.TotalProtein / div
		report.AverageCarbsPerDay = report.TotalCarbs / div
		report.AverageFatPerDay = report.TotalFat / div
		report.HighestDay, report.LowestDay = extremeDays(days)
	}

	categories := make([]CategoryBreakdown, 0, len(byCategory))
	for _, c := range byCategory {
		categories = append(categories, *c)
	}
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Calories != categories[j].Calories {
			return categories[i].Calories > categories[j].Calories
		}
		return categories[i].Category < categories[j].Category
	})
	report.ByCategory = categories

	report.Adherence = calculateAdherence(days, targets, tolerance)
	return report, nil
}

// A day adheres when calories stay at or under target and every macro lands
// within tolerance of its target.
func calculateAdherence(days []DaySummary, targets model.NutritionalTargets, tolerance float64) AdherenceSummary {
	out := AdherenceSummary{Tolerance: tolerance}
	for _, d := range days {
		out.EvaluatedDays++
		if d.Calories <= targets.Calories &&
			AdherenceWithin(d.Protein, targets.ProteinG, tolerance) &&
			AdherenceWithin(d.Carbs, targets.CarbsG, tolerance) &&
			AdherenceWithin(d.Fat, targets.FatG, tolerance) {
			out.WithinGoalDays++
		}
	}
	if out.EvaluatedDays > 0 {
		out.PercentWithin = (float64(out.WithinGoalDays) / float64(out.EvaluatedDays)) * 100
	}
	return out
}

func AdherenceWithin(actual float64, target float64, tolerance float64) bool {
	if target == 0 {
		return actual == 0
	}
	lower := target * (1 - tolerance)
	upper := target * (1 + tolerance)
	return actual >= lower && actual <= upper
}

func extremeDays(days []DaySummary) (*DaySummary, *DaySummary) {
	if len(days) == 0 {
		return nil, nil
	}
	copied := make([]DaySummary, len(days))
	copy(copied, days)
	sort.SliceStable(copied, func(i, j int) bool {
		return copied[i].Calories < copied[j].Calories
	})
	low := copied[0]
	high := copied[len(copied)-1]
	return &high, &low
}
