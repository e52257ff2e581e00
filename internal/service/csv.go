package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/MEME-CORP/calaiweb/internal/model"
)

var mealCSVHeader = []string{"id", "name", "portion", "calories", "protein_g", "carbs_g", "fat_g", "category", "logged_at"}

// WriteMealsCSV writes one row per meal under a fixed header. Timestamps are
// RFC 3339 so the original offset survives a round trip.
func WriteMealsCSV(w io.Writer, meals []model.Meal) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(mealCSVHeader); err != nil {
		return fmt.Errorf("write meals csv header: %w", err)
	}
	for _, m := range meals {
		record := []string{
			m.ID,
			m.Name,
			m.Portion,
			strconv.Itoa(m.Calories),
			strconv.FormatFloat(m.ProteinG, 'f', -1, 64),
			strconv.FormatFloat(m.CarbsG, 'f', -1, 64),
			strconv.FormatFloat(m.FatG, 'f', -1, 64),
			string(m.Category),
			m.LoggedAt.Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write meals csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush meals csv: %w", err)
	}
	return nil
}

// ReadMealsCSV parses rows written by WriteMealsCSV. Parse errors name the
// 1-based line; value checks are left to the import.
func ReadMealsCSV(r io.Reader) ([]model.Meal, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read meals csv: %w", err)
	}
	if len(records) <= 1 {
		return nil, fmt.Errorf("meals csv contains no data rows")
	}
	if strings.Join(records[0], ",") != strings.Join(mealCSVHeader, ",") {
		return nil, fmt.Errorf("meals csv header must be %s", strings.Join(mealCSVHeader, ","))
	}
	meals := make([]model.Meal, 0, len(records)-1)
	for i, row := range records[1:] {
		line := i + 2
		m, err := parseMealRow(row)
		if err != nil {
			return nil, fmt.Errorf("csv row %d: %w", line, err)
		}
		meals = append(meals, m)
	}
	return meals, nil
}

func parseMealRow(row []string) (model.Meal, error) {
	calories, err := strconv.Atoi(strings.TrimSpace(row[3]))
	if err != nil {
		return model.Meal{}, fmt.Errorf("invalid calories %q", row[3])
	}
	macros := make([]float64, 3)
	for i, name := range []string{"protein_g", "carbs_g", "fat_g"} {
		v, err := strconv.ParseFloat(strings.TrimSpace(row[4+i]), 64)
		if err != nil {
			return model.Meal{}, fmt.Errorf("invalid %s %q", name, row[4+i])
		}
		macros[i] = v
	}
	category, err := model.ParseMealCategory(row[7])
	if err != nil {
		return model.Meal{}, err
	}
	logged, err := time.Parse(time.RFC3339, strings.TrimSpace(row[8]))
	if err != nil {
		return model.Meal{}, fmt.Errorf("invalid logged_at %q (expected RFC 3339)", row[8])
	}
	return model.Meal{
		ID:       strings.TrimSpace(row[0]),
		Name:     row[1],
		Portion:  row[2],
		Calories: calories,
		ProteinG: macros[0],
		CarbsG:   macros[1],
		FatG:     macros[2],
		Category: category,
		LoggedAt: logged,
	}, nil
}

// ImportMealsOnly runs a meals-only import through the snapshot importer.
// Replace mode is refused since it would also wipe the profile.
func ImportMealsOnly(st *State, meals []model.Meal, opts ImportOptions) (ImportReport, error) {
	if opts.Mode == ImportModeReplace {
		return ImportReport{}, fmt.Errorf("replace mode needs a full json snapshot")
	}
	return ImportDataSnapshotWithOptions(st, &ExportData{Version: exportVersion, Meals: meals}, opts)
}
