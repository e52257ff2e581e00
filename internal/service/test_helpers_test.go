package service_test

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/MEME-CORP/calaiweb/internal/db"
	"github.com/MEME-CORP/calaiweb/internal/model"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	return newTestDBAt(t, filepath.Join(t.TempDir(), "calai.db"))
}

func newTestDBAt(t *testing.T, path string) *sql.DB {
	t.Helper()
	sqldb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return sqldb
}

func testMeal(id string, category model.MealCategory, calories int, p, c, f float64, at time.Time) model.Meal {
	return model.Meal{
		ID:       id,
		Name:     "meal " + id,
		Portion:  "1 serving",
		Calories: calories,
		ProteinG: p,
		CarbsG:   c,
		FatG:     f,
		Category: category,
		LoggedAt: at,
	}
}
