package service_test

import (
	"testing"
	"time"

	"github.com/MEME-CORP/calaiweb/internal/db"
	"github.com/MEME-CORP/calaiweb/internal/model"
	"github.com/MEME-CORP/calaiweb/internal/service"
	"github.com/MEME-CORP/calaiweb/internal/store"
)

func TestRunDoctorFindsAndFixesProblems(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()

	kv := db.NewKV(sqldb, nil)
	meals := store.NewMealStore(kv)
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for _, m := range []model.Meal{
		testMeal("dup", model.CategoryLunch, 100, 1, 1, 1, at),
		testMeal("dup", model.CategoryDinner, 200, 2, 2, 2, at),
		testMeal("solo", model.CategorySnack, 50, 1, 1, 1, at),
	} {
		if err := meals.Add(m); err != nil {
			t.Fatalf("add meal: %v", err)
		}
	}
	kv.Save(store.KeyProfile, []byte("{broken"))
	kv.Save(store.KeyOnboarding, []byte(`{"step":9,"completed":false}`))

	report, err := service.RunDoctor(sqldb, false)
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if report.Healthy() {
		t.Fatalf("expected problems to be reported")
	}
	if len(report.DuplicateMealIDs) != 1 || report.DuplicateMealIDs[0] != "dup" {
		t.Fatalf("expected duplicate id dup, got %v", report.DuplicateMealIDs)
	}
	if len(report.UndecodableState) != 1 || report.UndecodableState[0] != store.KeyProfile {
		t.Fatalf("expected undecodable profile, got %v", report.UndecodableState)
	}
	if !report.OnboardingInvalid {
		t.Fatalf("expected onboarding step out of range")
	}
	if len(report.ResetState) != 0 {
		t.Fatalf("expected no fixes without fix flag")
	}

	fixed, err := service.RunDoctor(sqldb, true)
	if err != nil {
		t.Fatalf("doctor fix: %v", err)
	}
	if len(fixed.ResetState) != 1 {
		t.Fatalf("expected one reset row, got %v", fixed.ResetState)
	}
	again, err := service.RunDoctor(sqldb, false)
	if err != nil {
		t.Fatalf("doctor after fix: %v", err)
	}
	if len(again.UndecodableState) != 0 {
		t.Fatalf("expected undecodable state to be gone, got %v", again.UndecodableState)
	}
}
