package service_test

import (
	"testing"

	"github.com/MEME-CORP/calaiweb/internal/service"
)

func TestConfigSetGetAndPreferences(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	prefs, err := service.LoadPreferences(db)
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if prefs.WeightUnit != service.WeightKg || prefs.HeightUnit != service.HeightCm || prefs.Tolerance != service.DefaultAdherenceTolerance {
		t.Fatalf("unexpected default preferences %+v", prefs)
	}

	if err := service.SetConfig(db, "Weight_Unit", " LBS "); err != nil {
		t.Fatalf("set weight unit: %v", err)
	}
	if err := service.SetConfig(db, service.ConfigHeightUnit, "inches"); err != nil {
		t.Fatalf("set height unit: %v", err)
	}
	if err := service.SetConfig(db, service.ConfigAdherenceTolerance, "0.15"); err != nil {
		t.Fatalf("set tolerance: %v", err)
	}

	value, ok, err := service.GetConfig(db, service.ConfigWeightUnit)
	if err != nil || !ok || value != "lb" {
		t.Fatalf("expected normalized lb, got %q ok=%v err=%v", value, ok, err)
	}
	prefs, err = service.LoadPreferences(db)
	if err != nil {
		t.Fatalf("load preferences: %v", err)
	}
	if prefs.WeightUnit != service.WeightLb || prefs.HeightUnit != service.HeightIn || prefs.Tolerance != 0.15 {
		t.Fatalf("unexpected preferences %+v", prefs)
	}
}

func TestConfigRejectsUnknownKeysAndValues(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if err := service.SetConfig(db, "theme", "dark"); err == nil {
		t.Fatalf("expected unknown key error")
	}
	if err := service.SetConfig(db, service.ConfigWeightUnit, "stone"); err == nil {
		t.Fatalf("expected invalid unit error")
	}
	if err := service.SetConfig(db, service.ConfigAdherenceTolerance, "1.5"); err == nil {
		t.Fatalf("expected tolerance range error")
	}
	if _, ok, err := service.GetConfig(db, service.ConfigWeightUnit); err != nil || ok {
		t.Fatalf("expected nothing stored, ok=%v err=%v", ok, err)
	}
}
