package model_test

import (
	"testing"

	"github.com/MEME-CORP/calaiweb/internal/model"
)

func TestParseEnumsAcceptLooseSpelling(t *testing.T) {
	t.Parallel()

	goal, err := model.ParseGoalType("weight-loss")
	if err != nil || goal != model.GoalWeightLoss {
		t.Fatalf("expected weight loss goal, got %q err=%v", goal, err)
	}
	level, err := model.ParseActivityLevel("Moderately Active")
	if err != nil || level != model.ActivityModeratelyActive {
		t.Fatalf("expected moderately active, got %q err=%v", level, err)
	}
	cat, err := model.ParseMealCategory("snacks")
	if err != nil || cat != model.CategorySnack {
		t.Fatalf("expected snack category, got %q err=%v", cat, err)
	}
	if _, err := model.ParseGender("robot"); err == nil {
		t.Fatalf("expected invalid gender error")
	}
	if _, err := model.ParseWeightChangeRate(""); err == nil {
		t.Fatalf("expected empty rate to be rejected")
	}
}

func TestLabel(t *testing.T) {
	t.Parallel()
	if got := model.Label(model.ActivityExtremelyActive); got != "extremely-active" {
		t.Fatalf("unexpected label %q", got)
	}
}

func TestProfileCloneIsDeep(t *testing.T) {
	t.Parallel()
	age := 30
	p := model.UserProfile{Age: &age, DietaryPreferences: []string{"vegan"}}
	c := p.Clone()
	*c.Age = 40
	c.DietaryPreferences[0] = "keto"
	if *p.Age != 30 || p.DietaryPreferences[0] != "vegan" {
		t.Fatalf("clone shares memory with original: %+v", p)
	}

	empty := model.UserProfile{}.Clone()
	if empty.DietaryPreferences == nil {
		t.Fatalf("expected non-nil dietary preferences on clone")
	}
}
