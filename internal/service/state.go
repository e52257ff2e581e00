package service

import (
	"github.com/MEME-CORP/calaiweb/internal/store"
)

// State groups the three stores that share one Persister. Onboarding
// commits the profile store when it completes.
type State struct {
	Profile    *store.ProfileStore
	Meals      *store.MealStore
	Onboarding *store.Onboarding
}

func NewState(p store.Persister) *State {
	profile := store.NewProfileStore(p)
	return &State{
		Profile:    profile,
		Meals:      store.NewMealStore(p),
		Onboarding: store.NewOnboarding(p, profile),
	}
}
