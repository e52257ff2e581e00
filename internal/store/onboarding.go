package store

import (
	"errors"

	"github.com/MEME-CORP/calaiweb/internal/model"
)

const TotalSteps = 5

var ErrOnboardingCompleted = errors.New("onboarding already completed")

var stepNames = [TotalSteps]string{"Goal", "Details", "Activity", "Diet", "Target"}

// Committer receives the final profile commit when onboarding completes.
type Committer interface {
	Commit()
}

// Onboarding tracks the position in the profile setup sequence and whether
// it has been completed. Completion is sticky until Reset.
type Onboarding struct {
	p       Persister
	profile Committer
	state   model.OnboardingState
}

func NewOnboarding(p Persister, profile Committer) *Onboarding {
	o := &Onboarding{p: p, profile: profile, state: model.OnboardingState{Step: 1}}
	if loaded, ok := load[model.OnboardingState](p, KeyOnboarding); ok {
		loaded.Step = clampStep(loaded.Step)
		o.state = loaded
	}
	return o
}

func (o *Onboarding) State() model.OnboardingState { return o.state }

func (o *Onboarding) Step() int { return o.state.Step }

func (o *Onboarding) Completed() bool { return o.state.Completed }

// Advance moves to the next step. On the last step it commits the profile
// and marks onboarding completed instead. Once completed it returns
// ErrOnboardingCompleted and changes nothing.
func (o *Onboarding) Advance() error {
	if o.state.Completed {
		return ErrOnboardingCompleted
	}
	if o.state.Step < TotalSteps {
		o.state.Step++
		o.persist()
		return nil
	}
	if o.profile != nil {
		o.profile.Commit()
	}
	o.state.Completed = true
	o.persist()
	return nil
}

// Retreat moves back one step, stopping at the first.
func (o *Onboarding) Retreat() {
	o.SetStep(o.state.Step - 1)
}

// SetStep jumps to step, clamped to [1, TotalSteps].
func (o *Onboarding) SetStep(step int) {
	step = clampStep(step)
	if step == o.state.Step {
		return
	}
	o.state.Step = step
	o.persist()
}

// Reset returns to the first step with completion cleared.
func (o *Onboarding) Reset() {
	o.state = model.OnboardingState{Step: 1}
	o.persist()
}

// Restore overwrites the state wholesale, clamping the step. It does not
// commit the profile.
func (o *Onboarding) Restore(state model.OnboardingState) {
	state.Step = clampStep(state.Step)
	o.state = state
	o.persist()
}

// StepName is the short label of a step, or "" when out of range.
func StepName(step int) string {
	if step < 1 || step > TotalSteps {
		return ""
	}
	return stepNames[step-1]
}

func clampStep(step int) int {
	if step < 1 {
		return 1
	}
	if step > TotalSteps {
		return TotalSteps
	}
	return step
}

func (o *Onboarding) persist() {
	save(o.p, KeyOnboarding, o.state)
}
