package store_test

import (
	"testing"
	"time"

	"github.com/MEME-CORP/calaiweb/internal/model"
	"github.com/MEME-CORP/calaiweb/internal/store"
)

// countingPersister records how many saves hit each key.
type countingPersister struct {
	*store.MemoryPersister
	saves map[string]int
}

func newCountingPersister() *countingPersister {
	return &countingPersister{MemoryPersister: store.NewMemoryPersister(), saves: map[string]int{}}
}

func (c *countingPersister) Save(key string, value []byte) {
	c.saves[key]++
	c.MemoryPersister.Save(key, value)
}

func floatPtr(v float64) *float64 { return &v }

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse time %q: %v", value, err)
	}
	return ts
}

func meal(t *testing.T, id string, calories int, p, c, f float64, loggedAt string) model.Meal {
	t.Helper()
	return model.Meal{
		ID:       id,
		Name:     "meal " + id,
		Portion:  "1 bowl",
		Calories: calories,
		ProteinG: p,
		CarbsG:   c,
		FatG:     f,
		Category: model.CategoryLunch,
		LoggedAt: mustTime(t, loggedAt),
	}
}

// failingPersister records the failures reported by the stores.
type failingPersister struct {
	*store.MemoryPersister
	failures map[string]error
}

func newFailingPersister() *failingPersister {
	return &failingPersister{MemoryPersister: store.NewMemoryPersister(), failures: map[string]error{}}
}

func (f *failingPersister) Fail(key string, err error) {
	f.failures[key] = err
}
