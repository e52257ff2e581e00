// Package store holds the stateful containers of the app: the user profile,
// the meal log with its active targets, and the onboarding state machine.
// Each store is constructed explicitly, owns its state, and writes a JSON
// snapshot through a Persister after every mutation.
package store

import (
	"encoding/json"
	"fmt"
	"sync"
)

const (
	KeyProfile    = "profile"
	KeyMeals      = "meals"
	KeyOnboarding = "onboarding"
)

// Persister is the load/save capability the stores write through. Save is
// fire-and-forget from the store's point of view; implementations that can
// fail are expected to track their own errors.
type Persister interface {
	Load(key string) ([]byte, bool)
	Save(key string, value []byte)
}

// FailureReporter is implemented by persisters that want to hear about
// snapshots the stores could not decode or encode. A persister told about a
// bad snapshot should stop accepting writes so the row is not overwritten
// with defaults.
type FailureReporter interface {
	Fail(key string, err error)
}

// MemoryPersister keeps snapshots in a map. Safe for concurrent use.
type MemoryPersister struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{data: map[string][]byte{}}
}

func (m *MemoryPersister) Load(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), v...), true
}

func (m *MemoryPersister) Save(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
}

// load decodes the snapshot under key. A missing or undecodable snapshot
// reports false and the caller keeps its defaults; decode failures are also
// passed to the persister when it is a FailureReporter.
func load[T any](p Persister, key string) (T, bool) {
	var out T
	if p == nil {
		return out, false
	}
	raw, ok := p.Load(key)
	if !ok || len(raw) == 0 {
		return out, false
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		report(p, key, fmt.Errorf("decode %s snapshot: %w", key, err))
		var zero T
		return zero, false
	}
	return out, true
}

func save(p Persister, key string, v any) {
	if p == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		report(p, key, fmt.Errorf("encode %s snapshot: %w", key, err))
		return
	}
	p.Save(key, b)
}

func report(p Persister, key string, err error) {
	if r, ok := p.(FailureReporter); ok {
		r.Fail(key, err)
	}
}
