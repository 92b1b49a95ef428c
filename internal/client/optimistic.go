// Package client holds the UI-facing side of the simulated boundary: a
// locally-held projection of server state plus the optimistic mutation
// protocol the drag interactions depend on. A mutation is applied
// speculatively with zero latency, then confirmed against the router; a
// failed confirmation restores the snapshot captured at apply time and
// surfaces a retryable error.
package client

import (
	"context"
	"sync"

	"github.com/okian/talentflow/pkg/metrics"
)

// Mutator manages speculative state transitions over a collection of
// type S. The clone function must produce a copy sharing no memory with
// its input; snapshots and read results go through it.
//
// Concurrent speculative mutations are not coalesced: a second mutation
// issued before the first confirms operates on the speculative state,
// and a failed first confirmation restores its own snapshot wholesale,
// clobbering the second's effect. Last confirmed wins; the single-actor
// client accepts this race.
type Mutator[S any] struct {
	mu    sync.Mutex
	state S
	clone func(S) S
}

// NewMutator builds a mutator over the initial state.
func NewMutator[S any](initial S, clone func(S) S) *Mutator[S] {
	return &Mutator[S]{state: clone(initial), clone: clone}
}

// State returns a copy of the current (possibly speculative) state.
func (m *Mutator[S]) State() S {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clone(m.state)
}

// Reset replaces the held state, discarding any speculative overlay.
// Used when the consumer reloads from the server.
func (m *Mutator[S]) Reset(s S) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = m.clone(s)
}

// Mutate applies the transition synchronously, then confirms it through
// confirm in the background. The returned channel yields exactly one
// value: nil when the mutation stuck, or the confirmation error after
// the snapshot has been restored. No retry is attempted.
func (m *Mutator[S]) Mutate(ctx context.Context, apply func(S) S, confirm func(context.Context) error) <-chan error {
	m.mu.Lock()
	snapshot := m.clone(m.state)
	m.state = apply(m.clone(m.state))
	m.mu.Unlock()
	metrics.RecordSpeculativeApply()

	result := make(chan error, 1)
	go func() {
		defer close(result)
		err := confirm(ctx)
		if err != nil {
			m.mu.Lock()
			m.state = snapshot
			m.mu.Unlock()
			metrics.RecordRollback()
		}
		result <- err
	}()
	return result
}
