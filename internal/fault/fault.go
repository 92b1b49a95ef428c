// Package fault injects the simulated-network behavior every router
// operation passes through: a uniformly random latency on reads and
// writes alike, and an independent per-call write-failure roll that fires
// before the store is touched. The policy is an injectable object, not
// ambient state, so tests can pin the probability to 0 or 1 and collapse
// the latency range.
package fault

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/okian/talentflow/pkg/metrics"
)

// Default policy constants.
const (
	defaultMinLatency  = 200 * time.Millisecond
	defaultMaxLatency  = 1200 * time.Millisecond
	defaultFailureRate = 0.08
)

// Policy holds the latency range and write-failure probability.
type Policy struct {
	mu          sync.Mutex
	minLatency  time.Duration
	maxLatency  time.Duration
	failureRate float64
	rng         *rand.Rand
}

// Option applies a configuration option to the Policy.
type Option func(*Policy)

// WithLatencyRange sets the simulated latency bounds. A zero range
// disables the sleep entirely.
func WithLatencyRange(minLatency, maxLatency time.Duration) Option {
	return func(p *Policy) {
		if minLatency >= 0 && maxLatency >= minLatency {
			p.minLatency = minLatency
			p.maxLatency = maxLatency
		}
	}
}

// WithFailureRate sets the write-failure probability in [0,1].
func WithFailureRate(rate float64) Option {
	return func(p *Policy) {
		if rate >= 0 && rate <= 1 {
			p.failureRate = rate
		}
	}
}

// WithSeed seeds the policy's random source for reproducible runs.
func WithSeed(seed int64) Option {
	return func(p *Policy) {
		p.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // deterministic seed for reproducible simulation
	}
}

// New constructs a Policy with the stock defaults: 200-1200ms latency
// and an 8% write failure rate.
func New(opts ...Option) *Policy {
	p := &Policy{
		minLatency:  defaultMinLatency,
		maxLatency:  defaultMaxLatency,
		failureRate: defaultFailureRate,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // simulation does not need crypto randomness
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Delay sleeps a uniformly random duration inside the configured range,
// honoring ctx. It applies to every operation, reads included.
func (p *Policy) Delay(ctx context.Context) error {
	p.mu.Lock()
	span := p.maxLatency - p.minLatency
	latency := p.minLatency
	if span > 0 {
		latency += time.Duration(p.rng.Int63n(int64(span)))
	}
	p.mu.Unlock()

	if latency <= 0 {
		return nil
	}
	metrics.RecordSimulatedLatency(float64(latency.Milliseconds()))

	select {
	case <-ctx.Done():
		return fmt.Errorf("context cancelled: %w", ctx.Err())
	case <-time.After(latency):
		return nil
	}
}

// FailWrite rolls the per-call failure die for a mutating operation.
// A true result models a transient backend failure and must be returned
// to the caller before any store access.
func (p *Policy) FailWrite() bool {
	p.mu.Lock()
	failed := p.rng.Float64() < p.failureRate
	p.mu.Unlock()

	if failed {
		metrics.RecordInjectedFailure()
	}
	return failed
}

// FailureRate returns the configured write-failure probability.
func (p *Policy) FailureRate() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.failureRate
}

// LatencyRange returns the configured latency bounds.
func (p *Policy) LatencyRange() (time.Duration, time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.minLatency, p.maxLatency
}
