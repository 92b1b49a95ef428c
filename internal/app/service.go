// Package service implements the simulated backend router: one operation
// per entity action, each wrapped with randomized latency and, for
// writes, randomized failure injection that fires before the store is
// touched.
package service

import (
	"context"
	"time"

	"github.com/okian/talentflow/internal/adapters/repository"
	"github.com/okian/talentflow/internal/fault"
	"github.com/okian/talentflow/pkg/logger"
	"github.com/okian/talentflow/pkg/metrics"
)

// Default list page sizes.
const (
	defaultJobPageSize       = 25
	defaultCandidatePageSize = 100
	defaultMaxPageSize       = 500
)

// Service routes validated operations to the entity store. It is the
// only writer the store has.
type Service struct {
	store  repository.Store
	faults *fault.Policy

	maxPageSize int

	log logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithFaultPolicy sets the latency/failure injection policy.
func WithFaultPolicy(p *fault.Policy) Option {
	return func(s *Service) {
		if p != nil {
			s.faults = p
		}
	}
}

// WithMaxPageSize caps the pageSize accepted by list operations.
func WithMaxPageSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxPageSize = n
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// New constructs a Service over the given store.
func New(store repository.Store, opts ...Option) *Service {
	s := &Service{
		store:       store,
		faults:      fault.New(),
		maxPageSize: defaultMaxPageSize,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.log == nil {
		s.log = logger.Get()
	}

	return s
}

// begin applies the simulated latency shared by every operation, reads
// and writes alike, and returns a completion hook for latency metrics.
func (s *Service) begin(ctx context.Context, op string) (func(err error), error) {
	start := time.Now()
	done := func(err error) {
		metrics.RecordOperationLatency(op, float64(time.Since(start).Milliseconds()))
		if err != nil {
			metrics.RecordOperationError(op, errKind(err))
			s.log.Debug(ctx, "operation failed", logger.String("op", op), logger.Error(err))
			return
		}
		metrics.RecordOperation(op)
	}
	if err := s.faults.Delay(ctx); err != nil {
		done(err)
		return nil, err
	}
	return done, nil
}

// injectWriteFailure rolls the per-call die for mutating operations. A
// true result means the operation must fail with ErrServiceUnavailable
// and the store is guaranteed untouched.
func (s *Service) injectWriteFailure() bool {
	return s.faults.FailWrite()
}

// clampPage normalizes page/pageSize for list operations.
func (s *Service) clampPage(page, pageSize, defaultSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultSize
	}
	if pageSize > s.maxPageSize {
		pageSize = s.maxPageSize
	}
	return page, pageSize
}

// pageWindow slices one page out of the filtered collection.
func pageWindow[T any](items []T, page, pageSize int) []T {
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	minLatency, maxLatency := s.faults.LatencyRange()
	stats := map[string]interface{}{
		"writeFailureRate": s.faults.FailureRate(),
		"latencyMinMs":     minLatency.Milliseconds(),
		"latencyMaxMs":     maxLatency.Milliseconds(),
	}
	for table, count := range s.store.Counts(context.Background()) {
		stats[table] = count
	}
	return stats
}
