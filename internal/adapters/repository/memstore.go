package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/okian/talentflow/internal/domain/model"
	"github.com/okian/talentflow/pkg/logger"
	"github.com/okian/talentflow/pkg/metrics"
)

// tables holds every persisted collection. Jobs, candidates, and
// assessments are keyed; timelines, notes, and responses are append-only
// logs.
type tables struct {
	Jobs        map[string]model.Job        `json:"jobs"`
	Candidates  map[string]model.Candidate  `json:"candidates"`
	Timelines   []model.TimelineEvent       `json:"timelines"`
	Notes       []model.Note                `json:"notes"`
	Assessments map[string]model.Assessment `json:"assessments"`
	Responses   []model.Response            `json:"responses"`
}

func newTables() tables {
	return tables{
		Jobs:        make(map[string]model.Job),
		Candidates:  make(map[string]model.Candidate),
		Assessments: make(map[string]model.Assessment),
	}
}

func (t tables) clone() tables {
	out := tables{
		Jobs:        make(map[string]model.Job, len(t.Jobs)),
		Candidates:  make(map[string]model.Candidate, len(t.Candidates)),
		Timelines:   make([]model.TimelineEvent, len(t.Timelines)),
		Notes:       make([]model.Note, len(t.Notes)),
		Assessments: make(map[string]model.Assessment, len(t.Assessments)),
		Responses:   make([]model.Response, len(t.Responses)),
	}
	for id, j := range t.Jobs {
		out.Jobs[id] = j.Clone()
	}
	for id, c := range t.Candidates {
		out.Candidates[id] = c
	}
	copy(out.Timelines, t.Timelines)
	copy(out.Notes, t.Notes)
	for id, a := range t.Assessments {
		out.Assessments[id] = a.Clone()
	}
	for i, r := range t.Responses {
		out.Responses[i] = r.Clone()
	}
	return out
}

// MemStore implements Store with in-memory tables and an optional JSON
// snapshot file for local durability. All transactions serialize on the
// store lock; a committed transaction replaces the table set wholesale,
// so readers never observe a partial write set.
type MemStore struct {
	mu           sync.RWMutex
	tables       tables
	snapshotPath string
	closed       bool
	log          logger.Logger
}

// MemOption applies a configuration option to the MemStore.
type MemOption func(*MemStore)

// WithSnapshotPath enables snapshot durability at the given file path.
func WithSnapshotPath(path string) MemOption {
	return func(s *MemStore) {
		s.snapshotPath = path
	}
}

// WithLogger sets a custom logger for the store.
func WithLogger(log logger.Logger) MemOption {
	return func(s *MemStore) {
		if log != nil {
			s.log = log
		}
	}
}

// NewMemStore creates a store, loading the snapshot file when one is
// configured and present. Snapshot faults are fatal and surfaced
// unchanged.
func NewMemStore(ctx context.Context, opts ...MemOption) (*MemStore, error) {
	s := &MemStore{tables: newTables()}

	for _, opt := range opts {
		opt(s)
	}

	if s.snapshotPath != "" {
		if err := s.loadSnapshot(ctx); err != nil {
			return nil, err
		}
	}
	s.updateGauges()
	return s, nil
}

func (s *MemStore) loadSnapshot(ctx context.Context) error {
	raw, err := os.ReadFile(s.snapshotPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}
	var t tables
	if err := json.Unmarshal(raw, &t); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}
	if t.Jobs == nil {
		t.Jobs = make(map[string]model.Job)
	}
	if t.Candidates == nil {
		t.Candidates = make(map[string]model.Candidate)
	}
	if t.Assessments == nil {
		t.Assessments = make(map[string]model.Assessment)
	}
	s.tables = t
	if s.log != nil {
		s.log.Info(ctx, "snapshot loaded",
			logger.String("path", s.snapshotPath),
			logger.Int("jobs", len(t.Jobs)),
			logger.Int("candidates", len(t.Candidates)),
		)
	}
	return nil
}

// saveSnapshot writes the table set to the snapshot path via a temp file
// and atomic rename. Caller holds at least a read lock.
func (s *MemStore) saveSnapshot() error {
	if s.snapshotPath == "" {
		return nil
	}
	start := time.Now()

	raw, err := json.Marshal(s.tables)
	if err != nil {
		metrics.RecordSnapshotSaveError()
		return fmt.Errorf("encode snapshot: %w", err)
	}
	tmp := s.snapshotPath + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.snapshotPath), 0o755); err != nil {
		metrics.RecordSnapshotSaveError()
		return fmt.Errorf("snapshot dir: %w", err)
	}
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		metrics.RecordSnapshotSaveError()
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.snapshotPath); err != nil {
		metrics.RecordSnapshotSaveError()
		return fmt.Errorf("replace snapshot: %w", err)
	}
	metrics.RecordSnapshotSave(float64(time.Since(start).Milliseconds()))
	return nil
}

func (s *MemStore) updateGauges() {
	metrics.UpdateStoreRecords(TableJobs, len(s.tables.Jobs))
	metrics.UpdateStoreRecords(TableCandidates, len(s.tables.Candidates))
	metrics.UpdateStoreRecords(TableTimelines, len(s.tables.Timelines))
	metrics.UpdateStoreRecords(TableNotes, len(s.tables.Notes))
	metrics.UpdateStoreRecords(TableAssessments, len(s.tables.Assessments))
	metrics.UpdateStoreRecords(TableResponses, len(s.tables.Responses))
}

// Job returns one job by id.
func (s *MemStore) Job(ctx context.Context, id string) (model.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	j, ok := s.tables.Jobs[id]
	if !ok {
		return model.Job{}, fmt.Errorf("job %s: %w", id, ErrNotFound)
	}
	return j.Clone(), nil
}

// Jobs returns every job, unordered.
func (s *MemStore) Jobs(ctx context.Context) ([]model.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Job, 0, len(s.tables.Jobs))
	for _, j := range s.tables.Jobs {
		out = append(out, j.Clone())
	}
	return out, nil
}

// Candidate returns one candidate by id.
func (s *MemStore) Candidate(ctx context.Context, id string) (model.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.tables.Candidates[id]
	if !ok {
		return model.Candidate{}, fmt.Errorf("candidate %s: %w", id, ErrNotFound)
	}
	return c, nil
}

// Candidates returns every candidate, unordered.
func (s *MemStore) Candidates(ctx context.Context) ([]model.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Candidate, 0, len(s.tables.Candidates))
	for _, c := range s.tables.Candidates {
		out = append(out, c)
	}
	return out, nil
}

// Assessment returns the questionnaire for a job, if any.
func (s *MemStore) Assessment(ctx context.Context, jobID string) (model.Assessment, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.tables.Assessments[jobID]
	if !ok {
		return model.Assessment{}, false, nil
	}
	return a.Clone(), true, nil
}

// TimelineFor returns a candidate's events sorted by time ascending.
func (s *MemStore) TimelineFor(ctx context.Context, candidateID string) ([]model.TimelineEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.TimelineEvent
	for _, ev := range s.tables.Timelines {
		if ev.CandidateID == candidateID {
			out = append(out, ev)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].At.Before(out[j].At) })
	return out, nil
}

// NotesFor returns notes sorted by time ascending; empty id means all.
func (s *MemStore) NotesFor(ctx context.Context, candidateID string) ([]model.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Note
	for _, n := range s.tables.Notes {
		if candidateID == "" || n.CandidateID == candidateID {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].At.Before(out[j].At) })
	return out, nil
}

// ResponsesFor returns submitted responses for a job, in submission order.
func (s *MemStore) ResponsesFor(ctx context.Context, jobID string) ([]model.Response, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Response
	for _, r := range s.tables.Responses {
		if r.JobID == jobID {
			out = append(out, r.Clone())
		}
	}
	return out, nil
}

// Counts returns the number of records per table.
func (s *MemStore) Counts(ctx context.Context) map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[string]int{
		TableJobs:        len(s.tables.Jobs),
		TableCandidates:  len(s.tables.Candidates),
		TableTimelines:   len(s.tables.Timelines),
		TableNotes:       len(s.tables.Notes),
		TableAssessments: len(s.tables.Assessments),
		TableResponses:   len(s.tables.Responses),
	}
}

// Update runs work against a deep working copy of the tables under the
// store lock. A nil return swaps the copy in and saves the snapshot; an
// error discards it untouched.
func (s *MemStore) Update(ctx context.Context, work func(tx *Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	working := s.tables.clone()
	tx := &Tx{t: &working}
	if err := work(tx); err != nil {
		return err
	}

	s.tables = working
	metrics.RecordStoreTransaction()
	s.updateGauges()
	return s.saveSnapshot()
}

// Close releases the store. Subsequent transactions fail with ErrClosed.
func (s *MemStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
