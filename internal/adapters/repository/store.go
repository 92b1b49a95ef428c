// Package repository defines the entity store interface and errors.
package repository

import (
	"context"

	"github.com/okian/talentflow/internal/domain/model"
)

// Table names used for metrics and stats.
const (
	TableJobs        = "jobs"
	TableCandidates  = "candidates"
	TableTimelines   = "timelines"
	TableNotes       = "notes"
	TableAssessments = "assessments"
	TableResponses   = "responses"
)

// Store provides read access to the persisted tables plus transactional
// writes. Reads return defensive copies; callers never share memory with
// the store. Only the service router is permitted to call Update.
type Store interface {
	// Job returns one job by id, or ErrNotFound.
	Job(ctx context.Context, id string) (model.Job, error)

	// Jobs returns every job, unordered.
	Jobs(ctx context.Context) ([]model.Job, error)

	// Candidate returns one candidate by id, or ErrNotFound.
	Candidate(ctx context.Context, id string) (model.Candidate, error)

	// Candidates returns every candidate, unordered.
	Candidates(ctx context.Context) ([]model.Candidate, error)

	// Assessment returns the questionnaire for a job. The boolean is
	// false when no assessment exists for the job id.
	Assessment(ctx context.Context, jobID string) (model.Assessment, bool, error)

	// TimelineFor returns a candidate's events sorted by time ascending.
	TimelineFor(ctx context.Context, candidateID string) ([]model.TimelineEvent, error)

	// NotesFor returns notes sorted by time ascending. An empty
	// candidateID returns all notes; absence is an empty list, not an
	// error.
	NotesFor(ctx context.Context, candidateID string) ([]model.Note, error)

	// ResponsesFor returns submitted responses for a job, in submission order.
	ResponsesFor(ctx context.Context, jobID string) ([]model.Response, error)

	// Counts returns the number of records per table.
	Counts(ctx context.Context) map[string]int

	// Update runs work inside a transaction. All writes staged through
	// the Tx commit atomically when work returns nil and are discarded
	// when it returns an error. Transactions are serialized with respect
	// to each other; no observer sees a partial write set.
	Update(ctx context.Context, work func(tx *Tx) error) error

	// Close releases the store.
	Close() error
}
