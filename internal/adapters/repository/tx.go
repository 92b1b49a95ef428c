package repository

import (
	"fmt"

	"github.com/okian/talentflow/internal/domain/model"
)

// Tx stages writes against a private working copy of the tables. It is
// only valid inside the function passed to Store.Update; nothing staged
// here is visible to readers until that function returns nil.
type Tx struct {
	t *tables
}

// Job returns one job from the working copy.
func (tx *Tx) Job(id string) (model.Job, error) {
	j, ok := tx.t.Jobs[id]
	if !ok {
		return model.Job{}, fmt.Errorf("job %s: %w", id, ErrNotFound)
	}
	return j, nil
}

// Jobs returns every job in the working copy, unordered.
func (tx *Tx) Jobs() []model.Job {
	out := make([]model.Job, 0, len(tx.t.Jobs))
	for _, j := range tx.t.Jobs {
		out = append(out, j)
	}
	return out
}

// JobCount returns the number of jobs in the working copy.
func (tx *Tx) JobCount() int {
	return len(tx.t.Jobs)
}

// JobBySlug returns the job holding slug, if any.
func (tx *Tx) JobBySlug(slug string) (model.Job, bool) {
	for _, j := range tx.t.Jobs {
		if j.Slug == slug {
			return j, true
		}
	}
	return model.Job{}, false
}

// PutJob inserts or replaces a job by id. The store keeps a private
// copy; the caller's value stays its own.
func (tx *Tx) PutJob(j model.Job) {
	tx.t.Jobs[j.ID] = j.Clone()
}

// UpdateJob merges fields into an existing job through mutate.
func (tx *Tx) UpdateJob(id string, mutate func(*model.Job)) error {
	j, ok := tx.t.Jobs[id]
	if !ok {
		return fmt.Errorf("job %s: %w", id, ErrNotFound)
	}
	mutate(&j)
	j.ID = id
	tx.t.Jobs[id] = j.Clone()
	return nil
}

// DeleteJob removes a job by id.
func (tx *Tx) DeleteJob(id string) error {
	if _, ok := tx.t.Jobs[id]; !ok {
		return fmt.Errorf("job %s: %w", id, ErrNotFound)
	}
	delete(tx.t.Jobs, id)
	return nil
}

// Candidate returns one candidate from the working copy.
func (tx *Tx) Candidate(id string) (model.Candidate, error) {
	c, ok := tx.t.Candidates[id]
	if !ok {
		return model.Candidate{}, fmt.Errorf("candidate %s: %w", id, ErrNotFound)
	}
	return c, nil
}

// PutCandidate inserts or replaces a candidate by id.
func (tx *Tx) PutCandidate(c model.Candidate) {
	tx.t.Candidates[c.ID] = c
}

// UpdateCandidate merges fields into an existing candidate through mutate.
func (tx *Tx) UpdateCandidate(id string, mutate func(*model.Candidate)) error {
	c, ok := tx.t.Candidates[id]
	if !ok {
		return fmt.Errorf("candidate %s: %w", id, ErrNotFound)
	}
	mutate(&c)
	c.ID = id
	tx.t.Candidates[id] = c
	return nil
}

// DeleteCandidate removes a candidate by id.
func (tx *Tx) DeleteCandidate(id string) error {
	if _, ok := tx.t.Candidates[id]; !ok {
		return fmt.Errorf("candidate %s: %w", id, ErrNotFound)
	}
	delete(tx.t.Candidates, id)
	return nil
}

// AppendTimeline appends an event to the timeline log.
func (tx *Tx) AppendTimeline(ev model.TimelineEvent) {
	tx.t.Timelines = append(tx.t.Timelines, ev)
}

// AppendNote appends a note to the notes log.
func (tx *Tx) AppendNote(n model.Note) {
	tx.t.Notes = append(tx.t.Notes, n)
}

// Assessment returns the questionnaire for a job from the working copy.
func (tx *Tx) Assessment(jobID string) (model.Assessment, bool) {
	a, ok := tx.t.Assessments[jobID]
	return a, ok
}

// PutAssessment inserts or replaces the questionnaire for its job id.
// The store keeps a private copy; the caller's value stays its own.
func (tx *Tx) PutAssessment(a model.Assessment) {
	tx.t.Assessments[a.JobID] = a.Clone()
}

// AppendResponse appends a submitted response, keeping a private copy
// of its payload.
func (tx *Tx) AppendResponse(r model.Response) {
	tx.t.Responses = append(tx.t.Responses, r.Clone())
}
