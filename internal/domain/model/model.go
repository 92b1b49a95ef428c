// Package model contains domain models passed between layers.
package model

import (
	"slices"
	"time"

	gslug "github.com/gosimple/slug"
)

// JobStatus enumerates the lifecycle states of a job posting.
type JobStatus string

// Job statuses.
const (
	JobActive   JobStatus = "active"
	JobArchived JobStatus = "archived"
)

// ValidJobStatus reports whether s is a known job status.
func ValidJobStatus(s JobStatus) bool {
	return s == JobActive || s == JobArchived
}

// Job is a posting in the hiring pipeline. Order is a dense 1-based rank
// unique across all jobs; the set of orders is always exactly {1..N}.
type Job struct {
	ID     string    `json:"id"`
	Title  string    `json:"title"`
	Slug   string    `json:"slug"`
	Status JobStatus `json:"status"`
	Tags   []string  `json:"tags"`
	Order  int       `json:"order"`
}

// Clone returns a deep copy of the job.
func (j Job) Clone() Job {
	j.Tags = slices.Clone(j.Tags)
	return j
}

// DeriveSlug produces a URL slug from a job title.
func DeriveSlug(title string) string {
	return gslug.Make(title)
}

// Stage is a candidate's position in the hiring pipeline.
type Stage string

// Pipeline stages. The first five form the ordered progression; rejected
// is a terminal side branch reachable from any stage.
const (
	StageApplied  Stage = "applied"
	StageScreen   Stage = "screen"
	StageTech     Stage = "tech"
	StageOffer    Stage = "offer"
	StageHired    Stage = "hired"
	StageRejected Stage = "rejected"
)

// Stages returns all stages in display order.
func Stages() []Stage {
	return []Stage{StageApplied, StageScreen, StageTech, StageOffer, StageHired, StageRejected}
}

// ValidStage reports whether s is a known stage.
func ValidStage(s Stage) bool {
	switch s {
	case StageApplied, StageScreen, StageTech, StageOffer, StageHired, StageRejected:
		return true
	}
	return false
}

// Candidate is an applicant attached to a job posting.
type Candidate struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Stage Stage  `json:"stage"`
	JobID string `json:"jobId"`
}

// TimelineAction enumerates the kinds of timeline events.
type TimelineAction string

// Timeline actions.
const (
	ActionCreated     TimelineAction = "created"
	ActionStageChange TimelineAction = "stage_change"
)

// TimelineEvent is an append-only record of a candidate's history.
// ToStage is present iff Action is stage_change.
type TimelineEvent struct {
	CandidateID string         `json:"candidateId"`
	At          time.Time      `json:"at"`
	Action      TimelineAction `json:"action"`
	ToStage     Stage          `json:"toStage,omitempty"`
}

// Note is an append-only comment on a candidate. Text may embed @mention
// tokens; they are stored and returned raw.
type Note struct {
	ID          string    `json:"id"`
	CandidateID string    `json:"candidateId"`
	Text        string    `json:"text"`
	At          time.Time `json:"at"`
}

// Response is a filled-in assessment, appended on submit.
type Response struct {
	ID          string    `json:"id"`
	JobID       string    `json:"jobId"`
	CandidateID string    `json:"candidateId,omitempty"`
	Payload     AnswerMap `json:"payload"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// Clone returns a deep copy of the response.
func (r Response) Clone() Response {
	r.Payload = r.Payload.Clone()
	return r
}
