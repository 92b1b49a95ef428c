// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	app "github.com/okian/talentflow/internal/app"
	"github.com/okian/talentflow/internal/domain/assessment"
	"github.com/okian/talentflow/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	ListJobs(ctx context.Context, q app.JobListQuery) (app.JobPage, error)
	CreateJob(ctx context.Context, in app.CreateJobInput) (model.Job, error)
	PatchJob(ctx context.Context, id string, patch app.JobPatch) (model.Job, error)
	ReorderJob(ctx context.Context, id string, toOrder int) error

	ListCandidates(ctx context.Context, q app.CandidateListQuery) (app.CandidatePage, error)
	CreateCandidate(ctx context.Context, in app.CreateCandidateInput) (model.Candidate, error)
	PatchCandidate(ctx context.Context, id string, patch app.CandidatePatch) (model.Candidate, error)
	CandidateTimeline(ctx context.Context, candidateID string) ([]model.TimelineEvent, error)

	GetAssessment(ctx context.Context, jobID string) (*model.Assessment, error)
	PutAssessment(ctx context.Context, jobID string, sections []model.Section) error
	SubmitAssessment(ctx context.Context, jobID, candidateID string, payload model.AnswerMap) error

	AddNote(ctx context.Context, candidateID, text string) error
	ListNotes(ctx context.Context, candidateID string) ([]model.Note, error)
}

// Server wires HTTP routes for the simulated backend API.
type Server struct {
	jobsHandler        *JobsHandler
	candidatesHandler  *CandidatesHandler
	assessmentsHandler *AssessmentsHandler
	notesHandler       *NotesHandler
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		jobsHandler:        NewJobsHandler(deps),
		candidatesHandler:  NewCandidatesHandler(deps),
		assessmentsHandler: NewAssessmentsHandler(deps),
		notesHandler:       NewNotesHandler(deps),
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/jobs", MetricsMiddleware(s.jobsHandler.HandleJobs, "jobs"))
	mux.HandleFunc("/jobs/", MetricsMiddleware(s.jobsHandler.HandleJob, "job"))
	mux.HandleFunc("/candidates", MetricsMiddleware(s.candidatesHandler.HandleCandidates, "candidates"))
	mux.HandleFunc("/candidates/", MetricsMiddleware(s.candidatesHandler.HandleCandidate, "candidate"))
	mux.HandleFunc("/assessments/", MetricsMiddleware(s.assessmentsHandler.HandleAssessment, "assessments"))
	mux.HandleFunc("/notes", MetricsMiddleware(s.notesHandler.HandleNotes, "notes"))
}

type okResponse struct {
	OK bool `json:"ok"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError translates router error kinds to HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	var verr *assessment.ValidationError
	switch {
	case errors.Is(err, app.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, app.ErrDuplicateSlug):
		writeError(w, http.StatusBadRequest, "duplicate_slug", err)
	case errors.Is(err, app.ErrServiceUnavailable):
		writeError(w, http.StatusServiceUnavailable, "service_unavailable", err)
	case errors.As(err, &verr):
		writeError(w, http.StatusUnprocessableEntity, "validation_error", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
