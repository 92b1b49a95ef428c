// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/okian/talentflow/internal/domain/model"
)

// AssessmentsHandler handles questionnaire schema and submission requests.
type AssessmentsHandler struct {
	deps Dependencies
}

// NewAssessmentsHandler creates a new assessments handler.
func NewAssessmentsHandler(deps Dependencies) *AssessmentsHandler {
	return &AssessmentsHandler{deps: deps}
}

type putAssessmentRequest struct {
	Sections []model.Section `json:"sections"`
}

type submitAssessmentRequest struct {
	CandidateID string          `json:"candidateId"`
	Payload     model.AnswerMap `json:"payload"`
}

// HandleAssessment handles GET/PUT /assessments/{jobId} and
// POST /assessments/{jobId}/submit.
func (h *AssessmentsHandler) HandleAssessment(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/assessments/")

	if jobID, ok := strings.CutSuffix(path, "/submit"); ok && r.Method == http.MethodPost {
		h.handleSubmit(w, r, jobID)
		return
	}
	if path == "" || strings.Contains(path, "/") {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r, path)
	case http.MethodPut:
		h.handlePut(w, r, path)
	default:
		http.NotFound(w, r)
	}
}

func (h *AssessmentsHandler) handleGet(w http.ResponseWriter, r *http.Request, jobID string) {
	a, err := h.deps.GetAssessment(r.Context(), jobID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	// A job without an assessment is a JSON null, not a 404.
	writeJSON(w, http.StatusOK, a)
}

func (h *AssessmentsHandler) handlePut(w http.ResponseWriter, r *http.Request, jobID string) {
	var req putAssessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	for _, s := range req.Sections {
		for _, q := range s.Questions {
			if !model.ValidQuestionKind(q.Kind) {
				writeError(w, http.StatusBadRequest, "bad_request", ErrUnknownQuestionKind)
				return
			}
		}
	}

	if err := h.deps.PutAssessment(r.Context(), jobID, req.Sections); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

func (h *AssessmentsHandler) handleSubmit(w http.ResponseWriter, r *http.Request, jobID string) {
	var req submitAssessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	if err := h.deps.SubmitAssessment(r.Context(), jobID, req.CandidateID, req.Payload); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}
