// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	app "github.com/okian/talentflow/internal/app"
	"github.com/okian/talentflow/internal/domain/model"
)

// CandidatesHandler handles candidate collection and item requests.
type CandidatesHandler struct {
	deps Dependencies
}

// NewCandidatesHandler creates a new candidates handler.
func NewCandidatesHandler(deps Dependencies) *CandidatesHandler {
	return &CandidatesHandler{deps: deps}
}

type createCandidateRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	JobID string `json:"jobId"`
}

type patchCandidateRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Stage *string `json:"stage"`
	JobID *string `json:"jobId"`
}

type timelineResponse struct {
	Items []model.TimelineEvent `json:"items"`
}

// HandleCandidates handles GET /candidates and POST /candidates.
func (h *CandidatesHandler) HandleCandidates(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *CandidatesHandler) handleList(w http.ResponseWriter, r *http.Request) {
	qp := r.URL.Query()
	page, _ := strconv.Atoi(qp.Get("page"))
	pageSize, _ := strconv.Atoi(qp.Get("pageSize"))

	result, err := h.deps.ListCandidates(r.Context(), app.CandidateListQuery{
		Search:   qp.Get("search"),
		Stage:    model.Stage(qp.Get("stage")),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *CandidatesHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createCandidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	candidate, err := h.deps.CreateCandidate(r.Context(), app.CreateCandidateInput{
		Name:  req.Name,
		Email: req.Email,
		JobID: req.JobID,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, candidate)
}

// HandleCandidate handles PATCH /candidates/{id} and
// GET /candidates/{id}/timeline.
func (h *CandidatesHandler) HandleCandidate(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/candidates/")

	if id, ok := strings.CutSuffix(path, "/timeline"); ok && r.Method == http.MethodGet {
		h.handleTimeline(w, r, id)
		return
	}
	if r.Method != http.MethodPatch || path == "" || strings.Contains(path, "/") {
		http.NotFound(w, r)
		return
	}
	h.handlePatch(w, r, path)
}

func (h *CandidatesHandler) handlePatch(w http.ResponseWriter, r *http.Request, id string) {
	var req patchCandidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	patch := app.CandidatePatch{Name: req.Name, Email: req.Email, JobID: req.JobID}
	if req.Stage != nil {
		stage := model.Stage(*req.Stage)
		if !model.ValidStage(stage) {
			writeError(w, http.StatusBadRequest, "bad_request", ErrUnknownStage)
			return
		}
		patch.Stage = &stage
	}

	candidate, err := h.deps.PatchCandidate(r.Context(), id, patch)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, candidate)
}

func (h *CandidatesHandler) handleTimeline(w http.ResponseWriter, r *http.Request, id string) {
	events, err := h.deps.CandidateTimeline(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, timelineResponse{Items: events})
}
