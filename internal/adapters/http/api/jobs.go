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

// JobsHandler handles job collection and item requests.
type JobsHandler struct {
	deps Dependencies
}

// NewJobsHandler creates a new jobs handler.
func NewJobsHandler(deps Dependencies) *JobsHandler {
	return &JobsHandler{deps: deps}
}

type createJobRequest struct {
	Title string   `json:"title"`
	Slug  string   `json:"slug"`
	Tags  []string `json:"tags"`
}

type patchJobRequest struct {
	Title  *string   `json:"title"`
	Slug   *string   `json:"slug"`
	Status *string   `json:"status"`
	Tags   *[]string `json:"tags"`
}

type reorderJobRequest struct {
	ToOrder int `json:"toOrder"`
}

// HandleJobs handles GET /jobs and POST /jobs.
func (h *JobsHandler) HandleJobs(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *JobsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	qp := r.URL.Query()
	page, _ := strconv.Atoi(qp.Get("page"))
	pageSize, _ := strconv.Atoi(qp.Get("pageSize"))

	result, err := h.deps.ListJobs(r.Context(), app.JobListQuery{
		Search:   qp.Get("search"),
		Status:   model.JobStatus(qp.Get("status")),
		Page:     page,
		PageSize: pageSize,
		Sort:     qp.Get("sort"),
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *JobsHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrMissingTitle)
		return
	}

	job, err := h.deps.CreateJob(r.Context(), app.CreateJobInput{
		Title: req.Title,
		Slug:  req.Slug,
		Tags:  req.Tags,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, job)
}

// HandleJob handles PATCH /jobs/{id} and PATCH /jobs/{id}/reorder.
func (h *JobsHandler) HandleJob(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		http.NotFound(w, r)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/jobs/")
	if id, ok := strings.CutSuffix(path, "/reorder"); ok {
		h.handleReorder(w, r, id)
		return
	}
	if path == "" || strings.Contains(path, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	h.handlePatch(w, r, path)
}

func (h *JobsHandler) handlePatch(w http.ResponseWriter, r *http.Request, id string) {
	var req patchJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	patch := app.JobPatch{Title: req.Title, Slug: req.Slug, Tags: req.Tags}
	if req.Status != nil {
		status := model.JobStatus(*req.Status)
		if !model.ValidJobStatus(status) {
			writeError(w, http.StatusBadRequest, "bad_request", ErrUnknownStatus)
			return
		}
		patch.Status = &status
	}

	job, err := h.deps.PatchJob(r.Context(), id, patch)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (h *JobsHandler) handleReorder(w http.ResponseWriter, r *http.Request, id string) {
	var req reorderJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	if err := h.deps.ReorderJob(r.Context(), id, req.ToOrder); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}
