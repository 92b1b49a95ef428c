// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/okian/talentflow/internal/domain/model"
)

// NotesHandler handles note requests.
type NotesHandler struct {
	deps Dependencies
}

// NewNotesHandler creates a new notes handler.
func NewNotesHandler(deps Dependencies) *NotesHandler {
	return &NotesHandler{deps: deps}
}

type addNoteRequest struct {
	CandidateID string `json:"candidateId"`
	Text        string `json:"text"`
}

type notesResponse struct {
	Items []model.Note `json:"items"`
}

// HandleNotes handles GET /notes?candidateId= and POST /notes.
func (h *NotesHandler) HandleNotes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleAdd(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *NotesHandler) handleList(w http.ResponseWriter, r *http.Request) {
	notes, err := h.deps.ListNotes(r.Context(), r.URL.Query().Get("candidateId"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notesResponse{Items: notes})
}

func (h *NotesHandler) handleAdd(w http.ResponseWriter, r *http.Request) {
	var req addNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if strings.TrimSpace(req.CandidateID) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrMissingCandidateID)
		return
	}

	if err := h.deps.AddNote(r.Context(), req.CandidateID, req.Text); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}
