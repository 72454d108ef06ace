package http

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/projecthub/projecthub/internal/adapter/http/response"
	"github.com/projecthub/projecthub/internal/usecase"
	"github.com/projecthub/projecthub/pkg/apperror"
)

// NoteHandler handles HTTP requests for versioned notes.
type NoteHandler struct {
	noteUseCase *usecase.NoteUseCase
}

// NewNoteHandler creates a new note handler.
func NewNoteHandler(noteUseCase *usecase.NoteUseCase) *NoteHandler {
	return &NoteHandler{noteUseCase: noteUseCase}
}

// RegisterRoutes registers note routes.
func (h *NoteHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/v1/notes/{id}", h.UpdateNote).Methods("PUT")
	router.HandleFunc("/api/v1/notes/{id}/history", h.NoteHistory).Methods("GET")
	router.HandleFunc("/api/v1/notes/{id}/restore", h.RestoreNote).Methods("POST")
}

type updateNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type restoreNoteRequest struct {
	Version int `json:"version"`
}

// UpdateNote overwrites a note, snapshotting the previous state.
func (h *NoteHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	noteID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid note ID")
		return
	}

	var req updateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	note, err := h.noteUseCase.Update(r.Context(), noteID, principal, req.Title, req.Content)
	if err != nil {
		response.AppError(w, apperror.From(err))
		return
	}

	response.Success(w, http.StatusOK, "Note updated", note)
}

// NoteHistory lists a note's version snapshots, newest first.
func (h *NoteHandler) NoteHistory(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	noteID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid note ID")
		return
	}

	versions, err := h.noteUseCase.History(r.Context(), noteID, principal)
	if err != nil {
		response.AppError(w, apperror.From(err))
		return
	}

	response.Success(w, http.StatusOK, "Note history", versions)
}

// RestoreNote replays an old snapshot as a new version.
func (h *NoteHandler) RestoreNote(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	noteID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid note ID")
		return
	}

	var req restoreNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.Version < 1 {
		response.BadRequest(w, "Version must be a positive integer")
		return
	}

	note, err := h.noteUseCase.Restore(r.Context(), noteID, req.Version, principal)
	if err != nil {
		response.AppError(w, apperror.From(err))
		return
	}

	response.Success(w, http.StatusOK, "Note restored", note)
}
