package http

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/projecthub/projecthub/internal/adapter/http/response"
	"github.com/projecthub/projecthub/internal/domain"
	"github.com/projecthub/projecthub/internal/usecase"
	"github.com/projecthub/projecthub/pkg/apperror"
)

// ProjectHandler handles project access resolution, membership management
// and Gantt bulk updates.
type ProjectHandler struct {
	resolver      *usecase.AccessResolver
	memberUseCase *usecase.MemberUseCase
	ganttUseCase  *usecase.GanttUseCase
}

// NewProjectHandler creates a new project handler.
func NewProjectHandler(resolver *usecase.AccessResolver, memberUseCase *usecase.MemberUseCase, ganttUseCase *usecase.GanttUseCase) *ProjectHandler {
	return &ProjectHandler{resolver: resolver, memberUseCase: memberUseCase, ganttUseCase: ganttUseCase}
}

// RegisterRoutes registers project routes.
func (h *ProjectHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/v1/projects/{id}/access", h.ProjectAccess).Methods("GET")
	router.HandleFunc("/api/v1/projects/{id}/members", h.ListMembers).Methods("GET")
	router.HandleFunc("/api/v1/projects/{id}/members", h.AddMember).Methods("POST")
	router.HandleFunc("/api/v1/projects/{id}/members/{userID}", h.RemoveMember).Methods("DELETE")
	router.HandleFunc("/api/v1/projects/{id}/gantt", h.BulkUpdateGantt).Methods("PUT")
}

type addMemberRequest struct {
	UserID     string `json:"user_id"`
	MemberRole string `json:"member_role"`
}

type bulkUpdateRequest struct {
	Updates []domain.TaskUpdate `json:"updates"`
}

// ProjectAccess reports the caller's view/manage access on a project.
func (h *ProjectHandler) ProjectAccess(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	projectID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid project ID")
		return
	}

	access, err := h.resolver.Resolve(r.Context(), projectID, principal)
	if err != nil {
		response.AppError(w, apperror.From(err))
		return
	}

	response.Success(w, http.StatusOK, "Project access", access)
}

// ListMembers lists active project members.
func (h *ProjectHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	projectID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid project ID")
		return
	}

	members, err := h.memberUseCase.Members(r.Context(), projectID, principal)
	if err != nil {
		response.AppError(w, apperror.From(err))
		return
	}

	response.Success(w, http.StatusOK, "Project members", members)
}

// AddMember adds a user to a project.
func (h *ProjectHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	projectID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid project ID")
		return
	}

	var req addMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	membership, err := h.memberUseCase.Add(r.Context(), projectID, principal, userID, domain.MemberRole(req.MemberRole))
	if err != nil {
		response.AppError(w, apperror.From(err))
		return
	}

	response.Success(w, http.StatusCreated, "Member added", membership)
}

// RemoveMember deactivates a project membership.
func (h *ProjectHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	vars := mux.Vars(r)
	projectID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.BadRequest(w, "Invalid project ID")
		return
	}
	userID, err := uuid.Parse(vars["userID"])
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	if err := h.memberUseCase.Remove(r.Context(), projectID, principal, userID); err != nil {
		response.AppError(w, apperror.From(err))
		return
	}

	response.Success(w, http.StatusOK, "Member removed", nil)
}

// BulkUpdateGantt applies a batch of task updates atomically.
func (h *ProjectHandler) BulkUpdateGantt(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	projectID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid project ID")
		return
	}

	var req bulkUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.ganttUseCase.BulkUpdate(r.Context(), projectID, principal, req.Updates); err != nil {
		response.AppError(w, apperror.From(err))
		return
	}

	response.Success(w, http.StatusOK, "Gantt updated", map[string]int{"updated": len(req.Updates)})
}
