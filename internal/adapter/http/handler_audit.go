package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/projecthub/projecthub/internal/adapter/http/response"
	"github.com/projecthub/projecthub/internal/domain"
	"github.com/projecthub/projecthub/internal/usecase"
	"github.com/projecthub/projecthub/pkg/apperror"
)

// AuditHandler exposes the audit log query surface.
type AuditHandler struct {
	auditUseCase *usecase.AuditUseCase
}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler(auditUseCase *usecase.AuditUseCase) *AuditHandler {
	return &AuditHandler{auditUseCase: auditUseCase}
}

// RegisterRoutes registers audit routes.
func (h *AuditHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/v1/audit", h.ListAudit).Methods("GET")
}

// ListAudit lists audit entries within the caller's visibility.
func (h *AuditHandler) ListAudit(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	filter := domain.AuditFilter{}
	q := r.URL.Query()

	if v := q.Get("actor_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			response.BadRequest(w, "Invalid actor_id")
			return
		}
		filter.ActorID = &id
	}

	if v := q.Get("project_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			response.BadRequest(w, "Invalid project_id")
			return
		}
		filter.ProjectID = &id
	}

	if v := q.Get("action"); v != "" {
		action := domain.AuditAction(v)
		filter.Action = &action
	}

	if v := q.Get("target_type"); v != "" {
		filter.TargetType = &v
	}

	if v := q.Get("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			response.BadRequest(w, "Invalid from timestamp")
			return
		}
		filter.From = &t
	}

	if v := q.Get("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			response.BadRequest(w, "Invalid to timestamp")
			return
		}
		filter.To = &t
	}

	if v := q.Get("page"); v != "" {
		if page, err := strconv.Atoi(v); err == nil {
			filter.Page = page
		}
	}
	if v := q.Get("page_size"); v != "" {
		if size, err := strconv.Atoi(v); err == nil {
			filter.PageSize = size
		}
	}
	filter.SortBy = q.Get("sort_by")
	filter.SortDesc = q.Get("sort_dir") != "asc"

	entries, total, err := h.auditUseCase.List(r.Context(), principal, filter)
	if err != nil {
		response.AppError(w, apperror.From(err))
		return
	}

	response.Success(w, http.StatusOK, "Audit entries", map[string]interface{}{
		"entries":   entries,
		"total":     total,
		"page":      filter.Page,
		"page_size": filter.PageSize,
	})
}
