package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/projecthub/projecthub/internal/adapter/http/response"
	"github.com/projecthub/projecthub/internal/usecase"
	"github.com/projecthub/projecthub/pkg/apperror"
)

// SettingsHandler manages platform settings, currently maintenance mode.
type SettingsHandler struct {
	settingsUseCase *usecase.SettingsUseCase
}

// NewSettingsHandler creates a new settings handler.
func NewSettingsHandler(settingsUseCase *usecase.SettingsUseCase) *SettingsHandler {
	return &SettingsHandler{settingsUseCase: settingsUseCase}
}

// RegisterRoutes registers settings routes.
func (h *SettingsHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/v1/settings/maintenance", h.GetMaintenance).Methods("GET")
	router.HandleFunc("/api/v1/settings/maintenance", h.SetMaintenance).Methods("PUT")
}

type maintenanceRequest struct {
	Enabled bool `json:"enabled"`
}

// GetMaintenance reads the authoritative maintenance flag.
func (h *SettingsHandler) GetMaintenance(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	enabled, err := h.settingsUseCase.MaintenanceEnabled(r.Context(), principal)
	if err != nil {
		response.AppError(w, apperror.From(err))
		return
	}

	response.Success(w, http.StatusOK, "Maintenance mode", map[string]bool{"enabled": enabled})
}

// SetMaintenance flips maintenance mode and invalidates the gate cache.
func (h *SettingsHandler) SetMaintenance(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req maintenanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.settingsUseCase.SetMaintenance(r.Context(), principal, req.Enabled); err != nil {
		response.AppError(w, apperror.From(err))
		return
	}

	response.Success(w, http.StatusOK, "Maintenance mode updated", map[string]bool{"enabled": req.Enabled})
}
