package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/projecthub/projecthub/internal/adapter/http/response"
	"github.com/projecthub/projecthub/internal/usecase"
	"github.com/projecthub/projecthub/pkg/apperror"
)

// WorkflowHandler handles guarded status transitions for cost entries and
// proposals.
type WorkflowHandler struct {
	costUseCase     *usecase.CostUseCase
	proposalUseCase *usecase.ProposalUseCase
}

// NewWorkflowHandler creates a new workflow handler.
func NewWorkflowHandler(costUseCase *usecase.CostUseCase, proposalUseCase *usecase.ProposalUseCase) *WorkflowHandler {
	return &WorkflowHandler{costUseCase: costUseCase, proposalUseCase: proposalUseCase}
}

// RegisterRoutes registers workflow routes.
func (h *WorkflowHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/v1/costs/{id}/approve", h.ApproveCost).Methods("POST")
	router.HandleFunc("/api/v1/proposals/{id}/approve", h.ApproveProposal).Methods("POST")
}

// ApproveCost approves a pending cost entry.
func (h *WorkflowHandler) ApproveCost(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	costID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid cost entry ID")
		return
	}

	entry, err := h.costUseCase.Approve(r.Context(), costID, principal)
	if err != nil {
		response.AppError(w, apperror.From(err))
		return
	}

	response.Success(w, http.StatusOK, "Cost entry approved", entry)
}

// ApproveProposal approves a sent or negotiating proposal and notifies
// active project members.
func (h *WorkflowHandler) ApproveProposal(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	proposalID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid proposal ID")
		return
	}

	proposal, err := h.proposalUseCase.Approve(r.Context(), proposalID, principal)
	if err != nil {
		response.AppError(w, apperror.From(err))
		return
	}

	response.Success(w, http.StatusOK, "Proposal approved", proposal)
}
