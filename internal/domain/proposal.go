package domain

import (
	"time"

	"github.com/google/uuid"
)

// ProposalStatus represents the lifecycle status of a proposal.
type ProposalStatus string

const (
	ProposalStatusDraft       ProposalStatus = "DRAFT"
	ProposalStatusSent        ProposalStatus = "SENT"
	ProposalStatusNegotiating ProposalStatus = "NEGOTIATING"
	ProposalStatusApproved    ProposalStatus = "APPROVED"
	ProposalStatusRejected    ProposalStatus = "REJECTED"
)

// Proposal is a client-facing offer attached to a project.
type Proposal struct {
	ID         uuid.UUID      `json:"id"`
	ProjectID  uuid.UUID      `json:"project_id"`
	Title      string         `json:"title"`
	Status     ProposalStatus `json:"status"`
	CreatedBy  uuid.UUID      `json:"created_by"`
	ApprovedBy *uuid.UUID     `json:"approved_by,omitempty"`
	ApprovedAt *time.Time     `json:"approved_at,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// Approve moves the proposal to APPROVED. Only legal from SENT or
// NEGOTIATING.
func (p *Proposal) Approve(approverID uuid.UUID) error {
	if p.Status != ProposalStatusSent && p.Status != ProposalStatusNegotiating {
		return &StatusConflictError{
			Entity:    TargetTypeProposal,
			Attempted: string(ProposalStatusApproved),
			Current:   string(p.Status),
		}
	}
	now := time.Now().UTC()
	p.Status = ProposalStatusApproved
	p.ApprovedBy = &approverID
	p.ApprovedAt = &now
	p.UpdatedAt = now
	return nil
}
