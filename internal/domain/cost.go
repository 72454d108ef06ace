package domain

import (
	"time"

	"github.com/google/uuid"
)

// CostStatus represents the lifecycle status of a cost entry.
type CostStatus string

const (
	CostStatusPending  CostStatus = "PENDING"
	CostStatusApproved CostStatus = "APPROVED"
	CostStatusRejected CostStatus = "REJECTED"
	CostStatusPaid     CostStatus = "PAID"
)

// CostEntry tracks a project expense. Status transitions are guarded; the
// approve transition is only legal from PENDING.
type CostEntry struct {
	ID          uuid.UUID  `json:"id"`
	ProjectID   uuid.UUID  `json:"project_id"`
	Description string     `json:"description"`
	AmountCents int64      `json:"amount_cents"`
	Currency    string     `json:"currency"`
	Status      CostStatus `json:"status"`
	CreatedBy   uuid.UUID  `json:"created_by"`
	ApprovedBy  *uuid.UUID `json:"approved_by,omitempty"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Approve moves the entry to APPROVED, stamping approver and timestamp.
// Only legal from PENDING; anything else is a status conflict.
func (c *CostEntry) Approve(approverID uuid.UUID) error {
	if c.Status != CostStatusPending {
		return &StatusConflictError{
			Entity:    TargetTypeCost,
			Attempted: string(CostStatusApproved),
			Current:   string(c.Status),
		}
	}
	now := time.Now().UTC()
	c.Status = CostStatusApproved
	c.ApprovedBy = &approverID
	c.ApprovedAt = &now
	c.UpdatedAt = now
	return nil
}
