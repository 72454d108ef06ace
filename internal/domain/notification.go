package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NotificationType represents the kind of in-app notification.
type NotificationType string

const (
	NotificationTypeProposalApproved NotificationType = "proposal_approved"
)

// Notification is an in-app notification record. Only record creation is
// handled here; delivery and rendering are external concerns.
type Notification struct {
	ID        uuid.UUID        `json:"id"`
	UserID    uuid.UUID        `json:"user_id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Link      string           `json:"link"`
	Metadata  map[string]any   `json:"metadata,omitempty"`
	ReadAt    *time.Time       `json:"read_at,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

// NewProposalApprovedNotification builds the fan-out record for one project
// member when a proposal is approved.
func NewProposalApprovedNotification(userID uuid.UUID, proposal *Proposal, approverID uuid.UUID) *Notification {
	return &Notification{
		ID:      uuid.New(),
		UserID:  userID,
		Type:    NotificationTypeProposalApproved,
		Title:   "Proposal approved",
		Message: fmt.Sprintf("Proposal %q has been approved", proposal.Title),
		Link:    fmt.Sprintf("/projects/%s/proposals/%s", proposal.ProjectID, proposal.ID),
		Metadata: map[string]any{
			"proposal_id": proposal.ID.String(),
			"approved_by": approverID.String(),
		},
		CreatedAt: time.Now().UTC(),
	}
}
