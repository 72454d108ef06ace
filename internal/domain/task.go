package domain

import (
	"time"

	"github.com/google/uuid"
)

// GanttTask is a schedulable task row as rendered on the Gantt chart.
type GanttTask struct {
	ID        uuid.UUID  `json:"id"`
	ProjectID uuid.UUID  `json:"project_id"`
	Title     string     `json:"title"`
	StartsOn  time.Time  `json:"starts_on"`
	EndsOn    time.Time  `json:"ends_on"`
	SortOrder int        `json:"sort_order"`
	DependsOn *uuid.UUID `json:"depends_on,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TaskUpdate is one item of a Gantt bulk update. The whole batch is applied
// in a single transaction; one bad id fails every item.
type TaskUpdate struct {
	ID        uuid.UUID `json:"id"`
	StartsOn  time.Time `json:"starts_on"`
	EndsOn    time.Time `json:"ends_on"`
	SortOrder int       `json:"sort_order"`
}

// Validate checks date ordering before the batch reaches the store.
func (u TaskUpdate) Validate() error {
	if u.ID == uuid.Nil {
		return NewValidationError("id", "task id is required")
	}
	if u.EndsOn.Before(u.StartsOn) {
		return NewValidationError("ends_on", "must not be before starts_on")
	}
	return nil
}
