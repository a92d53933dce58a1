// AngelaMos | 2026
// entity.go

package dispute

import (
	"time"
)

type Dispute struct {
	ID          string     `db:"id"`
	FiledBy     string     `db:"filed_by"`
	AgainstUser *string    `db:"against_user"`
	JobID       *string    `db:"job_id"`
	Subject     string     `db:"subject"`
	Description string     `db:"description"`
	Status      string     `db:"status"`
	Priority    string     `db:"priority"`
	Resolution  *string    `db:"resolution"`
	ResolvedBy  *string    `db:"resolved_by"`
	ResolvedAt  *time.Time `db:"resolved_at"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

const (
	StatusOpen          = "open"
	StatusInvestigating = "investigating"
	StatusResolved      = "resolved"
	StatusClosed        = "closed"
)

const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

// IsTerminal reports whether no further status changes are allowed.
// Resolution is final; closed disputes may be reopened by an admin.
func (d *Dispute) IsTerminal() bool {
	return d.Status == StatusResolved
}

func ValidStatus(status string) bool {
	switch status {
	case StatusOpen, StatusInvestigating, StatusResolved, StatusClosed:
		return true
	}
	return false
}

func ValidPriority(priority string) bool {
	switch priority {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}
