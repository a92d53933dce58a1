// AngelaMos | 2026
// dto.go

package dispute

import (
	"time"
)

type FileDisputeRequest struct {
	AgainstUser *string `json:"against_user,omitempty" validate:"omitempty,uuid"`
	JobID       *string `json:"job_id,omitempty"       validate:"omitempty,uuid"`
	Subject     string  `json:"subject"     validate:"required,min=3,max=200"`
	Description string  `json:"description" validate:"required,min=10,max=10000"`
	Priority    string  `json:"priority,omitempty" validate:"omitempty,oneof=low medium high critical"`
}

type ResolveDisputeRequest struct {
	Resolution string `json:"resolution" validate:"required,min=3,max=10000"`
}

type SetStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=open investigating closed"`
}

type DisputeResponse struct {
	ID          string     `json:"id"`
	FiledBy     string     `json:"filed_by"`
	AgainstUser *string    `json:"against_user,omitempty"`
	JobID       *string    `json:"job_id,omitempty"`
	Subject     string     `json:"subject"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	Resolution  *string    `json:"resolution,omitempty"`
	ResolvedBy  *string    `json:"resolved_by,omitempty"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type ListParams struct {
	Page     int
	PageSize int
	Status   string
	Priority string
}

func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

func (p *ListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToDisputeResponse(d *Dispute) DisputeResponse {
	return DisputeResponse{
		ID:          d.ID,
		FiledBy:     d.FiledBy,
		AgainstUser: d.AgainstUser,
		JobID:       d.JobID,
		Subject:     d.Subject,
		Description: d.Description,
		Status:      d.Status,
		Priority:    d.Priority,
		Resolution:  d.Resolution,
		ResolvedBy:  d.ResolvedBy,
		ResolvedAt:  d.ResolvedAt,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func ToDisputeResponseList(disputes []Dispute) []DisputeResponse {
	responses := make([]DisputeResponse, 0, len(disputes))
	for i := range disputes {
		responses = append(responses, ToDisputeResponse(&disputes[i]))
	}
	return responses
}
