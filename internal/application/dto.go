// AngelaMos | 2026
// dto.go

package application

import (
	"time"
)

type ApplyRequest struct {
	JobID       string  `json:"job_id"       validate:"required,uuid"`
	CoverLetter *string `json:"cover_letter,omitempty" validate:"omitempty,max=10000"`
	ResumeURL   *string `json:"resume_url,omitempty"   validate:"omitempty,url,max=500"`
}

type UpdateStatusRequest struct {
	Status string  `json:"status" validate:"required,oneof=pending reviewed shortlisted interview rejected accepted"`
	Notes  *string `json:"notes,omitempty" validate:"omitempty,max=5000"`
}

type ApplicationResponse struct {
	ID          string     `json:"id"`
	JobID       string     `json:"job_id"`
	SeekerID    string     `json:"seeker_id"`
	CoverLetter *string    `json:"cover_letter,omitempty"`
	ResumeURL   *string    `json:"resume_url,omitempty"`
	Status      string     `json:"status"`
	Notes       *string    `json:"notes,omitempty"`
	JobTitle    string     `json:"job_title,omitempty"`
	CompanyName string     `json:"company_name,omitempty"`
	Applicant   *Applicant `json:"applicant,omitempty"`
	AppliedAt   time.Time  `json:"applied_at"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`
	ReviewedBy  *string    `json:"reviewed_by,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type Applicant struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	ResumeURL *string `json:"resume_url,omitempty"`
}

type StatusCounts struct {
	Total       int `json:"total"       db:"total"`
	Pending     int `json:"pending"     db:"pending"`
	Reviewed    int `json:"reviewed"    db:"reviewed"`
	Shortlisted int `json:"shortlisted" db:"shortlisted"`
	Interview   int `json:"interview"   db:"interview"`
	Rejected    int `json:"rejected"    db:"rejected"`
	Accepted    int `json:"accepted"    db:"accepted"`
}

type ListParams struct {
	Page     int
	PageSize int
	Status   string
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

// toSeekerResponse hides employer-side notes from the applicant.
func toSeekerResponse(a *ApplicationWithContext) ApplicationResponse {
	return ApplicationResponse{
		ID:          a.ID,
		JobID:       a.JobID,
		SeekerID:    a.SeekerID,
		CoverLetter: a.CoverLetter,
		ResumeURL:   a.ResumeURL,
		Status:      a.Status,
		JobTitle:    a.JobTitle,
		CompanyName: a.CompanyName,
		AppliedAt:   a.AppliedAt,
		ReviewedAt:  a.ReviewedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func toEmployerResponse(a *ApplicationWithContext) ApplicationResponse {
	return ApplicationResponse{
		ID:          a.ID,
		JobID:       a.JobID,
		SeekerID:    a.SeekerID,
		CoverLetter: a.CoverLetter,
		ResumeURL:   a.ResumeURL,
		Status:      a.Status,
		Notes:       a.Notes,
		JobTitle:    a.JobTitle,
		CompanyName: a.CompanyName,
		Applicant: &Applicant{
			FirstName: a.SeekerFirstName,
			LastName:  a.SeekerLastName,
			ResumeURL: a.SeekerResumeURL,
		},
		AppliedAt:  a.AppliedAt,
		ReviewedAt: a.ReviewedAt,
		ReviewedBy: a.ReviewedBy,
		UpdatedAt:  a.UpdatedAt,
	}
}

func toSeekerResponseList(
	apps []ApplicationWithContext,
) []ApplicationResponse {
	responses := make([]ApplicationResponse, 0, len(apps))
	for i := range apps {
		responses = append(responses, toSeekerResponse(&apps[i]))
	}
	return responses
}

func toEmployerResponseList(
	apps []ApplicationWithContext,
) []ApplicationResponse {
	responses := make([]ApplicationResponse, 0, len(apps))
	for i := range apps {
		responses = append(responses, toEmployerResponse(&apps[i]))
	}
	return responses
}
