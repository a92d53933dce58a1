// AngelaMos | 2026
// dto.go

package job

import (
	"time"
)

type CreateJobRequest struct {
	Title               string     `json:"title"            validate:"required,min=3,max=200"`
	Description         string     `json:"description"      validate:"required,min=10,max=20000"`
	Requirements        *string    `json:"requirements,omitempty"     validate:"omitempty,max=10000"`
	Responsibilities    *string    `json:"responsibilities,omitempty" validate:"omitempty,max=10000"`
	Location            *string    `json:"location,omitempty"         validate:"omitempty,max=200"`
	JobType             string     `json:"job_type"         validate:"required,oneof=full-time part-time contract internship remote"`
	Category            *string    `json:"category,omitempty"         validate:"omitempty,max=100"`
	SalaryMin           *float64   `json:"salary_min,omitempty"       validate:"omitempty,gte=0"`
	SalaryMax           *float64   `json:"salary_max,omitempty"       validate:"omitempty,gte=0"`
	ExperienceLevel     *string    `json:"experience_level,omitempty" validate:"omitempty,max=100"`
	EducationLevel      *string    `json:"education_level,omitempty"  validate:"omitempty,max=100"`
	ApplicationDeadline *time.Time `json:"application_deadline,omitempty"`
}

type UpdateJobRequest struct {
	Title               *string    `json:"title,omitempty"            validate:"omitempty,min=3,max=200"`
	Description         *string    `json:"description,omitempty"      validate:"omitempty,min=10,max=20000"`
	Requirements        *string    `json:"requirements,omitempty"     validate:"omitempty,max=10000"`
	Responsibilities    *string    `json:"responsibilities,omitempty" validate:"omitempty,max=10000"`
	Location            *string    `json:"location,omitempty"         validate:"omitempty,max=200"`
	JobType             *string    `json:"job_type,omitempty"         validate:"omitempty,oneof=full-time part-time contract internship remote"`
	Category            *string    `json:"category,omitempty"         validate:"omitempty,max=100"`
	SalaryMin           *float64   `json:"salary_min,omitempty"       validate:"omitempty,gte=0"`
	SalaryMax           *float64   `json:"salary_max,omitempty"       validate:"omitempty,gte=0"`
	ExperienceLevel     *string    `json:"experience_level,omitempty" validate:"omitempty,max=100"`
	EducationLevel      *string    `json:"education_level,omitempty"  validate:"omitempty,max=100"`
	ApplicationDeadline *time.Time `json:"application_deadline,omitempty"`
}

type JobResponse struct {
	ID                  string     `json:"id"`
	EmployerID          string     `json:"employer_id"`
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	Requirements        *string    `json:"requirements,omitempty"`
	Responsibilities    *string    `json:"responsibilities,omitempty"`
	Location            *string    `json:"location,omitempty"`
	JobType             string     `json:"job_type"`
	Category            *string    `json:"category,omitempty"`
	SalaryMin           *float64   `json:"salary_min,omitempty"`
	SalaryMax           *float64   `json:"salary_max,omitempty"`
	ExperienceLevel     *string    `json:"experience_level,omitempty"`
	EducationLevel      *string    `json:"education_level,omitempty"`
	ApplicationDeadline *time.Time `json:"application_deadline,omitempty"`
	IsActive            bool       `json:"is_active"`
	Views               int        `json:"views"`
	ApplicationsCount   int        `json:"applications_count"`
	CompanyName         string     `json:"company_name,omitempty"`
	CompanyLogoURL      *string    `json:"company_logo_url,omitempty"`
	CompanyLocation     *string    `json:"company_location,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

type EmployerJobStats struct {
	TotalJobs         int `json:"total_jobs"         db:"total_jobs"`
	ActiveJobs        int `json:"active_jobs"        db:"active_jobs"`
	TotalApplications int `json:"total_applications" db:"total_applications"`
	TotalViews        int `json:"total_views"        db:"total_views"`
}

type ListJobsParams struct {
	Page       int
	PageSize   int
	Search     string
	Category   string
	Location   string
	JobType    string
	SalaryMin  *float64
	SalaryMax  *float64
	EmployerID string
	// ActiveOnly is forced on for public listings; owners and admins may
	// clear it to see deactivated postings.
	ActiveOnly bool
}

func (p *ListJobsParams) Normalize() {
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

func (p *ListJobsParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToJobResponse(j *JobWithCompany) JobResponse {
	return JobResponse{
		ID:                  j.ID,
		EmployerID:          j.EmployerID,
		Title:               j.Title,
		Description:         j.Description,
		Requirements:        j.Requirements,
		Responsibilities:    j.Responsibilities,
		Location:            j.Location,
		JobType:             j.JobType,
		Category:            j.Category,
		SalaryMin:           j.SalaryMin,
		SalaryMax:           j.SalaryMax,
		ExperienceLevel:     j.ExperienceLevel,
		EducationLevel:      j.EducationLevel,
		ApplicationDeadline: j.ApplicationDeadline,
		IsActive:            j.IsActive,
		Views:               j.Views,
		ApplicationsCount:   j.ApplicationsCount,
		CompanyName:         j.CompanyName,
		CompanyLogoURL:      j.CompanyLogoURL,
		CompanyLocation:     j.CompanyLocation,
		CreatedAt:           j.CreatedAt,
		UpdatedAt:           j.UpdatedAt,
	}
}

func ToJobResponseList(jobs []JobWithCompany) []JobResponse {
	responses := make([]JobResponse, 0, len(jobs))
	for i := range jobs {
		responses = append(responses, ToJobResponse(&jobs[i]))
	}
	return responses
}
