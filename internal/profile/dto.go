// AngelaMos | 2026
// dto.go

package profile

import (
	"time"
)

type UpdateSeekerProfileRequest struct {
	Headline      *string  `json:"headline,omitempty"       validate:"omitempty,max=200"`
	Summary       *string  `json:"summary,omitempty"        validate:"omitempty,max=5000"`
	Skills        *string  `json:"skills,omitempty"         validate:"omitempty,max=2000"`
	Experience    *string  `json:"experience,omitempty"     validate:"omitempty,max=10000"`
	Education     *string  `json:"education,omitempty"      validate:"omitempty,max=5000"`
	ResumeURL     *string  `json:"resume_url,omitempty"     validate:"omitempty,url,max=500"`
	Location      *string  `json:"location,omitempty"       validate:"omitempty,max=200"`
	DesiredSalary *float64 `json:"desired_salary,omitempty" validate:"omitempty,gte=0"`
	Availability  *string  `json:"availability,omitempty"   validate:"omitempty,max=100"`
}

type UpdateEmployerProfileRequest struct {
	CompanyName        *string `json:"company_name,omitempty"        validate:"omitempty,min=1,max=200"`
	CompanyDescription *string `json:"company_description,omitempty" validate:"omitempty,max=10000"`
	Industry           *string `json:"industry,omitempty"            validate:"omitempty,max=100"`
	CompanySize        *string `json:"company_size,omitempty"        validate:"omitempty,max=50"`
	Website            *string `json:"website,omitempty"             validate:"omitempty,url,max=500"`
	Location           *string `json:"location,omitempty"            validate:"omitempty,max=200"`
	LogoURL            *string `json:"logo_url,omitempty"            validate:"omitempty,url,max=500"`
}

type SeekerProfileResponse struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Headline      *string   `json:"headline,omitempty"`
	Summary       *string   `json:"summary,omitempty"`
	Skills        *string   `json:"skills,omitempty"`
	Experience    *string   `json:"experience,omitempty"`
	Education     *string   `json:"education,omitempty"`
	ResumeURL     *string   `json:"resume_url,omitempty"`
	Location      *string   `json:"location,omitempty"`
	DesiredSalary *float64  `json:"desired_salary,omitempty"`
	Availability  *string   `json:"availability,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type EmployerProfileResponse struct {
	ID                 string     `json:"id"`
	UserID             string     `json:"user_id"`
	CompanyName        string     `json:"company_name"`
	CompanyDescription *string    `json:"company_description,omitempty"`
	Industry           *string    `json:"industry,omitempty"`
	CompanySize        *string    `json:"company_size,omitempty"`
	Website            *string    `json:"website,omitempty"`
	Location           *string    `json:"location,omitempty"`
	LogoURL            *string    `json:"logo_url,omitempty"`
	IsApproved         bool       `json:"is_approved"`
	ApprovedBy         *string    `json:"approved_by,omitempty"`
	ApprovedAt         *time.Time `json:"approved_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// ProfileResponse is a tagged union keyed by Role. Exactly one of Seeker or
// Employer is set; admins carry neither.
type ProfileResponse struct {
	Role     string                   `json:"role"`
	Seeker   *SeekerProfileResponse   `json:"seeker,omitempty"`
	Employer *EmployerProfileResponse `json:"employer,omitempty"`
}

func ToSeekerResponse(p *JobSeekerProfile) *SeekerProfileResponse {
	return &SeekerProfileResponse{
		ID:            p.ID,
		UserID:        p.UserID,
		Headline:      p.Headline,
		Summary:       p.Summary,
		Skills:        p.Skills,
		Experience:    p.Experience,
		Education:     p.Education,
		ResumeURL:     p.ResumeURL,
		Location:      p.Location,
		DesiredSalary: p.DesiredSalary,
		Availability:  p.Availability,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func ToEmployerResponse(p *EmployerProfile) *EmployerProfileResponse {
	return &EmployerProfileResponse{
		ID:                 p.ID,
		UserID:             p.UserID,
		CompanyName:        p.CompanyName,
		CompanyDescription: p.CompanyDescription,
		Industry:           p.Industry,
		CompanySize:        p.CompanySize,
		Website:            p.Website,
		Location:           p.Location,
		LogoURL:            p.LogoURL,
		IsApproved:         p.IsApproved,
		ApprovedBy:         p.ApprovedBy,
		ApprovedAt:         p.ApprovedAt,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

func ToEmployerResponseList(
	profiles []EmployerProfile,
) []EmployerProfileResponse {
	responses := make([]EmployerProfileResponse, 0, len(profiles))
	for i := range profiles {
		responses = append(responses, *ToEmployerResponse(&profiles[i]))
	}
	return responses
}
