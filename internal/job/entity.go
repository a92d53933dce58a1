// AngelaMos | 2026
// entity.go

package job

import (
	"time"
)

type JobPosting struct {
	ID                  string     `db:"id"`
	EmployerID          string     `db:"employer_id"`
	Title               string     `db:"title"`
	Description         string     `db:"description"`
	Requirements        *string    `db:"requirements"`
	Responsibilities    *string    `db:"responsibilities"`
	Location            *string    `db:"location"`
	JobType             string     `db:"job_type"`
	Category            *string    `db:"category"`
	SalaryMin           *float64   `db:"salary_min"`
	SalaryMax           *float64   `db:"salary_max"`
	ExperienceLevel     *string    `db:"experience_level"`
	EducationLevel      *string    `db:"education_level"`
	ApplicationDeadline *time.Time `db:"application_deadline"`
	IsActive            bool       `db:"is_active"`
	Views               int        `db:"views"`
	ApplicationsCount   int        `db:"applications_count"`
	CreatedAt           time.Time  `db:"created_at"`
	UpdatedAt           time.Time  `db:"updated_at"`
}

// JobWithCompany is the read model for public listings: the posting plus the
// employer columns a card or detail page needs.
type JobWithCompany struct {
	JobPosting
	CompanyName     string  `db:"company_name"`
	CompanyLogoURL  *string `db:"company_logo_url"`
	CompanyLocation *string `db:"company_location"`
}

const (
	TypeFullTime   = "full-time"
	TypePartTime   = "part-time"
	TypeContract   = "contract"
	TypeInternship = "internship"
	TypeRemote     = "remote"
)

func ValidJobType(jobType string) bool {
	switch jobType {
	case TypeFullTime, TypePartTime, TypeContract, TypeInternship, TypeRemote:
		return true
	}
	return false
}
