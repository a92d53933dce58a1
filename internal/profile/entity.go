// AngelaMos | 2026
// entity.go

package profile

import (
	"time"
)

type JobSeekerProfile struct {
	ID            string     `db:"id"`
	UserID        string     `db:"user_id"`
	Headline      *string    `db:"headline"`
	Summary       *string    `db:"summary"`
	Skills        *string    `db:"skills"`
	Experience    *string    `db:"experience"`
	Education     *string    `db:"education"`
	ResumeURL     *string    `db:"resume_url"`
	Location      *string    `db:"location"`
	DesiredSalary *float64   `db:"desired_salary"`
	Availability  *string    `db:"availability"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

type EmployerProfile struct {
	ID                 string     `db:"id"`
	UserID             string     `db:"user_id"`
	CompanyName        string     `db:"company_name"`
	CompanyDescription *string    `db:"company_description"`
	Industry           *string    `db:"industry"`
	CompanySize        *string    `db:"company_size"`
	Website            *string    `db:"website"`
	Location           *string    `db:"location"`
	LogoURL            *string    `db:"logo_url"`
	IsApproved         bool       `db:"is_approved"`
	ApprovedBy         *string    `db:"approved_by"`
	ApprovedAt         *time.Time `db:"approved_at"`
	CreatedAt          time.Time  `db:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at"`
}
