// AngelaMos | 2026
// entity.go

package application

import (
	"time"
)

type Application struct {
	ID          string     `db:"id"`
	JobID       string     `db:"job_id"`
	SeekerID    string     `db:"seeker_id"`
	CoverLetter *string    `db:"cover_letter"`
	ResumeURL   *string    `db:"resume_url"`
	Status      string     `db:"status"`
	Notes       *string    `db:"notes"`
	AppliedAt   time.Time  `db:"applied_at"`
	ReviewedAt  *time.Time `db:"reviewed_at"`
	ReviewedBy  *string    `db:"reviewed_by"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

// ApplicationWithContext joins in what both sides of the application need to
// render it: the posting, the company, and the applicant.
type ApplicationWithContext struct {
	Application
	JobTitle        string  `db:"job_title"`
	JobIsActive     bool    `db:"job_is_active"`
	EmployerID      string  `db:"employer_id"`
	CompanyName     string  `db:"company_name"`
	SeekerUserID    string  `db:"seeker_user_id"`
	SeekerFirstName string  `db:"seeker_first_name"`
	SeekerLastName  string  `db:"seeker_last_name"`
	SeekerResumeURL *string `db:"seeker_resume_url"`
}

const (
	StatusPending     = "pending"
	StatusReviewed    = "reviewed"
	StatusShortlisted = "shortlisted"
	StatusInterview   = "interview"
	StatusRejected    = "rejected"
	StatusAccepted    = "accepted"
)

func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusReviewed, StatusShortlisted,
		StatusInterview, StatusRejected, StatusAccepted:
		return true
	}
	return false
}
