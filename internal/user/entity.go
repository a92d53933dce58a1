// AngelaMos | 2026
// entity.go

package user

import (
	"time"
)

type User struct {
	ID            string     `db:"id"`
	Email         string     `db:"email"`
	PasswordHash  string     `db:"password_hash"`
	Role          string     `db:"role"`
	FirstName     string     `db:"first_name"`
	LastName      string     `db:"last_name"`
	Phone         *string    `db:"phone"`
	IsActive      bool       `db:"is_active"`
	EmailVerified bool       `db:"email_verified"`
	LastLogin     *time.Time `db:"last_login"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

const (
	RoleJobSeeker = "job-seeker"
	RoleEmployer  = "employer"
	RoleAdmin     = "admin"
)

func ValidRole(role string) bool {
	switch role {
	case RoleJobSeeker, RoleEmployer, RoleAdmin:
		return true
	}
	return false
}
