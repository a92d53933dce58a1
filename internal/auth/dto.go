// AngelaMos | 2026
// dto.go

package auth

type RegisterRequest struct {
	Email       string  `json:"email"        validate:"required,email,max=255"`
	Password    string  `json:"password"     validate:"required,min=8,max=128"`
	Role        string  `json:"role"         validate:"required,oneof=job-seeker employer"`
	FirstName   string  `json:"first_name"   validate:"required,min=1,max=100"`
	LastName    string  `json:"last_name"    validate:"required,min=1,max=100"`
	Phone       *string `json:"phone,omitempty"        validate:"omitempty,max=30"`
	CompanyName string  `json:"company_name,omitempty" validate:"required_if=Role employer,max=200"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,max=128"`
}

type AuthUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type AuthResponse struct {
	Token string   `json:"token"`
	User  AuthUser `json:"user"`
}
