// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/kaziconnect/backend/internal/core"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailExists        = errors.New("email already exists")
	ErrAccountDisabled    = errors.New("account is deactivated")
)

type UserInfo struct {
	ID           string
	Email        string
	PasswordHash string
	Role         string
	FirstName    string
	LastName     string
	IsActive     bool
}

type UserProvider interface {
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
	GetByID(ctx context.Context, id string) (*UserInfo, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	RecordLogin(ctx context.Context, userID string) error
}

type CreateAccountParams struct {
	Email        string
	PasswordHash string
	Role         string
	FirstName    string
	LastName     string
	Phone        *string
	CompanyName  string
}

// AccountCreator creates the user row and its role profile atomically.
type AccountCreator interface {
	CreateAccount(
		ctx context.Context,
		params CreateAccountParams,
	) (*UserInfo, error)
}

type ActivityRecorder interface {
	Record(ctx context.Context, userID, action, detail, ipAddress string)
}

type Service struct {
	users    UserProvider
	accounts AccountCreator
	activity ActivityRecorder
	jwt      *JWTManager
}

func NewService(
	users UserProvider,
	accounts AccountCreator,
	activity ActivityRecorder,
	jwtManager *JWTManager,
) *Service {
	return &Service{
		users:    users,
		accounts: accounts,
		activity: activity,
		jwt:      jwtManager,
	}
}

func (s *Service) Register(
	ctx context.Context,
	req RegisterRequest,
	ipAddress string,
) (*AuthResponse, error) {
	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.accounts.CreateAccount(ctx, CreateAccountParams{
		Email:        req.Email,
		PasswordHash: passwordHash,
		Role:         req.Role,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		CompanyName:  req.CompanyName,
	})
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	if s.activity != nil {
		s.activity.Record(ctx, user.ID, "user.registered", user.Role, ipAddress)
	}

	return s.createAuthResponse(user)
}

func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
	ipAddress string,
) (*AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // timing attack prevention - always verify to prevent enumeration
			_, _, _ = core.VerifyPasswordTimingSafe(req.Password, nil)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	valid, newHash, err := core.VerifyPasswordTimingSafe(
		req.Password,
		&user.PasswordHash,
	)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if !valid {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	if newHash != "" {
		//nolint:errcheck // best-effort rehash upgrade
		_ = s.users.UpdatePassword(ctx, user.ID, newHash)
	}

	//nolint:errcheck // best-effort login stamp
	_ = s.users.RecordLogin(ctx, user.ID)

	if s.activity != nil {
		s.activity.Record(ctx, user.ID, "user.login", "", ipAddress)
	}

	return s.createAuthResponse(user)
}

func (s *Service) GetCurrentUser(
	ctx context.Context,
	userID string,
) (*AuthUser, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &AuthUser{
		ID:        user.ID,
		Email:     user.Email,
		Role:      user.Role,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}, nil
}

func (s *Service) ChangePassword(
	ctx context.Context,
	userID string,
	req ChangePasswordRequest,
) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	valid, err := core.VerifyPassword(req.CurrentPassword, user.PasswordHash)
	if err != nil {
		return fmt.Errorf("verify password: %w", err)
	}

	if !valid {
		return ErrInvalidCredentials
	}

	newHash, err := core.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, userID, newHash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	return nil
}

func (s *Service) createAuthResponse(user *UserInfo) (*AuthResponse, error) {
	token, err := s.jwt.CreateAccessToken(AccessTokenClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("create access token: %w", err)
	}

	return &AuthResponse{
		Token: token,
		User: AuthUser{
			ID:        user.ID,
			Email:     user.Email,
			Role:      user.Role,
			FirstName: user.FirstName,
			LastName:  user.LastName,
		},
	}, nil
}
