// AngelaMos | 2026
// registration.go

package profile

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/kaziconnect/backend/internal/auth"
	"github.com/kaziconnect/backend/internal/core"
	"github.com/kaziconnect/backend/internal/user"
)

// Registration creates a user and its role profile in one transaction, so a
// failed profile insert never leaves an orphaned user row.
type Registration struct {
	db *sqlx.DB
}

func NewRegistration(db *sqlx.DB) *Registration {
	return &Registration{db: db}
}

func (r *Registration) CreateAccount(
	ctx context.Context,
	params auth.CreateAccountParams,
) (*auth.UserInfo, error) {
	switch params.Role {
	case user.RoleJobSeeker, user.RoleEmployer:
	default:
		return nil, fmt.Errorf(
			"create account: invalid role %q: %w",
			params.Role,
			core.ErrInvalidInput,
		)
	}

	newUser := &user.User{
		ID:           uuid.New().String(),
		Email:        strings.ToLower(params.Email),
		PasswordHash: params.PasswordHash,
		Role:         params.Role,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		Phone:        params.Phone,
	}

	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := user.NewRepository(tx).Create(ctx, newUser); err != nil {
			return err
		}

		switch params.Role {
		case user.RoleJobSeeker:
			seeker := &JobSeekerProfile{
				ID:     uuid.New().String(),
				UserID: newUser.ID,
			}
			return NewSeekerRepository(tx).Create(ctx, seeker)
		case user.RoleEmployer:
			employer := &EmployerProfile{
				ID:          uuid.New().String(),
				UserID:      newUser.ID,
				CompanyName: params.CompanyName,
			}
			return NewEmployerRepository(tx).Create(ctx, employer)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &auth.UserInfo{
		ID:        newUser.ID,
		Email:     newUser.Email,
		Role:      newUser.Role,
		FirstName: newUser.FirstName,
		LastName:  newUser.LastName,
		IsActive:  newUser.IsActive,
	}, nil
}

var _ auth.AccountCreator = (*Registration)(nil)
