// AngelaMos | 2026
// service.go

package profile

import (
	"context"
	"fmt"

	"github.com/kaziconnect/backend/internal/core"
	"github.com/kaziconnect/backend/internal/user"
)

// Notifier delivers in-app notifications. Delivery failures are logged by the
// implementation and never fail the calling operation.
type Notifier interface {
	Notify(ctx context.Context, userID, title, message, kind string)
}

type Service struct {
	seekers   SeekerRepository
	employers EmployerRepository
	users     user.Repository
	notifier  Notifier
}

func NewService(
	seekers SeekerRepository,
	employers EmployerRepository,
	users user.Repository,
	notifier Notifier,
) *Service {
	return &Service{
		seekers:   seekers,
		employers: employers,
		users:     users,
		notifier:  notifier,
	}
}

func (s *Service) GetMyProfile(
	ctx context.Context,
	userID, role string,
) (*ProfileResponse, error) {
	switch role {
	case user.RoleJobSeeker:
		p, err := s.seekers.GetByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
		return &ProfileResponse{
			Role:   role,
			Seeker: ToSeekerResponse(p),
		}, nil
	case user.RoleEmployer:
		p, err := s.employers.GetByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
		return &ProfileResponse{
			Role:     role,
			Employer: ToEmployerResponse(p),
		}, nil
	case user.RoleAdmin:
		return &ProfileResponse{Role: role}, nil
	default:
		return nil, fmt.Errorf(
			"get profile: unknown role %q: %w",
			role,
			core.ErrInvalidInput,
		)
	}
}

func (s *Service) UpdateSeekerProfile(
	ctx context.Context,
	userID string,
	req UpdateSeekerProfileRequest,
) (*SeekerProfileResponse, error) {
	p, err := s.seekers.Update(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	return ToSeekerResponse(p), nil
}

func (s *Service) UpdateEmployerProfile(
	ctx context.Context,
	userID string,
	req UpdateEmployerProfileRequest,
) (*EmployerProfileResponse, error) {
	p, err := s.employers.Update(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	return ToEmployerResponse(p), nil
}

func (s *Service) GetSeekerProfile(
	ctx context.Context,
	id string,
) (*SeekerProfileResponse, error) {
	p, err := s.seekers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return ToSeekerResponse(p), nil
}

func (s *Service) GetEmployerProfile(
	ctx context.Context,
	id string,
) (*EmployerProfileResponse, error) {
	p, err := s.employers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return ToEmployerResponse(p), nil
}

func (s *Service) ListPendingEmployers(
	ctx context.Context,
	page, pageSize int,
) ([]EmployerProfile, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	return s.employers.ListPending(ctx, page, pageSize)
}

// ApproveEmployer moves a pending employer to approved, stamps the acting
// admin as the approver, and notifies the account owner. Approving twice is
// a conflict.
func (s *Service) ApproveEmployer(
	ctx context.Context,
	employerID, adminID string,
) (*EmployerProfileResponse, error) {
	employer, err := s.employers.GetByID(ctx, employerID)
	if err != nil {
		return nil, err
	}

	if employer.IsApproved {
		return nil, core.ConflictError("employer is already approved")
	}

	if err := s.employers.SetApproval(ctx, employerID, true, &adminID); err != nil {
		return nil, err
	}

	s.notifier.Notify(
		ctx,
		employer.UserID,
		"Account Approved",
		"Your employer account has been approved. You can now post jobs.",
		"success",
	)

	return s.GetEmployerProfile(ctx, employerID)
}

// RejectEmployer declines a pending employer and deactivates the account so
// it can no longer log in. An approved employer cannot be rejected.
func (s *Service) RejectEmployer(
	ctx context.Context,
	employerID, reason string,
) error {
	employer, err := s.employers.GetByID(ctx, employerID)
	if err != nil {
		return err
	}

	if employer.IsApproved {
		return core.ConflictError("cannot reject an approved employer")
	}

	message := "Your employer account application has been declined."
	if reason != "" {
		message = fmt.Sprintf("%s Reason: %s", message, reason)
	}

	s.notifier.Notify(
		ctx,
		employer.UserID,
		"Account Declined",
		message,
		"error",
	)

	if err := s.users.SetActive(ctx, employer.UserID, false); err != nil {
		return fmt.Errorf("deactivate rejected employer: %w", err)
	}

	return nil
}
