// AngelaMos | 2026
// service.go

package job

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/kaziconnect/backend/internal/core"
	"github.com/kaziconnect/backend/internal/profile"
	"github.com/kaziconnect/backend/internal/user"
)

var ErrEmployerNotApproved = errors.New("employer account pending approval")

type Notifier interface {
	Notify(ctx context.Context, userID, title, message, kind string)
}

type Service struct {
	repo      Repository
	employers profile.EmployerRepository
	notifier  Notifier
}

func NewService(
	repo Repository,
	employers profile.EmployerRepository,
	notifier Notifier,
) *Service {
	return &Service{
		repo:      repo,
		employers: employers,
		notifier:  notifier,
	}
}

// Create posts a job for the employer owning userID. Unapproved employers
// cannot post.
func (s *Service) Create(
	ctx context.Context,
	userID string,
	req CreateJobRequest,
) (*JobResponse, error) {
	employer, err := s.employers.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !employer.IsApproved {
		return nil, ErrEmployerNotApproved
	}

	posting := &JobPosting{
		ID:                  uuid.New().String(),
		EmployerID:          employer.ID,
		Title:               req.Title,
		Description:         req.Description,
		Requirements:        req.Requirements,
		Responsibilities:    req.Responsibilities,
		Location:            req.Location,
		JobType:             req.JobType,
		Category:            req.Category,
		SalaryMin:           req.SalaryMin,
		SalaryMax:           req.SalaryMax,
		ExperienceLevel:     req.ExperienceLevel,
		EducationLevel:      req.EducationLevel,
		ApplicationDeadline: req.ApplicationDeadline,
	}

	if err := s.repo.Create(ctx, posting); err != nil {
		return nil, err
	}

	return s.toResponseWithCompany(ctx, posting.ID)
}

// Get returns a single posting. Inactive postings are hidden from everyone
// except the owning employer and admins; only anonymous-visible views count.
func (s *Service) Get(
	ctx context.Context,
	jobID, viewerUserID, viewerRole string,
) (*JobResponse, error) {
	j, err := s.repo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if !j.IsActive {
		owner, ownerErr := s.isOwner(ctx, viewerUserID, j.EmployerID)
		if ownerErr != nil {
			return nil, ownerErr
		}
		if !owner && viewerRole != user.RoleAdmin {
			return nil, fmt.Errorf("get job: %w", core.ErrNotFound)
		}
	} else {
		//nolint:errcheck // view counter is best-effort
		_ = s.repo.IncrementViews(ctx, jobID)
		j.Views++
	}

	resp := ToJobResponse(j)
	return &resp, nil
}

func (s *Service) List(
	ctx context.Context,
	params ListJobsParams,
) ([]JobWithCompany, int, error) {
	params.ActiveOnly = true
	return s.repo.List(ctx, params)
}

// AdminList returns postings regardless of active state for moderation.
func (s *Service) AdminList(
	ctx context.Context,
	params ListJobsParams,
) ([]JobWithCompany, int, error) {
	params.ActiveOnly = false
	return s.repo.List(ctx, params)
}

func (s *Service) ListMine(
	ctx context.Context,
	userID string,
	params ListJobsParams,
) ([]JobWithCompany, int, error) {
	employer, err := s.employers.GetByUserID(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	params.EmployerID = employer.ID
	params.ActiveOnly = false

	return s.repo.List(ctx, params)
}

func (s *Service) Update(
	ctx context.Context,
	userID, jobID string,
	req UpdateJobRequest,
) (*JobResponse, error) {
	if err := s.requireOwnership(ctx, userID, jobID); err != nil {
		return nil, err
	}

	if _, err := s.repo.Update(ctx, jobID, req); err != nil {
		return nil, err
	}

	return s.toResponseWithCompany(ctx, jobID)
}

func (s *Service) SetActive(
	ctx context.Context,
	userID, jobID string,
	active bool,
) error {
	if err := s.requireOwnership(ctx, userID, jobID); err != nil {
		return err
	}

	return s.repo.SetActive(ctx, jobID, active)
}

func (s *Service) MyStats(
	ctx context.Context,
	userID string,
) (*EmployerJobStats, error) {
	employer, err := s.employers.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.repo.EmployerStats(ctx, employer.ID)
}

// AdminDeactivate pulls a posting from the board and warns the employer.
func (s *Service) AdminDeactivate(
	ctx context.Context,
	jobID, reason string,
) error {
	j, err := s.repo.GetByID(ctx, jobID)
	if err != nil {
		return err
	}

	if !j.IsActive {
		return core.ConflictError("job is already deactivated")
	}

	if err := s.repo.SetActive(ctx, jobID, false); err != nil {
		return err
	}

	employer, err := s.employers.GetByID(ctx, j.EmployerID)
	if err != nil {
		return err
	}

	message := fmt.Sprintf(
		"Your job posting %q has been deactivated by a moderator.",
		j.Title,
	)
	if reason != "" {
		message = fmt.Sprintf("%s Reason: %s", message, reason)
	}

	s.notifier.Notify(
		ctx,
		employer.UserID,
		"Job Posting Deactivated",
		message,
		"warning",
	)

	return nil
}

func (s *Service) requireOwnership(
	ctx context.Context,
	userID, jobID string,
) error {
	j, err := s.repo.GetByID(ctx, jobID)
	if err != nil {
		return err
	}

	owner, err := s.isOwner(ctx, userID, j.EmployerID)
	if err != nil {
		return err
	}

	if !owner {
		return fmt.Errorf(
			"job belongs to another employer: %w",
			core.ErrForbidden,
		)
	}

	return nil
}

func (s *Service) isOwner(
	ctx context.Context,
	userID, employerID string,
) (bool, error) {
	if userID == "" {
		return false, nil
	}

	employer, err := s.employers.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	return employer.ID == employerID, nil
}

func (s *Service) toResponseWithCompany(
	ctx context.Context,
	jobID string,
) (*JobResponse, error) {
	j, err := s.repo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	resp := ToJobResponse(j)
	return &resp, nil
}
