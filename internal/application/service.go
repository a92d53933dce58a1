// AngelaMos | 2026
// service.go

package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/kaziconnect/backend/internal/core"
	"github.com/kaziconnect/backend/internal/job"
	"github.com/kaziconnect/backend/internal/profile"
	"github.com/kaziconnect/backend/internal/user"
)

var (
	ErrAlreadyApplied  = errors.New("already applied to this job")
	ErrJobClosed       = errors.New("job is not accepting applications")
	ErrNoSeekerProfile = errors.New("job seeker profile required")
)

type Notifier interface {
	Notify(ctx context.Context, userID, title, message, kind string)
}

type Service struct {
	db        *sqlx.DB
	repo      Repository
	jobs      job.Repository
	seekers   profile.SeekerRepository
	employers profile.EmployerRepository
	notifier  Notifier
}

func NewService(
	db *sqlx.DB,
	repo Repository,
	jobs job.Repository,
	seekers profile.SeekerRepository,
	employers profile.EmployerRepository,
	notifier Notifier,
) *Service {
	return &Service{
		db:        db,
		repo:      repo,
		jobs:      jobs,
		seekers:   seekers,
		employers: employers,
		notifier:  notifier,
	}
}

// Apply submits an application. The job row is locked for the duration of
// the transaction so a concurrent deactivation cannot race the insert, and
// the (seeker, job) unique constraint backstops the duplicate check.
func (s *Service) Apply(
	ctx context.Context,
	userID string,
	req ApplyRequest,
) (*ApplicationResponse, error) {
	seeker, err := s.seekers.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrNoSeekerProfile
		}
		return nil, err
	}

	app := &Application{
		ID:          uuid.New().String(),
		JobID:       req.JobID,
		SeekerID:    seeker.ID,
		CoverLetter: req.CoverLetter,
		ResumeURL:   req.ResumeURL,
	}

	var lockedJob *LockedJob

	err = core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		txRepo := NewRepository(tx)

		j, lockErr := txRepo.LockJob(ctx, req.JobID)
		if lockErr != nil {
			return lockErr
		}
		lockedJob = j

		if !j.IsActive {
			return ErrJobClosed
		}

		if j.ApplicationDeadline != nil &&
			j.ApplicationDeadline.Before(time.Now()) {
			return ErrJobClosed
		}

		exists, existsErr := txRepo.ExistsBySeekerAndJob(
			ctx,
			seeker.ID,
			req.JobID,
		)
		if existsErr != nil {
			return existsErr
		}
		if exists {
			return ErrAlreadyApplied
		}

		if insertErr := txRepo.Insert(ctx, app); insertErr != nil {
			if errors.Is(insertErr, core.ErrDuplicateKey) {
				return ErrAlreadyApplied
			}
			return insertErr
		}

		return txRepo.IncrementJobApplications(ctx, req.JobID)
	})
	if err != nil {
		return nil, err
	}

	s.notifyEmployer(ctx, lockedJob)

	created, err := s.repo.GetByID(ctx, app.ID)
	if err != nil {
		return nil, err
	}

	resp := toSeekerResponse(created)
	return &resp, nil
}

func (s *Service) notifyEmployer(ctx context.Context, j *LockedJob) {
	employer, err := s.employers.GetByID(ctx, j.EmployerID)
	if err != nil {
		return
	}

	s.notifier.Notify(
		ctx,
		employer.UserID,
		"New Application",
		fmt.Sprintf("A candidate has applied to %q.", j.Title),
		"info",
	)
}

func (s *Service) Withdraw(
	ctx context.Context,
	userID, applicationID string,
) error {
	app, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return err
	}

	if app.SeekerUserID != userID {
		return fmt.Errorf(
			"application belongs to another candidate: %w",
			core.ErrForbidden,
		)
	}

	return s.repo.Delete(ctx, applicationID)
}

func (s *Service) Get(
	ctx context.Context,
	userID, role, applicationID string,
) (*ApplicationResponse, error) {
	app, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	if role == user.RoleAdmin {
		resp := toEmployerResponse(app)
		return &resp, nil
	}

	if app.SeekerUserID == userID {
		resp := toSeekerResponse(app)
		return &resp, nil
	}

	owner, err := s.isEmployerOwner(ctx, userID, app.EmployerID)
	if err != nil {
		return nil, err
	}
	if owner {
		resp := toEmployerResponse(app)
		return &resp, nil
	}

	return nil, fmt.Errorf("view application: %w", core.ErrForbidden)
}

func (s *Service) ListMine(
	ctx context.Context,
	userID string,
	params ListParams,
) ([]ApplicationResponse, int, error) {
	seeker, err := s.seekers.GetByUserID(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	apps, total, err := s.repo.ListBySeeker(ctx, seeker.ID, params)
	if err != nil {
		return nil, 0, err
	}

	return toSeekerResponseList(apps), total, nil
}

func (s *Service) ListForJob(
	ctx context.Context,
	userID, jobID string,
	params ListParams,
) ([]ApplicationResponse, int, error) {
	if err := s.requireJobOwnership(ctx, userID, jobID); err != nil {
		return nil, 0, err
	}

	apps, total, err := s.repo.ListByJob(ctx, jobID, params)
	if err != nil {
		return nil, 0, err
	}

	return toEmployerResponseList(apps), total, nil
}

// UpdateStatus moves an application through the review pipeline. The first
// transition out of pending stamps reviewed_at; any valid status can follow
// any other, matching how recruiters actually work.
func (s *Service) UpdateStatus(
	ctx context.Context,
	userID, applicationID string,
	req UpdateStatusRequest,
) (*ApplicationResponse, error) {
	app, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	owner, err := s.isEmployerOwner(ctx, userID, app.EmployerID)
	if err != nil {
		return nil, err
	}
	if !owner {
		return nil, fmt.Errorf(
			"application belongs to another employer: %w",
			core.ErrForbidden,
		)
	}

	stampReviewed := req.Status != StatusPending

	err = s.repo.UpdateStatus(
		ctx,
		applicationID,
		req.Status,
		req.Notes,
		userID,
		stampReviewed,
	)
	if err != nil {
		return nil, err
	}

	if req.Status != app.Status {
		s.notifySeeker(ctx, app, req.Status)
	}

	updated, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	resp := toEmployerResponse(updated)
	return &resp, nil
}

func (s *Service) notifySeeker(
	ctx context.Context,
	app *ApplicationWithContext,
	status string,
) {
	kind := "info"
	switch status {
	case StatusAccepted:
		kind = "success"
	case StatusRejected:
		kind = "error"
	}

	s.notifier.Notify(
		ctx,
		app.SeekerUserID,
		"Application Update",
		fmt.Sprintf(
			"Your application for %q is now %s.",
			app.JobTitle,
			status,
		),
		kind,
	)
}

func (s *Service) MyStats(
	ctx context.Context,
	userID string,
) (*StatusCounts, error) {
	seeker, err := s.seekers.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.repo.SeekerStats(ctx, seeker.ID)
}

func (s *Service) JobStats(
	ctx context.Context,
	userID, jobID string,
) (*StatusCounts, error) {
	if err := s.requireJobOwnership(ctx, userID, jobID); err != nil {
		return nil, err
	}

	return s.repo.JobStats(ctx, jobID)
}

func (s *Service) requireJobOwnership(
	ctx context.Context,
	userID, jobID string,
) error {
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return err
	}

	owner, err := s.isEmployerOwner(ctx, userID, j.EmployerID)
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

func (s *Service) isEmployerOwner(
	ctx context.Context,
	userID, employerID string,
) (bool, error) {
	employer, err := s.employers.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	return employer.ID == employerID, nil
}
