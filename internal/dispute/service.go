// AngelaMos | 2026
// service.go

package dispute

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kaziconnect/backend/internal/core"
	"github.com/kaziconnect/backend/internal/user"
)

type Notifier interface {
	Notify(ctx context.Context, userID, title, message, kind string)
}

type Service struct {
	repo     Repository
	notifier Notifier
}

func NewService(repo Repository, notifier Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

func (s *Service) File(
	ctx context.Context,
	userID string,
	req FileDisputeRequest,
) (*DisputeResponse, error) {
	priority := req.Priority
	if priority == "" {
		priority = PriorityMedium
	}

	d := &Dispute{
		ID:          uuid.New().String(),
		FiledBy:     userID,
		AgainstUser: req.AgainstUser,
		JobID:       req.JobID,
		Subject:     req.Subject,
		Description: req.Description,
		Priority:    priority,
	}

	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}

	resp := ToDisputeResponse(d)
	return &resp, nil
}

func (s *Service) Get(
	ctx context.Context,
	userID, role, disputeID string,
) (*DisputeResponse, error) {
	d, err := s.repo.GetByID(ctx, disputeID)
	if err != nil {
		return nil, err
	}

	if role != user.RoleAdmin && d.FiledBy != userID {
		return nil, fmt.Errorf("view dispute: %w", core.ErrForbidden)
	}

	resp := ToDisputeResponse(d)
	return &resp, nil
}

func (s *Service) ListMine(
	ctx context.Context,
	userID string,
	params ListParams,
) ([]Dispute, int, error) {
	return s.repo.ListByFiler(ctx, userID, params)
}

func (s *Service) List(
	ctx context.Context,
	params ListParams,
) ([]Dispute, int, error) {
	return s.repo.List(ctx, params)
}

// Resolve closes out a dispute with a written resolution and notifies the
// filer. Resolution is final: a resolved or closed dispute cannot be
// resolved again.
func (s *Service) Resolve(
	ctx context.Context,
	adminID, disputeID string,
	req ResolveDisputeRequest,
) (*DisputeResponse, error) {
	d, err := s.repo.GetByID(ctx, disputeID)
	if err != nil {
		return nil, err
	}

	if d.Status == StatusResolved || d.Status == StatusClosed {
		return nil, core.ConflictError("dispute is already " + d.Status)
	}

	if err := s.repo.Resolve(ctx, disputeID, req.Resolution, adminID); err != nil {
		return nil, err
	}

	s.notifier.Notify(
		ctx,
		d.FiledBy,
		"Dispute Resolved",
		fmt.Sprintf("Your dispute %q has been resolved: %s", d.Subject, req.Resolution),
		"info",
	)

	return s.Get(ctx, adminID, user.RoleAdmin, disputeID)
}

// SetStatus moves a dispute between open, investigating and closed. A
// resolved dispute is terminal.
func (s *Service) SetStatus(
	ctx context.Context,
	disputeID, status string,
) (*DisputeResponse, error) {
	d, err := s.repo.GetByID(ctx, disputeID)
	if err != nil {
		return nil, err
	}

	if d.IsTerminal() {
		return nil, core.ConflictError("resolved disputes cannot change status")
	}

	if d.Status == status {
		resp := ToDisputeResponse(d)
		return &resp, nil
	}

	if err := s.repo.SetStatus(ctx, disputeID, status); err != nil {
		return nil, err
	}

	d, err = s.repo.GetByID(ctx, disputeID)
	if err != nil {
		return nil, err
	}

	resp := ToDisputeResponse(d)
	return &resp, nil
}
