// AngelaMos | 2026
// service.go

package notification

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Notify writes an in-app notification for userID. Failures are logged and
// swallowed: a notification must never fail the operation that triggered it.
func (s *Service) Notify(
	ctx context.Context,
	userID, title, message, kind string,
) {
	if !ValidKind(kind) {
		kind = KindInfo
	}

	n := &Notification{
		ID:      uuid.New().String(),
		UserID:  userID,
		Title:   title,
		Message: message,
		Kind:    kind,
	}

	if err := s.repo.Create(ctx, n); err != nil {
		slog.Error("deliver notification",
			"error", err,
			"user_id", userID,
			"title", title,
		)
	}
}

func (s *Service) List(
	ctx context.Context,
	userID string,
	params ListParams,
) ([]Notification, int, error) {
	return s.repo.ListByUser(ctx, userID, params)
}

func (s *Service) MarkRead(ctx context.Context, id, userID string) error {
	return s.repo.MarkRead(ctx, id, userID)
}

// MarkAllRead is idempotent: marking an already-read inbox affects zero rows
// and succeeds.
func (s *Service) MarkAllRead(
	ctx context.Context,
	userID string,
) (int, error) {
	return s.repo.MarkAllRead(ctx, userID)
}

func (s *Service) UnreadCount(
	ctx context.Context,
	userID string,
) (int, error) {
	return s.repo.UnreadCount(ctx, userID)
}

func (s *Service) Delete(ctx context.Context, id, userID string) error {
	return s.repo.Delete(ctx, id, userID)
}
