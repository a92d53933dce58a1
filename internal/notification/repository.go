// AngelaMos | 2026
// repository.go

package notification

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kaziconnect/backend/internal/core"
)

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	ListByUser(
		ctx context.Context,
		userID string,
		params ListParams,
	) ([]Notification, int, error)
	MarkRead(ctx context.Context, id, userID string) error
	MarkAllRead(ctx context.Context, userID string) (int, error)
	UnreadCount(ctx context.Context, userID string) (int, error)
	Delete(ctx context.Context, id, userID string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, n *Notification) error {
	query := `
		INSERT INTO notifications (id, user_id, title, message, kind)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING is_read, created_at`

	err := r.db.GetContext(ctx, n, query,
		n.ID,
		n.UserID,
		n.Title,
		n.Message,
		n.Kind,
	)
	if err != nil {
		return fmt.Errorf("create notification: %w", err)
	}

	return nil
}

func (r *repository) ListByUser(
	ctx context.Context,
	userID string,
	params ListParams,
) ([]Notification, int, error) {
	params.Normalize()

	whereClause := "user_id = $1"
	if params.UnreadOnly {
		whereClause += " AND is_read = FALSE"
	}

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM notifications WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, userID); err != nil {
		return nil, 0, fmt.Errorf("count notifications: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, user_id, title, message, kind, is_read, created_at
		FROM notifications
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, whereClause)

	var notifications []Notification
	err := r.db.SelectContext(
		ctx,
		&notifications,
		query,
		userID,
		params.PageSize,
		params.Offset(),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}

	return notifications, total, nil
}

func (r *repository) MarkRead(ctx context.Context, id, userID string) error {
	query := `
		UPDATE notifications
		SET is_read = TRUE
		WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("mark notification read: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) MarkAllRead(
	ctx context.Context,
	userID string,
) (int, error) {
	query := `
		UPDATE notifications
		SET is_read = TRUE
		WHERE user_id = $1 AND is_read = FALSE`

	result, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", err)
	}

	return int(rows), nil
}

func (r *repository) UnreadCount(
	ctx context.Context,
	userID string,
) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM notifications
		WHERE user_id = $1 AND is_read = FALSE`

	var count int
	err := r.db.GetContext(ctx, &count, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}

	return count, nil
}

func (r *repository) Delete(ctx context.Context, id, userID string) error {
	query := `DELETE FROM notifications WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete notification: %w", core.ErrNotFound)
	}

	return nil
}
