// AngelaMos | 2026
// activity.go

package activity

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kaziconnect/backend/internal/core"
)

type Entry struct {
	ID        string    `db:"id"`
	UserID    *string   `db:"user_id"`
	Action    string    `db:"action"`
	Entity    *string   `db:"entity"`
	EntityID  *string   `db:"entity_id"`
	Detail    *string   `db:"detail"`
	IPAddress *string   `db:"ip_address"`
	CreatedAt time.Time `db:"created_at"`
}

type EntryResponse struct {
	ID        string    `json:"id"`
	UserID    *string   `json:"user_id,omitempty"`
	Action    string    `json:"action"`
	Entity    *string   `json:"entity,omitempty"`
	EntityID  *string   `json:"entity_id,omitempty"`
	Detail    *string   `json:"detail,omitempty"`
	IPAddress *string   `json:"ip_address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type ListParams struct {
	Page     int
	PageSize int
	UserID   string
	Action   string
}

func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 50
	}
	if p.PageSize > 200 {
		p.PageSize = 200
	}
}

func (p *ListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

type Repository interface {
	Insert(ctx context.Context, e *Entry) error
	List(ctx context.Context, params ListParams) ([]Entry, int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Insert(ctx context.Context, e *Entry) error {
	query := `
		INSERT INTO activity_logs (id, user_id, action, entity, entity_id, detail, ip_address)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.UserID,
		e.Action,
		e.Entity,
		e.EntityID,
		e.Detail,
		e.IPAddress,
	)
	if err != nil {
		return fmt.Errorf("insert activity entry: %w", err)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	params ListParams,
) ([]Entry, int, error) {
	params.Normalize()

	var conditions []string
	var args []any
	argIdx := 1

	conditions = append(conditions, "TRUE")

	if params.UserID != "" {
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", argIdx))
		args = append(args, params.UserID)
		argIdx++
	}

	if params.Action != "" {
		conditions = append(conditions, fmt.Sprintf("action = $%d", argIdx))
		args = append(args, params.Action)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM activity_logs WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count activity entries: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, user_id, action, entity, entity_id, detail, ip_address, created_at
		FROM activity_logs
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var entries []Entry
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list activity entries: %w", err)
	}

	return entries, total, nil
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Record writes an audit entry. Failures are logged and swallowed: the audit
// trail never fails the operation it records.
func (s *Service) Record(
	ctx context.Context,
	userID, action, detail, ipAddress string,
) {
	entry := &Entry{
		ID:     uuid.New().String(),
		Action: action,
	}

	if userID != "" {
		entry.UserID = &userID
	}
	if detail != "" {
		entry.Detail = &detail
	}
	if ipAddress != "" {
		entry.IPAddress = &ipAddress
	}

	if err := s.repo.Insert(ctx, entry); err != nil {
		slog.Error("record activity", "error", err, "action", action)
	}
}

// RecordEntity is Record with the affected entity attached.
func (s *Service) RecordEntity(
	ctx context.Context,
	userID, action, entity, entityID, detail, ipAddress string,
) {
	e := &Entry{
		ID:     uuid.New().String(),
		Action: action,
	}

	if userID != "" {
		e.UserID = &userID
	}
	if entity != "" {
		e.Entity = &entity
	}
	if entityID != "" {
		e.EntityID = &entityID
	}
	if detail != "" {
		e.Detail = &detail
	}
	if ipAddress != "" {
		e.IPAddress = &ipAddress
	}

	if err := s.repo.Insert(ctx, e); err != nil {
		slog.Error("record activity", "error", err, "action", action)
	}
}

func (s *Service) List(
	ctx context.Context,
	params ListParams,
) ([]EntryResponse, int, error) {
	entries, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]EntryResponse, 0, len(entries))
	for i := range entries {
		responses = append(responses, EntryResponse{
			ID:        entries[i].ID,
			UserID:    entries[i].UserID,
			Action:    entries[i].Action,
			Entity:    entries[i].Entity,
			EntityID:  entries[i].EntityID,
			Detail:    entries[i].Detail,
			IPAddress: entries[i].IPAddress,
			CreatedAt: entries[i].CreatedAt,
		})
	}

	return responses, total, nil
}
