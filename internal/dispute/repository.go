// AngelaMos | 2026
// repository.go

package dispute

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/kaziconnect/backend/internal/core"
)

type Repository interface {
	Create(ctx context.Context, d *Dispute) error
	GetByID(ctx context.Context, id string) (*Dispute, error)
	ListByFiler(
		ctx context.Context,
		filedBy string,
		params ListParams,
	) ([]Dispute, int, error)
	List(ctx context.Context, params ListParams) ([]Dispute, int, error)
	Resolve(ctx context.Context, id, resolution, resolvedBy string) error
	SetStatus(ctx context.Context, id, status string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const disputeColumns = `id, filed_by, against_user, job_id, subject,
	       description, status, priority, resolution, resolved_by,
	       resolved_at, created_at, updated_at`

func (r *repository) Create(ctx context.Context, d *Dispute) error {
	query := `
		INSERT INTO disputes (id, filed_by, against_user, job_id, subject, description, priority)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING status, created_at, updated_at`

	err := r.db.GetContext(ctx, d, query,
		d.ID,
		d.FiledBy,
		d.AgainstUser,
		d.JobID,
		d.Subject,
		d.Description,
		d.Priority,
	)
	if err != nil {
		return fmt.Errorf("create dispute: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id string,
) (*Dispute, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM disputes
		WHERE id = $1`, disputeColumns)

	var d Dispute
	err := r.db.GetContext(ctx, &d, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get dispute: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get dispute: %w", err)
	}

	return &d, nil
}

func (r *repository) ListByFiler(
	ctx context.Context,
	filedBy string,
	params ListParams,
) ([]Dispute, int, error) {
	params.Normalize()

	conditions := []string{"filed_by = $1"}
	args := []any{filedBy}
	argIdx := 2

	if params.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, params.Status)
		argIdx++
	}

	return r.listWhere(ctx, conditions, args, argIdx, params)
}

func (r *repository) List(
	ctx context.Context,
	params ListParams,
) ([]Dispute, int, error) {
	params.Normalize()

	conditions := []string{"TRUE"}
	var args []any
	argIdx := 1

	if params.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, params.Status)
		argIdx++
	}

	if params.Priority != "" {
		conditions = append(conditions, fmt.Sprintf("priority = $%d", argIdx))
		args = append(args, params.Priority)
		argIdx++
	}

	return r.listWhere(ctx, conditions, args, argIdx, params)
}

func (r *repository) listWhere(
	ctx context.Context,
	conditions []string,
	args []any,
	argIdx int,
	params ListParams,
) ([]Dispute, int, error) {
	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM disputes WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count disputes: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM disputes
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		disputeColumns, whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var disputes []Dispute
	if err := r.db.SelectContext(ctx, &disputes, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list disputes: %w", err)
	}

	return disputes, total, nil
}

func (r *repository) Resolve(
	ctx context.Context,
	id, resolution, resolvedBy string,
) error {
	query := `
		UPDATE disputes
		SET status      = 'resolved',
		    resolution  = $2,
		    resolved_by = $3,
		    resolved_at = NOW(),
		    updated_at  = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, resolution, resolvedBy)
	if err != nil {
		return fmt.Errorf("resolve dispute: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("resolve dispute: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("resolve dispute: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) SetStatus(
	ctx context.Context,
	id, status string,
) error {
	query := `
		UPDATE disputes
		SET status = $2, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("set dispute status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set dispute status: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("set dispute status: %w", core.ErrNotFound)
	}

	return nil
}
