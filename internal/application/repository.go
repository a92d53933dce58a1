// AngelaMos | 2026
// repository.go

package application

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/kaziconnect/backend/internal/core"
)

// LockedJob is the snapshot taken under FOR UPDATE while applying.
type LockedJob struct {
	ID                  string     `db:"id"`
	EmployerID          string     `db:"employer_id"`
	Title               string     `db:"title"`
	IsActive            bool       `db:"is_active"`
	ApplicationDeadline *time.Time `db:"application_deadline"`
}

type Repository interface {
	LockJob(ctx context.Context, jobID string) (*LockedJob, error)
	Insert(ctx context.Context, a *Application) error
	ExistsBySeekerAndJob(
		ctx context.Context,
		seekerID, jobID string,
	) (bool, error)
	GetByID(ctx context.Context, id string) (*ApplicationWithContext, error)
	ListBySeeker(
		ctx context.Context,
		seekerID string,
		params ListParams,
	) ([]ApplicationWithContext, int, error)
	ListByJob(
		ctx context.Context,
		jobID string,
		params ListParams,
	) ([]ApplicationWithContext, int, error)
	IncrementJobApplications(ctx context.Context, jobID string) error
	UpdateStatus(
		ctx context.Context,
		id, status string,
		notes *string,
		reviewedBy string,
		stampReviewed bool,
	) error
	Delete(ctx context.Context, id string) error
	SeekerStats(ctx context.Context, seekerID string) (*StatusCounts, error)
	JobStats(ctx context.Context, jobID string) (*StatusCounts, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) LockJob(
	ctx context.Context,
	jobID string,
) (*LockedJob, error) {
	query := `
		SELECT id, employer_id, title, is_active, application_deadline
		FROM job_postings
		WHERE id = $1
		FOR UPDATE`

	var j LockedJob
	err := r.db.GetContext(ctx, &j, query, jobID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("lock job: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("lock job: %w", err)
	}

	return &j, nil
}

func (r *repository) Insert(ctx context.Context, a *Application) error {
	query := `
		INSERT INTO applications (id, job_id, seeker_id, cover_letter, resume_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING status, applied_at, updated_at`

	err := r.db.GetContext(ctx, a, query,
		a.ID,
		a.JobID,
		a.SeekerID,
		a.CoverLetter,
		a.ResumeURL,
	)
	if err != nil {
		if core.IsDuplicateKeyError(err) {
			return fmt.Errorf("insert application: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("insert application: %w", err)
	}

	return nil
}

func (r *repository) IncrementJobApplications(
	ctx context.Context,
	jobID string,
) error {
	query := `
		UPDATE job_postings
		SET applications_count = applications_count + 1
		WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, jobID); err != nil {
		return fmt.Errorf("increment job applications: %w", err)
	}

	return nil
}

func (r *repository) ExistsBySeekerAndJob(
	ctx context.Context,
	seekerID, jobID string,
) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM applications WHERE seeker_id = $1 AND job_id = $2
		)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, seekerID, jobID)
	if err != nil {
		return false, fmt.Errorf("check application exists: %w", err)
	}

	return exists, nil
}

const applicationColumns = `a.id, a.job_id, a.seeker_id, a.cover_letter,
	       a.resume_url, a.status, a.notes, a.applied_at, a.reviewed_at,
	       a.reviewed_by, a.updated_at,
	       j.title AS job_title, j.is_active AS job_is_active,
	       j.employer_id, e.company_name,
	       s.user_id AS seeker_user_id, u.first_name AS seeker_first_name,
	       u.last_name AS seeker_last_name,
	       s.resume_url AS seeker_resume_url`

const applicationJoins = `
		FROM applications a
		JOIN job_postings j ON j.id = a.job_id
		JOIN employers e ON e.id = j.employer_id
		JOIN job_seekers s ON s.id = a.seeker_id
		JOIN users u ON u.id = s.user_id`

func (r *repository) GetByID(
	ctx context.Context,
	id string,
) (*ApplicationWithContext, error) {
	query := fmt.Sprintf(`
		SELECT %s %s
		WHERE a.id = $1`, applicationColumns, applicationJoins)

	var a ApplicationWithContext
	err := r.db.GetContext(ctx, &a, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get application: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get application: %w", err)
	}

	return &a, nil
}

func (r *repository) ListBySeeker(
	ctx context.Context,
	seekerID string,
	params ListParams,
) ([]ApplicationWithContext, int, error) {
	return r.list(ctx, "a.seeker_id", seekerID, params)
}

func (r *repository) ListByJob(
	ctx context.Context,
	jobID string,
	params ListParams,
) ([]ApplicationWithContext, int, error) {
	return r.list(ctx, "a.job_id", jobID, params)
}

func (r *repository) list(
	ctx context.Context,
	column, value string,
	params ListParams,
) ([]ApplicationWithContext, int, error) {
	params.Normalize()

	whereClause := column + " = $1"
	args := []any{value}
	argIdx := 2

	if params.Status != "" {
		whereClause += fmt.Sprintf(" AND a.status = $%d", argIdx)
		args = append(args, params.Status)
		argIdx++
	}

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM applications a WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count applications: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s %s
		WHERE %s
		ORDER BY a.applied_at DESC
		LIMIT $%d OFFSET $%d`,
		applicationColumns, applicationJoins, whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var apps []ApplicationWithContext
	if err := r.db.SelectContext(ctx, &apps, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list applications: %w", err)
	}

	return apps, total, nil
}

func (r *repository) UpdateStatus(
	ctx context.Context,
	id, status string,
	notes *string,
	reviewedBy string,
	stampReviewed bool,
) error {
	query := `
		UPDATE applications
		SET status      = $2,
		    notes       = COALESCE($3, notes),
		    reviewed_by = CASE WHEN $5 AND reviewed_at IS NULL
		                       THEN $4 ELSE reviewed_by END,
		    reviewed_at = CASE WHEN $5 AND reviewed_at IS NULL
		                       THEN NOW() ELSE reviewed_at END,
		    updated_at  = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(
		ctx,
		query,
		id,
		status,
		notes,
		reviewedBy,
		stampReviewed,
	)
	if err != nil {
		return fmt.Errorf("update application status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update application status: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("update application status: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	query := `
		WITH removed AS (
			DELETE FROM applications
			WHERE id = $1
			RETURNING job_id
		)
		UPDATE job_postings j
		SET applications_count = GREATEST(applications_count - 1, 0)
		FROM removed
		WHERE j.id = removed.job_id`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete application: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete application: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete application: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) SeekerStats(
	ctx context.Context,
	seekerID string,
) (*StatusCounts, error) {
	return r.stats(ctx, "seeker_id", seekerID)
}

func (r *repository) JobStats(
	ctx context.Context,
	jobID string,
) (*StatusCounts, error) {
	return r.stats(ctx, "job_id", jobID)
}

func (r *repository) stats(
	ctx context.Context,
	column, value string,
) (*StatusCounts, error) {
	query := fmt.Sprintf(`
		SELECT COUNT(*)                                      AS total,
		       COUNT(*) FILTER (WHERE status = 'pending')     AS pending,
		       COUNT(*) FILTER (WHERE status = 'reviewed')    AS reviewed,
		       COUNT(*) FILTER (WHERE status = 'shortlisted') AS shortlisted,
		       COUNT(*) FILTER (WHERE status = 'interview')   AS interview,
		       COUNT(*) FILTER (WHERE status = 'rejected')    AS rejected,
		       COUNT(*) FILTER (WHERE status = 'accepted')    AS accepted
		FROM applications
		WHERE %s = $1`, column)

	var counts StatusCounts
	if err := r.db.GetContext(ctx, &counts, query, value); err != nil {
		return nil, fmt.Errorf("application stats: %w", err)
	}

	return &counts, nil
}
