// AngelaMos | 2026
// repository.go

package job

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/kaziconnect/backend/internal/core"
)

type Repository interface {
	Create(ctx context.Context, j *JobPosting) error
	GetByID(ctx context.Context, id string) (*JobWithCompany, error)
	List(ctx context.Context, params ListJobsParams) ([]JobWithCompany, int, error)
	Update(ctx context.Context, id string, req UpdateJobRequest) (*JobPosting, error)
	SetActive(ctx context.Context, id string, active bool) error
	IncrementViews(ctx context.Context, id string) error
	EmployerStats(ctx context.Context, employerID string) (*EmployerJobStats, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const jobColumns = `j.id, j.employer_id, j.title, j.description,
	       j.requirements, j.responsibilities, j.location, j.job_type,
	       j.category, j.salary_min, j.salary_max, j.experience_level,
	       j.education_level, j.application_deadline, j.is_active, j.views,
	       j.applications_count, j.created_at, j.updated_at,
	       e.company_name, e.logo_url AS company_logo_url,
	       e.location AS company_location`

func (r *repository) Create(ctx context.Context, j *JobPosting) error {
	query := `
		INSERT INTO job_postings (
			id, employer_id, title, description, requirements,
			responsibilities, location, job_type, category, salary_min,
			salary_max, experience_level, education_level, application_deadline
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING is_active, views, applications_count, created_at, updated_at`

	err := r.db.GetContext(ctx, j, query,
		j.ID,
		j.EmployerID,
		j.Title,
		j.Description,
		j.Requirements,
		j.Responsibilities,
		j.Location,
		j.JobType,
		j.Category,
		j.SalaryMin,
		j.SalaryMax,
		j.ExperienceLevel,
		j.EducationLevel,
		j.ApplicationDeadline,
	)
	if err != nil {
		return fmt.Errorf("create job: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id string,
) (*JobWithCompany, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM job_postings j
		JOIN employers e ON e.id = j.employer_id
		WHERE j.id = $1`, jobColumns)

	var j JobWithCompany
	err := r.db.GetContext(ctx, &j, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get job: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}

	return &j, nil
}

func (r *repository) List(
	ctx context.Context,
	params ListJobsParams,
) ([]JobWithCompany, int, error) {
	params.Normalize()

	var conditions []string
	var args []any
	argIdx := 1

	conditions = append(conditions, "TRUE")

	if params.ActiveOnly {
		conditions = append(conditions, "j.is_active = TRUE")
	}

	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(j.title ILIKE $%d OR j.description ILIKE $%d OR e.company_name ILIKE $%d)",
			argIdx, argIdx, argIdx))
		args = append(args, "%"+escapeLike(params.Search)+"%")
		argIdx++
	}

	if params.Category != "" {
		conditions = append(conditions, fmt.Sprintf("j.category = $%d", argIdx))
		args = append(args, params.Category)
		argIdx++
	}

	if params.Location != "" {
		conditions = append(conditions, fmt.Sprintf("j.location ILIKE $%d", argIdx))
		args = append(args, "%"+escapeLike(params.Location)+"%")
		argIdx++
	}

	if params.JobType != "" {
		conditions = append(conditions, fmt.Sprintf("j.job_type = $%d", argIdx))
		args = append(args, params.JobType)
		argIdx++
	}

	if params.SalaryMin != nil {
		conditions = append(conditions, fmt.Sprintf("j.salary_max >= $%d", argIdx))
		args = append(args, *params.SalaryMin)
		argIdx++
	}

	if params.SalaryMax != nil {
		conditions = append(conditions, fmt.Sprintf("j.salary_min <= $%d", argIdx))
		args = append(args, *params.SalaryMax)
		argIdx++
	}

	if params.EmployerID != "" {
		conditions = append(conditions, fmt.Sprintf("j.employer_id = $%d", argIdx))
		args = append(args, params.EmployerID)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM job_postings j
		JOIN employers e ON e.id = j.employer_id
		WHERE %s`, whereClause)

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count jobs: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM job_postings j
		JOIN employers e ON e.id = j.employer_id
		WHERE %s
		ORDER BY j.created_at DESC
		LIMIT $%d OFFSET $%d`,
		jobColumns, whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var jobs []JobWithCompany
	if err := r.db.SelectContext(ctx, &jobs, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list jobs: %w", err)
	}

	return jobs, total, nil
}

func (r *repository) Update(
	ctx context.Context,
	id string,
	req UpdateJobRequest,
) (*JobPosting, error) {
	query := `
		UPDATE job_postings
		SET title                = COALESCE($2, title),
		    description          = COALESCE($3, description),
		    requirements         = COALESCE($4, requirements),
		    responsibilities     = COALESCE($5, responsibilities),
		    location             = COALESCE($6, location),
		    job_type             = COALESCE($7, job_type),
		    category             = COALESCE($8, category),
		    salary_min           = COALESCE($9, salary_min),
		    salary_max           = COALESCE($10, salary_max),
		    experience_level     = COALESCE($11, experience_level),
		    education_level      = COALESCE($12, education_level),
		    application_deadline = COALESCE($13, application_deadline),
		    updated_at           = NOW()
		WHERE id = $1
		RETURNING id, employer_id, title, description, requirements,
		          responsibilities, location, job_type, category, salary_min,
		          salary_max, experience_level, education_level,
		          application_deadline, is_active, views, applications_count,
		          created_at, updated_at`

	var j JobPosting
	err := r.db.GetContext(ctx, &j, query,
		id,
		req.Title,
		req.Description,
		req.Requirements,
		req.Responsibilities,
		req.Location,
		req.JobType,
		req.Category,
		req.SalaryMin,
		req.SalaryMax,
		req.ExperienceLevel,
		req.EducationLevel,
		req.ApplicationDeadline,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update job: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update job: %w", err)
	}

	return &j, nil
}

func (r *repository) SetActive(
	ctx context.Context,
	id string,
	active bool,
) error {
	query := `
		UPDATE job_postings
		SET is_active = $2, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, active)
	if err != nil {
		return fmt.Errorf("set job active: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set job active: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("set job active: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) IncrementViews(ctx context.Context, id string) error {
	query := `UPDATE job_postings SET views = views + 1 WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("increment job views: %w", err)
	}

	return nil
}

func (r *repository) EmployerStats(
	ctx context.Context,
	employerID string,
) (*EmployerJobStats, error) {
	query := `
		SELECT COUNT(*)                                       AS total_jobs,
		       COUNT(*) FILTER (WHERE j.is_active)            AS active_jobs,
		       COALESCE(SUM(j.views), 0)                      AS total_views,
		       (SELECT COUNT(*)
		        FROM applications a
		        JOIN job_postings jp ON jp.id = a.job_id
		        WHERE jp.employer_id = $1)                    AS total_applications
		FROM job_postings j
		WHERE j.employer_id = $1`

	var stats EmployerJobStats
	if err := r.db.GetContext(ctx, &stats, query, employerID); err != nil {
		return nil, fmt.Errorf("employer job stats: %w", err)
	}

	return &stats, nil
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
