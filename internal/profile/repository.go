// AngelaMos | 2026
// repository.go

package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kaziconnect/backend/internal/core"
)

type SeekerRepository interface {
	Create(ctx context.Context, p *JobSeekerProfile) error
	GetByID(ctx context.Context, id string) (*JobSeekerProfile, error)
	GetByUserID(ctx context.Context, userID string) (*JobSeekerProfile, error)
	Update(
		ctx context.Context,
		userID string,
		req UpdateSeekerProfileRequest,
	) (*JobSeekerProfile, error)
}

type EmployerRepository interface {
	Create(ctx context.Context, p *EmployerProfile) error
	GetByID(ctx context.Context, id string) (*EmployerProfile, error)
	GetByUserID(ctx context.Context, userID string) (*EmployerProfile, error)
	Update(
		ctx context.Context,
		userID string,
		req UpdateEmployerProfileRequest,
	) (*EmployerProfile, error)
	SetApproval(
		ctx context.Context,
		id string,
		approved bool,
		approvedBy *string,
	) error
	ListPending(
		ctx context.Context,
		page, pageSize int,
	) ([]EmployerProfile, int, error)
}

type seekerRepository struct {
	db core.DBTX
}

func NewSeekerRepository(db core.DBTX) SeekerRepository {
	return &seekerRepository{db: db}
}

const seekerColumns = `id, user_id, headline, summary, skills, experience,
	       education, resume_url, location, desired_salary, availability,
	       created_at, updated_at`

func (r *seekerRepository) Create(
	ctx context.Context,
	p *JobSeekerProfile,
) error {
	query := `
		INSERT INTO job_seekers (id, user_id)
		VALUES ($1, $2)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, p, query, p.ID, p.UserID)
	if err != nil {
		if core.IsDuplicateKeyError(err) {
			return fmt.Errorf("create seeker profile: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create seeker profile: %w", err)
	}

	return nil
}

func (r *seekerRepository) GetByID(
	ctx context.Context,
	id string,
) (*JobSeekerProfile, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM job_seekers
		WHERE id = $1`, seekerColumns)

	var p JobSeekerProfile
	err := r.db.GetContext(ctx, &p, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get seeker profile: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get seeker profile: %w", err)
	}

	return &p, nil
}

func (r *seekerRepository) GetByUserID(
	ctx context.Context,
	userID string,
) (*JobSeekerProfile, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM job_seekers
		WHERE user_id = $1`, seekerColumns)

	var p JobSeekerProfile
	err := r.db.GetContext(ctx, &p, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get seeker profile: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get seeker profile: %w", err)
	}

	return &p, nil
}

func (r *seekerRepository) Update(
	ctx context.Context,
	userID string,
	req UpdateSeekerProfileRequest,
) (*JobSeekerProfile, error) {
	query := fmt.Sprintf(`
		UPDATE job_seekers
		SET headline       = COALESCE($2, headline),
		    summary        = COALESCE($3, summary),
		    skills         = COALESCE($4, skills),
		    experience     = COALESCE($5, experience),
		    education      = COALESCE($6, education),
		    resume_url     = COALESCE($7, resume_url),
		    location       = COALESCE($8, location),
		    desired_salary = COALESCE($9, desired_salary),
		    availability   = COALESCE($10, availability),
		    updated_at     = NOW()
		WHERE user_id = $1
		RETURNING %s`, seekerColumns)

	var p JobSeekerProfile
	err := r.db.GetContext(ctx, &p, query,
		userID,
		req.Headline,
		req.Summary,
		req.Skills,
		req.Experience,
		req.Education,
		req.ResumeURL,
		req.Location,
		req.DesiredSalary,
		req.Availability,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update seeker profile: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update seeker profile: %w", err)
	}

	return &p, nil
}

type employerRepository struct {
	db core.DBTX
}

func NewEmployerRepository(db core.DBTX) EmployerRepository {
	return &employerRepository{db: db}
}

const employerColumns = `id, user_id, company_name, company_description,
	       industry, company_size, website, location, logo_url, is_approved,
	       approved_by, approved_at, created_at, updated_at`

func (r *employerRepository) Create(
	ctx context.Context,
	p *EmployerProfile,
) error {
	query := `
		INSERT INTO employers (id, user_id, company_name)
		VALUES ($1, $2, $3)
		RETURNING is_approved, created_at, updated_at`

	err := r.db.GetContext(ctx, p, query, p.ID, p.UserID, p.CompanyName)
	if err != nil {
		if core.IsDuplicateKeyError(err) {
			return fmt.Errorf(
				"create employer profile: %w",
				core.ErrDuplicateKey,
			)
		}
		return fmt.Errorf("create employer profile: %w", err)
	}

	return nil
}

func (r *employerRepository) GetByID(
	ctx context.Context,
	id string,
) (*EmployerProfile, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM employers
		WHERE id = $1`, employerColumns)

	var p EmployerProfile
	err := r.db.GetContext(ctx, &p, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get employer profile: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get employer profile: %w", err)
	}

	return &p, nil
}

func (r *employerRepository) GetByUserID(
	ctx context.Context,
	userID string,
) (*EmployerProfile, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM employers
		WHERE user_id = $1`, employerColumns)

	var p EmployerProfile
	err := r.db.GetContext(ctx, &p, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get employer profile: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get employer profile: %w", err)
	}

	return &p, nil
}

func (r *employerRepository) Update(
	ctx context.Context,
	userID string,
	req UpdateEmployerProfileRequest,
) (*EmployerProfile, error) {
	query := fmt.Sprintf(`
		UPDATE employers
		SET company_name        = COALESCE($2, company_name),
		    company_description = COALESCE($3, company_description),
		    industry            = COALESCE($4, industry),
		    company_size        = COALESCE($5, company_size),
		    website             = COALESCE($6, website),
		    location            = COALESCE($7, location),
		    logo_url            = COALESCE($8, logo_url),
		    updated_at          = NOW()
		WHERE user_id = $1
		RETURNING %s`, employerColumns)

	var p EmployerProfile
	err := r.db.GetContext(ctx, &p, query,
		userID,
		req.CompanyName,
		req.CompanyDescription,
		req.Industry,
		req.CompanySize,
		req.Website,
		req.Location,
		req.LogoURL,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update employer profile: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update employer profile: %w", err)
	}

	return &p, nil
}

func (r *employerRepository) SetApproval(
	ctx context.Context,
	id string,
	approved bool,
	approvedBy *string,
) error {
	query := `
		UPDATE employers
		SET is_approved = $2,
		    approved_by = CASE WHEN $2 THEN $3 ELSE NULL END,
		    approved_at = CASE WHEN $2 THEN NOW() ELSE NULL END,
		    updated_at  = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, approved, approvedBy)
	if err != nil {
		return fmt.Errorf("set employer approval: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set employer approval: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("set employer approval: %w", core.ErrNotFound)
	}

	return nil
}

func (r *employerRepository) ListPending(
	ctx context.Context,
	page, pageSize int,
) ([]EmployerProfile, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM employers WHERE is_approved = FALSE`
	if err := r.db.GetContext(ctx, &total, countQuery); err != nil {
		return nil, 0, fmt.Errorf("count pending employers: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM employers
		WHERE is_approved = FALSE
		ORDER BY created_at ASC
		LIMIT $1 OFFSET $2`, employerColumns)

	var profiles []EmployerProfile
	offset := (page - 1) * pageSize
	err := r.db.SelectContext(ctx, &profiles, query, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list pending employers: %w", err)
	}

	return profiles, total, nil
}
