// AngelaMos | 2026
// savedjob.go

package savedjob

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kaziconnect/backend/internal/core"
	"github.com/kaziconnect/backend/internal/profile"
)

type SavedJob struct {
	ID        string    `db:"id"`
	SeekerID  string    `db:"seeker_id"`
	JobID     string    `db:"job_id"`
	CreatedAt time.Time `db:"created_at"`
}

type SavedJobWithPosting struct {
	SavedJob
	JobTitle    string  `db:"job_title"`
	JobIsActive bool    `db:"job_is_active"`
	JobLocation *string `db:"job_location"`
	CompanyName string  `db:"company_name"`
}

type SavedJobResponse struct {
	ID          string    `json:"id"`
	JobID       string    `json:"job_id"`
	JobTitle    string    `json:"job_title"`
	JobIsActive bool      `json:"job_is_active"`
	JobLocation *string   `json:"job_location,omitempty"`
	CompanyName string    `json:"company_name"`
	SavedAt     time.Time `json:"saved_at"`
}

type Repository interface {
	Save(ctx context.Context, s *SavedJob) error
	Delete(ctx context.Context, seekerID, jobID string) error
	ListBySeeker(
		ctx context.Context,
		seekerID string,
		page, pageSize int,
	) ([]SavedJobWithPosting, int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Save(ctx context.Context, s *SavedJob) error {
	query := `
		INSERT INTO saved_jobs (id, seeker_id, job_id)
		VALUES ($1, $2, $3)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &s.CreatedAt, query, s.ID, s.SeekerID, s.JobID)
	if err != nil {
		if core.IsDuplicateKeyError(err) {
			return fmt.Errorf("save job: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("save job: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, seekerID, jobID string) error {
	query := `DELETE FROM saved_jobs WHERE seeker_id = $1 AND job_id = $2`

	result, err := r.db.ExecContext(ctx, query, seekerID, jobID)
	if err != nil {
		return fmt.Errorf("unsave job: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unsave job: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("unsave job: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) ListBySeeker(
	ctx context.Context,
	seekerID string,
	page, pageSize int,
) ([]SavedJobWithPosting, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM saved_jobs WHERE seeker_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, seekerID); err != nil {
		return nil, 0, fmt.Errorf("count saved jobs: %w", err)
	}

	query := `
		SELECT sj.id, sj.seeker_id, sj.job_id, sj.created_at,
		       j.title AS job_title, j.is_active AS job_is_active,
		       j.location AS job_location, e.company_name
		FROM saved_jobs sj
		JOIN job_postings j ON j.id = sj.job_id
		JOIN employers e ON e.id = j.employer_id
		WHERE sj.seeker_id = $1
		ORDER BY sj.created_at DESC
		LIMIT $2 OFFSET $3`

	var saved []SavedJobWithPosting
	offset := (page - 1) * pageSize
	err := r.db.SelectContext(ctx, &saved, query, seekerID, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list saved jobs: %w", err)
	}

	return saved, total, nil
}

type Service struct {
	repo    Repository
	seekers profile.SeekerRepository
}

func NewService(repo Repository, seekers profile.SeekerRepository) *Service {
	return &Service{repo: repo, seekers: seekers}
}

// Save bookmarks a job for later. Saving twice is a conflict; the unique
// constraint on (seeker_id, job_id) enforces it.
func (s *Service) Save(ctx context.Context, userID, jobID string) error {
	seeker, err := s.seekers.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}

	saved := &SavedJob{
		ID:       uuid.New().String(),
		SeekerID: seeker.ID,
		JobID:    jobID,
	}

	return s.repo.Save(ctx, saved)
}

func (s *Service) Unsave(ctx context.Context, userID, jobID string) error {
	seeker, err := s.seekers.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}

	return s.repo.Delete(ctx, seeker.ID, jobID)
}

func (s *Service) ListMine(
	ctx context.Context,
	userID string,
	page, pageSize int,
) ([]SavedJobResponse, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	seeker, err := s.seekers.GetByUserID(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	saved, total, err := s.repo.ListBySeeker(ctx, seeker.ID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]SavedJobResponse, 0, len(saved))
	for i := range saved {
		responses = append(responses, SavedJobResponse{
			ID:          saved[i].ID,
			JobID:       saved[i].JobID,
			JobTitle:    saved[i].JobTitle,
			JobIsActive: saved[i].JobIsActive,
			JobLocation: saved[i].JobLocation,
			CompanyName: saved[i].CompanyName,
			SavedAt:     saved[i].CreatedAt,
		})
	}

	return responses, total, nil
}
