// AngelaMos | 2026
// stats.go

package admin

import (
	"context"
	"fmt"

	"github.com/kaziconnect/backend/internal/core"
)

type PlatformStats struct {
	TotalUsers        int `json:"total_users"        db:"total_users"`
	JobSeekers        int `json:"job_seekers"        db:"job_seekers"`
	Employers         int `json:"employers"          db:"employers"`
	PendingEmployers  int `json:"pending_employers"  db:"pending_employers"`
	TotalJobs         int `json:"total_jobs"         db:"total_jobs"`
	ActiveJobs        int `json:"active_jobs"        db:"active_jobs"`
	TotalApplications int `json:"total_applications" db:"total_applications"`
	OpenDisputes      int `json:"open_disputes"      db:"open_disputes"`
}

type StatsRepository interface {
	PlatformStats(ctx context.Context) (*PlatformStats, error)
}

type statsRepository struct {
	db core.DBTX
}

func NewStatsRepository(db core.DBTX) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) PlatformStats(
	ctx context.Context,
) (*PlatformStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users)                                    AS total_users,
			(SELECT COUNT(*) FROM users WHERE role = 'job-seeker')          AS job_seekers,
			(SELECT COUNT(*) FROM users WHERE role = 'employer')            AS employers,
			(SELECT COUNT(*) FROM employers WHERE is_approved = FALSE)      AS pending_employers,
			(SELECT COUNT(*) FROM job_postings)                             AS total_jobs,
			(SELECT COUNT(*) FROM job_postings WHERE is_active)             AS active_jobs,
			(SELECT COUNT(*) FROM applications)                             AS total_applications,
			(SELECT COUNT(*) FROM disputes
			 WHERE status IN ('open', 'investigating'))                     AS open_disputes`

	var stats PlatformStats
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("platform stats: %w", err)
	}

	return &stats, nil
}
