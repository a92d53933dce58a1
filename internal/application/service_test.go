// AngelaMos | 2026
// service_test.go

package application

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaziconnect/backend/internal/core"
	"github.com/kaziconnect/backend/internal/job"
	"github.com/kaziconnect/backend/internal/profile"
)

type mockRepo struct {
	getByID      func(ctx context.Context, id string) (*ApplicationWithContext, error)
	updateStatus func(ctx context.Context, id, status string, notes *string, reviewedBy string, stampReviewed bool) error
	delete       func(ctx context.Context, id string) error
}

func (m *mockRepo) LockJob(context.Context, string) (*LockedJob, error) {
	panic("not expected")
}

func (m *mockRepo) Insert(context.Context, *Application) error {
	panic("not expected")
}

func (m *mockRepo) ExistsBySeekerAndJob(
	context.Context,
	string,
	string,
) (bool, error) {
	panic("not expected")
}

func (m *mockRepo) IncrementJobApplications(context.Context, string) error {
	panic("not expected")
}

func (m *mockRepo) GetByID(
	ctx context.Context,
	id string,
) (*ApplicationWithContext, error) {
	return m.getByID(ctx, id)
}

func (m *mockRepo) ListBySeeker(
	context.Context,
	string,
	ListParams,
) ([]ApplicationWithContext, int, error) {
	return nil, 0, nil
}

func (m *mockRepo) ListByJob(
	context.Context,
	string,
	ListParams,
) ([]ApplicationWithContext, int, error) {
	return nil, 0, nil
}

func (m *mockRepo) UpdateStatus(
	ctx context.Context,
	id, status string,
	notes *string,
	reviewedBy string,
	stampReviewed bool,
) error {
	return m.updateStatus(ctx, id, status, notes, reviewedBy, stampReviewed)
}

func (m *mockRepo) Delete(ctx context.Context, id string) error {
	return m.delete(ctx, id)
}

func (m *mockRepo) SeekerStats(
	context.Context,
	string,
) (*StatusCounts, error) {
	return &StatusCounts{}, nil
}

func (m *mockRepo) JobStats(context.Context, string) (*StatusCounts, error) {
	return &StatusCounts{}, nil
}

type mockJobRepo struct {
	getByID func(ctx context.Context, id string) (*job.JobWithCompany, error)
}

func (m *mockJobRepo) Create(context.Context, *job.JobPosting) error {
	panic("not expected")
}

func (m *mockJobRepo) GetByID(
	ctx context.Context,
	id string,
) (*job.JobWithCompany, error) {
	return m.getByID(ctx, id)
}

func (m *mockJobRepo) List(
	context.Context,
	job.ListJobsParams,
) ([]job.JobWithCompany, int, error) {
	return nil, 0, nil
}

func (m *mockJobRepo) Update(
	context.Context,
	string,
	job.UpdateJobRequest,
) (*job.JobPosting, error) {
	panic("not expected")
}

func (m *mockJobRepo) SetActive(context.Context, string, bool) error {
	panic("not expected")
}

func (m *mockJobRepo) IncrementViews(context.Context, string) error {
	return nil
}

func (m *mockJobRepo) EmployerStats(
	context.Context,
	string,
) (*job.EmployerJobStats, error) {
	return &job.EmployerJobStats{}, nil
}

type mockSeekerRepo struct {
	getByUserID func(ctx context.Context, userID string) (*profile.JobSeekerProfile, error)
}

func (m *mockSeekerRepo) Create(context.Context, *profile.JobSeekerProfile) error {
	panic("not expected")
}

func (m *mockSeekerRepo) GetByID(
	context.Context,
	string,
) (*profile.JobSeekerProfile, error) {
	panic("not expected")
}

func (m *mockSeekerRepo) GetByUserID(
	ctx context.Context,
	userID string,
) (*profile.JobSeekerProfile, error) {
	return m.getByUserID(ctx, userID)
}

func (m *mockSeekerRepo) Update(
	context.Context,
	string,
	profile.UpdateSeekerProfileRequest,
) (*profile.JobSeekerProfile, error) {
	panic("not expected")
}

type mockEmployerRepo struct {
	getByID     func(ctx context.Context, id string) (*profile.EmployerProfile, error)
	getByUserID func(ctx context.Context, userID string) (*profile.EmployerProfile, error)
}

func (m *mockEmployerRepo) Create(context.Context, *profile.EmployerProfile) error {
	panic("not expected")
}

func (m *mockEmployerRepo) GetByID(
	ctx context.Context,
	id string,
) (*profile.EmployerProfile, error) {
	return m.getByID(ctx, id)
}

func (m *mockEmployerRepo) GetByUserID(
	ctx context.Context,
	userID string,
) (*profile.EmployerProfile, error) {
	return m.getByUserID(ctx, userID)
}

func (m *mockEmployerRepo) Update(
	context.Context,
	string,
	profile.UpdateEmployerProfileRequest,
) (*profile.EmployerProfile, error) {
	panic("not expected")
}

func (m *mockEmployerRepo) SetApproval(
	context.Context,
	string,
	bool,
	*string,
) error {
	panic("not expected")
}

func (m *mockEmployerRepo) ListPending(
	context.Context,
	int,
	int,
) ([]profile.EmployerProfile, int, error) {
	return nil, 0, nil
}

type notifyCall struct {
	userID string
	title  string
	kind   string
}

type mockNotifier struct {
	calls []notifyCall
}

func (m *mockNotifier) Notify(
	_ context.Context,
	userID, title, _, kind string,
) {
	m.calls = append(m.calls, notifyCall{userID: userID, title: title, kind: kind})
}

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(
		sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return sqlx.NewDb(db, "sqlmock"), mock
}

func seekerFixture() *profile.JobSeekerProfile {
	return &profile.JobSeekerProfile{
		ID:     "seeker-1",
		UserID: "user-1",
	}
}

func lockRows(active bool, deadline *time.Time) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "employer_id", "title", "is_active", "application_deadline",
	})
	return rows.AddRow("job-1", "employer-1", "Go Developer", active, deadline)
}

func TestApplyRejectsInactiveJob(t *testing.T) {
	db, mock := newMockDB(t)

	svc := NewService(
		db,
		&mockRepo{},
		&mockJobRepo{},
		&mockSeekerRepo{
			getByUserID: func(context.Context, string) (*profile.JobSeekerProfile, error) {
				return seekerFixture(), nil
			},
		},
		&mockEmployerRepo{},
		&mockNotifier{},
	)

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WithArgs("job-1").
		WillReturnRows(lockRows(false, nil))
	mock.ExpectRollback()

	_, err := svc.Apply(context.Background(), "user-1", ApplyRequest{
		JobID: "job-1",
	})
	assert.ErrorIs(t, err, ErrJobClosed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyRejectsPastDeadline(t *testing.T) {
	db, mock := newMockDB(t)

	svc := NewService(
		db,
		&mockRepo{},
		&mockJobRepo{},
		&mockSeekerRepo{
			getByUserID: func(context.Context, string) (*profile.JobSeekerProfile, error) {
				return seekerFixture(), nil
			},
		},
		&mockEmployerRepo{},
		&mockNotifier{},
	)

	yesterday := time.Now().Add(-24 * time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WithArgs("job-1").
		WillReturnRows(lockRows(true, &yesterday))
	mock.ExpectRollback()

	_, err := svc.Apply(context.Background(), "user-1", ApplyRequest{
		JobID: "job-1",
	})
	assert.ErrorIs(t, err, ErrJobClosed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyRejectsDuplicate(t *testing.T) {
	db, mock := newMockDB(t)

	svc := NewService(
		db,
		&mockRepo{},
		&mockJobRepo{},
		&mockSeekerRepo{
			getByUserID: func(context.Context, string) (*profile.JobSeekerProfile, error) {
				return seekerFixture(), nil
			},
		},
		&mockEmployerRepo{},
		&mockNotifier{},
	)

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WithArgs("job-1").
		WillReturnRows(lockRows(true, nil))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("seeker-1", "job-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	_, err := svc.Apply(context.Background(), "user-1", ApplyRequest{
		JobID: "job-1",
	})
	assert.ErrorIs(t, err, ErrAlreadyApplied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyInsertsAndNotifiesEmployer(t *testing.T) {
	db, mock := newMockDB(t)
	notifier := &mockNotifier{}

	repo := &mockRepo{
		getByID: func(_ context.Context, id string) (*ApplicationWithContext, error) {
			return &ApplicationWithContext{
				Application: Application{
					ID:       id,
					JobID:    "job-1",
					SeekerID: "seeker-1",
					Status:   StatusPending,
				},
				JobTitle:     "Go Developer",
				CompanyName:  "Acme",
				EmployerID:   "employer-1",
				SeekerUserID: "user-1",
			}, nil
		},
	}

	svc := NewService(
		db,
		repo,
		&mockJobRepo{},
		&mockSeekerRepo{
			getByUserID: func(context.Context, string) (*profile.JobSeekerProfile, error) {
				return seekerFixture(), nil
			},
		},
		&mockEmployerRepo{
			getByID: func(context.Context, string) (*profile.EmployerProfile, error) {
				return &profile.EmployerProfile{
					ID:     "employer-1",
					UserID: "employer-user-1",
				}, nil
			},
		},
		notifier,
	)

	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WithArgs("job-1").
		WillReturnRows(lockRows(true, nil))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("seeker-1", "job-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery("INSERT INTO applications").
		WillReturnRows(sqlmock.NewRows(
			[]string{"status", "applied_at", "updated_at"},
		).AddRow(StatusPending, now, now))
	mock.ExpectExec("UPDATE job_postings").
		WithArgs("job-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	resp, err := svc.Apply(context.Background(), "user-1", ApplyRequest{
		JobID: "job-1",
	})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, resp.Status)
	assert.Nil(t, resp.Applicant)

	require.Len(t, notifier.calls, 1)
	assert.Equal(t, "employer-user-1", notifier.calls[0].userID)
	assert.Equal(t, "info", notifier.calls[0].kind)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyWithoutSeekerProfile(t *testing.T) {
	db, mock := newMockDB(t)

	svc := NewService(
		db,
		&mockRepo{},
		&mockJobRepo{},
		&mockSeekerRepo{
			getByUserID: func(context.Context, string) (*profile.JobSeekerProfile, error) {
				return nil, core.ErrNotFound
			},
		},
		&mockEmployerRepo{},
		&mockNotifier{},
	)

	_, err := svc.Apply(context.Background(), "user-1", ApplyRequest{
		JobID: "job-1",
	})
	assert.ErrorIs(t, err, ErrNoSeekerProfile)
	assert.NotErrorIs(t, err, core.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func appFixture(status string) *ApplicationWithContext {
	notes := "internal notes"
	return &ApplicationWithContext{
		Application: Application{
			ID:       "app-1",
			JobID:    "job-1",
			SeekerID: "seeker-1",
			Status:   status,
			Notes:    &notes,
		},
		JobTitle:        "Go Developer",
		CompanyName:     "Acme",
		EmployerID:      "employer-1",
		SeekerUserID:    "user-1",
		SeekerFirstName: "Amina",
		SeekerLastName:  "Odhiambo",
	}
}

func TestWithdrawRequiresOwnership(t *testing.T) {
	svc := NewService(
		nil,
		&mockRepo{
			getByID: func(context.Context, string) (*ApplicationWithContext, error) {
				return appFixture(StatusPending), nil
			},
		},
		&mockJobRepo{},
		&mockSeekerRepo{},
		&mockEmployerRepo{},
		&mockNotifier{},
	)

	err := svc.Withdraw(context.Background(), "someone-else", "app-1")
	assert.ErrorIs(t, err, core.ErrForbidden)
}

func TestWithdrawDeletesOwnApplication(t *testing.T) {
	deleted := false

	svc := NewService(
		nil,
		&mockRepo{
			getByID: func(context.Context, string) (*ApplicationWithContext, error) {
				return appFixture(StatusPending), nil
			},
			delete: func(_ context.Context, id string) error {
				deleted = true
				assert.Equal(t, "app-1", id)
				return nil
			},
		},
		&mockJobRepo{},
		&mockSeekerRepo{},
		&mockEmployerRepo{},
		&mockNotifier{},
	)

	require.NoError(t, svc.Withdraw(context.Background(), "user-1", "app-1"))
	assert.True(t, deleted)
}

func TestGetHidesNotesFromSeeker(t *testing.T) {
	svc := NewService(
		nil,
		&mockRepo{
			getByID: func(context.Context, string) (*ApplicationWithContext, error) {
				return appFixture(StatusReviewed), nil
			},
		},
		&mockJobRepo{},
		&mockSeekerRepo{},
		&mockEmployerRepo{},
		&mockNotifier{},
	)

	resp, err := svc.Get(context.Background(), "user-1", "job-seeker", "app-1")
	require.NoError(t, err)
	assert.Nil(t, resp.Notes)
	assert.Nil(t, resp.Applicant)
}

func TestGetShowsApplicantToOwningEmployer(t *testing.T) {
	svc := NewService(
		nil,
		&mockRepo{
			getByID: func(context.Context, string) (*ApplicationWithContext, error) {
				return appFixture(StatusReviewed), nil
			},
		},
		&mockJobRepo{},
		&mockSeekerRepo{},
		&mockEmployerRepo{
			getByUserID: func(context.Context, string) (*profile.EmployerProfile, error) {
				return &profile.EmployerProfile{
					ID:     "employer-1",
					UserID: "employer-user-1",
				}, nil
			},
		},
		&mockNotifier{},
	)

	resp, err := svc.Get(
		context.Background(),
		"employer-user-1",
		"employer",
		"app-1",
	)
	require.NoError(t, err)
	require.NotNil(t, resp.Applicant)
	assert.Equal(t, "Amina", resp.Applicant.FirstName)
	assert.NotNil(t, resp.Notes)
}

func TestGetDeniesUnrelatedEmployer(t *testing.T) {
	svc := NewService(
		nil,
		&mockRepo{
			getByID: func(context.Context, string) (*ApplicationWithContext, error) {
				return appFixture(StatusReviewed), nil
			},
		},
		&mockJobRepo{},
		&mockSeekerRepo{},
		&mockEmployerRepo{
			getByUserID: func(context.Context, string) (*profile.EmployerProfile, error) {
				return &profile.EmployerProfile{
					ID:     "employer-2",
					UserID: "other-employer",
				}, nil
			},
		},
		&mockNotifier{},
	)

	_, err := svc.Get(
		context.Background(),
		"other-employer",
		"employer",
		"app-1",
	)
	assert.ErrorIs(t, err, core.ErrForbidden)
}

func TestUpdateStatusNotifiesSeeker(t *testing.T) {
	tests := []struct {
		status   string
		wantKind string
	}{
		{status: StatusAccepted, wantKind: "success"},
		{status: StatusRejected, wantKind: "error"},
		{status: StatusShortlisted, wantKind: "info"},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			notifier := &mockNotifier{}

			svc := NewService(
				nil,
				&mockRepo{
					getByID: func(context.Context, string) (*ApplicationWithContext, error) {
						return appFixture(StatusPending), nil
					},
					updateStatus: func(
						_ context.Context,
						_, status string,
						_ *string,
						reviewedBy string,
						stampReviewed bool,
					) error {
						assert.Equal(t, tt.status, status)
						assert.Equal(t, "employer-user-1", reviewedBy)
						assert.True(t, stampReviewed)
						return nil
					},
				},
				&mockJobRepo{},
				&mockSeekerRepo{},
				&mockEmployerRepo{
					getByUserID: func(context.Context, string) (*profile.EmployerProfile, error) {
						return &profile.EmployerProfile{ID: "employer-1"}, nil
					},
				},
				notifier,
			)

			_, err := svc.UpdateStatus(
				context.Background(),
				"employer-user-1",
				"app-1",
				UpdateStatusRequest{Status: tt.status},
			)
			require.NoError(t, err)

			require.Len(t, notifier.calls, 1)
			assert.Equal(t, "user-1", notifier.calls[0].userID)
			assert.Equal(t, tt.wantKind, notifier.calls[0].kind)
		})
	}
}

func TestUpdateStatusRejectsNonOwner(t *testing.T) {
	svc := NewService(
		nil,
		&mockRepo{
			getByID: func(context.Context, string) (*ApplicationWithContext, error) {
				return appFixture(StatusPending), nil
			},
		},
		&mockJobRepo{},
		&mockSeekerRepo{},
		&mockEmployerRepo{
			getByUserID: func(context.Context, string) (*profile.EmployerProfile, error) {
				return &profile.EmployerProfile{ID: "employer-2"}, nil
			},
		},
		&mockNotifier{},
	)

	_, err := svc.UpdateStatus(
		context.Background(),
		"other-employer",
		"app-1",
		UpdateStatusRequest{Status: StatusReviewed},
	)
	assert.ErrorIs(t, err, core.ErrForbidden)
}

func TestRepositoryUpdateStatusPersistsReviewer(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectExec("UPDATE applications").
		WithArgs("app-1", StatusShortlisted, nil, "employer-user-1", true).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateStatus(
		context.Background(),
		"app-1",
		StatusShortlisted,
		nil,
		"employer-user-1",
		true,
	)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryDeleteDecrementsJobCounter(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectExec("DELETE FROM applications").
		WithArgs("app-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "app-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryDeleteNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectExec("DELETE FROM applications").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
