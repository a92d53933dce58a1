// AngelaMos | 2026
// service_test.go

package job

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaziconnect/backend/internal/core"
	"github.com/kaziconnect/backend/internal/profile"
)

type mockRepo struct {
	create    func(ctx context.Context, j *JobPosting) error
	getByID   func(ctx context.Context, id string) (*JobWithCompany, error)
	setActive func(ctx context.Context, id string, active bool) error
	views     int
}

func (m *mockRepo) Create(ctx context.Context, j *JobPosting) error {
	return m.create(ctx, j)
}

func (m *mockRepo) GetByID(
	ctx context.Context,
	id string,
) (*JobWithCompany, error) {
	return m.getByID(ctx, id)
}

func (m *mockRepo) List(
	context.Context,
	ListJobsParams,
) ([]JobWithCompany, int, error) {
	return nil, 0, nil
}

func (m *mockRepo) Update(
	context.Context,
	string,
	UpdateJobRequest,
) (*JobPosting, error) {
	return &JobPosting{}, nil
}

func (m *mockRepo) SetActive(
	ctx context.Context,
	id string,
	active bool,
) error {
	return m.setActive(ctx, id, active)
}

func (m *mockRepo) IncrementViews(context.Context, string) error {
	m.views++
	return nil
}

func (m *mockRepo) EmployerStats(
	context.Context,
	string,
) (*EmployerJobStats, error) {
	return &EmployerJobStats{}, nil
}

type mockEmployers struct {
	getByID     func(ctx context.Context, id string) (*profile.EmployerProfile, error)
	getByUserID func(ctx context.Context, userID string) (*profile.EmployerProfile, error)
}

func (m *mockEmployers) Create(context.Context, *profile.EmployerProfile) error {
	panic("not expected")
}

func (m *mockEmployers) GetByID(
	ctx context.Context,
	id string,
) (*profile.EmployerProfile, error) {
	return m.getByID(ctx, id)
}

func (m *mockEmployers) GetByUserID(
	ctx context.Context,
	userID string,
) (*profile.EmployerProfile, error) {
	return m.getByUserID(ctx, userID)
}

func (m *mockEmployers) Update(
	context.Context,
	string,
	profile.UpdateEmployerProfileRequest,
) (*profile.EmployerProfile, error) {
	panic("not expected")
}

func (m *mockEmployers) SetApproval(
	context.Context,
	string,
	bool,
	*string,
) error {
	panic("not expected")
}

func (m *mockEmployers) ListPending(
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

func approvedEmployer() *profile.EmployerProfile {
	return &profile.EmployerProfile{
		ID:         "employer-1",
		UserID:     "employer-user-1",
		IsApproved: true,
	}
}

func jobFixture(active bool) *JobWithCompany {
	return &JobWithCompany{
		JobPosting: JobPosting{
			ID:         "job-1",
			EmployerID: "employer-1",
			Title:      "Go Developer",
			JobType:    TypeFullTime,
			IsActive:   active,
			Views:      3,
		},
		CompanyName: "Acme",
	}
}

func TestCreateRejectsUnapprovedEmployer(t *testing.T) {
	svc := NewService(
		&mockRepo{},
		&mockEmployers{
			getByUserID: func(context.Context, string) (*profile.EmployerProfile, error) {
				return &profile.EmployerProfile{
					ID:         "employer-1",
					IsApproved: false,
				}, nil
			},
		},
		&mockNotifier{},
	)

	_, err := svc.Create(context.Background(), "employer-user-1", CreateJobRequest{
		Title:       "Go Developer",
		Description: "Build backend services.",
		JobType:     TypeFullTime,
	})
	assert.ErrorIs(t, err, ErrEmployerNotApproved)
}

func TestCreateAssignsEmployerFromProfile(t *testing.T) {
	var created *JobPosting

	svc := NewService(
		&mockRepo{
			create: func(_ context.Context, j *JobPosting) error {
				created = j
				return nil
			},
			getByID: func(context.Context, string) (*JobWithCompany, error) {
				return jobFixture(true), nil
			},
		},
		&mockEmployers{
			getByUserID: func(context.Context, string) (*profile.EmployerProfile, error) {
				return approvedEmployer(), nil
			},
		},
		&mockNotifier{},
	)

	_, err := svc.Create(context.Background(), "employer-user-1", CreateJobRequest{
		Title:       "Go Developer",
		Description: "Build backend services.",
		JobType:     TypeFullTime,
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "employer-1", created.EmployerID)
	assert.NotEmpty(t, created.ID)
}

func TestGetCountsViewOnActiveJob(t *testing.T) {
	repo := &mockRepo{
		getByID: func(context.Context, string) (*JobWithCompany, error) {
			return jobFixture(true), nil
		},
	}

	svc := NewService(repo, &mockEmployers{}, &mockNotifier{})

	resp, err := svc.Get(context.Background(), "job-1", "", "")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.views)
	assert.Equal(t, 4, resp.Views)
}

func TestGetHidesInactiveJobFromPublic(t *testing.T) {
	svc := NewService(
		&mockRepo{
			getByID: func(context.Context, string) (*JobWithCompany, error) {
				return jobFixture(false), nil
			},
		},
		&mockEmployers{
			getByUserID: func(context.Context, string) (*profile.EmployerProfile, error) {
				return nil, fmt.Errorf("get employer: %w", core.ErrNotFound)
			},
		},
		&mockNotifier{},
	)

	_, err := svc.Get(context.Background(), "job-1", "random-user", "job-seeker")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestGetShowsInactiveJobToOwner(t *testing.T) {
	repo := &mockRepo{
		getByID: func(context.Context, string) (*JobWithCompany, error) {
			return jobFixture(false), nil
		},
	}

	svc := NewService(
		repo,
		&mockEmployers{
			getByUserID: func(context.Context, string) (*profile.EmployerProfile, error) {
				return approvedEmployer(), nil
			},
		},
		&mockNotifier{},
	)

	resp, err := svc.Get(
		context.Background(),
		"job-1",
		"employer-user-1",
		"employer",
	)
	require.NoError(t, err)
	assert.False(t, resp.IsActive)
	assert.Zero(t, repo.views)
}

func TestUpdateRejectsNonOwner(t *testing.T) {
	svc := NewService(
		&mockRepo{
			getByID: func(context.Context, string) (*JobWithCompany, error) {
				return jobFixture(true), nil
			},
		},
		&mockEmployers{
			getByUserID: func(context.Context, string) (*profile.EmployerProfile, error) {
				return &profile.EmployerProfile{ID: "employer-2"}, nil
			},
		},
		&mockNotifier{},
	)

	title := "New Title"
	_, err := svc.Update(context.Background(), "other-user", "job-1", UpdateJobRequest{
		Title: &title,
	})
	assert.ErrorIs(t, err, core.ErrForbidden)
}

func TestAdminDeactivateNotifiesEmployer(t *testing.T) {
	notifier := &mockNotifier{}
	deactivated := false

	svc := NewService(
		&mockRepo{
			getByID: func(context.Context, string) (*JobWithCompany, error) {
				return jobFixture(true), nil
			},
			setActive: func(_ context.Context, id string, active bool) error {
				deactivated = true
				assert.Equal(t, "job-1", id)
				assert.False(t, active)
				return nil
			},
		},
		&mockEmployers{
			getByID: func(context.Context, string) (*profile.EmployerProfile, error) {
				return approvedEmployer(), nil
			},
		},
		notifier,
	)

	err := svc.AdminDeactivate(context.Background(), "job-1", "spam posting")
	require.NoError(t, err)
	assert.True(t, deactivated)

	require.Len(t, notifier.calls, 1)
	assert.Equal(t, "employer-user-1", notifier.calls[0].userID)
	assert.Equal(t, "warning", notifier.calls[0].kind)
}

func TestAdminDeactivateConflictsWhenAlreadyInactive(t *testing.T) {
	svc := NewService(
		&mockRepo{
			getByID: func(context.Context, string) (*JobWithCompany, error) {
				return jobFixture(false), nil
			},
		},
		&mockEmployers{},
		&mockNotifier{},
	)

	err := svc.AdminDeactivate(context.Background(), "job-1", "")
	require.Error(t, err)

	appErr, ok := core.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 409, appErr.Status)
}
