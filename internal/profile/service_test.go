// AngelaMos | 2026
// service_test.go

package profile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaziconnect/backend/internal/core"
	"github.com/kaziconnect/backend/internal/user"
)

type mockSeekers struct {
	getByUserID func(ctx context.Context, userID string) (*JobSeekerProfile, error)
}

func (m *mockSeekers) Create(context.Context, *JobSeekerProfile) error {
	panic("not expected")
}

func (m *mockSeekers) GetByID(
	context.Context,
	string,
) (*JobSeekerProfile, error) {
	panic("not expected")
}

func (m *mockSeekers) GetByUserID(
	ctx context.Context,
	userID string,
) (*JobSeekerProfile, error) {
	return m.getByUserID(ctx, userID)
}

func (m *mockSeekers) Update(
	context.Context,
	string,
	UpdateSeekerProfileRequest,
) (*JobSeekerProfile, error) {
	panic("not expected")
}

type mockEmployers struct {
	getByID     func(ctx context.Context, id string) (*EmployerProfile, error)
	setApproval func(ctx context.Context, id string, approved bool, approvedBy *string) error
}

func (m *mockEmployers) Create(context.Context, *EmployerProfile) error {
	panic("not expected")
}

func (m *mockEmployers) GetByID(
	ctx context.Context,
	id string,
) (*EmployerProfile, error) {
	return m.getByID(ctx, id)
}

func (m *mockEmployers) GetByUserID(
	context.Context,
	string,
) (*EmployerProfile, error) {
	panic("not expected")
}

func (m *mockEmployers) Update(
	context.Context,
	string,
	UpdateEmployerProfileRequest,
) (*EmployerProfile, error) {
	panic("not expected")
}

func (m *mockEmployers) SetApproval(
	ctx context.Context,
	id string,
	approved bool,
	approvedBy *string,
) error {
	return m.setApproval(ctx, id, approved, approvedBy)
}

func (m *mockEmployers) ListPending(
	context.Context,
	int,
	int,
) ([]EmployerProfile, int, error) {
	return nil, 0, nil
}

type mockUsers struct {
	setActive func(ctx context.Context, id string, active bool) error
}

func (m *mockUsers) Create(context.Context, *user.User) error {
	panic("not expected")
}

func (m *mockUsers) GetByID(context.Context, string) (*user.User, error) {
	panic("not expected")
}

func (m *mockUsers) GetByEmail(context.Context, string) (*user.User, error) {
	panic("not expected")
}

func (m *mockUsers) Update(context.Context, *user.User) error {
	panic("not expected")
}

func (m *mockUsers) UpdatePassword(context.Context, string, string) error {
	panic("not expected")
}

func (m *mockUsers) UpdateLastLogin(context.Context, string) error {
	panic("not expected")
}

func (m *mockUsers) SetActive(
	ctx context.Context,
	id string,
	active bool,
) error {
	return m.setActive(ctx, id, active)
}

func (m *mockUsers) Delete(context.Context, string) error {
	panic("not expected")
}

func (m *mockUsers) List(
	context.Context,
	user.ListUsersParams,
) ([]user.User, int, error) {
	return nil, 0, nil
}

func (m *mockUsers) ExistsByEmail(context.Context, string) (bool, error) {
	return false, nil
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

func pendingEmployer() *EmployerProfile {
	return &EmployerProfile{
		ID:          "employer-1",
		UserID:      "employer-user-1",
		CompanyName: "Acme",
		IsApproved:  false,
	}
}

func TestApproveEmployer(t *testing.T) {
	notifier := &mockNotifier{}
	approved := false

	employers := &mockEmployers{
		getByID: func(context.Context, string) (*EmployerProfile, error) {
			if approved {
				p := pendingEmployer()
				p.IsApproved = true
				return p, nil
			}
			return pendingEmployer(), nil
		},
		setApproval: func(
			_ context.Context,
			id string,
			value bool,
			approvedBy *string,
		) error {
			approved = true
			assert.Equal(t, "employer-1", id)
			assert.True(t, value)
			require.NotNil(t, approvedBy)
			assert.Equal(t, "admin-1", *approvedBy)
			return nil
		},
	}

	svc := NewService(&mockSeekers{}, employers, &mockUsers{}, notifier)

	resp, err := svc.ApproveEmployer(context.Background(), "employer-1", "admin-1")
	require.NoError(t, err)
	assert.True(t, resp.IsApproved)

	require.Len(t, notifier.calls, 1)
	assert.Equal(t, "employer-user-1", notifier.calls[0].userID)
	assert.Equal(t, "success", notifier.calls[0].kind)
}

func TestApproveEmployerTwiceConflicts(t *testing.T) {
	employers := &mockEmployers{
		getByID: func(context.Context, string) (*EmployerProfile, error) {
			p := pendingEmployer()
			p.IsApproved = true
			return p, nil
		},
	}

	svc := NewService(&mockSeekers{}, employers, &mockUsers{}, &mockNotifier{})

	_, err := svc.ApproveEmployer(context.Background(), "employer-1", "admin-1")
	require.Error(t, err)

	appErr, ok := core.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 409, appErr.Status)
}

func TestRejectEmployerDeactivatesAccount(t *testing.T) {
	notifier := &mockNotifier{}
	deactivated := false

	users := &mockUsers{
		setActive: func(_ context.Context, id string, active bool) error {
			deactivated = true
			assert.Equal(t, "employer-user-1", id)
			assert.False(t, active)
			return nil
		},
	}

	employers := &mockEmployers{
		getByID: func(context.Context, string) (*EmployerProfile, error) {
			return pendingEmployer(), nil
		},
	}

	svc := NewService(&mockSeekers{}, employers, users, notifier)

	err := svc.RejectEmployer(
		context.Background(),
		"employer-1",
		"incomplete registration documents",
	)
	require.NoError(t, err)
	assert.True(t, deactivated)

	require.Len(t, notifier.calls, 1)
	assert.Equal(t, "error", notifier.calls[0].kind)
}

func TestRejectApprovedEmployerConflicts(t *testing.T) {
	employers := &mockEmployers{
		getByID: func(context.Context, string) (*EmployerProfile, error) {
			p := pendingEmployer()
			p.IsApproved = true
			return p, nil
		},
	}

	svc := NewService(&mockSeekers{}, employers, &mockUsers{}, &mockNotifier{})

	err := svc.RejectEmployer(context.Background(), "employer-1", "")
	require.Error(t, err)

	appErr, ok := core.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 409, appErr.Status)
}

func TestGetMyProfileUnknownRole(t *testing.T) {
	svc := NewService(
		&mockSeekers{},
		&mockEmployers{},
		&mockUsers{},
		&mockNotifier{},
	)

	_, err := svc.GetMyProfile(context.Background(), "user-1", "superuser")
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestGetMyProfileSeeker(t *testing.T) {
	svc := NewService(
		&mockSeekers{
			getByUserID: func(context.Context, string) (*JobSeekerProfile, error) {
				return &JobSeekerProfile{ID: "seeker-1", UserID: "user-1"}, nil
			},
		},
		&mockEmployers{},
		&mockUsers{},
		&mockNotifier{},
	)

	resp, err := svc.GetMyProfile(context.Background(), "user-1", "job-seeker")
	require.NoError(t, err)
	assert.Equal(t, "job-seeker", resp.Role)
	require.NotNil(t, resp.Seeker)
	assert.Nil(t, resp.Employer)
}
