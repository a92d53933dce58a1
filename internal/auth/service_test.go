// AngelaMos | 2026
// service_test.go

package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaziconnect/backend/internal/core"
)

type stubUsers struct {
	byEmail         *UserInfo
	byEmailErr      error
	passwordUpdates int
	logins          int
}

func (s *stubUsers) GetByEmail(
	context.Context,
	string,
) (*UserInfo, error) {
	return s.byEmail, s.byEmailErr
}

func (s *stubUsers) GetByID(context.Context, string) (*UserInfo, error) {
	return s.byEmail, s.byEmailErr
}

func (s *stubUsers) UpdatePassword(context.Context, string, string) error {
	s.passwordUpdates++
	return nil
}

func (s *stubUsers) RecordLogin(context.Context, string) error {
	s.logins++
	return nil
}

type stubAccounts struct {
	created *CreateAccountParams
	err     error
}

func (s *stubAccounts) CreateAccount(
	_ context.Context,
	params CreateAccountParams,
) (*UserInfo, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.created = &params
	return &UserInfo{
		ID:        "user-1",
		Email:     params.Email,
		Role:      params.Role,
		FirstName: params.FirstName,
		LastName:  params.LastName,
		IsActive:  true,
	}, nil
}

type recordedActivity struct {
	actions []string
}

func (r *recordedActivity) Record(
	_ context.Context,
	_, action, _, _ string,
) {
	r.actions = append(r.actions, action)
}

func activeUser(t *testing.T, password string) *UserInfo {
	t.Helper()

	hash, err := core.HashPassword(password)
	require.NoError(t, err)

	return &UserInfo{
		ID:           "user-1",
		Email:        "amina@example.com",
		PasswordHash: hash,
		Role:         "job-seeker",
		FirstName:    "Amina",
		LastName:     "Odhiambo",
		IsActive:     true,
	}
}

func TestLoginSuccess(t *testing.T) {
	users := &stubUsers{byEmail: activeUser(t, "s3cret-pass")}
	activity := &recordedActivity{}
	svc := NewService(users, &stubAccounts{}, activity, newTestManager(t, time.Hour))

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "amina@example.com",
		Password: "s3cret-pass",
	}, "203.0.113.9")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "amina@example.com", resp.User.Email)
	assert.Equal(t, 1, users.logins)
	assert.Contains(t, activity.actions, "user.login")
}

func TestLoginWrongPassword(t *testing.T) {
	users := &stubUsers{byEmail: activeUser(t, "s3cret-pass")}
	svc := NewService(users, &stubAccounts{}, nil, newTestManager(t, time.Hour))

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "amina@example.com",
		Password: "wrong",
	}, "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Zero(t, users.logins)
}

func TestLoginUnknownEmail(t *testing.T) {
	users := &stubUsers{byEmailErr: core.ErrNotFound}
	svc := NewService(users, &stubAccounts{}, nil, newTestManager(t, time.Hour))

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "ghost@example.com",
		Password: "anything",
	}, "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginDisabledAccount(t *testing.T) {
	user := activeUser(t, "s3cret-pass")
	user.IsActive = false
	users := &stubUsers{byEmail: user}
	svc := NewService(users, &stubAccounts{}, nil, newTestManager(t, time.Hour))

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "amina@example.com",
		Password: "s3cret-pass",
	}, "")
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestRegisterPassesProfileFields(t *testing.T) {
	accounts := &stubAccounts{}
	activity := &recordedActivity{}
	svc := NewService(
		&stubUsers{},
		accounts,
		activity,
		newTestManager(t, time.Hour),
	)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Email:       "hr@acme.example",
		Password:    "s3cret-pass",
		Role:        "employer",
		FirstName:   "Grace",
		LastName:    "Mwangi",
		CompanyName: "Acme",
	}, "203.0.113.9")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	require.NotNil(t, accounts.created)
	assert.Equal(t, "Acme", accounts.created.CompanyName)
	assert.NotEqual(t, "s3cret-pass", accounts.created.PasswordHash)
	assert.Contains(t, activity.actions, "user.registered")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	accounts := &stubAccounts{err: core.ErrDuplicateKey}
	svc := NewService(
		&stubUsers{},
		accounts,
		nil,
		newTestManager(t, time.Hour),
	)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:     "taken@example.com",
		Password:  "s3cret-pass",
		Role:      "job-seeker",
		FirstName: "Amina",
		LastName:  "Odhiambo",
	}, "")
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestChangePasswordVerifiesCurrent(t *testing.T) {
	users := &stubUsers{byEmail: activeUser(t, "old-password")}
	svc := NewService(users, &stubAccounts{}, nil, newTestManager(t, time.Hour))

	err := svc.ChangePassword(context.Background(), "user-1", ChangePasswordRequest{
		CurrentPassword: "not-the-password",
		NewPassword:     "new-password-123",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Zero(t, users.passwordUpdates)

	err = svc.ChangePassword(context.Background(), "user-1", ChangePasswordRequest{
		CurrentPassword: "old-password",
		NewPassword:     "new-password-123",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, users.passwordUpdates)
}
