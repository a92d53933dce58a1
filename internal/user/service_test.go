// AngelaMos | 2026
// service_test.go

package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaziconnect/backend/internal/core"
)

type mockRepo struct {
	users   map[string]*User
	deleted []string
}

func newMockRepo(users ...*User) *mockRepo {
	m := &mockRepo{users: make(map[string]*User)}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *mockRepo) Create(_ context.Context, u *User) error {
	if _, exists := m.users[u.ID]; exists {
		return core.ErrDuplicateKey
	}
	u.IsActive = true
	m.users[u.ID] = u
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id string) (*User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *mockRepo) GetByEmail(
	_ context.Context,
	email string,
) (*User, error) {
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, core.ErrNotFound
}

func (m *mockRepo) Update(_ context.Context, u *User) error {
	m.users[u.ID] = u
	return nil
}

func (m *mockRepo) UpdatePassword(_ context.Context, id, hash string) error {
	u, ok := m.users[id]
	if !ok {
		return core.ErrNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (m *mockRepo) UpdateLastLogin(context.Context, string) error {
	return nil
}

func (m *mockRepo) SetActive(_ context.Context, id string, active bool) error {
	u, ok := m.users[id]
	if !ok {
		return core.ErrNotFound
	}
	u.IsActive = active
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.users[id]; !ok {
		return core.ErrNotFound
	}
	delete(m.users, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockRepo) List(
	context.Context,
	ListUsersParams,
) ([]User, int, error) {
	return nil, 0, nil
}

func (m *mockRepo) ExistsByEmail(context.Context, string) (bool, error) {
	return false, nil
}

func adminUser() *User {
	return &User{
		ID:       "admin-1",
		Email:    "admin@kaziconnect.example",
		Role:     RoleAdmin,
		IsActive: true,
	}
}

func seekerUser() *User {
	return &User{
		ID:       "user-1",
		Email:    "amina@example.com",
		Role:     RoleJobSeeker,
		IsActive: true,
	}
}

func TestCreateRejectsAdminRole(t *testing.T) {
	svc := NewService(newMockRepo())

	_, err := svc.Create(
		context.Background(),
		"root@example.com",
		"hash",
		RoleAdmin,
		"Root",
		"User",
		nil,
	)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestCreateRejectsUnknownRole(t *testing.T) {
	svc := NewService(newMockRepo())

	_, err := svc.Create(
		context.Background(),
		"x@example.com",
		"hash",
		"superuser",
		"X",
		"Y",
		nil,
	)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestCreateLowercasesEmail(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	info, err := svc.Create(
		context.Background(),
		"Amina@Example.COM",
		"hash",
		RoleJobSeeker,
		"Amina",
		"Odhiambo",
		nil,
	)
	require.NoError(t, err)
	assert.Equal(t, "amina@example.com", info.Email)
}

func TestSetUserActiveRefusesAdmins(t *testing.T) {
	svc := NewService(newMockRepo(adminUser()))

	_, err := svc.SetUserActive(context.Background(), "admin-1", false)
	assert.ErrorIs(t, err, core.ErrForbidden)
}

func TestSetUserActiveDeactivates(t *testing.T) {
	repo := newMockRepo(seekerUser())
	svc := NewService(repo)

	u, err := svc.SetUserActive(context.Background(), "user-1", false)
	require.NoError(t, err)
	assert.False(t, u.IsActive)
	assert.False(t, repo.users["user-1"].IsActive)
}

func TestDeleteUserRefusesAdmins(t *testing.T) {
	repo := newMockRepo(adminUser())
	svc := NewService(repo)

	err := svc.DeleteUser(context.Background(), "admin-1")
	assert.ErrorIs(t, err, core.ErrForbidden)
	assert.Empty(t, repo.deleted)
}

func TestDeleteUser(t *testing.T) {
	repo := newMockRepo(seekerUser())
	svc := NewService(repo)

	require.NoError(t, svc.DeleteUser(context.Background(), "user-1"))
	assert.Equal(t, []string{"user-1"}, repo.deleted)
}

func TestGetMeRequiresUserID(t *testing.T) {
	svc := NewService(newMockRepo())

	_, err := svc.GetMe(context.Background(), "")
	assert.ErrorIs(t, err, core.ErrUnauthorized)
}

func TestUpdateUserPartialPatch(t *testing.T) {
	repo := newMockRepo(seekerUser())
	svc := NewService(repo)

	first := "Aisha"
	u, err := svc.UpdateUser(context.Background(), "user-1", UpdateUserRequest{
		FirstName: &first,
	})
	require.NoError(t, err)
	assert.Equal(t, "Aisha", u.FirstName)
	assert.Equal(t, RoleJobSeeker, u.Role)
}
