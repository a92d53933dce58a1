// AngelaMos | 2026
// repository_test.go

package notification

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaziconnect/backend/internal/core"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(
		sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestMarkAllReadReturnsAffectedRows(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectExec("UPDATE notifications").
		WithArgs("user-1").
		WillReturnResult(sqlmock.NewResult(0, 4))

	count, err := repo.MarkAllRead(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 4, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkAllReadIdempotentOnEmptyInbox(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectExec("UPDATE notifications").
		WithArgs("user-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	count, err := repo.MarkAllRead(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestMarkReadScopedToOwner(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectExec("UPDATE notifications").
		WithArgs("notif-1", "user-2").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.MarkRead(context.Background(), "notif-1", "user-2")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestDeleteNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectExec("DELETE FROM notifications").
		WithArgs("notif-1", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "notif-1", "user-1")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

type captureRepo struct {
	created *Notification
	err     error
}

func (c *captureRepo) Create(_ context.Context, n *Notification) error {
	c.created = n
	return c.err
}

func (c *captureRepo) ListByUser(
	context.Context,
	string,
	ListParams,
) ([]Notification, int, error) {
	return nil, 0, nil
}

func (c *captureRepo) MarkRead(context.Context, string, string) error {
	return nil
}

func (c *captureRepo) MarkAllRead(context.Context, string) (int, error) {
	return 0, nil
}

func (c *captureRepo) UnreadCount(context.Context, string) (int, error) {
	return 0, nil
}

func (c *captureRepo) Delete(context.Context, string, string) error {
	return nil
}

func TestNotifyNormalizesUnknownKind(t *testing.T) {
	repo := &captureRepo{}
	svc := NewService(repo)

	svc.Notify(context.Background(), "user-1", "Hello", "World", "urgent")

	require.NotNil(t, repo.created)
	assert.Equal(t, KindInfo, repo.created.Kind)
	assert.NotEmpty(t, repo.created.ID)
}

func TestNotifySwallowsRepositoryErrors(t *testing.T) {
	repo := &captureRepo{err: assert.AnError}
	svc := NewService(repo)

	// Must not panic or surface the error.
	svc.Notify(context.Background(), "user-1", "Hello", "World", KindWarning)
	assert.NotNil(t, repo.created)
}
