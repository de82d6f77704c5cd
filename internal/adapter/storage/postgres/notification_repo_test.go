package postgres

import (
	"context"
	"testing"
	"time"

	"token-shop/internal/core/domain"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationRepo_CreateAndList(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewNotificationRepo(mock)
	owner := uuid.New()
	now := time.Now().UTC().Truncate(time.Microsecond)
	n := domain.NewNotification(owner, domain.NotificationSuccess, "Order Placed", "Your order has been placed successfully.", now)

	mock.ExpectExec("INSERT INTO notifications").
		WithArgs(n.ID, owner, "success", n.Title, n.Message, "", false, now).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	require.NoError(t, repo.Create(context.Background(), n))

	mock.ExpectQuery("SELECT .+ FROM notifications WHERE owner_id .+ ORDER BY created_at DESC").
		WithArgs(owner).
		WillReturnRows(pgxmock.NewRows([]string{"id", "owner_id", "type", "title", "message", "link", "read", "created_at"}).
			AddRow(n.ID, owner, "success", n.Title, n.Message, "", false, now))

	list, err := repo.ListByOwner(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.NotificationSuccess, list[0].Type)
	assert.False(t, list[0].Read)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepo_MarkRead(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewNotificationRepo(mock)
	owner, id := uuid.New(), uuid.New()

	mock.ExpectExec("UPDATE notifications SET read = TRUE WHERE owner_id = \\$1 AND id = \\$2").
		WithArgs(owner, id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	ok, err := repo.MarkRead(context.Background(), owner, id)
	require.NoError(t, err)
	assert.True(t, ok)

	mock.ExpectExec("UPDATE notifications SET read = TRUE WHERE owner_id = \\$1 AND id = \\$2").
		WithArgs(owner, id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	ok, err = repo.MarkRead(context.Background(), owner, id)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepo_MarkAllReadAndDelete(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewNotificationRepo(mock)
	owner, id := uuid.New(), uuid.New()

	mock.ExpectExec("UPDATE notifications SET read = TRUE WHERE owner_id = \\$1 AND read = FALSE").
		WithArgs(owner).
		WillReturnResult(pgxmock.NewResult("UPDATE", 3))
	n, err := repo.MarkAllRead(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	mock.ExpectExec("DELETE FROM notifications WHERE owner_id = \\$1 AND id = \\$2").
		WithArgs(owner, id).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	ok, err := repo.Delete(context.Background(), owner, id)
	require.NoError(t, err)
	assert.True(t, ok)

	mock.ExpectExec("DELETE FROM notifications WHERE owner_id = \\$1$").
		WithArgs(owner).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	require.NoError(t, repo.DeleteAll(context.Background(), owner))
	assert.NoError(t, mock.ExpectationsWereMet())
}
