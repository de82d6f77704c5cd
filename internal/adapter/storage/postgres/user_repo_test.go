package postgres

import (
	"context"
	"testing"
	"time"

	"token-shop/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userColumnsList() []string {
	return []string{"id", "email", "display_name", "password_hash", "age_verified", "created_at"}
}

func newTestUser() *domain.User {
	return domain.NewUser("user1@example.com", "$argon2id$hash", time.Now().UTC().Truncate(time.Microsecond))
}

func TestUserRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepo(mock)
	u := newTestUser()

	mock.ExpectExec("INSERT INTO users").
		WithArgs(u.ID, u.Email, u.DisplayName, u.PasswordHash, u.AgeVerified, u.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	assert.NoError(t, repo.Create(context.Background(), u))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_Create_DuplicateEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepo(mock)
	u := newTestUser()

	mock.ExpectExec("INSERT INTO users").
		WithArgs(u.ID, u.Email, u.DisplayName, u.PasswordHash, u.AgeVerified, u.CreatedAt).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	err = repo.Create(context.Background(), u)
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_GetByEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepo(mock)
	u := newTestUser()

	mock.ExpectQuery("SELECT .+ FROM users WHERE email").
		WithArgs("user1@example.com").
		WillReturnRows(pgxmock.NewRows(userColumnsList()).
			AddRow(u.ID, u.Email, u.DisplayName, u.PasswordHash, true, u.CreatedAt))

	got, err := repo.GetByEmail(context.Background(), " User1@Example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.ID, got.ID)
	assert.True(t, got.AgeVerified)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepo(mock)
	id := uuid.New()

	mock.ExpectQuery("SELECT .+ FROM users WHERE id").
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(userColumnsList()))

	got, err := repo.GetByID(context.Background(), id)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserRepo_SetAgeVerified(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepo(mock)
	id := uuid.New()

	mock.ExpectExec("UPDATE users SET age_verified").
		WithArgs(true, id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	assert.NoError(t, repo.SetAgeVerified(context.Background(), id, true))

	mock.ExpectExec("UPDATE users SET age_verified").
		WithArgs(true, id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	assert.ErrorContains(t, repo.SetAgeVerified(context.Background(), id, true), "user not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}
