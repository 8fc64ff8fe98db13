package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"digilocker/internal/common"
	"digilocker/internal/domain/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func newUserRepoWithMock(t *testing.T) (UserRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPgUserRepository(db), mock, db
}

func TestUserCreate_Success(t *testing.T) {
	repo, mock, _ := newUserRepoWithMock(t)

	mock.ExpectExec(`INSERT INTO users`).
		WithArgs("u1", "alice", "alice@example.com", "9876543210", "Alice A", nil, "hash").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), nil, &model.User{
		ID: "u1", Username: "alice", Email: "alice@example.com",
		MobileNumber: "9876543210", FullName: "Alice A", HashedPassword: "hash",
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserCreate_UniqueViolationIsConflict(t *testing.T) {
	repo, mock, _ := newUserRepoWithMock(t)

	mock.ExpectExec(`INSERT INTO users`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), nil, &model.User{
		ID: "u1", Username: "alice", Email: "alice@example.com",
		MobileNumber: "9876543210", FullName: "Alice A", HashedPassword: "hash",
	})
	require.ErrorIs(t, err, common.ErrConflict)
}

func TestUserFindByUsername_NotFound(t *testing.T) {
	repo, mock, _ := newUserRepoWithMock(t)

	mock.ExpectQuery(`SELECT .+ FROM users WHERE username = \$1`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByUsername(context.Background(), "ghost")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestUserFindByUsername_LoadsRoles(t *testing.T) {
	repo, mock, _ := newUserRepoWithMock(t)

	userRows := sqlmock.NewRows([]string{
		"id", "username", "email", "mobile_number", "full_name",
		"aadhaar_number", "hashed_password", "created_at", "updated_at",
	}).AddRow("u1", "alice", "alice@example.com", "9876543210", "Alice A", nil, "hash", time.Now(), time.Now())
	mock.ExpectQuery(`SELECT .+ FROM users WHERE username = \$1`).
		WithArgs("alice").
		WillReturnRows(userRows)

	roleRows := sqlmock.NewRows([]string{"name"}).AddRow("moderator").AddRow("user")
	mock.ExpectQuery(`SELECT r\.name FROM roles r JOIN user_roles ur`).
		WithArgs("u1").
		WillReturnRows(roleRows)

	user, err := repo.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.Equal(t, []string{"moderator", "user"}, user.Roles)
}

func TestUserDelete_NotFound(t *testing.T) {
	repo, mock, _ := newUserRepoWithMock(t)

	mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), nil, "ghost")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestUserCreate_OtherDBErrorIsNotConflict(t *testing.T) {
	repo, mock, _ := newUserRepoWithMock(t)

	mock.ExpectExec(`INSERT INTO users`).
		WillReturnError(errors.New("db down"))

	err := repo.Create(context.Background(), nil, &model.User{ID: "u1"})
	require.Error(t, err)
	require.False(t, errors.Is(err, common.ErrConflict))
}
