package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/video-summarizer/internal/utils"
)

func newUserRepoWithMock(t *testing.T) (*UserRepo, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewUserRepo(db), mock, db
}

const insertUserQ = `INSERT INTO users \(username, password_hash\) VALUES \(\?,\?\)`

func TestUserCreateSuccess(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(insertUserQ).
		WithArgs("alice", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(7, 1))

	id, err := repo.Create(context.Background(), "alice", "s3cret", 4)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserCreateTrimsUsername(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(insertUserQ).
		WithArgs("alice", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	_, err := repo.Create(context.Background(), "  alice  ", "s3cret", 4)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserCreateDuplicate(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(insertUserQ).
		WithArgs("alice", sqlmock.AnyArg()).
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'alice' for key 'users.username'"))

	_, err := repo.Create(context.Background(), "alice", "another", 4)
	assert.ErrorIs(t, err, ErrUsernameExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserGetByUsername(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "username", "password_hash", "created_at"}).
		AddRow(3, "alice", "$2a$04$hash", created)
	mock.ExpectQuery(`SELECT id,username,password_hash,created_at FROM users WHERE username=\?`).
		WithArgs("alice").
		WillReturnRows(rows)

	u, err := repo.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, uint64(3), u.ID)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, created, u.CreatedAt)
}

func TestUserVerify(t *testing.T) {
	hash, err := utils.HashPassword("s3cret", 4)
	require.NoError(t, err)

	queryRows := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "username", "password_hash", "created_at"}).
			AddRow(1, "alice", hash, time.Now().UTC())
	}
	selectQ := `SELECT id,username,password_hash,created_at FROM users WHERE username=\?`

	t.Run("correct password", func(t *testing.T) {
		repo, mock, db := newUserRepoWithMock(t)
		defer db.Close()
		mock.ExpectQuery(selectQ).WithArgs("alice").WillReturnRows(queryRows())

		u, ok := repo.Verify(context.Background(), "alice", "s3cret")
		assert.True(t, ok)
		assert.Equal(t, "alice", u.Username)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo, mock, db := newUserRepoWithMock(t)
		defer db.Close()
		mock.ExpectQuery(selectQ).WithArgs("alice").WillReturnRows(queryRows())

		_, ok := repo.Verify(context.Background(), "alice", "wrong")
		assert.False(t, ok)
	})

	t.Run("unknown user looks the same as wrong password", func(t *testing.T) {
		repo, mock, db := newUserRepoWithMock(t)
		defer db.Close()
		mock.ExpectQuery(selectQ).WithArgs("nobody").WillReturnError(sql.ErrNoRows)

		_, ok := repo.Verify(context.Background(), "nobody", "s3cret")
		assert.False(t, ok)
	})
}
