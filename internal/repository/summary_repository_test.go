package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSummaryRepoWithMock(t *testing.T) (*SummaryRepo, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewSummaryRepo(db), mock, db
}

const insertSummaryQ = `INSERT INTO summaries \(username, url, title, summary\) VALUES \(\?,\?,\?,\?\)`

func TestSummaryAppend(t *testing.T) {
	repo, mock, db := newSummaryRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(insertSummaryQ).
		WithArgs("alice", "https://youtu.be/abc123", sql.NullString{String: "Test Video", Valid: true}, "A short greeting.").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Append(context.Background(), "alice", "https://youtu.be/abc123", "Test Video", "A short greeting.")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// An empty title is stored as NULL, not as an empty string.
func TestSummaryAppendEmptyTitle(t *testing.T) {
	repo, mock, db := newSummaryRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(insertSummaryQ).
		WithArgs("alice", "https://youtu.be/abc123", sql.NullString{}, "summary").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Append(context.Background(), "alice", "https://youtu.be/abc123", "", "summary")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

const recentQ = `SELECT id,username,url,title,summary,created_at FROM summaries WHERE username=\? ORDER BY created_at DESC, id DESC LIMIT \?`

func TestSummaryRecent(t *testing.T) {
	repo, mock, db := newSummaryRepoWithMock(t)
	defer db.Close()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	// Two records share a timestamp; the higher id (later insert) comes first.
	rows := sqlmock.NewRows([]string{"id", "username", "url", "title", "summary", "created_at"}).
		AddRow(9, "alice", "https://youtu.be/b", sql.NullString{String: "B", Valid: true}, "sum b", now).
		AddRow(8, "alice", "https://youtu.be/a", sql.NullString{}, "sum a", now).
		AddRow(5, "alice", "https://youtu.be/c", sql.NullString{String: "C", Valid: true}, "sum c", now.Add(-time.Hour))
	mock.ExpectQuery(recentQ).WithArgs("alice", 5).WillReturnRows(rows)

	recs, err := repo.Recent(context.Background(), "alice", 5)
	require.NoError(t, err)
	require.Len(t, recs, 3)

	assert.Equal(t, uint64(9), recs[0].ID)
	assert.Equal(t, uint64(8), recs[1].ID)
	assert.Equal(t, uint64(5), recs[2].ID)
	assert.False(t, recs[1].Title.Valid)
	assert.Equal(t, "B", recs[0].Title.String)
}

// A non-positive limit falls back to the UI default of 5.
func TestSummaryRecentDefaultLimit(t *testing.T) {
	repo, mock, db := newSummaryRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(recentQ).WithArgs("alice", 5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "url", "title", "summary", "created_at"}))

	recs, err := repo.Recent(context.Background(), "alice", 0)
	require.NoError(t, err)
	assert.Empty(t, recs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSummaryCountForUser(t *testing.T) {
	repo, mock, db := newSummaryRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM summaries WHERE username=\?`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	n, err := repo.CountForUser(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}
