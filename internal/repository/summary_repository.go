package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/video-summarizer/internal/model"
)

// SummaryRepo persists the per-user summarization history in the
// 'summaries' table. Records are append-only; there is no update or
// delete path.
type SummaryRepo struct{ DB *sql.DB }

func NewSummaryRepo(db *sql.DB) *SummaryRepo { return &SummaryRepo{DB: db} }

// Append inserts one immutable history record. The created_at column is
// assigned by the database server clock (DEFAULT CURRENT_TIMESTAMP).
// The title may be empty; it is stored as NULL in that case, matching
// what metadata extraction returned at write time.
func (r *SummaryRepo) Append(ctx context.Context, username, url, title, summary string) error {
	var t sql.NullString
	if title != "" {
		t = sql.NullString{String: title, Valid: true}
	}
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO summaries (username, url, title, summary) VALUES (?,?,?,?)",
		username, url, t, summary)
	return err
}

// Recent returns the caller's newest records, descending by timestamp.
// Timestamp ties are broken by id DESC so that the most recently
// inserted record always sorts first regardless of the storage engine.
func (r *SummaryRepo) Recent(ctx context.Context, username string, limit int) ([]model.SummaryRecord, error) {
	if limit <= 0 {
		limit = 5
	}
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,username,url,title,summary,created_at FROM summaries WHERE username=? ORDER BY created_at DESC, id DESC LIMIT ?",
		username, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.SummaryRecord
	for rows.Next() {
		var rec model.SummaryRecord
		if err := rows.Scan(&rec.ID, &rec.Username, &rec.URL, &rec.Title, &rec.Summary, &rec.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// CountForUser returns the number of history records owned by username.
func (r *SummaryRepo) CountForUser(ctx context.Context, username string) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM summaries WHERE username=?", username).Scan(&n)
	return n, err
}
