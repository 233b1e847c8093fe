package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/video-summarizer/internal/model"
)

// LanguageRepo reads the append-only 'languages' catalog. The catalog is
// seeded once at startup; no mutation is exposed to end users.
type LanguageRepo struct{ DB *sql.DB }

func NewLanguageRepo(db *sql.DB) *LanguageRepo { return &LanguageRepo{DB: db} }

// List returns all languages in catalog-insertion order. The selection
// control on the main screen is populated from this list.
func (r *LanguageRepo) List(ctx context.Context) ([]model.Language, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,name FROM languages ORDER BY id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Language
	for rows.Next() {
		var l model.Language
		if err := rows.Scan(&l.ID, &l.Name); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// Contains reports whether a language name is present in the catalog.
// The orchestrator uses it to validate the requested output language
// before any external call is made.
func (r *LanguageRepo) Contains(ctx context.Context, name string) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM languages WHERE name=? LIMIT 1", name).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Seed inserts the default language set, ignoring names that already
// exist. Safe to call on every startup.
func (r *LanguageRepo) Seed(ctx context.Context, names []string) error {
	for _, name := range names {
		if _, err := r.DB.ExecContext(ctx,
			"INSERT IGNORE INTO languages (name) VALUES (?)", name); err != nil {
			return err
		}
	}
	return nil
}
