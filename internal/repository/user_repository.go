package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/video-summarizer/internal/model"
	"github.com/iliyamo/video-summarizer/internal/utils"
)

// UserRepo persists username/password-hash pairs in the 'users' table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create hashes the password with bcrypt and inserts the user, returning
// its ID. A duplicate username maps the MySQL 1062 error to
// ErrUsernameExists and leaves the table unchanged.
func (r *UserRepo) Create(ctx context.Context, username, password string, cost int) (uint64, error) {
	username = strings.TrimSpace(username)
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (username, password_hash) VALUES (?,?)",
		username, hash)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrUsernameExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByUsername fetches a user by its trimmed username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	username = strings.TrimSpace(username)
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,username,password_hash,created_at FROM users WHERE username=? LIMIT 1",
		username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,username,password_hash,created_at FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	return u, err
}

// Verify checks a plaintext password against the stored hash. A missing
// user and a wrong password produce the same false result so callers
// cannot tell which one failed.
func (r *UserRepo) Verify(ctx context.Context, username, password string) (model.User, bool) {
	u, err := r.GetByUsername(ctx, username)
	if err != nil {
		return model.User{}, false
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return model.User{}, false
	}
	return u, true
}
