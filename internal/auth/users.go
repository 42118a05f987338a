package auth

import (
	"context"
	"database/sql"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"` // "student" or "admin"
}

func GetUser(ctx context.Context, db *sql.DB, username string) (User, error) {
	var u User
	err := db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, role FROM users WHERE username = $1`,
		username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role)
	return u, err
}

// CreateUser hashes the password and upserts the user. Existing usernames
// keep their row; the hash and role are refreshed.
func CreateUser(ctx context.Context, db *sql.DB, username, password, role string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `INSERT INTO users (username, password_hash, role)
		VALUES ($1,$2,$3)
		ON CONFLICT (username) DO UPDATE SET password_hash=EXCLUDED.password_hash, role=EXCLUDED.role`,
		username, string(hash), role)
	return err
}

// EnsureAdmin seeds the bootstrap admin account from config when no row
// with that username exists yet.
func EnsureAdmin(ctx context.Context, db *sql.DB, username, passHash string) error {
	_, err := db.ExecContext(ctx, `INSERT INTO users (username, password_hash, role)
		VALUES ($1,$2,'admin')
		ON CONFLICT (username) DO NOTHING`,
		username, passHash)
	return err
}
