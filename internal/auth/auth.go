package auth

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"pdvlite/m/domain"
)

// HashPassword hashes a plain-text password for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Wrap(err, "hash password")
	}
	return string(hash), nil
}

// Authenticate verifies a username/password pair against the users table and
// returns the caller identity. The comparison is constant-time. Unknown
// usernames, wrong passwords and deactivated users all fail with
// domain.ErrInvalidCredentials.
func Authenticate(db *sqlx.DB, username, password string) (*domain.Identity, error) {
	var user domain.User
	err := db.Get(&user, `SELECT id, username, name, password_hash, role, active FROM users WHERE username = ?`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, errors.Wrap(err, "load user")
	}
	if !user.Active {
		return nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return &domain.Identity{ID: user.ID, Username: user.Username, Name: user.Name, Role: user.Role}, nil
}
