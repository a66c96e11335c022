package catalog

import (
	"database/sql"

	"github.com/pkg/errors"

	"pdvlite/m/domain"
	"pdvlite/m/internal/auth"
)

// ListUsers returns all users ordered by name, without password hashes.
func (c *Catalog) ListUsers() ([]domain.User, error) {
	var users []domain.User
	err := c.db.Select(&users, `SELECT id, username, name, '' AS password_hash, role, active, created_at
        FROM users ORDER BY name`)
	if err != nil {
		return nil, errors.Wrap(err, "list users")
	}
	return users, nil
}

// GetUser loads one user by id.
func (c *Catalog) GetUser(id int64) (*domain.User, error) {
	var u domain.User
	err := c.db.Get(&u, `SELECT id, username, name, password_hash, role, active, created_at FROM users WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrapf(domain.ErrNotFound, "user %d", id)
	}
	if err != nil {
		return nil, errors.Wrap(err, "load user")
	}
	return &u, nil
}

// UserByUsername loads one user by username.
func (c *Catalog) UserByUsername(username string) (*domain.User, error) {
	var u domain.User
	err := c.db.Get(&u, `SELECT id, username, name, password_hash, role, active, created_at FROM users WHERE username = ?`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrapf(domain.ErrNotFound, "user %s", username)
	}
	if err != nil {
		return nil, errors.Wrap(err, "load user")
	}
	return &u, nil
}

// CreateUser inserts a user with a hashed password and returns its id.
func (c *Catalog) CreateUser(name, username, password, role string) (int64, error) {
	if name == "" || username == "" || password == "" {
		return 0, domain.Validationf("name, username and password are required")
	}
	if !domain.ValidRole(role) {
		return 0, domain.Validationf("unknown role %q", role)
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return 0, err
	}
	res, err := c.db.Exec(`INSERT INTO users (name, username, password_hash, role) VALUES (?, ?, ?, ?)`,
		name, username, hash, role)
	if err != nil {
		return 0, errors.Wrap(err, "insert user")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, errors.Wrap(err, "user id")
	}
	return id, nil
}

// UpdateUser changes a user's display name and role.
func (c *Catalog) UpdateUser(id int64, name, role string) error {
	if !domain.ValidRole(role) {
		return domain.Validationf("unknown role %q", role)
	}
	res, err := c.db.Exec(`UPDATE users SET name = ?, role = ? WHERE id = ?`, name, role, id)
	if err != nil {
		return errors.Wrap(err, "update user")
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "update user rows")
	}
	if rows == 0 {
		return errors.Wrapf(domain.ErrNotFound, "user %d", id)
	}
	return nil
}

// SetUserActive activates or deactivates a user.
func (c *Catalog) SetUserActive(id int64, active bool) error {
	res, err := c.db.Exec(`UPDATE users SET active = ? WHERE id = ?`, active, id)
	if err != nil {
		return errors.Wrap(err, "set user active")
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "set user active rows")
	}
	if rows == 0 {
		return errors.Wrapf(domain.ErrNotFound, "user %d", id)
	}
	return nil
}

// UpdatePassword replaces a user's password with a new hash.
func (c *Catalog) UpdatePassword(id int64, password string) error {
	if password == "" {
		return domain.Validationf("password is required")
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	res, err := c.db.Exec(`UPDATE users SET password_hash = ? WHERE id = ?`, hash, id)
	if err != nil {
		return errors.Wrap(err, "update password")
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "update password rows")
	}
	if rows == 0 {
		return errors.Wrapf(domain.ErrNotFound, "user %d", id)
	}
	return nil
}
