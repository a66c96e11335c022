package auth

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdvlite/m/domain"
	"pdvlite/m/internal/database"
	"pdvlite/m/internal/migrations"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, migrations.Run(db))
	return db
}

func createUser(t *testing.T, db *sqlx.DB, username, password, role string, active bool) {
	t.Helper()
	hash, err := HashPassword(password)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO users (username, name, password_hash, role, active) VALUES (?, ?, ?, ?, ?)`,
		username, "Test "+username, hash, role, active)
	require.NoError(t, err)
}

func TestAuthenticate(t *testing.T) {
	db := newTestDB(t)
	createUser(t, db, "maria", "s3cret", domain.RoleManager, true)

	identity, err := Authenticate(db, "maria", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "maria", identity.Username)
	assert.Equal(t, domain.RoleManager, identity.Role)
	assert.NotZero(t, identity.ID)
}

func TestAuthenticateFailures(t *testing.T) {
	db := newTestDB(t)
	createUser(t, db, "maria", "s3cret", domain.RoleManager, true)
	createUser(t, db, "gone", "s3cret", domain.RoleClerk, false)

	_, err := Authenticate(db, "maria", "wrong")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = Authenticate(db, "nobody", "s3cret")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	// Deactivated users cannot log in even with the right password.
	_, err = Authenticate(db, "gone", "s3cret")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestCanAccess(t *testing.T) {
	admin := &domain.Identity{ID: 1, Role: domain.RoleAdmin}
	manager := &domain.Identity{ID: 2, Role: domain.RoleManager}
	clerk := &domain.Identity{ID: 3, Role: domain.RoleClerk}

	cases := []struct {
		section string
		id      *domain.Identity
		want    bool
	}{
		{"users", admin, true},
		{"users", manager, false},
		{"users", clerk, false},
		{"reports", admin, true},
		{"reports", manager, true},
		{"reports", clerk, false},
		{"register", manager, true},
		{"register", clerk, false},
		{"pos", clerk, true},
		{"products", clerk, true},
		// Unknown sections only require authentication.
		{"dashboard", clerk, true},
		{"dashboard", nil, false},
		{"pos", nil, false},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.want, CanAccess(tc.section, tc.id), "section %s", tc.section)
	}
}

func TestEnsurePermission(t *testing.T) {
	clerk := &domain.Identity{ID: 3, Role: domain.RoleClerk}

	require.NoError(t, EnsurePermission("pos", clerk))

	err := EnsurePermission("users", clerk)
	require.ErrorIs(t, err, domain.ErrPermissionDenied)
	assert.Contains(t, err.Error(), "users")
}
