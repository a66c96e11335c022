package domain

const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleClerk   = "clerk"
)

type User struct {
	ID           int64  `db:"id" json:"id"`
	Username     string `db:"username" json:"username"`
	Name         string `db:"name" json:"name"`
	PasswordHash string `db:"password_hash" json:"-"`
	Role         string `db:"role" json:"role"`
	Active       bool   `db:"active" json:"active"`
	CreatedAt    string `db:"created_at" json:"created_at,omitempty"`
}

// Identity is the authenticated caller passed explicitly into engine
// operations. There is no ambient current-user state.
type Identity struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// ValidRole reports whether role is one of the known user roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleClerk:
		return true
	}
	return false
}
