package seed

import (
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"pdvlite/m/domain"
	"pdvlite/m/internal/auth"
)

// Run inserts the initial data the engine expects to exist: a default admin
// user, the walk-in customer party and the store_config singleton. It is
// idempotent and safe to call on every startup.
func Run(db *sqlx.DB, adminUsername, adminPassword string) error {
	var exists int
	err := db.Get(&exists, `SELECT COUNT(*) FROM users WHERE username = ?`, adminUsername)
	if err != nil {
		return errors.Wrap(err, "check admin user")
	}
	if exists == 0 {
		hash, err := auth.HashPassword(adminPassword)
		if err != nil {
			return err
		}
		_, err = db.Exec(`INSERT INTO users (username, name, password_hash, role) VALUES (?, ?, ?, ?)`,
			adminUsername, "Administrator", hash, domain.RoleAdmin)
		if err != nil {
			return errors.Wrap(err, "create admin user")
		}
		logrus.WithField("username", adminUsername).Info("default admin user created")
	}

	err = db.Get(&exists, `SELECT COUNT(*) FROM parties WHERE name = ?`, domain.WalkInPartyName)
	if err != nil {
		return errors.Wrap(err, "check walk-in party")
	}
	if exists == 0 {
		_, err = db.Exec(`INSERT INTO parties (name, document) VALUES (?, ?)`,
			domain.WalkInPartyName, "000.000.000-00")
		if err != nil {
			return errors.Wrap(err, "create walk-in party")
		}
	}

	err = db.Get(&exists, `SELECT COUNT(*) FROM store_config WHERE id = 1`)
	if err != nil {
		return errors.Wrap(err, "check store config")
	}
	if exists == 0 {
		_, err = db.Exec(`INSERT INTO store_config (id, name, tax_id, address, phone, logo) VALUES (1, ?, '', '', '', '')`,
			"PDV Lite")
		if err != nil {
			return errors.Wrap(err, "create store config")
		}
	}

	return nil
}
