package database

import (
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

// Connect opens the SQLite store using the provided DSN. The pool is pinned
// to a single connection so every statement of a unit of work runs against
// the same connection and SQLite's single-writer model holds.
func Connect(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "connect to database")
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "enable foreign keys")
	}
	return db, nil
}

// WithTx runs fn inside one transaction: commit on success, rollback when fn
// returns an error or panics. Nothing inside fn is visible to other callers
// until commit.
func WithTx(db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.Beginx()
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "commit transaction")
	}
	return nil
}
