package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

const timeLayout = "2006-01-02 15:04:05"

// Engine bundles dependencies for the sale and cash-register operations.
type Engine struct {
	db  *sqlx.DB
	log *logrus.Logger
}

// New constructs an Engine.
func New(db *sqlx.DB, log *logrus.Logger) *Engine {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Engine{db: db, log: log}
}

// newCode builds a human-readable unique code: prefix, UTC timestamp and a
// random suffix. The store's unique column is the backstop against the
// negligible collision chance.
func newCode(prefix string) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:8]
	return fmt.Sprintf("%s-%s-%s", prefix, time.Now().UTC().Format("20060102150405"), suffix)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// isUniqueViolation reports whether err is a SQLite unique-constraint failure.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
