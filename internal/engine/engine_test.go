package engine

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"pdvlite/m/internal/database"
	"pdvlite/m/internal/migrations"
)

func newTestEngine(t *testing.T) (*Engine, *sqlx.DB) {
	t.Helper()
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, migrations.Run(db))

	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)
	return New(db, log), db
}

func createOperator(t *testing.T, db *sqlx.DB, username string) int64 {
	t.Helper()
	res, err := db.Exec(`INSERT INTO users (username, name, password_hash, role) VALUES (?, ?, 'x', 'clerk')`,
		username, "Operator "+username)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

func createProduct(t *testing.T, db *sqlx.DB, name, price, stock string) int64 {
	t.Helper()
	res, err := db.Exec(`INSERT INTO products (name, sale_price, stock, min_stock) VALUES (?, ?, ?, 0)`,
		name, price, stock)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func requireDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	require.Truef(t, actual.Equal(decimal.RequireFromString(expected)),
		"expected %s, got %s", expected, actual)
}
