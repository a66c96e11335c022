package migrations

import (
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

// Run creates the database schema required for the POS engine.
func Run(db *sqlx.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            username TEXT NOT NULL UNIQUE,
            name TEXT NOT NULL,
            password_hash TEXT NOT NULL,
            role TEXT NOT NULL CHECK(role IN ('admin','manager','clerk')),
            active INTEGER NOT NULL DEFAULT 1,
            created_at TEXT DEFAULT CURRENT_TIMESTAMP
        );`,
		`CREATE TABLE IF NOT EXISTS products (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            name TEXT NOT NULL,
            sale_price NUMERIC NOT NULL DEFAULT 0,
            stock NUMERIC NOT NULL DEFAULT 0,
            min_stock NUMERIC NOT NULL DEFAULT 0,
            barcode TEXT,
            category TEXT,
            expiry_date TEXT,
            lot TEXT,
            created_at TEXT DEFAULT CURRENT_TIMESTAMP,
            updated_at TEXT DEFAULT CURRENT_TIMESTAMP
        );`,
		`CREATE TABLE IF NOT EXISTS parties (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            name TEXT NOT NULL,
            document TEXT,
            phone TEXT,
            email TEXT,
            notes TEXT,
            created_at TEXT DEFAULT CURRENT_TIMESTAMP
        );`,
		`CREATE TABLE IF NOT EXISTS sales (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            code TEXT NOT NULL UNIQUE,
            operator_id INTEGER NOT NULL,
            party_id INTEGER,
            gross_total NUMERIC NOT NULL DEFAULT 0,
            discount NUMERIC NOT NULL DEFAULT 0,
            net_total NUMERIC NOT NULL DEFAULT 0,
            primary_method TEXT,
            created_at TEXT DEFAULT CURRENT_TIMESTAMP,
            FOREIGN KEY (operator_id) REFERENCES users(id),
            FOREIGN KEY (party_id) REFERENCES parties(id)
        );`,
		`CREATE TABLE IF NOT EXISTS sale_lines (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            sale_id INTEGER NOT NULL,
            product_id INTEGER NOT NULL,
            quantity NUMERIC NOT NULL DEFAULT 1,
            unit_price NUMERIC NOT NULL DEFAULT 0,
            line_total NUMERIC NOT NULL DEFAULT 0,
            FOREIGN KEY (sale_id) REFERENCES sales(id) ON DELETE CASCADE,
            FOREIGN KEY (product_id) REFERENCES products(id)
        );`,
		`CREATE TABLE IF NOT EXISTS payments (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            sale_id INTEGER NOT NULL,
            method TEXT NOT NULL,
            amount NUMERIC NOT NULL,
            created_at TEXT DEFAULT CURRENT_TIMESTAMP,
            FOREIGN KEY (sale_id) REFERENCES sales(id) ON DELETE CASCADE
        );`,
		`CREATE TABLE IF NOT EXISTS registers (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            code TEXT NOT NULL UNIQUE,
            operator_id INTEGER NOT NULL,
            opened_at TEXT NOT NULL,
            closed_at TEXT,
            opening_float NUMERIC NOT NULL DEFAULT 0,
            counted_amount NUMERIC,
            status TEXT NOT NULL DEFAULT 'open' CHECK(status IN ('open','closed')),
            FOREIGN KEY (operator_id) REFERENCES users(id)
        );`,
		`CREATE TABLE IF NOT EXISTS register_movements (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            register_id INTEGER NOT NULL,
            kind TEXT NOT NULL,
            method TEXT,
            amount NUMERIC NOT NULL,
            sale_id INTEGER,
            description TEXT,
            created_at TEXT DEFAULT CURRENT_TIMESTAMP,
            FOREIGN KEY (register_id) REFERENCES registers(id),
            FOREIGN KEY (sale_id) REFERENCES sales(id)
        );`,
		`CREATE TABLE IF NOT EXISTS store_config (
            id INTEGER PRIMARY KEY CHECK (id = 1),
            name TEXT,
            tax_id TEXT,
            address TEXT,
            phone TEXT,
            logo TEXT
        );`,
		`CREATE INDEX IF NOT EXISTS idx_products_name ON products(name);`,
		`CREATE INDEX IF NOT EXISTS idx_parties_name ON parties(name);`,
		`CREATE INDEX IF NOT EXISTS idx_sales_created_at ON sales(created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_movements_register ON register_movements(register_id);`,
		// One open register per operator, enforced by the store itself so two
		// racing opens cannot both win.
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_registers_open_operator
            ON registers(operator_id) WHERE status = 'open';`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return errors.Wrap(err, "apply schema")
		}
	}
	return nil
}
