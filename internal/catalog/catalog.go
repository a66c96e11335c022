package catalog

import "github.com/jmoiron/sqlx"

// Catalog bundles data access for products, parties, users and the store
// configuration. It is CRUD glue around the engine: no ledger invariants
// live here.
type Catalog struct {
	db *sqlx.DB
}

// New constructs a Catalog.
func New(db *sqlx.DB) *Catalog {
	return &Catalog{db: db}
}
