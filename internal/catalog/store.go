package catalog

import (
	"database/sql"

	"github.com/pkg/errors"

	"pdvlite/m/domain"
)

// StoreConfig loads the singleton company configuration row.
func (c *Catalog) StoreConfig() (*domain.StoreConfig, error) {
	var cfg domain.StoreConfig
	err := c.db.Get(&cfg, `SELECT id, name, tax_id, address, phone, logo FROM store_config WHERE id = 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrap(domain.ErrNotFound, "store config missing, seed the database")
	}
	if err != nil {
		return nil, errors.Wrap(err, "load store config")
	}
	return &cfg, nil
}

// UpdateStoreConfig rewrites the singleton company configuration row.
func (c *Catalog) UpdateStoreConfig(cfg *domain.StoreConfig) error {
	_, err := c.db.Exec(`UPDATE store_config SET name = ?, tax_id = ?, address = ?, phone = ?, logo = ? WHERE id = 1`,
		cfg.Name, cfg.TaxID, cfg.Address, cfg.Phone, cfg.Logo)
	if err != nil {
		return errors.Wrap(err, "update store config")
	}
	return nil
}
