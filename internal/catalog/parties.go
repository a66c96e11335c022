package catalog

import (
	"database/sql"
	"strings"

	"github.com/pkg/errors"

	"pdvlite/m/domain"
)

const partyColumns = `id, name, document, phone, email, notes, created_at`

// ListParties returns the customers ordered by name, optionally filtered by
// a name or document fragment.
func (c *Catalog) ListParties(search string) ([]domain.Party, error) {
	var parties []domain.Party
	var err error
	if search != "" {
		like := "%" + strings.ToUpper(search) + "%"
		err = c.db.Select(&parties, `SELECT `+partyColumns+` FROM parties
            WHERE UPPER(name) LIKE ? OR UPPER(COALESCE(document, '')) LIKE ?
            ORDER BY name`, like, like)
	} else {
		err = c.db.Select(&parties, `SELECT `+partyColumns+` FROM parties ORDER BY name`)
	}
	if err != nil {
		return nil, errors.Wrap(err, "list parties")
	}
	return parties, nil
}

// GetParty loads one customer by id.
func (c *Catalog) GetParty(id int64) (*domain.Party, error) {
	var p domain.Party
	err := c.db.Get(&p, `SELECT `+partyColumns+` FROM parties WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrapf(domain.ErrNotFound, "party %d", id)
	}
	if err != nil {
		return nil, errors.Wrap(err, "load party")
	}
	return &p, nil
}

// WalkInParty returns the sentinel customer used when no party is chosen.
func (c *Catalog) WalkInParty() (*domain.Party, error) {
	var p domain.Party
	err := c.db.Get(&p, `SELECT `+partyColumns+` FROM parties WHERE name = ? LIMIT 1`, domain.WalkInPartyName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrap(domain.ErrNotFound, "walk-in party missing, seed the database")
	}
	if err != nil {
		return nil, errors.Wrap(err, "load walk-in party")
	}
	return &p, nil
}

// CreateParty inserts a customer and returns its id.
func (c *Catalog) CreateParty(p *domain.Party) (int64, error) {
	if p.Name == "" {
		return 0, domain.Validationf("party name is required")
	}
	res, err := c.db.Exec(`INSERT INTO parties (name, document, phone, email, notes) VALUES (?, ?, ?, ?, ?)`,
		p.Name, p.Document, p.Phone, p.Email, p.Notes)
	if err != nil {
		return 0, errors.Wrap(err, "insert party")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, errors.Wrap(err, "party id")
	}
	return id, nil
}

// UpdateParty rewrites a customer row.
func (c *Catalog) UpdateParty(p *domain.Party) error {
	if p.Name == "" {
		return domain.Validationf("party name is required")
	}
	res, err := c.db.Exec(`UPDATE parties SET name = ?, document = ?, phone = ?, email = ?, notes = ? WHERE id = ?`,
		p.Name, p.Document, p.Phone, p.Email, p.Notes, p.ID)
	if err != nil {
		return errors.Wrap(err, "update party")
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "update party rows")
	}
	if rows == 0 {
		return errors.Wrapf(domain.ErrNotFound, "party %d", p.ID)
	}
	return nil
}

// DeleteParty removes a customer.
func (c *Catalog) DeleteParty(id int64) error {
	res, err := c.db.Exec(`DELETE FROM parties WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "delete party")
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "delete party rows")
	}
	if rows == 0 {
		return errors.Wrapf(domain.ErrNotFound, "party %d", id)
	}
	return nil
}
