package catalog

import (
	"database/sql"
	"strings"
	"time"

	"github.com/pkg/errors"

	"pdvlite/m/domain"
)

const productColumns = `id, name, sale_price, stock, min_stock, barcode, category, expiry_date, lot, created_at, updated_at`

// ListProducts returns the catalog ordered by name, optionally filtered by
// a name or barcode fragment.
func (c *Catalog) ListProducts(search string) ([]domain.Product, error) {
	var products []domain.Product
	var err error
	if search != "" {
		like := "%" + strings.ToUpper(search) + "%"
		err = c.db.Select(&products, `SELECT `+productColumns+` FROM products
            WHERE UPPER(name) LIKE ? OR UPPER(COALESCE(barcode, '')) LIKE ?
            ORDER BY name`, like, like)
	} else {
		err = c.db.Select(&products, `SELECT `+productColumns+` FROM products ORDER BY name`)
	}
	if err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	return products, nil
}

// GetProduct loads one product by id.
func (c *Catalog) GetProduct(id int64) (*domain.Product, error) {
	var p domain.Product
	err := c.db.Get(&p, `SELECT `+productColumns+` FROM products WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrapf(domain.ErrNotFound, "product %d", id)
	}
	if err != nil {
		return nil, errors.Wrap(err, "load product")
	}
	return &p, nil
}

// ProductByBarcode loads one product by its barcode.
func (c *Catalog) ProductByBarcode(barcode string) (*domain.Product, error) {
	var p domain.Product
	err := c.db.Get(&p, `SELECT `+productColumns+` FROM products WHERE barcode = ?`, barcode)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrapf(domain.ErrNotFound, "barcode %s", barcode)
	}
	if err != nil {
		return nil, errors.Wrap(err, "load product by barcode")
	}
	return &p, nil
}

// CreateProduct inserts a product and returns its id.
func (c *Catalog) CreateProduct(p *domain.Product) (int64, error) {
	if p.Name == "" {
		return 0, domain.Validationf("product name is required")
	}
	if p.SalePrice.IsNegative() {
		return 0, domain.Validationf("sale price must not be negative")
	}
	res, err := c.db.Exec(`INSERT INTO products (name, sale_price, stock, min_stock, barcode, category, expiry_date, lot)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Name, p.SalePrice, p.Stock, p.MinStock, p.Barcode, p.Category, p.ExpiryDate, p.Lot)
	if err != nil {
		return 0, errors.Wrap(err, "insert product")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, errors.Wrap(err, "product id")
	}
	return id, nil
}

// UpdateProduct rewrites a product row.
func (c *Catalog) UpdateProduct(p *domain.Product) error {
	if p.Name == "" {
		return domain.Validationf("product name is required")
	}
	res, err := c.db.Exec(`UPDATE products
        SET name = ?, sale_price = ?, stock = ?, min_stock = ?, barcode = ?, category = ?, expiry_date = ?, lot = ?,
            updated_at = CURRENT_TIMESTAMP
        WHERE id = ?`,
		p.Name, p.SalePrice, p.Stock, p.MinStock, p.Barcode, p.Category, p.ExpiryDate, p.Lot, p.ID)
	if err != nil {
		return errors.Wrap(err, "update product")
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "update product rows")
	}
	if rows == 0 {
		return errors.Wrapf(domain.ErrNotFound, "product %d", p.ID)
	}
	return nil
}

// DeleteProduct removes a product from the catalog.
func (c *Catalog) DeleteProduct(id int64) error {
	res, err := c.db.Exec(`DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "delete product")
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "delete product rows")
	}
	if rows == 0 {
		return errors.Wrapf(domain.ErrNotFound, "product %d", id)
	}
	return nil
}

// LowStockProducts lists the products whose stock fell below their minimum
// threshold. Negative stock from overselling lands here too.
func (c *Catalog) LowStockProducts() ([]domain.Product, error) {
	var products []domain.Product
	err := c.db.Select(&products, `SELECT `+productColumns+` FROM products WHERE stock < min_stock ORDER BY name`)
	if err != nil {
		return nil, errors.Wrap(err, "list low stock")
	}
	return products, nil
}

// NearExpiryProducts lists products whose expiry date falls within the next
// given number of days.
func (c *Catalog) NearExpiryProducts(days int) ([]domain.Product, error) {
	limit := time.Now().AddDate(0, 0, days).Format("2006-01-02")
	var products []domain.Product
	err := c.db.Select(&products, `SELECT `+productColumns+` FROM products
        WHERE expiry_date IS NOT NULL AND expiry_date <= ? ORDER BY expiry_date`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "list near expiry")
	}
	return products, nil
}
