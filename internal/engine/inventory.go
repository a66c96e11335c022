package engine

import (
	"database/sql"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"pdvlite/m/domain"
)

// AdjustStock applies a signed delta to a product's stock as a single
// atomic update statement. There is no floor check: stock may go negative
// and the low-stock report is the signal, not a hard block.
func (e *Engine) AdjustStock(productID int64, delta decimal.Decimal) error {
	res, err := e.db.Exec(`UPDATE products SET stock = stock + ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		delta, productID)
	if err != nil {
		return errors.Wrap(err, "adjust stock")
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "adjust stock rows")
	}
	if rows == 0 {
		return errors.Wrapf(domain.ErrNotFound, "product %d", productID)
	}
	return nil
}

// StockOf returns a product's current stock quantity.
func (e *Engine) StockOf(productID int64) (decimal.Decimal, error) {
	var stock decimal.Decimal
	err := e.db.Get(&stock, `SELECT stock FROM products WHERE id = ?`, productID)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, errors.Wrapf(domain.ErrNotFound, "product %d", productID)
	}
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "read stock")
	}
	return stock, nil
}
