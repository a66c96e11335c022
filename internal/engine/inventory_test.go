package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"pdvlite/m/domain"
)

func TestAdjustStock(t *testing.T) {
	e, db := newTestEngine(t)
	product := createProduct(t, db, "Coffee", "10.00", "10")

	require.NoError(t, e.AdjustStock(product, dec(t, "5")))
	stock, err := e.StockOf(product)
	require.NoError(t, err)
	requireDecimal(t, "15", stock)

	require.NoError(t, e.AdjustStock(product, dec(t, "-20")))
	stock, err = e.StockOf(product)
	require.NoError(t, err)
	requireDecimal(t, "-5", stock)
}

func TestAdjustStockFractionalQuantities(t *testing.T) {
	e, db := newTestEngine(t)
	product := createProduct(t, db, "Flour", "3.20", "2.5")

	require.NoError(t, e.AdjustStock(product, dec(t, "0.75")))
	stock, err := e.StockOf(product)
	require.NoError(t, err)
	requireDecimal(t, "3.25", stock)
}

func TestAdjustStockUnknownProduct(t *testing.T) {
	e, _ := newTestEngine(t)
	err := e.AdjustStock(9999, dec(t, "1"))
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = e.StockOf(9999)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
