package domain

import "github.com/shopspring/decimal"

type Product struct {
	ID         int64           `db:"id" json:"id"`
	Name       string          `db:"name" json:"name"`
	SalePrice  decimal.Decimal `db:"sale_price" json:"sale_price"`
	Stock      decimal.Decimal `db:"stock" json:"stock"`
	MinStock   decimal.Decimal `db:"min_stock" json:"min_stock"`
	Barcode    *string         `db:"barcode" json:"barcode,omitempty"`
	Category   *string         `db:"category" json:"category,omitempty"`
	ExpiryDate *string         `db:"expiry_date" json:"expiry_date,omitempty"`
	Lot        *string         `db:"lot" json:"lot,omitempty"`
	CreatedAt  string          `db:"created_at" json:"created_at,omitempty"`
	UpdatedAt  string          `db:"updated_at" json:"updated_at,omitempty"`
}
