package domain

import "github.com/shopspring/decimal"

type Sale struct {
	ID            int64           `db:"id" json:"id"`
	Code          string          `db:"code" json:"code"`
	OperatorID    int64           `db:"operator_id" json:"operator_id"`
	PartyID       *int64          `db:"party_id" json:"party_id,omitempty"`
	GrossTotal    decimal.Decimal `db:"gross_total" json:"gross_total"`
	Discount      decimal.Decimal `db:"discount" json:"discount"`
	NetTotal      decimal.Decimal `db:"net_total" json:"net_total"`
	PrimaryMethod string          `db:"primary_method" json:"primary_method"`
	CreatedAt     string          `db:"created_at" json:"created_at"`
}

type SaleLine struct {
	ID        int64           `db:"id" json:"id"`
	SaleID    int64           `db:"sale_id" json:"sale_id"`
	ProductID int64           `db:"product_id" json:"product_id"`
	Quantity  decimal.Decimal `db:"quantity" json:"quantity"`
	UnitPrice decimal.Decimal `db:"unit_price" json:"unit_price"`
	LineTotal decimal.Decimal `db:"line_total" json:"line_total"`
}
