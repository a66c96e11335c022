package domain

import "github.com/shopspring/decimal"

const (
	RegisterOpen   = "open"
	RegisterClosed = "closed"
)

// Movement kinds recorded in the register ledger.
const (
	MovementSale   = "sale"
	MovementPayout = "payout"
	MovementLoss   = "loss"
)

// ValidMovementKind reports whether kind is a known ledger entry kind.
func ValidMovementKind(kind string) bool {
	switch kind {
	case MovementSale, MovementPayout, MovementLoss:
		return true
	}
	return false
}

// Register is one cash-drawer session for an operator.
type Register struct {
	ID            int64               `db:"id" json:"id"`
	Code          string              `db:"code" json:"code"`
	OperatorID    int64               `db:"operator_id" json:"operator_id"`
	OpenedAt      string              `db:"opened_at" json:"opened_at"`
	ClosedAt      *string             `db:"closed_at" json:"closed_at,omitempty"`
	OpeningFloat  decimal.Decimal     `db:"opening_float" json:"opening_float"`
	CountedAmount decimal.NullDecimal `db:"counted_amount" json:"counted_amount,omitempty"`
	Status        string              `db:"status" json:"status"`
}

// Movement is a single signed cash-drawer ledger entry. Movements are
// insert-only: never updated, never deleted.
type Movement struct {
	ID          int64           `db:"id" json:"id"`
	RegisterID  int64           `db:"register_id" json:"register_id"`
	Kind        string          `db:"kind" json:"kind"`
	Method      string          `db:"method" json:"method"`
	Amount      decimal.Decimal `db:"amount" json:"amount"`
	SaleID      *int64          `db:"sale_id" json:"sale_id,omitempty"`
	Description *string         `db:"description" json:"description,omitempty"`
	CreatedAt   string          `db:"created_at" json:"created_at"`
}
