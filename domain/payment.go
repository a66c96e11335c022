package domain

import "github.com/shopspring/decimal"

const MethodCash = "Cash"

// PaymentMethods is the closed set of accepted payment method tags.
var PaymentMethods = []string{
	"Cash",
	"Check",
	"Credit Card",
	"Debit Card",
	"PIX",
	"Meal Voucher",
	"Gift Voucher",
	"Other",
}

// ValidPaymentMethod reports whether method belongs to the accepted set.
func ValidPaymentMethod(method string) bool {
	for _, m := range PaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}

type Payment struct {
	ID        int64           `db:"id" json:"id"`
	SaleID    int64           `db:"sale_id" json:"sale_id"`
	Method    string          `db:"method" json:"method"`
	Amount    decimal.Decimal `db:"amount" json:"amount"`
	CreatedAt string          `db:"created_at" json:"created_at,omitempty"`
}
