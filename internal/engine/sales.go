package engine

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"pdvlite/m/domain"
	"pdvlite/m/internal/database"
)

// SaleLineInput is one cart entry. The unit price is the cart snapshot and
// is not re-read from the catalog.
type SaleLineInput struct {
	ProductID int64
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// PaymentInput is one payment split for a sale.
type PaymentInput struct {
	Method string
	Amount decimal.Decimal
}

// SaleInput carries everything needed to register a sale.
type SaleInput struct {
	Lines         []SaleLineInput
	OperatorID    int64
	PartyID       *int64
	Discount      decimal.Decimal
	Payments      []PaymentInput
	PrimaryMethod string
}

// SaleResult echoes the persisted sale for receipt display.
type SaleResult struct {
	Sale     domain.Sale       `json:"sale"`
	Lines    []domain.SaleLine `json:"lines"`
	Payments []domain.Payment  `json:"payments"`
}

// RegisterSale validates the cart, computes totals, and persists the sale
// header, its lines, the stock decrements and the payment splits as one
// atomic unit of work. Any failure rolls the entire set back.
//
// The discount is clamped to [0, gross]. When no payment splits are given a
// single payment of the full net amount is synthesized with the primary
// method (default Cash). Explicit splits must sum to the net total. Stock is
// decremented unconditionally: overselling is allowed and negative stock
// feeds the low-stock report.
func (e *Engine) RegisterSale(in SaleInput) (*SaleResult, error) {
	if len(in.Lines) == 0 {
		return nil, domain.ErrEmptyCart
	}
	for _, line := range in.Lines {
		if !line.Quantity.IsPositive() {
			return nil, domain.Validationf("line quantity must be positive, got %s", line.Quantity)
		}
		if line.UnitPrice.IsNegative() {
			return nil, domain.Validationf("line unit price must not be negative, got %s", line.UnitPrice)
		}
	}

	method := in.PrimaryMethod
	if method == "" {
		method = domain.MethodCash
	}
	if !domain.ValidPaymentMethod(method) {
		return nil, domain.Validationf("unknown payment method %q", method)
	}

	gross := decimal.Zero
	for _, line := range in.Lines {
		gross = gross.Add(line.Quantity.Mul(line.UnitPrice))
	}
	discount := in.Discount
	if discount.IsNegative() {
		discount = decimal.Zero
	}
	if discount.GreaterThan(gross) {
		discount = gross
	}
	net := gross.Sub(discount)

	payments := in.Payments
	if len(payments) == 0 {
		payments = []PaymentInput{{Method: method, Amount: net}}
	} else {
		paid := decimal.Zero
		for _, p := range payments {
			if !domain.ValidPaymentMethod(p.Method) {
				return nil, domain.Validationf("unknown payment method %q", p.Method)
			}
			if p.Amount.IsNegative() {
				return nil, domain.Validationf("payment amount must not be negative, got %s", p.Amount)
			}
			paid = paid.Add(p.Amount)
		}
		if !paid.Equal(net) {
			return nil, domain.Validationf("payments total %s does not match net total %s", paid, net)
		}
	}

	code := newCode("VND")
	result := &SaleResult{}

	err := database.WithTx(e.db, func(tx *sqlx.Tx) error {
		res, err := tx.Exec(`INSERT INTO sales (code, operator_id, party_id, gross_total, discount, net_total, primary_method)
            VALUES (?, ?, ?, ?, ?, ?, ?)`,
			code, in.OperatorID, in.PartyID, gross, discount, net, method)
		if err != nil {
			return errors.Wrap(err, "insert sale")
		}
		saleID, err := res.LastInsertId()
		if err != nil {
			return errors.Wrap(err, "sale id")
		}

		for _, line := range in.Lines {
			var one int
			err := tx.Get(&one, `SELECT 1 FROM products WHERE id = ?`, line.ProductID)
			if errors.Is(err, sql.ErrNoRows) {
				return errors.Wrapf(domain.ErrNotFound, "product %d", line.ProductID)
			}
			if err != nil {
				return errors.Wrap(err, "check product")
			}

			lineTotal := line.Quantity.Mul(line.UnitPrice)
			res, err := tx.Exec(`INSERT INTO sale_lines (sale_id, product_id, quantity, unit_price, line_total)
                VALUES (?, ?, ?, ?, ?)`,
				saleID, line.ProductID, line.Quantity, line.UnitPrice, lineTotal)
			if err != nil {
				return errors.Wrap(err, "insert sale line")
			}
			lineID, err := res.LastInsertId()
			if err != nil {
				return errors.Wrap(err, "sale line id")
			}

			_, err = tx.Exec(`UPDATE products SET stock = stock - ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
				line.Quantity, line.ProductID)
			if err != nil {
				return errors.Wrap(err, "decrement stock")
			}

			result.Lines = append(result.Lines, domain.SaleLine{
				ID:        lineID,
				SaleID:    saleID,
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				UnitPrice: line.UnitPrice,
				LineTotal: lineTotal,
			})
		}

		for _, p := range payments {
			res, err := tx.Exec(`INSERT INTO payments (sale_id, method, amount) VALUES (?, ?, ?)`,
				saleID, p.Method, p.Amount)
			if err != nil {
				return errors.Wrap(err, "insert payment")
			}
			paymentID, err := res.LastInsertId()
			if err != nil {
				return errors.Wrap(err, "payment id")
			}
			result.Payments = append(result.Payments, domain.Payment{
				ID:     paymentID,
				SaleID: saleID,
				Method: p.Method,
				Amount: p.Amount,
			})
		}

		var createdAt string
		if err := tx.Get(&createdAt, `SELECT created_at FROM sales WHERE id = ?`, saleID); err != nil {
			return errors.Wrap(err, "read sale timestamp")
		}

		result.Sale = domain.Sale{
			ID:            saleID,
			Code:          code,
			OperatorID:    in.OperatorID,
			PartyID:       in.PartyID,
			GrossTotal:    gross,
			Discount:      discount,
			NetTotal:      net,
			PrimaryMethod: method,
			CreatedAt:     createdAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.log.WithFields(logrus.Fields{
		"code":  code,
		"lines": len(in.Lines),
		"net":   net.String(),
	}).Info("sale registered")
	return result, nil
}
