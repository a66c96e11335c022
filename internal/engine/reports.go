package engine

import (
	"database/sql"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"pdvlite/m/domain"
)

// PeriodSummary aggregates the sales of a time window.
type PeriodSummary struct {
	NetTotal      decimal.Decimal `json:"net_total"`
	DiscountTotal decimal.Decimal `json:"discount_total"`
	Count         int64           `json:"count"`
}

// ProductSales is one row of the top-selling products report.
type ProductSales struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// RegisterSummary is one row of the per-period register report.
type RegisterSummary struct {
	Register      domain.Register `json:"register"`
	Operator      string          `json:"operator"`
	MovementTotal decimal.Decimal `json:"movement_total"`
	SalesTotal    decimal.Decimal `json:"sales_total"`
}

// SalesByPeriod lists the sales created inside [from, to].
func (e *Engine) SalesByPeriod(from, to time.Time) ([]domain.Sale, error) {
	var sales []domain.Sale
	err := e.db.Select(&sales, `SELECT id, code, operator_id, party_id, gross_total, discount, net_total, primary_method, created_at
        FROM sales WHERE created_at BETWEEN ? AND ? ORDER BY created_at DESC`,
		formatTime(from), formatTime(to))
	if err != nil {
		return nil, errors.Wrap(err, "load sales")
	}
	return sales, nil
}

// SalesSummary aggregates net totals, discounts and the sale count of a
// time window, summing over decimals.
func (e *Engine) SalesSummary(from, to time.Time) (PeriodSummary, error) {
	sales, err := e.SalesByPeriod(from, to)
	if err != nil {
		return PeriodSummary{}, err
	}
	summary := PeriodSummary{}
	for _, s := range sales {
		summary.NetTotal = summary.NetTotal.Add(s.NetTotal)
		summary.DiscountTotal = summary.DiscountTotal.Add(s.Discount)
		summary.Count++
	}
	return summary, nil
}

// PaymentsByMethod sums the payments of all sales inside [from, to],
// grouped by payment method.
func (e *Engine) PaymentsByMethod(from, to time.Time) (map[string]decimal.Decimal, error) {
	type row struct {
		Method string          `db:"method"`
		Amount decimal.Decimal `db:"amount"`
	}
	var rows []row
	err := e.db.Select(&rows, `SELECT p.method, p.amount FROM payments p
        INNER JOIN sales s ON s.id = p.sale_id
        WHERE s.created_at BETWEEN ? AND ?`,
		formatTime(from), formatTime(to))
	if err != nil {
		return nil, errors.Wrap(err, "load payments")
	}
	totals := make(map[string]decimal.Decimal)
	for _, r := range rows {
		totals[r.Method] = totals[r.Method].Add(r.Amount)
	}
	return totals, nil
}

// TopProducts lists the best-selling products of a time window by summed
// quantity, largest first.
func (e *Engine) TopProducts(from, to time.Time, limit int) ([]ProductSales, error) {
	type row struct {
		ProductID int64           `db:"product_id"`
		Name      string          `db:"name"`
		Quantity  decimal.Decimal `db:"quantity"`
	}
	var rows []row
	err := e.db.Select(&rows, `SELECT sl.product_id, pr.name, sl.quantity FROM sale_lines sl
        INNER JOIN sales s ON s.id = sl.sale_id
        INNER JOIN products pr ON pr.id = sl.product_id
        WHERE s.created_at BETWEEN ? AND ?`,
		formatTime(from), formatTime(to))
	if err != nil {
		return nil, errors.Wrap(err, "load sale lines")
	}

	byProduct := make(map[int64]*ProductSales)
	for _, r := range rows {
		entry, ok := byProduct[r.ProductID]
		if !ok {
			entry = &ProductSales{ProductID: r.ProductID, Name: r.Name}
			byProduct[r.ProductID] = entry
		}
		entry.Quantity = entry.Quantity.Add(r.Quantity)
	}

	ranking := make([]ProductSales, 0, len(byProduct))
	for _, entry := range byProduct {
		ranking = append(ranking, *entry)
	}
	sort.Slice(ranking, func(i, j int) bool {
		if !ranking[i].Quantity.Equal(ranking[j].Quantity) {
			return ranking[i].Quantity.GreaterThan(ranking[j].Quantity)
		}
		return ranking[i].Name < ranking[j].Name
	})
	if limit > 0 && len(ranking) > limit {
		ranking = ranking[:limit]
	}
	return ranking, nil
}

// SalesByParty lists a customer's purchase history, newest first.
func (e *Engine) SalesByParty(partyID int64) ([]domain.Sale, error) {
	var sales []domain.Sale
	err := e.db.Select(&sales, `SELECT id, code, operator_id, party_id, gross_total, discount, net_total, primary_method, created_at
        FROM sales WHERE party_id = ? ORDER BY created_at DESC`, partyID)
	if err != nil {
		return nil, errors.Wrap(err, "load party sales")
	}
	return sales, nil
}

// LastSale returns the most recent sale with its lines and payments, or
// domain.ErrNotFound when no sale exists yet.
func (e *Engine) LastSale() (*SaleResult, error) {
	var sale domain.Sale
	err := e.db.Get(&sale, `SELECT id, code, operator_id, party_id, gross_total, discount, net_total, primary_method, created_at
        FROM sales ORDER BY id DESC LIMIT 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrap(domain.ErrNotFound, "no sales")
	}
	if err != nil {
		return nil, errors.Wrap(err, "load last sale")
	}

	result := &SaleResult{Sale: sale}
	err = e.db.Select(&result.Lines, `SELECT id, sale_id, product_id, quantity, unit_price, line_total
        FROM sale_lines WHERE sale_id = ?`, sale.ID)
	if err != nil {
		return nil, errors.Wrap(err, "load sale lines")
	}
	err = e.db.Select(&result.Payments, `SELECT id, sale_id, method, amount, created_at
        FROM payments WHERE sale_id = ?`, sale.ID)
	if err != nil {
		return nil, errors.Wrap(err, "load payments")
	}
	return result, nil
}

// RegisterReport lists the register sessions opened inside [from, to] with
// their ledger totals and the sale-proceeds share.
func (e *Engine) RegisterReport(from, to time.Time) ([]RegisterSummary, error) {
	type row struct {
		domain.Register
		Operator string `db:"operator"`
	}
	var regs []row
	err := e.db.Select(&regs, `SELECT r.id, r.code, r.operator_id, r.opened_at, r.closed_at, r.opening_float, r.counted_amount, r.status, u.name AS operator
        FROM registers r INNER JOIN users u ON u.id = r.operator_id
        WHERE r.opened_at BETWEEN ? AND ? ORDER BY r.opened_at DESC`,
		formatTime(from), formatTime(to))
	if err != nil {
		return nil, errors.Wrap(err, "load registers")
	}

	report := make([]RegisterSummary, 0, len(regs))
	for _, reg := range regs {
		type mrow struct {
			Kind   string          `db:"kind"`
			Amount decimal.Decimal `db:"amount"`
		}
		var movements []mrow
		err := e.db.Select(&movements, `SELECT kind, amount FROM register_movements WHERE register_id = ?`, reg.ID)
		if err != nil {
			return nil, errors.Wrap(err, "load movements")
		}

		summary := RegisterSummary{Register: reg.Register, Operator: reg.Operator}
		for _, m := range movements {
			summary.MovementTotal = summary.MovementTotal.Add(m.Amount)
			if m.Kind == domain.MovementSale {
				summary.SalesTotal = summary.SalesTotal.Add(m.Amount)
			}
		}
		report = append(report, summary)
	}
	return report, nil
}

// MovementsByKind lists the ledger entries of one kind inside [from, to],
// newest first.
func (e *Engine) MovementsByKind(kind string, from, to time.Time) ([]domain.Movement, error) {
	if !domain.ValidMovementKind(kind) {
		return nil, domain.Validationf("unknown movement kind %q", kind)
	}
	var movements []domain.Movement
	err := e.db.Select(&movements, `SELECT id, register_id, kind, method, amount, sale_id, description, created_at
        FROM register_movements WHERE kind = ? AND created_at BETWEEN ? AND ?
        ORDER BY created_at DESC`,
		kind, formatTime(from), formatTime(to))
	if err != nil {
		return nil, errors.Wrap(err, "load movements")
	}
	return movements, nil
}

// MovementTotalByKind sums the ledger entries of one kind inside [from, to]
// and returns the absolute value, matching how payouts and losses are
// reported as positive figures.
func (e *Engine) MovementTotalByKind(kind string, from, to time.Time) (decimal.Decimal, error) {
	movements, err := e.MovementsByKind(kind, from, to)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, m := range movements {
		total = total.Add(m.Amount)
	}
	return total.Abs(), nil
}
