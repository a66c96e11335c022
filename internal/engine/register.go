package engine

import (
	"database/sql"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"pdvlite/m/domain"
)

// MovementInput carries one cash-drawer ledger entry.
type MovementInput struct {
	RegisterID  int64
	Kind        string
	Amount      decimal.Decimal
	Method      string
	SaleID      *int64
	Description string
}

// OpenRegister opens a cash-drawer session for an operator. An operator may
// have at most one open register: the query-first check gives the clean
// error, the partial unique index on registers closes the race window.
func (e *Engine) OpenRegister(operatorID int64, openingFloat decimal.Decimal) (*domain.Register, error) {
	if openingFloat.IsNegative() {
		return nil, domain.Validationf("opening float must not be negative, got %s", openingFloat)
	}

	var existing int64
	err := e.db.Get(&existing, `SELECT id FROM registers WHERE operator_id = ? AND status = ? ORDER BY opened_at DESC LIMIT 1`,
		operatorID, domain.RegisterOpen)
	if err == nil {
		return nil, domain.ErrRegisterAlreadyOpen
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrap(err, "check open register")
	}

	code := newCode("CX")
	res, err := e.db.Exec(`INSERT INTO registers (code, operator_id, opened_at, opening_float, status)
        VALUES (?, ?, CURRENT_TIMESTAMP, ?, ?)`,
		code, operatorID, openingFloat, domain.RegisterOpen)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrRegisterAlreadyOpen
		}
		return nil, errors.Wrap(err, "open register")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, errors.Wrap(err, "register id")
	}

	e.log.WithFields(logrus.Fields{"code": code, "operator": operatorID}).Info("register opened")
	return e.Register(id)
}

// Register loads one register session by id.
func (e *Engine) Register(registerID int64) (*domain.Register, error) {
	var reg domain.Register
	err := e.db.Get(&reg, `SELECT id, code, operator_id, opened_at, closed_at, opening_float, counted_amount, status
        FROM registers WHERE id = ?`, registerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrapf(domain.ErrNotFound, "register %d", registerID)
	}
	if err != nil {
		return nil, errors.Wrap(err, "load register")
	}
	return &reg, nil
}

// OpenRegisterFor returns the operator's currently open register, or
// domain.ErrNotFound when the operator has none.
func (e *Engine) OpenRegisterFor(operatorID int64) (*domain.Register, error) {
	var reg domain.Register
	err := e.db.Get(&reg, `SELECT id, code, operator_id, opened_at, closed_at, opening_float, counted_amount, status
        FROM registers WHERE operator_id = ? AND status = ? ORDER BY opened_at DESC LIMIT 1`,
		operatorID, domain.RegisterOpen)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrapf(domain.ErrNotFound, "no open register for operator %d", operatorID)
	}
	if err != nil {
		return nil, errors.Wrap(err, "load open register")
	}
	return &reg, nil
}

// RecordMovement appends one entry to a register's ledger. Payout and loss
// entries require a positive amount and a description; the amount is stored
// negated so outflows carry a negative sign in the ledger. Sale proceeds are
// stored as given.
func (e *Engine) RecordMovement(in MovementInput) (*domain.Movement, error) {
	if !domain.ValidMovementKind(in.Kind) {
		return nil, domain.Validationf("unknown movement kind %q", in.Kind)
	}
	if !domain.ValidPaymentMethod(in.Method) {
		return nil, domain.Validationf("unknown payment method %q", in.Method)
	}

	amount := in.Amount
	switch in.Kind {
	case domain.MovementPayout, domain.MovementLoss:
		if !in.Amount.IsPositive() {
			return nil, domain.Validationf("%s amount must be positive, got %s", in.Kind, in.Amount)
		}
		if in.Description == "" {
			return nil, domain.Validationf("%s requires a description", in.Kind)
		}
		amount = in.Amount.Neg()
	}

	if _, err := e.Register(in.RegisterID); err != nil {
		return nil, err
	}

	var description *string
	if in.Description != "" {
		description = &in.Description
	}
	res, err := e.db.Exec(`INSERT INTO register_movements (register_id, kind, method, amount, sale_id, description)
        VALUES (?, ?, ?, ?, ?, ?)`,
		in.RegisterID, in.Kind, in.Method, amount, in.SaleID, description)
	if err != nil {
		return nil, errors.Wrap(err, "insert movement")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, errors.Wrap(err, "movement id")
	}

	var movement domain.Movement
	err = e.db.Get(&movement, `SELECT id, register_id, kind, method, amount, sale_id, description, created_at
        FROM register_movements WHERE id = ?`, id)
	if err != nil {
		return nil, errors.Wrap(err, "load movement")
	}
	return &movement, nil
}

// CloseRegister transitions an open register to closed, stamping the close
// time and the counted closing amount. Variance against expected cash is a
// reporting concern, not computed here.
func (e *Engine) CloseRegister(registerID int64, countedAmount decimal.Decimal) error {
	res, err := e.db.Exec(`UPDATE registers SET status = ?, closed_at = CURRENT_TIMESTAMP, counted_amount = ?
        WHERE id = ? AND status = ?`,
		domain.RegisterClosed, countedAmount, registerID, domain.RegisterOpen)
	if err != nil {
		return errors.Wrap(err, "close register")
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "close register rows")
	}
	if rows == 0 {
		if _, err := e.Register(registerID); err != nil {
			return err
		}
		return domain.ErrRegisterNotOpen
	}

	e.log.WithField("register", registerID).Info("register closed")
	return nil
}

// TotalsByMethod sums a register's ledger entries grouped by payment method.
// Sums are computed over decimals, never as float SQL aggregates.
func (e *Engine) TotalsByMethod(registerID int64) (map[string]decimal.Decimal, error) {
	if _, err := e.Register(registerID); err != nil {
		return nil, err
	}

	type row struct {
		Method string          `db:"method"`
		Amount decimal.Decimal `db:"amount"`
	}
	var rows []row
	err := e.db.Select(&rows, `SELECT method, amount FROM register_movements WHERE register_id = ?`, registerID)
	if err != nil {
		return nil, errors.Wrap(err, "load movements")
	}

	totals := make(map[string]decimal.Decimal)
	for _, r := range rows {
		totals[r.Method] = totals[r.Method].Add(r.Amount)
	}
	return totals, nil
}
