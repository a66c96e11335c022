package engine

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdvlite/m/domain"
)

func TestOpenRegister(t *testing.T) {
	e, db := newTestEngine(t)
	operator := createOperator(t, db, "clerk1")

	reg, err := e.OpenRegister(operator, dec(t, "100.00"))
	require.NoError(t, err)
	assert.Equal(t, domain.RegisterOpen, reg.Status)
	assert.NotEmpty(t, reg.Code)
	assert.NotEmpty(t, reg.OpenedAt)
	requireDecimal(t, "100.00", reg.OpeningFloat)
	assert.Nil(t, reg.ClosedAt)
	assert.False(t, reg.CountedAmount.Valid)
}

func TestOpenRegisterRejectsSecondOpen(t *testing.T) {
	e, db := newTestEngine(t)
	operator := createOperator(t, db, "clerk1")

	_, err := e.OpenRegister(operator, dec(t, "0"))
	require.NoError(t, err)

	_, err = e.OpenRegister(operator, dec(t, "0"))
	require.ErrorIs(t, err, domain.ErrRegisterAlreadyOpen)
}

func TestOpenRegisterDifferentOperators(t *testing.T) {
	e, db := newTestEngine(t)
	first := createOperator(t, db, "clerk1")
	second := createOperator(t, db, "clerk2")

	_, err := e.OpenRegister(first, dec(t, "0"))
	require.NoError(t, err)
	_, err = e.OpenRegister(second, dec(t, "0"))
	require.NoError(t, err)
}

func TestOpenRegisterConcurrentOpensOneWinner(t *testing.T) {
	e, db := newTestEngine(t)
	operator := createOperator(t, db, "clerk1")

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	openingFloat := decimal.Zero
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = e.OpenRegister(operator, openingFloat)
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
		} else {
			require.ErrorIs(t, err, domain.ErrRegisterAlreadyOpen)
		}
	}
	assert.Equal(t, 1, wins, "exactly one concurrent open must win")

	var open int
	require.NoError(t, db.Get(&open, `SELECT COUNT(*) FROM registers WHERE operator_id = ? AND status = 'open'`, operator))
	assert.Equal(t, 1, open)
}

func TestOpenRegisterNegativeFloat(t *testing.T) {
	e, db := newTestEngine(t)
	operator := createOperator(t, db, "clerk1")

	_, err := e.OpenRegister(operator, dec(t, "-1"))
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestCloseRegister(t *testing.T) {
	e, db := newTestEngine(t)
	operator := createOperator(t, db, "clerk1")

	reg, err := e.OpenRegister(operator, dec(t, "50"))
	require.NoError(t, err)

	require.NoError(t, e.CloseRegister(reg.ID, dec(t, "72.30")))

	closed, err := e.Register(reg.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RegisterClosed, closed.Status)
	require.NotNil(t, closed.ClosedAt)
	require.True(t, closed.CountedAmount.Valid)
	requireDecimal(t, "72.30", closed.CountedAmount.Decimal)

	// Closing again violates the state machine.
	err = e.CloseRegister(reg.ID, dec(t, "0"))
	require.ErrorIs(t, err, domain.ErrRegisterNotOpen)

	// And the operator may open a fresh session afterwards.
	_, err = e.OpenRegister(operator, dec(t, "0"))
	require.NoError(t, err)
}

func TestCloseRegisterUnknown(t *testing.T) {
	e, _ := newTestEngine(t)
	err := e.CloseRegister(9999, dec(t, "0"))
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOpenRegisterFor(t *testing.T) {
	e, db := newTestEngine(t)
	operator := createOperator(t, db, "clerk1")

	_, err := e.OpenRegisterFor(operator)
	require.ErrorIs(t, err, domain.ErrNotFound)

	reg, err := e.OpenRegister(operator, dec(t, "0"))
	require.NoError(t, err)

	found, err := e.OpenRegisterFor(operator)
	require.NoError(t, err)
	assert.Equal(t, reg.ID, found.ID)
}

func TestRecordMovementValidation(t *testing.T) {
	e, db := newTestEngine(t)
	operator := createOperator(t, db, "clerk1")
	reg, err := e.OpenRegister(operator, dec(t, "0"))
	require.NoError(t, err)

	cases := []struct {
		name string
		in   MovementInput
	}{
		{"unknown kind", MovementInput{RegisterID: reg.ID, Kind: "refund", Amount: dec(t, "10"), Method: "Cash"}},
		{"unknown method", MovementInput{RegisterID: reg.ID, Kind: domain.MovementSale, Amount: dec(t, "10"), Method: "Barter"}},
		{"payout zero amount", MovementInput{RegisterID: reg.ID, Kind: domain.MovementPayout, Amount: dec(t, "0"), Method: "Cash", Description: "x"}},
		{"payout negative amount", MovementInput{RegisterID: reg.ID, Kind: domain.MovementPayout, Amount: dec(t, "-5"), Method: "Cash", Description: "x"}},
		{"payout missing description", MovementInput{RegisterID: reg.ID, Kind: domain.MovementPayout, Amount: dec(t, "5"), Method: "Cash"}},
		{"loss missing description", MovementInput{RegisterID: reg.ID, Kind: domain.MovementLoss, Amount: dec(t, "5"), Method: "Cash"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.RecordMovement(tc.in)
			require.ErrorIs(t, err, domain.ErrValidation)
		})
	}

	var count int
	require.NoError(t, db.Get(&count, `SELECT COUNT(*) FROM register_movements`))
	assert.Zero(t, count, "rejected movements must not produce rows")
}

func TestRecordMovementUnknownRegister(t *testing.T) {
	e, _ := newTestEngine(t)
	_, err := e.RecordMovement(MovementInput{RegisterID: 404, Kind: domain.MovementSale, Amount: dec(t, "10"), Method: "Cash"})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordMovementSignConvention(t *testing.T) {
	e, db := newTestEngine(t)
	operator := createOperator(t, db, "clerk1")
	reg, err := e.OpenRegister(operator, dec(t, "0"))
	require.NoError(t, err)

	sale, err := e.RecordMovement(MovementInput{
		RegisterID: reg.ID, Kind: domain.MovementSale, Amount: dec(t, "30"), Method: "Cash",
	})
	require.NoError(t, err)
	requireDecimal(t, "30", sale.Amount)

	payout, err := e.RecordMovement(MovementInput{
		RegisterID: reg.ID, Kind: domain.MovementPayout, Amount: dec(t, "12.50"), Method: "Cash",
		Description: "supplier delivery",
	})
	require.NoError(t, err)
	requireDecimal(t, "-12.50", payout.Amount)
	require.NotNil(t, payout.Description)
	assert.Equal(t, "supplier delivery", *payout.Description)

	loss, err := e.RecordMovement(MovementInput{
		RegisterID: reg.ID, Kind: domain.MovementLoss, Amount: dec(t, "3"), Method: "Cash",
		Description: "broken bottle",
	})
	require.NoError(t, err)
	requireDecimal(t, "-3", loss.Amount)
}

func TestTotalsByMethod(t *testing.T) {
	e, db := newTestEngine(t)
	operator := createOperator(t, db, "clerk1")
	reg, err := e.OpenRegister(operator, dec(t, "0"))
	require.NoError(t, err)

	for _, m := range []struct {
		method string
		amount string
	}{
		{"Cash", "100"},
		{"PIX", "50"},
		{"Cash", "25"},
	} {
		_, err := e.RecordMovement(MovementInput{
			RegisterID: reg.ID, Kind: domain.MovementSale, Amount: dec(t, m.amount), Method: m.method,
		})
		require.NoError(t, err)
	}

	totals, err := e.TotalsByMethod(reg.ID)
	require.NoError(t, err)
	require.Len(t, totals, 2)
	requireDecimal(t, "125", totals["Cash"])
	requireDecimal(t, "50", totals["PIX"])
}

func TestTotalsByMethodUnknownRegister(t *testing.T) {
	e, _ := newTestEngine(t)
	_, err := e.TotalsByMethod(404)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

// Full drawer lifecycle: open with float 0, sell 2
// units at 10.00, record the proceeds, close counting 20.00.
func TestRegisterLifecycleEndToEnd(t *testing.T) {
	e, db := newTestEngine(t)
	operator := createOperator(t, db, "clerk1")
	product := createProduct(t, db, "Coffee", "10.00", "10")

	reg, err := e.OpenRegister(operator, dec(t, "0"))
	require.NoError(t, err)

	sale, err := e.RegisterSale(SaleInput{
		Lines:      []SaleLineInput{{ProductID: product, Quantity: dec(t, "2"), UnitPrice: dec(t, "10.00")}},
		OperatorID: operator,
	})
	require.NoError(t, err)
	requireDecimal(t, "20.00", sale.Sale.NetTotal)

	_, err = e.RecordMovement(MovementInput{
		RegisterID: reg.ID,
		Kind:       domain.MovementSale,
		Amount:     sale.Sale.NetTotal,
		Method:     domain.MethodCash,
		SaleID:     &sale.Sale.ID,
	})
	require.NoError(t, err)

	require.NoError(t, e.CloseRegister(reg.ID, dec(t, "20.00")))

	totals, err := e.TotalsByMethod(reg.ID)
	require.NoError(t, err)
	require.Len(t, totals, 1)
	requireDecimal(t, "20.00", totals["Cash"])

	stock, err := e.StockOf(product)
	require.NoError(t, err)
	requireDecimal(t, "8", stock)
}
