package sales_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/sales-insight/internal/domain/sales"
)

func costedRow(date time.Time, customer, code string, qty float64, cost, purchase *float64) sales.Row {
	r := sales.Row{
		Date:         date,
		Year:         date.Year(),
		Month:        int(date.Month()),
		CustomerName: customer,
		ProductCode:  code,
		ProductName:  code,
		Quantity:     decimal.NewFromFloat(qty),
		ReceiptType:  sales.ReceiptRetailSale,
	}
	if cost != nil {
		r.Cost = decimal.NewNullDecimal(decimal.NewFromFloat(*cost))
	}
	if purchase != nil {
		r.PurchasePrice = decimal.NewNullDecimal(decimal.NewFromFloat(*purchase))
	}
	return r
}

func fp(v float64) *float64 { return &v }

// Escenario del promedio de grupo: dos filas del mismo (fecha, cliente,
// producto), una con costo 5 y otra sin costo pero con precio de compra 7.
// Promedio ponderado = (10×5 + 10×7) / 20 = 6. Si el monto total es 200,
// utilidad = 200 − 20×6 = 80 y margen 40%.
func TestAttributeCosts_PromedioDeGrupo(t *testing.T) {
	date := time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC)
	r1 := costedRow(date, "ACME", "P1", 10, fp(5), nil)
	r2 := costedRow(date, "ACME", "P1", 10, nil, fp(7))
	r1.Amount = decimal.NewFromInt(120)
	r2.Amount = decimal.NewFromInt(80)

	costed := sales.AttributeCosts([]sales.Row{r1, r2}, nil)
	require.Len(t, costed, 2)

	six := decimal.NewFromInt(6)
	for _, c := range costed {
		assert.True(t, c.TrueUnitCost.Equal(six), "costo unitario debe ser 6, fue %s", c.TrueUnitCost)
	}

	var profit decimal.Decimal
	for _, c := range costed {
		profit = profit.Add(c.Profit())
	}
	assert.True(t, profit.Equal(decimal.NewFromInt(80)), "utilidad total debe ser 80, fue %s", profit)
}

// Fallback de producto: si el grupo no tiene costo (promedio 0), se usa el
// máximo costo válido histórico del código.
func TestAttributeCosts_FallbackPorProducto(t *testing.T) {
	date := time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC)
	r := costedRow(date, "ACME", "P9", 4, nil, nil)
	r.Amount = decimal.NewFromInt(100)

	fallback := sales.FallbackCosts{"P9": decimal.NewFromInt(12)}
	costed := sales.AttributeCosts([]sales.Row{r}, fallback)
	require.Len(t, costed, 1)
	assert.True(t, costed[0].TrueUnitCost.Equal(decimal.NewFromInt(12)))
	// profit = 100 - 4×12 = 52
	assert.True(t, costed[0].Profit().Equal(decimal.NewFromInt(52)))
}

// Ley de fallback: un producto sin NINGUNA observación de costo en el
// historial resuelve costo 0 en todas sus filas (política de margen
// optimista; degradar, no fallar).
func TestAttributeCosts_SinCostoEnHistorial(t *testing.T) {
	date := time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)
	rows := []sales.Row{
		costedRow(date, "ACME", "SINCOSTO", 3, nil, nil),
		costedRow(date.AddDate(0, 1, 0), "OTRA", "SINCOSTO", 8, nil, nil),
	}
	costed := sales.AttributeCosts(rows, sales.FallbackCosts{})
	for _, c := range costed {
		assert.True(t, c.TrueUnitCost.IsZero())
		// margen 100%: utilidad == monto neto
		assert.True(t, c.Profit().Equal(c.NetAmount()))
	}
}

// Grupo con cantidad neta no positiva (devolución domina): el promedio de
// grupo es 0 y se cae al respaldo.
func TestAttributeCosts_GrupoConCantidadNetaNoPositiva(t *testing.T) {
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	ret := costedRow(date, "ACME", "P2", 5, fp(10), nil)
	ret.ReceiptType = sales.ReceiptRetailReturn // neto −5

	fallback := sales.FallbackCosts{"P2": decimal.NewFromInt(9)}
	costed := sales.AttributeCosts([]sales.Row{ret}, fallback)
	require.Len(t, costed, 1)
	assert.True(t, costed[0].TrueUnitCost.Equal(decimal.NewFromInt(9)))
}

func TestBuildFallbackCosts(t *testing.T) {
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	rows := []sales.Row{
		costedRow(date, "A", "P1", 1, fp(5), nil),
		costedRow(date, "B", "P1", 1, nil, fp(8)), // máximo
		costedRow(date, "C", "P1", 1, fp(0), nil), // cero no cuenta
		costedRow(date, "D", "", 1, fp(99), nil),  // sin código: fuera
		costedRow(date, "E", "P2", 1, nil, nil),   // sin costo: fuera
	}
	fb := sales.BuildFallbackCosts(rows)
	require.Len(t, fb, 1)
	assert.True(t, fb["P1"].Equal(decimal.NewFromInt(8)))
}
