package report_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/sales-insight/internal/domain/report"
	"github.com/tu-usuario/sales-insight/internal/domain/sales"
)

func orderOn(customer string, date time.Time) sales.CostedRow {
	return sales.CostedRow{Row: sales.Row{
		Date:         date,
		Year:         date.Year(),
		Month:        int(date.Month()),
		CustomerName: customer,
		Quantity:     decimal.NewFromInt(1),
		Amount:       decimal.NewFromInt(10),
		ReceiptType:  sales.ReceiptRetailSale,
	}}
}

var today = time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC)

// Exclusión: un cliente con una sola fecha de pedido distinta nunca aparece
// en el reporte (no se clasifica como "safe").
func TestOrderRisk_ExcluyeClientesConUnPedido(t *testing.T) {
	rows := []sales.CostedRow{
		orderOn("UNICO", time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)),
		// dos líneas el mismo día siguen siendo UNA fecha distinta
		orderOn("UNICO", time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)),
	}
	got := report.OrderRisk(rows, today)
	assert.Empty(t, got)
}

func TestOrderRisk_Bandas(t *testing.T) {
	mk := func(customer string, dates ...time.Time) []sales.CostedRow {
		rows := make([]sales.CostedRow, 0, len(dates))
		for _, d := range dates {
			rows = append(rows, orderOn(customer, d))
		}
		return rows
	}

	// SEGURO: pedidos cada 30 días, el último hace 15 días.
	seguro := mk("SEGURO",
		time.Date(2025, 6, 17, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 7, 17, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 8, 16, 0, 0, 0, 0, time.UTC),
	)
	// RIESGOSO: gap promedio 30 días, sin comprar hace 50 (>1.5×, ≤2×).
	riesgoso := mk("RIESGOSO",
		time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 7, 12, 0, 0, 0, 0, time.UTC),
	)
	// MUY-RIESGOSO: gap promedio 10 días, sin comprar hace 60 (>2×).
	muyRiesgoso := mk("MUY-RIESGOSO",
		time.Date(2025, 6, 22, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC),
	)

	var rows []sales.CostedRow
	rows = append(rows, seguro...)
	rows = append(rows, riesgoso...)
	rows = append(rows, muyRiesgoso...)

	got := report.OrderRisk(rows, today)
	require.Len(t, got, 3)

	byName := map[string]report.CustomerRisk{}
	for _, c := range got {
		byName[c.CustomerName] = c
	}

	assert.Equal(t, report.RiskSafe, byName["SEGURO"].Band)
	assert.Equal(t, report.RiskRisky, byName["RIESGOSO"].Band)
	assert.Equal(t, report.RiskVeryRisk, byName["MUY-RIESGOSO"].Band)

	assert.True(t, byName["SEGURO"].AvgGapDays.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, 15, byName["SEGURO"].DaysSinceLast)
}

func TestOrderRisk_OrdenPorDiasSinComprar(t *testing.T) {
	rows := []sales.CostedRow{
		orderOn("RECIENTE", time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)),
		orderOn("RECIENTE", time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)),
		orderOn("ANTIGUO", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
		orderOn("ANTIGUO", time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)),
	}
	got := report.OrderRisk(rows, today)
	require.Len(t, got, 2)
	assert.Equal(t, "ANTIGUO", got[0].CustomerName, "el más tiempo sin comprar primero")
}
