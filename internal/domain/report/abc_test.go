package report_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/sales-insight/internal/domain/report"
	"github.com/tu-usuario/sales-insight/internal/domain/sales"
)

// Escenario de bandas: ingresos [100, 100, 50, 50] → acumulados
// [33%, 67%, 83%, 100%] sobre 300 → bandas A, A, B, C.
func TestClassifyABC_EscenarioBandas(t *testing.T) {
	rows := []sales.CostedRow{
		costed("CLI-1", "P", 2025, 1, 100, 1, 0),
		costed("CLI-2", "P", 2025, 1, 100, 1, 0),
		costed("CLI-3", "P", 2025, 1, 50, 1, 0),
		costed("CLI-4", "P", 2025, 1, 50, 1, 0),
	}
	got := report.ClassifyABC(rows)
	require.Len(t, got, 4)

	assert.Equal(t, report.BandA, got[0].Band)
	assert.Equal(t, report.BandA, got[1].Band)
	assert.Equal(t, report.BandB, got[2].Band)
	assert.Equal(t, report.BandC, got[3].Band)

	// Empate de ingreso: desempate por nombre ascendente.
	assert.Equal(t, "CLI-1", got[0].CustomerName)
	assert.Equal(t, "CLI-2", got[1].CustomerName)
}

// Completitud: todo cliente con ingreso positivo recibe exactamente una
// banda; la unión A∪B∪C es la población positiva sin duplicados. Los
// clientes con ingreso no positivo no participan y no inflan el denominador.
func TestClassifyABC_CompletitudYDenominador(t *testing.T) {
	rows := []sales.CostedRow{
		costed("POS-1", "P", 2025, 1, 400, 1, 0),
		costed("POS-2", "P", 2025, 1, 100, 1, 0),
		costed("NEG", "P", 2025, 1, 0, 0, 0),
	}
	// NEG con ingreso neto negativo vía devolución
	neg := costed("NEG", "P", 2025, 1, 80, 2, 0)
	neg.ReceiptType = sales.ReceiptRetailReturn
	rows = append(rows, neg)

	got := report.ClassifyABC(rows)
	require.Len(t, got, 2, "solo clientes con ingreso positivo")

	seen := map[string]int{}
	for _, c := range got {
		seen[c.CustomerName]++
		assert.Contains(t, []report.ABCBand{report.BandA, report.BandB, report.BandC}, c.Band)
	}
	assert.Equal(t, map[string]int{"POS-1": 1, "POS-2": 1}, seen)

	// Denominador = 500 (solo positivos): POS-1 con 80% acumulado cae en A.
	assert.True(t, got[0].CumulativePct.Equal(decimal.NewFromInt(80)))
	assert.Equal(t, report.BandA, got[0].Band)
	assert.Equal(t, report.BandC, got[1].Band)
}

// Monotonicidad: orden no creciente por ingreso; ningún cliente C supera el
// ingreso de un A o B.
func TestClassifyABC_Monotonicidad(t *testing.T) {
	rows := []sales.CostedRow{
		costed("W", "P", 2025, 1, 500, 1, 0),
		costed("X", "P", 2025, 1, 200, 1, 0),
		costed("Y", "P", 2025, 1, 90, 1, 0),
		costed("Z", "P", 2025, 1, 10, 1, 0),
	}
	got := report.ClassifyABC(rows)
	require.NotEmpty(t, got)

	var minAB decimal.Decimal
	haveAB := false
	for i := 1; i < len(got); i++ {
		assert.True(t, got[i-1].Revenue.GreaterThanOrEqual(got[i].Revenue),
			"orden no creciente por ingreso")
	}
	for _, c := range got {
		if c.Band != report.BandC {
			if !haveAB || c.Revenue.LessThan(minAB) {
				minAB = c.Revenue
				haveAB = true
			}
		}
	}
	for _, c := range got {
		if c.Band == report.BandC && haveAB {
			assert.True(t, c.Revenue.LessThanOrEqual(minAB),
				"un C no puede superar a un A/B")
		}
	}
}

func TestClassifyABC_PoblacionVacia(t *testing.T) {
	assert.Empty(t, report.ClassifyABC(nil))
}
