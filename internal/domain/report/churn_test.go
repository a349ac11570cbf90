package report_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/sales-insight/internal/domain/report"
	"github.com/tu-usuario/sales-insight/internal/domain/sales"
)

func TestChurn_DiferenciaDeConjuntos(t *testing.T) {
	prior := []sales.CostedRow{
		costed("SE-VA", "P", 2024, 3, 500, 1, 0),
		costed("SE-QUEDA", "P", 2024, 5, 200, 1, 0),
	}
	current := []sales.CostedRow{
		costed("SE-QUEDA", "P", 2025, 2, 250, 1, 0),
		costed("NUEVO", "P", 2025, 4, 90, 1, 0),
	}

	res := report.Churn(prior, current)

	require.Len(t, res.Churned, 1)
	assert.Equal(t, "SE-VA", res.Churned[0].CustomerName)
	assert.True(t, res.Churned[0].PriorRevenue.Equal(decimal.NewFromInt(500)))
	assert.True(t, res.LostRevenue.Equal(decimal.NewFromInt(500)))

	assert.Equal(t, []string{"NUEVO"}, res.New)
	assert.Equal(t, 2, res.PriorCount)
	assert.Equal(t, 2, res.CurrentCount)

	// Disjunción: churned ∩ new = ∅
	for _, c := range res.Churned {
		assert.NotContains(t, res.New, c.CustomerName)
	}
}

func TestChurn_SinMovimiento(t *testing.T) {
	rows := []sales.CostedRow{costed("A", "P", 2024, 1, 10, 1, 0)}
	same := []sales.CostedRow{costed("A", "P", 2025, 1, 10, 1, 0)}
	res := report.Churn(rows, same)
	assert.Empty(t, res.Churned)
	assert.Empty(t, res.New)
	assert.True(t, res.LostRevenue.IsZero())
}

func TestRetention_PorRepresentante(t *testing.T) {
	withRep := func(rep, customer string, year int) sales.CostedRow {
		r := costed(customer, "P", year, 1, 100, 1, 0)
		r.SalesRep = rep
		return r
	}
	prior := []sales.CostedRow{
		withRep("Ali", "C1", 2024),
		withRep("Ali", "C2", 2024),
		withRep("Veli", "C3", 2024),
	}
	current := []sales.CostedRow{
		withRep("Ali", "C1", 2025),
		withRep("Veli", "C9", 2025),
		withRep("Sade", "C8", 2025), // sin cartera previa
	}

	got := report.Retention(prior, current)
	require.Len(t, got, 3)

	byRep := map[string]report.RepRetention{}
	for _, r := range got {
		byRep[r.SalesRep] = r
	}

	assert.True(t, byRep["Ali"].RetentionPct.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, 2, byRep["Ali"].PriorCustomers)
	assert.Equal(t, 1, byRep["Ali"].Retained)

	assert.True(t, byRep["Veli"].RetentionPct.IsZero())

	// Frontera: representante sin clientes previos → exactamente 0, no NaN.
	assert.Equal(t, 0, byRep["Sade"].PriorCustomers)
	assert.True(t, byRep["Sade"].RetentionPct.IsZero())
}
