package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/sales-insight/internal/domain/sales"
)

func TestWhereBuilder_SinCondiciones(t *testing.T) {
	var b whereBuilder
	assert.Empty(t, b.clause())
	assert.Empty(t, b.args)
}

func TestWhereBuilder_PlaceholdersPosicionales(t *testing.T) {
	var b whereBuilder
	b.add("year = ?", 2025)
	b.add("sales_rep = ?", "CARLOS")
	b.add("receipt_type = ANY(?)", []int32{21, 23})

	assert.Equal(t, " WHERE year = $1 AND sales_rep = $2 AND receipt_type = ANY($3)", b.clause())
	assert.Equal(t, []any{2025, "CARLOS", []int32{21, 23}}, b.args)
}

func TestWhereBuilder_CondicionSinArgumentos(t *testing.T) {
	var b whereBuilder
	b.add("supplier IS NOT NULL")
	b.add("supplier <> ?", "GENEL HARCAMA")

	assert.Equal(t, " WHERE supplier IS NOT NULL AND supplier <> $1", b.clause())
	assert.Equal(t, []any{"GENEL HARCAMA"}, b.args)
}

func TestWhereBuilder_Politica(t *testing.T) {
	var b whereBuilder
	b.applyPolicy(sales.DefaultPolicy())

	clause := b.clause()
	assert.Contains(t, clause, "year = ANY($1)")
	assert.Contains(t, clause, "product_name <> $2")
	assert.Contains(t, clause, "supplier <> $3")
	assert.Equal(t, []int32{2024, 2025}, b.args[0])
	assert.Equal(t, "HİZMET", b.args[1])
	assert.Equal(t, "GENEL HARCAMA", b.args[2])
}

func TestWhereBuilder_PoliticaVacia(t *testing.T) {
	var b whereBuilder
	b.applyPolicy(sales.Policy{})
	assert.Empty(t, b.clause())
}

func TestWhereBuilder_FiltroCompleto(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	f := sales.Filter{
		StartDate: &start,
		EndDate:   &end,
		SalesRep:  "AYŞE",
		Channel:   sales.ChannelRetail,
	}

	var b whereBuilder
	b.applyFilter(f)

	clause := b.clause()
	assert.Contains(t, clause, "date >= $1")
	assert.Contains(t, clause, "date <= $2")
	assert.Contains(t, clause, "sales_rep = $3")
	assert.Contains(t, clause, "receipt_type = ANY($4)")
	assert.Equal(t, []int32{101, 102}, b.args[3])
}

func TestWhereBuilder_FiltroVacioNoAportaCondiciones(t *testing.T) {
	var b whereBuilder
	b.applyFilter(sales.Filter{})
	assert.Empty(t, b.clause())
	assert.Empty(t, b.args)
}

func TestWhereBuilder_FiltroPorProductoUsaNombreCanonico(t *testing.T) {
	var b whereBuilder
	b.applyFilter(sales.Filter{Product: "ABSOLUT VODKA 70CL"})

	clause := b.clause()
	assert.Contains(t, clause, "product_code IN (SELECT product_code FROM (")
	assert.Contains(t, clause, "c.rn = 1 AND c.product_name = $1")
	assert.Equal(t, []any{"ABSOLUT VODKA 70CL"}, b.args)
}
