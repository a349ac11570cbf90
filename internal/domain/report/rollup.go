// Package report implementa las etapas de agregación de los reportes como
// reductores puros sobre filas ya normalizadas y costeadas
// (sales.CostedRow). Ninguna etapa guarda estado entre invocaciones: cada
// reporte es función de (filas, filtros, instante de evaluación).
package report

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/sales-insight/internal/domain/sales"
)

var hundred = decimal.NewFromInt(100)

// Totals acumulado de ingresos, utilidad y volúmenes de una población.
type Totals struct {
	Revenue   decimal.Decimal
	Profit    decimal.Decimal
	Units     decimal.Decimal
	Liters    decimal.Decimal
	Customers int // clientes distintos
}

// MarginPct margen porcentual: 100 × Profit / Revenue; 0 cuando el ingreso
// es cero (degeneración esperada, no error).
func (t Totals) MarginPct() decimal.Decimal {
	if t.Revenue.IsZero() {
		return decimal.Zero
	}
	return t.Profit.Div(t.Revenue).Mul(hundred)
}

// Summarize reduce la población completa a un Totals.
func Summarize(rows []sales.CostedRow) Totals {
	var t Totals
	seen := make(map[string]struct{})
	for _, r := range rows {
		t.Revenue = t.Revenue.Add(r.NetAmount())
		t.Profit = t.Profit.Add(r.Profit())
		t.Units = t.Units.Add(r.NetQuantity())
		t.Liters = t.Liters.Add(r.NetVolume())
		if _, ok := seen[r.CustomerName]; !ok {
			seen[r.CustomerName] = struct{}{}
		}
	}
	t.Customers = len(seen)
	return t
}

// KeyFunc extrae la clave de agrupación de una fila.
type KeyFunc func(sales.CostedRow) string

// Claves de agrupación habituales.
func ByCustomer(r sales.CostedRow) string     { return r.CustomerName }
func BySalesRep(r sales.CostedRow) string     { return r.SalesRep }
func ByCategory(r sales.CostedRow) string     { return r.Category }
func ByProductGroup(r sales.CostedRow) string { return r.ProductGroup }

// ByYearMonth clave "YYYY-MM" para series mensuales.
func ByYearMonth(r sales.CostedRow) string {
	return fmt.Sprintf("%04d-%02d", r.Year, r.Month)
}

// ByProduct agrupa por el nombre canónico del código (proyección "último
// nombre por código"); filas sin código usan el nombre de la fila.
func ByProduct(canonical map[string]string) KeyFunc {
	return func(r sales.CostedRow) string {
		if name, ok := canonical[r.ProductCode]; ok && name != "" {
			return name
		}
		return r.ProductName
	}
}

// GroupTotals Totals de un grupo del rollup.
type GroupTotals struct {
	Key string
	Totals
}

// Rollup agrega la población por la clave dada. El orden de salida es
// determinista: utilidad descendente, empates por clave ascendente.
func Rollup(rows []sales.CostedRow, key KeyFunc) []GroupTotals {
	type acc struct {
		t    Totals
		seen map[string]struct{}
	}
	groups := make(map[string]*acc)
	for _, r := range rows {
		k := key(r)
		a, ok := groups[k]
		if !ok {
			a = &acc{seen: make(map[string]struct{})}
			groups[k] = a
		}
		a.t.Revenue = a.t.Revenue.Add(r.NetAmount())
		a.t.Profit = a.t.Profit.Add(r.Profit())
		a.t.Units = a.t.Units.Add(r.NetQuantity())
		a.t.Liters = a.t.Liters.Add(r.NetVolume())
		a.seen[r.CustomerName] = struct{}{}
	}

	out := make([]GroupTotals, 0, len(groups))
	for k, a := range groups {
		a.t.Customers = len(a.seen)
		out = append(out, GroupTotals{Key: k, Totals: a.t})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Profit.Equal(out[j].Profit) {
			return out[i].Profit.GreaterThan(out[j].Profit)
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// RollupByKeyAsc como Rollup pero ordenado por clave ascendente (series
// temporales "YYYY-MM" y listados alfabéticos).
func RollupByKeyAsc(rows []sales.CostedRow, key KeyFunc) []GroupTotals {
	out := Rollup(rows, key)
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
