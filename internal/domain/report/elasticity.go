package report

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/sales-insight/internal/domain/sales"
)

// PricePoint precio unitario promedio de un producto en un mes.
type PricePoint struct {
	Year         int
	Month        int
	AvgUnitPrice decimal.Decimal // promedio de netAmount/netQuantity por línea
	Units        decimal.Decimal // cantidad neta de las líneas que califican
	Lines        int
}

// PriceSeries serie mensual de precio unitario promedio para la población
// dada (normalmente ya filtrada a un producto).
//
// Solo califican líneas con cantidad neta Y monto neto estrictamente
// positivos: la división por cero se evita EXCLUYENDO la línea de este
// promedio, no sustituyendo por cero (sustituir deprimiría el precio).
func PriceSeries(rows []sales.CostedRow) []PricePoint {
	type key struct{ year, month int }
	type acc struct {
		sum   decimal.Decimal
		units decimal.Decimal
		n     int
	}
	groups := make(map[key]*acc)
	for _, r := range rows {
		qty := r.NetQuantity()
		amt := r.NetAmount()
		if !qty.IsPositive() || !amt.IsPositive() {
			continue
		}
		k := key{r.Year, r.Month}
		a, ok := groups[k]
		if !ok {
			a = &acc{}
			groups[k] = a
		}
		a.sum = a.sum.Add(amt.Div(qty))
		a.units = a.units.Add(qty)
		a.n++
	}

	out := make([]PricePoint, 0, len(groups))
	for k, a := range groups {
		out = append(out, PricePoint{
			Year:         k.year,
			Month:        k.month,
			AvgUnitPrice: a.sum.Div(decimal.NewFromInt(int64(a.n))),
			Units:        a.units,
			Lines:        a.n,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out
}
