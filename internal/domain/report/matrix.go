package report

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/sales-insight/internal/domain/sales"
)

// GroupSeries serie mensual de ingresos de un grupo de producto.
type GroupSeries struct {
	ProductGroup string
	Monthly      [12]decimal.Decimal // ingreso neto por mes (índice 0 = enero)
	Total        decimal.Decimal
}

// CategoryMatrix bloque de una categoría en el reporte matricial
// categoría → grupo de producto → serie mensual.
type CategoryMatrix struct {
	Category string
	Groups   []GroupSeries
	Total    decimal.Decimal
}

// SalesMatrix construye la estructura anidada del reporte matricial sobre la
// población ya filtrada (normalmente a un año). Meses fuera de 1..12 se
// descartan. Orden: categorías y grupos alfabéticos; vacíos agrupan bajo "".
func SalesMatrix(rows []sales.CostedRow) []CategoryMatrix {
	type key struct{ category, group string }
	cells := make(map[key]*[12]decimal.Decimal)
	for _, r := range rows {
		if r.Month < 1 || r.Month > 12 {
			continue
		}
		k := key{r.Category, r.ProductGroup}
		m, ok := cells[k]
		if !ok {
			m = &[12]decimal.Decimal{}
			cells[k] = m
		}
		m[r.Month-1] = m[r.Month-1].Add(r.NetAmount())
	}

	byCategory := make(map[string][]GroupSeries)
	for k, m := range cells {
		var total decimal.Decimal
		for _, v := range m {
			total = total.Add(v)
		}
		byCategory[k.category] = append(byCategory[k.category], GroupSeries{
			ProductGroup: k.group,
			Monthly:      *m,
			Total:        total,
		})
	}

	out := make([]CategoryMatrix, 0, len(byCategory))
	for category, groups := range byCategory {
		sort.Slice(groups, func(i, j int) bool { return groups[i].ProductGroup < groups[j].ProductGroup })
		var total decimal.Decimal
		for _, g := range groups {
			total = total.Add(g.Total)
		}
		out = append(out, CategoryMatrix{Category: category, Groups: groups, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

// MonthlyUnits serie de 12 meses con unidades netas por cada año pedido;
// meses sin datos quedan en cero (vista de comparación/canibalización de un
// producto entre los dos años de la ventana).
type MonthlyUnits struct {
	Month int
	Units map[int]decimal.Decimal // año → unidades netas
}

// UnitsByMonthAndYear agrega unidades netas por (mes, año) y materializa los
// 12 meses para los años dados.
func UnitsByMonthAndYear(rows []sales.CostedRow, years []int) []MonthlyUnits {
	type key struct{ year, month int }
	sums := make(map[key]decimal.Decimal)
	for _, r := range rows {
		if r.Month < 1 || r.Month > 12 {
			continue
		}
		k := key{r.Year, r.Month}
		sums[k] = sums[k].Add(r.NetQuantity())
	}

	out := make([]MonthlyUnits, 0, 12)
	for month := 1; month <= 12; month++ {
		mu := MonthlyUnits{Month: month, Units: make(map[int]decimal.Decimal, len(years))}
		for _, y := range years {
			mu.Units[y] = sums[key{y, month}]
		}
		out = append(out, mu)
	}
	return out
}
