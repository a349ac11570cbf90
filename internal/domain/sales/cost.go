package sales

import "github.com/shopspring/decimal"

// FallbackCosts índice productCode → máximo costo-o-precio-de-compra
// positivo observado en TODO el historial del hecho (no solo en el subset
// filtrado del reporte). Así el costo de respaldo de un producto es conocible
// aun fuera de la ventana de filtros actual.
type FallbackCosts map[string]decimal.Decimal

// CostedRow fila con su costo unitario verdadero ya resuelto.
type CostedRow struct {
	Row
	TrueUnitCost decimal.Decimal
}

// Profit utilidad de la línea: netAmount − netQuantity × costo unitario.
func (c CostedRow) Profit() decimal.Decimal {
	return c.NetAmount().Sub(c.NetQuantity().Mul(c.TrueUnitCost))
}

// AttributeCosts motor de atribución de costos en dos niveles.
//
// Nivel 1 — promedio por grupo de transacción (fecha, cliente, producto):
//
//	avg = Σ(netQuantity × costOrPurchase) / Σ(netQuantity)   si Σ netQuantity > 0
//
// Nivel 2 — respaldo por producto: el máximo costo válido histórico del
// código (parámetro fallback).
//
// Resolución: promedio de grupo si es distinto de cero; si no, el respaldo;
// si tampoco existe, cero. El cero final es política deliberada ("margen
// optimista"): un producto sin ninguna observación de costo reporta 100% de
// margen en lugar de romper el cálculo.
func AttributeCosts(rows []Row, fallback FallbackCosts) []CostedRow {
	type groupKey struct {
		date     string
		customer string
		code     string
	}
	type groupAcc struct {
		weighted decimal.Decimal // Σ netQuantity × costOrPurchase
		quantity decimal.Decimal // Σ netQuantity
	}

	groups := make(map[groupKey]*groupAcc)
	for _, r := range rows {
		k := groupKey{r.DateKey(), r.CustomerName, r.ProductCode}
		acc, ok := groups[k]
		if !ok {
			acc = &groupAcc{}
			groups[k] = acc
		}
		q := r.NetQuantity()
		acc.weighted = acc.weighted.Add(q.Mul(r.UnitCostOrPurchase()))
		acc.quantity = acc.quantity.Add(q)
	}

	costed := make([]CostedRow, 0, len(rows))
	for _, r := range rows {
		k := groupKey{r.DateKey(), r.CustomerName, r.ProductCode}
		acc := groups[k]

		groupAvg := decimal.Zero
		if acc.quantity.IsPositive() {
			groupAvg = acc.weighted.Div(acc.quantity)
		}

		unitCost := groupAvg
		if unitCost.IsZero() {
			if fb, ok := fallback[r.ProductCode]; ok {
				unitCost = fb
			}
		}
		costed = append(costed, CostedRow{Row: r, TrueUnitCost: unitCost})
	}
	return costed
}

// BuildFallbackCosts construye el índice de respaldo desde filas en memoria
// (equivalente al agregado SQL del repositorio; útil para tests y para
// poblaciones ya cargadas).
func BuildFallbackCosts(rows []Row) FallbackCosts {
	fb := make(FallbackCosts)
	for _, r := range rows {
		if r.ProductCode == "" {
			continue
		}
		c := r.UnitCostOrPurchase()
		if !c.IsPositive() {
			continue
		}
		if cur, ok := fb[r.ProductCode]; !ok || c.GreaterThan(cur) {
			fb[r.ProductCode] = c
		}
	}
	return fb
}
