package report

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/sales-insight/internal/domain/sales"
)

// ABCBand banda de clasificación de Pareto de clientes.
type ABCBand string

const (
	BandA ABCBand = "A" // acumulado ≤ 80% del ingreso
	BandB ABCBand = "B" // 80% < acumulado ≤ 95%
	BandC ABCBand = "C" // resto
)

var (
	abcCutA = decimal.NewFromInt(80)
	abcCutB = decimal.NewFromInt(95)
)

// ABCCustomer un cliente clasificado.
type ABCCustomer struct {
	CustomerName  string
	Revenue       decimal.Decimal
	SharePct      decimal.Decimal // participación en el ingreso total positivo
	CumulativePct decimal.Decimal // participación acumulada (incluye al propio cliente)
	Band          ABCBand
}

// ClassifyABC clasifica clientes por participación acumulada de ingreso.
//
// Reglas:
//   - Solo participan clientes con ingreso neto total estrictamente positivo;
//     el denominador es la suma de esos clientes, no de toda la población.
//   - Orden: ingreso descendente, empates por nombre ascendente (determinista).
//   - Banda por el acumulado que incluye al cliente: ≤80 A, ≤95 B, resto C.
//
// Cada cliente positivo recibe exactamente una banda; la unión A∪B∪C es la
// población positiva sin duplicados.
func ClassifyABC(rows []sales.CostedRow) []ABCCustomer {
	perCustomer := make(map[string]decimal.Decimal)
	for _, r := range rows {
		perCustomer[r.CustomerName] = perCustomer[r.CustomerName].Add(r.NetAmount())
	}

	var grandTotal decimal.Decimal
	customers := make([]ABCCustomer, 0, len(perCustomer))
	for name, rev := range perCustomer {
		if !rev.IsPositive() {
			continue
		}
		customers = append(customers, ABCCustomer{CustomerName: name, Revenue: rev})
		grandTotal = grandTotal.Add(rev)
	}
	if len(customers) == 0 {
		return []ABCCustomer{}
	}

	sort.Slice(customers, func(i, j int) bool {
		if !customers[i].Revenue.Equal(customers[j].Revenue) {
			return customers[i].Revenue.GreaterThan(customers[j].Revenue)
		}
		return customers[i].CustomerName < customers[j].CustomerName
	})

	var cumulative decimal.Decimal
	for i := range customers {
		share := customers[i].Revenue.Div(grandTotal).Mul(hundred)
		cumulative = cumulative.Add(share)
		customers[i].SharePct = share
		customers[i].CumulativePct = cumulative
		switch {
		case cumulative.LessThanOrEqual(abcCutA):
			customers[i].Band = BandA
		case cumulative.LessThanOrEqual(abcCutB):
			customers[i].Band = BandB
		default:
			customers[i].Band = BandC
		}
	}
	return customers
}
