package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/sales-insight/internal/domain/sales"
)

// RiskBand banda de riesgo de pérdida de un cliente según su ritmo de compra.
type RiskBand string

const (
	RiskSafe     RiskBand = "safe"       // dentro del ritmo habitual
	RiskRisky    RiskBand = "risky"      // > 1.5 × intervalo promedio sin comprar
	RiskVeryRisk RiskBand = "very_risky" // > 2 × intervalo promedio sin comprar
)

var (
	riskFactorHigh = decimal.NewFromFloat(2.0)
	riskFactorMid  = decimal.NewFromFloat(1.5)
	// Base de respaldo si el intervalo promedio resultara indefinido
	// (no debería ocurrir con ≥2 fechas distintas, pero se protege).
	riskDefaultGap = decimal.NewFromInt(365)
)

// CustomerRisk puntuación de riesgo de un cliente.
type CustomerRisk struct {
	CustomerName  string
	OrderDates    int             // fechas de pedido distintas
	AvgGapDays    decimal.Decimal // intervalo promedio entre pedidos, en días
	LastOrder     time.Time
	DaysSinceLast int
	Band          RiskBand
}

// OrderRisk puntúa cada cliente por su intervalo de pedidos.
//
// Secuencia de fechas de pedido distintas, ascendente; gaps en días entre
// pedidos consecutivos; avgGap = media. Se exige un mínimo de 2 fechas
// distintas: un cliente con un único pedido se EXCLUYE del reporte (no se
// clasifica como "safe"). Banda relativa a daysSinceLast = today − última
// fecha: > 2×avgGap muy riesgoso, > 1.5×avgGap riesgoso, si no seguro.
//
// Orden de salida: días sin comprar descendente, nombre ascendente.
func OrderRisk(rows []sales.CostedRow, today time.Time) []CustomerRisk {
	datesByCustomer := make(map[string]map[string]time.Time)
	for _, r := range rows {
		key := r.DateKey()
		if datesByCustomer[r.CustomerName] == nil {
			datesByCustomer[r.CustomerName] = make(map[string]time.Time)
		}
		datesByCustomer[r.CustomerName][key] = r.Date
	}

	out := make([]CustomerRisk, 0, len(datesByCustomer))
	for name, dateSet := range datesByCustomer {
		if len(dateSet) < 2 {
			continue
		}
		dates := make([]time.Time, 0, len(dateSet))
		for _, d := range dateSet {
			dates = append(dates, d)
		}
		sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

		var totalGap int64
		for i := 1; i < len(dates); i++ {
			totalGap += daysBetween(dates[i-1], dates[i])
		}
		avgGap := decimal.NewFromInt(totalGap).
			Div(decimal.NewFromInt(int64(len(dates) - 1)))

		base := avgGap
		if !base.IsPositive() {
			base = riskDefaultGap
		}

		last := dates[len(dates)-1]
		since := daysBetween(last, today)
		sinceDec := decimal.NewFromInt(since)

		band := RiskSafe
		switch {
		case sinceDec.GreaterThan(base.Mul(riskFactorHigh)):
			band = RiskVeryRisk
		case sinceDec.GreaterThan(base.Mul(riskFactorMid)):
			band = RiskRisky
		}

		out = append(out, CustomerRisk{
			CustomerName:  name,
			OrderDates:    len(dateSet),
			AvgGapDays:    avgGap,
			LastOrder:     last,
			DaysSinceLast: int(since),
			Band:          band,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].DaysSinceLast != out[j].DaysSinceLast {
			return out[i].DaysSinceLast > out[j].DaysSinceLast
		}
		return out[i].CustomerName < out[j].CustomerName
	})
	return out
}

// daysBetween días de calendario entre dos fechas (from ≤ to).
func daysBetween(from, to time.Time) int64 {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int64(t.Sub(f).Hours() / 24)
}
