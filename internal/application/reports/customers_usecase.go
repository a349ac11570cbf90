package reports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/sales-insight/internal/application/dto"
	"github.com/tu-usuario/sales-insight/internal/domain/report"
	"github.com/tu-usuario/sales-insight/internal/domain/repository"
	"github.com/tu-usuario/sales-insight/internal/domain/sales"
)

// CustomersUseCase analítica de cartera de clientes: clasificación ABC,
// churn entre años, retención por vendedor y riesgo por ritmo de pedidos.
type CustomersUseCase struct {
	loader loader
	policy sales.Policy
	now    Clock
}

func NewCustomersUseCase(repo repository.SalesRepository, policy sales.Policy, now Clock) *CustomersUseCase {
	if now == nil {
		now = time.Now
	}
	return &CustomersUseCase{loader: loader{repo: repo}, policy: policy, now: now}
}

// ABC clasifica la cartera por ingreso acumulado (Pareto 80/95).
func (uc *CustomersUseCase) ABC(ctx context.Context, f sales.Filter) (*dto.ABCReportDTO, error) {
	pop, err := uc.loader.load(ctx, f, uc.now())
	if err != nil {
		return nil, err
	}

	// El total reportado es el denominador de las participaciones: la suma
	// de los clientes clasificados (positivos), no el neto de la población.
	classified := report.ClassifyABC(pop.rows)
	rows := make([]dto.ABCRowDTO, 0, len(classified))
	var total decimal.Decimal
	for _, c := range classified {
		total = total.Add(c.Revenue)
		rows = append(rows, dto.ABCRowDTO{
			CustomerName:  c.CustomerName,
			Revenue:       c.Revenue.Round(2),
			SharePct:      c.SharePct.Round(2),
			CumulativePct: c.CumulativePct.Round(2),
			Band:          string(c.Band),
		})
	}

	return &dto.ABCReportDTO{TotalRevenue: total.Round(2), Customers: rows}, nil
}

// partitionByYear separa la población en las dos particiones anuales de la
// ventana comercial.
func (uc *CustomersUseCase) partitionByYear(rows []sales.CostedRow) (prior, current []sales.CostedRow) {
	priorYear, currentYear := uc.policy.PriorYear(), uc.policy.CurrentYear()
	for _, r := range rows {
		switch r.Year {
		case priorYear:
			prior = append(prior, r)
		case currentYear:
			current = append(current, r)
		}
	}
	return prior, current
}

// Churn clientes perdidos y nuevos entre el año anterior y el actual, con el
// ingreso perdido. El filtro de año no aplica: el reporte define sus propias
// particiones.
func (uc *CustomersUseCase) Churn(ctx context.Context, f sales.Filter) (*dto.ChurnReportDTO, error) {
	f.Year = 0
	pop, err := uc.loader.load(ctx, f, uc.now())
	if err != nil {
		return nil, err
	}

	prior, current := uc.partitionByYear(pop.rows)
	res := report.Churn(prior, current)

	churned := make([]dto.ChurnedCustomerDTO, 0, len(res.Churned))
	for _, c := range res.Churned {
		churned = append(churned, dto.ChurnedCustomerDTO{
			CustomerName: c.CustomerName,
			PriorRevenue: c.PriorRevenue.Round(2),
		})
	}

	return &dto.ChurnReportDTO{
		PriorYear:    uc.policy.PriorYear(),
		CurrentYear:  uc.policy.CurrentYear(),
		Churned:      churned,
		New:          res.New,
		LostRevenue:  res.LostRevenue.Round(2),
		PriorCount:   res.PriorCount,
		CurrentCount: res.CurrentCount,
	}, nil
}

// Retention retención de cartera por vendedor entre las dos particiones
// anuales.
func (uc *CustomersUseCase) Retention(ctx context.Context, f sales.Filter) (*dto.RetentionReportDTO, error) {
	f.Year = 0
	pop, err := uc.loader.load(ctx, f, uc.now())
	if err != nil {
		return nil, err
	}

	prior, current := uc.partitionByYear(pop.rows)
	rows := make([]dto.RetentionRowDTO, 0)
	for _, r := range report.Retention(prior, current) {
		rows = append(rows, dto.RetentionRowDTO{
			SalesRep:       r.SalesRep,
			PriorCustomers: r.PriorCustomers,
			Retained:       r.Retained,
			RetentionPct:   r.RetentionPct.Round(2),
		})
	}

	return &dto.RetentionReportDTO{
		PriorYear:   uc.policy.PriorYear(),
		CurrentYear: uc.policy.CurrentYear(),
		Reps:        rows,
	}, nil
}

// OrderRisk riesgo de pérdida por cliente según su intervalo de pedidos,
// evaluado contra el instante actual. Clientes con un único pedido quedan
// fuera del reporte.
func (uc *CustomersUseCase) OrderRisk(ctx context.Context, f sales.Filter) (*dto.OrderRiskReportDTO, error) {
	now := uc.now()
	pop, err := uc.loader.load(ctx, f, now)
	if err != nil {
		return nil, err
	}

	scored := report.OrderRisk(pop.rows, now)
	rows := make([]dto.OrderRiskRowDTO, 0, len(scored))
	for _, c := range scored {
		rows = append(rows, dto.OrderRiskRowDTO{
			CustomerName:  c.CustomerName,
			OrderDates:    c.OrderDates,
			AvgGapDays:    c.AvgGapDays.Round(1),
			LastOrder:     c.LastOrder.Format("2006-01-02"),
			DaysSinceLast: c.DaysSinceLast,
			Band:          string(c.Band),
		})
	}

	return &dto.OrderRiskReportDTO{Customers: rows}, nil
}
