package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/sales-insight/internal/domain"
	"github.com/tu-usuario/sales-insight/internal/domain/report"
	"github.com/tu-usuario/sales-insight/internal/domain/sales"
)

// ReportFilterQuery parámetros de consulta comunes a los reportes. Los
// campos vacíos no restringen nada; period admite los atajos
// this_month/last_month/this_year (y sus alias turcos).
type ReportFilterQuery struct {
	StartDate    string `query:"start_date"` // YYYY-MM-DD
	EndDate      string `query:"end_date"`   // YYYY-MM-DD
	Period       string `query:"period"`
	Year         int    `query:"year"`
	Month        int    `query:"month" validate:"min=0,max=12"`
	SalesRep     string `query:"sales_rep"`
	Customer     string `query:"customer"`
	Supplier     string `query:"supplier"`
	Category     string `query:"category"`
	ProductGroup string `query:"product_group"`
	Product      string `query:"product"`
	Channel      string `query:"channel"` // toptan | market
}

// ToFilter valida y traduce la consulta al filtro de dominio. Fechas mal
// formadas o mes fuera de rango → domain.ErrInvalidInput.
func (q ReportFilterQuery) ToFilter() (sales.Filter, error) {
	var f sales.Filter

	if q.StartDate != "" {
		t, err := time.Parse("2006-01-02", q.StartDate)
		if err != nil {
			return f, fmt.Errorf("%w: start_date %q", domain.ErrInvalidInput, q.StartDate)
		}
		f.StartDate = &t
	}
	if q.EndDate != "" {
		t, err := time.Parse("2006-01-02", q.EndDate)
		if err != nil {
			return f, fmt.Errorf("%w: end_date %q", domain.ErrInvalidInput, q.EndDate)
		}
		f.EndDate = &t
	}
	if q.Month < 0 || q.Month > 12 {
		return f, fmt.Errorf("%w: month %d", domain.ErrInvalidInput, q.Month)
	}
	f.Period = sales.ParsePeriod(q.Period)
	f.Year = q.Year
	f.Month = q.Month
	f.SalesRep = q.SalesRep
	f.Customer = q.Customer
	f.Supplier = q.Supplier
	f.Category = q.Category
	f.ProductGroup = q.ProductGroup
	f.Product = q.Product
	f.Channel = sales.ParseChannel(q.Channel)
	return f, nil
}

// TotalsDTO bloque de KPIs de una población.
type TotalsDTO struct {
	Revenue       decimal.Decimal `json:"revenue"`
	Profit        decimal.Decimal `json:"profit"`
	MarginPct     decimal.Decimal `json:"margin_pct"`
	Units         decimal.Decimal `json:"units"`
	Liters        decimal.Decimal `json:"liters"`
	CustomerCount int             `json:"customer_count"`
}

// NewTotalsDTO redondea los acumulados a 2 decimales para la respuesta.
func NewTotalsDTO(t report.Totals) TotalsDTO {
	return TotalsDTO{
		Revenue:       t.Revenue.Round(2),
		Profit:        t.Profit.Round(2),
		MarginPct:     t.MarginPct().Round(2),
		Units:         t.Units.Round(2),
		Liters:        t.Liters.Round(2),
		CustomerCount: t.Customers,
	}
}

// GroupTotalsDTO fila de un rollup (clave + KPIs del grupo).
type GroupTotalsDTO struct {
	Key string `json:"key"`
	TotalsDTO
}

func NewGroupTotalsDTO(g report.GroupTotals) GroupTotalsDTO {
	return GroupTotalsDTO{Key: g.Key, TotalsDTO: NewTotalsDTO(g.Totals)}
}

func NewGroupTotalsDTOs(gs []report.GroupTotals) []GroupTotalsDTO {
	out := make([]GroupTotalsDTO, 0, len(gs))
	for _, g := range gs {
		out = append(out, NewGroupTotalsDTO(g))
	}
	return out
}

// RepPerformanceDTO respuesta de GET /api/reports/rep-performance.
type RepPerformanceDTO struct {
	Summary TotalsDTO        `json:"summary"`
	Reps    []GroupTotalsDTO `json:"reps"` // utilidad descendente
}

// RepComparisonDTO respuesta de GET /api/reports/rep-comparison:
// los dos vendedores lado a lado.
type RepComparisonDTO struct {
	Reps []RepSideDTO `json:"reps"`
}

// RepSideDTO un lado de la comparación de vendedores.
type RepSideDTO struct {
	SalesRep string `json:"sales_rep"`
	TotalsDTO
}

// ProductProfitabilityDTO respuesta de GET /api/reports/product-profitability.
type ProductProfitabilityDTO struct {
	Summary      TotalsDTO        `json:"summary"`
	ProductCount int              `json:"product_count"`
	Products     []GroupTotalsDTO `json:"products"` // utilidad descendente
}

// ProductComparisonDTO respuesta de GET /api/reports/product-comparison:
// serie mensual de unidades del producto en los años de la ventana
// (12 filas, meses sin venta en cero).
type ProductComparisonDTO struct {
	Product string                 `json:"product"`
	Years   []int                  `json:"years"`
	Months  []MonthlyComparisonDTO `json:"months"`
}

// MonthlyComparisonDTO unidades de un mes, por año ("2024" → unidades).
type MonthlyComparisonDTO struct {
	Month int                        `json:"month"`
	Units map[string]decimal.Decimal `json:"units"`
}

// MonthlyTrendDTO respuesta de GET /api/reports/monthly-trend.
type MonthlyTrendDTO struct {
	Series []GroupTotalsDTO `json:"series"` // clave "YYYY-MM" ascendente
}

// ABCRowDTO cliente clasificado en el reporte ABC.
type ABCRowDTO struct {
	CustomerName  string          `json:"customer_name"`
	Revenue       decimal.Decimal `json:"revenue"`
	SharePct      decimal.Decimal `json:"share_pct"`
	CumulativePct decimal.Decimal `json:"cumulative_pct"`
	Band          string          `json:"band"`
}

// ABCReportDTO respuesta de GET /api/reports/abc.
type ABCReportDTO struct {
	TotalRevenue decimal.Decimal `json:"total_revenue"` // denominador (solo ingresos positivos)
	Customers    []ABCRowDTO     `json:"customers"`
}

// ChurnedCustomerDTO cliente perdido con su ingreso previo.
type ChurnedCustomerDTO struct {
	CustomerName string          `json:"customer_name"`
	PriorRevenue decimal.Decimal `json:"prior_revenue"`
}

// ChurnReportDTO respuesta de GET /api/reports/churn.
type ChurnReportDTO struct {
	PriorYear    int                  `json:"prior_year"`
	CurrentYear  int                  `json:"current_year"`
	Churned      []ChurnedCustomerDTO `json:"churned"`
	New          []string             `json:"new"`
	LostRevenue  decimal.Decimal      `json:"lost_revenue"`
	PriorCount   int                  `json:"prior_count"`
	CurrentCount int                  `json:"current_count"`
}

// RetentionRowDTO retención de un vendedor entre los dos años de la ventana.
type RetentionRowDTO struct {
	SalesRep       string          `json:"sales_rep"`
	PriorCustomers int             `json:"prior_customers"`
	Retained       int             `json:"retained"`
	RetentionPct   decimal.Decimal `json:"retention_pct"`
}

// RetentionReportDTO respuesta de GET /api/reports/retention.
type RetentionReportDTO struct {
	PriorYear   int               `json:"prior_year"`
	CurrentYear int               `json:"current_year"`
	Reps        []RetentionRowDTO `json:"reps"`
}

// OrderRiskRowDTO riesgo de pérdida de un cliente.
type OrderRiskRowDTO struct {
	CustomerName  string          `json:"customer_name"`
	OrderDates    int             `json:"order_dates"`
	AvgGapDays    decimal.Decimal `json:"avg_gap_days"`
	LastOrder     string          `json:"last_order"` // YYYY-MM-DD
	DaysSinceLast int             `json:"days_since_last"`
	Band          string          `json:"band"` // safe | risky | very_risky
}

// OrderRiskReportDTO respuesta de GET /api/reports/order-risk.
type OrderRiskReportDTO struct {
	Customers []OrderRiskRowDTO `json:"customers"` // días sin comprar descendente
}

// PotentialDTO respuesta de product-potential y customer-potential:
// lo cubierto contra lo pendiente por cubrir.
type PotentialDTO struct {
	Covered   []string `json:"covered"`
	Potential []string `json:"potential"`
}

// PricePointDTO punto de la serie de precio unitario promedio.
type PricePointDTO struct {
	Year         int             `json:"year"`
	Month        int             `json:"month"`
	AvgUnitPrice decimal.Decimal `json:"avg_unit_price"`
	Units        decimal.Decimal `json:"units"`
}

// ElasticityReportDTO respuesta de GET /api/reports/price-elasticity.
type ElasticityReportDTO struct {
	Product string          `json:"product"`
	Points  []PricePointDTO `json:"points"` // cronológico ascendente
}

// GroupSeriesDTO serie mensual de un grupo de producto.
type GroupSeriesDTO struct {
	ProductGroup string             `json:"product_group"`
	Monthly      [12]decimal.Decimal `json:"monthly"` // índice 0 = enero
	Total        decimal.Decimal    `json:"total"`
}

// CategoryMatrixDTO bloque de categoría del reporte matricial.
type CategoryMatrixDTO struct {
	Category string           `json:"category"`
	Groups   []GroupSeriesDTO `json:"groups"`
	Total    decimal.Decimal  `json:"total"`
}

// SalesMatrixDTO respuesta de GET /api/reports/sales-matrix.
type SalesMatrixDTO struct {
	Categories []CategoryMatrixDTO `json:"categories"`
}

// DimensionValuesDTO respuesta de GET /api/dimensions/:dimension.
type DimensionValuesDTO struct {
	Dimension string   `json:"dimension"`
	Values    []string `json:"values"`
}
