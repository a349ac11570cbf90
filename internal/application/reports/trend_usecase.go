package reports

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/sales-insight/internal/application/dto"
	"github.com/tu-usuario/sales-insight/internal/domain"
	"github.com/tu-usuario/sales-insight/internal/domain/report"
	"github.com/tu-usuario/sales-insight/internal/domain/repository"
	"github.com/tu-usuario/sales-insight/internal/domain/sales"
)

// TrendUseCase series temporales: tendencia mensual, comparación de un
// producto entre los años de la ventana, elasticidad de precio y la matriz
// categoría → grupo → mes.
type TrendUseCase struct {
	loader loader
	policy sales.Policy
	now    Clock
}

func NewTrendUseCase(repo repository.SalesRepository, policy sales.Policy, now Clock) *TrendUseCase {
	if now == nil {
		now = time.Now
	}
	return &TrendUseCase{loader: loader{repo: repo}, policy: policy, now: now}
}

// MonthlyTrend serie (año, mes) de ingreso y utilidad, cronológica.
func (uc *TrendUseCase) MonthlyTrend(ctx context.Context, f sales.Filter) (*dto.MonthlyTrendDTO, error) {
	pop, err := uc.loader.load(ctx, f, uc.now())
	if err != nil {
		return nil, err
	}

	return &dto.MonthlyTrendDTO{
		Series: dto.NewGroupTotalsDTOs(report.RollupByKeyAsc(pop.rows, report.ByYearMonth)),
	}, nil
}

// ProductComparison serie mensual de unidades de un producto en los dos años
// de la ventana: 12 filas, meses sin venta en cero (vista de canibalización).
func (uc *TrendUseCase) ProductComparison(ctx context.Context, product string, f sales.Filter) (*dto.ProductComparisonDTO, error) {
	if product == "" {
		return nil, fmt.Errorf("%w: la comparación requiere un producto", domain.ErrInvalidInput)
	}

	f.Product = product
	pop, err := uc.loader.load(ctx, f, uc.now())
	if err != nil {
		return nil, err
	}

	series := report.UnitsByMonthAndYear(pop.rows, uc.policy.Years)

	months := make([]dto.MonthlyComparisonDTO, 0, len(series))
	for _, m := range series {
		units := make(map[string]decimal.Decimal, len(m.Units))
		for year, u := range m.Units {
			units[strconv.Itoa(year)] = u.Round(2)
		}
		months = append(months, dto.MonthlyComparisonDTO{Month: m.Month, Units: units})
	}

	return &dto.ProductComparisonDTO{
		Product: product,
		Years:   uc.policy.Years,
		Months:  months,
	}, nil
}

// PriceElasticity serie mensual de precio unitario promedio de un producto.
func (uc *TrendUseCase) PriceElasticity(ctx context.Context, product string, f sales.Filter) (*dto.ElasticityReportDTO, error) {
	if product == "" {
		return nil, fmt.Errorf("%w: la elasticidad requiere un producto", domain.ErrInvalidInput)
	}

	f.Product = product
	pop, err := uc.loader.load(ctx, f, uc.now())
	if err != nil {
		return nil, err
	}

	points := report.PriceSeries(pop.rows)
	out := make([]dto.PricePointDTO, 0, len(points))
	for _, p := range points {
		out = append(out, dto.PricePointDTO{
			Year:         p.Year,
			Month:        p.Month,
			AvgUnitPrice: p.AvgUnitPrice.Round(2),
			Units:        p.Units.Round(2),
		})
	}

	return &dto.ElasticityReportDTO{Product: product, Points: out}, nil
}

// SalesMatrix matriz anidada categoría → grupo de producto → serie mensual
// de ingreso neto.
func (uc *TrendUseCase) SalesMatrix(ctx context.Context, f sales.Filter) (*dto.SalesMatrixDTO, error) {
	pop, err := uc.loader.load(ctx, f, uc.now())
	if err != nil {
		return nil, err
	}

	matrix := report.SalesMatrix(pop.rows)
	categories := make([]dto.CategoryMatrixDTO, 0, len(matrix))
	for _, c := range matrix {
		groups := make([]dto.GroupSeriesDTO, 0, len(c.Groups))
		for _, g := range c.Groups {
			var monthly [12]decimal.Decimal
			for i, v := range g.Monthly {
				monthly[i] = v.Round(2)
			}
			groups = append(groups, dto.GroupSeriesDTO{
				ProductGroup: g.ProductGroup,
				Monthly:      monthly,
				Total:        g.Total.Round(2),
			})
		}
		categories = append(categories, dto.CategoryMatrixDTO{
			Category: c.Category,
			Groups:   groups,
			Total:    c.Total.Round(2),
		})
	}

	return &dto.SalesMatrixDTO{Categories: categories}, nil
}
