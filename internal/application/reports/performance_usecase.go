package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/sales-insight/internal/application/dto"
	"github.com/tu-usuario/sales-insight/internal/domain"
	"github.com/tu-usuario/sales-insight/internal/domain/report"
	"github.com/tu-usuario/sales-insight/internal/domain/repository"
	"github.com/tu-usuario/sales-insight/internal/domain/sales"
)

// PerformanceUseCase desempeño de vendedores: KPIs globales, rollup por
// vendedor y comparación lado a lado de dos vendedores.
type PerformanceUseCase struct {
	loader loader
	now    Clock
}

func NewPerformanceUseCase(repo repository.SalesRepository, now Clock) *PerformanceUseCase {
	if now == nil {
		now = time.Now
	}
	return &PerformanceUseCase{loader: loader{repo: repo}, now: now}
}

// RepPerformance resumen de KPIs bajo el filtro dado más el desglose por
// vendedor (utilidad descendente).
func (uc *PerformanceUseCase) RepPerformance(ctx context.Context, f sales.Filter) (*dto.RepPerformanceDTO, error) {
	pop, err := uc.loader.load(ctx, f, uc.now())
	if err != nil {
		return nil, err
	}

	return &dto.RepPerformanceDTO{
		Summary: dto.NewTotalsDTO(report.Summarize(pop.rows)),
		Reps:    dto.NewGroupTotalsDTOs(report.Rollup(pop.rows, report.BySalesRep)),
	}, nil
}

// RepComparison compara dos vendedores sobre la misma población. Se carga
// una sola vez sin filtro de vendedor y cada lado se sub-particiona en
// memoria; un vendedor sin filas sale con KPIs en cero, no como error.
func (uc *PerformanceUseCase) RepComparison(ctx context.Context, repA, repB string, f sales.Filter) (*dto.RepComparisonDTO, error) {
	if repA == "" || repB == "" {
		return nil, fmt.Errorf("%w: la comparación requiere dos vendedores", domain.ErrInvalidInput)
	}

	f.SalesRep = ""
	pop, err := uc.loader.load(ctx, f, uc.now())
	if err != nil {
		return nil, err
	}

	sides := make([]dto.RepSideDTO, 0, 2)
	for _, rep := range []string{repA, repB} {
		rows := filterCosted(pop.rows, sales.Filter{SalesRep: rep})
		sides = append(sides, dto.RepSideDTO{
			SalesRep:  rep,
			TotalsDTO: dto.NewTotalsDTO(report.Summarize(rows)),
		})
	}

	return &dto.RepComparisonDTO{Reps: sides}, nil
}
