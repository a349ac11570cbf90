package reports

import (
	"context"
	"time"

	"github.com/tu-usuario/sales-insight/internal/application/dto"
	"github.com/tu-usuario/sales-insight/internal/domain/report"
	"github.com/tu-usuario/sales-insight/internal/domain/repository"
	"github.com/tu-usuario/sales-insight/internal/domain/sales"
)

// ProfitabilityUseCase rentabilidad por producto: rollup de ingreso y
// utilidad con la atribución de costo real (promedio ponderado del grupo o
// respaldo histórico).
type ProfitabilityUseCase struct {
	loader loader
	now    Clock
}

func NewProfitabilityUseCase(repo repository.SalesRepository, now Clock) *ProfitabilityUseCase {
	if now == nil {
		now = time.Now
	}
	return &ProfitabilityUseCase{loader: loader{repo: repo}, now: now}
}

// ProductProfitability construye el reporte de rentabilidad por producto
// bajo el filtro dado: bloque de KPIs más el rollup por nombre canónico,
// utilidad descendente.
func (uc *ProfitabilityUseCase) ProductProfitability(ctx context.Context, f sales.Filter) (*dto.ProductProfitabilityDTO, error) {
	pop, err := uc.loader.load(ctx, f, uc.now())
	if err != nil {
		return nil, err
	}

	products := report.Rollup(pop.rows, report.ByProduct(pop.canonical))

	return &dto.ProductProfitabilityDTO{
		Summary:      dto.NewTotalsDTO(report.Summarize(pop.rows)),
		ProductCount: len(products),
		Products:     dto.NewGroupTotalsDTOs(products),
	}, nil
}
