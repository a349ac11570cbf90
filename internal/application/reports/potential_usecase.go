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

// PotentialUseCase reportes de brecha: qué productos le faltan a un cliente
// y qué clientes le faltan a un producto, contra el universo del filtro.
type PotentialUseCase struct {
	loader loader
	repo   repository.SalesRepository
	now    Clock
}

func NewPotentialUseCase(repo repository.SalesRepository, now Clock) *PotentialUseCase {
	if now == nil {
		now = time.Now
	}
	return &PotentialUseCase{loader: loader{repo: repo}, repo: repo, now: now}
}

// ProductPotential productos que el cliente ya compró contra el resto del
// surtido (nombres canónicos). El universo y las compras del cliente se
// cargan en paralelo.
func (uc *PotentialUseCase) ProductPotential(ctx context.Context, customer string, f sales.Filter) (*dto.PotentialDTO, error) {
	if customer == "" {
		return nil, fmt.Errorf("%w: el potencial de productos requiere un cliente", domain.ErrInvalidInput)
	}

	now := uc.now()
	universe := f
	universe.Customer = ""

	type universeResult struct {
		values []string
		err    error
	}
	universeCh := make(chan universeResult, 1)
	go func() {
		values, err := uc.repo.Distinct(ctx, repository.DimProducts, universe.Resolve(now))
		universeCh <- universeResult{values, err}
	}()

	f.Customer = customer
	pop, err := uc.loader.load(ctx, f, now)
	if err != nil {
		return nil, err
	}

	u := <-universeCh
	if u.err != nil {
		return nil, fmt.Errorf("potencial de productos: universo: %w", u.err)
	}

	bought := make([]string, 0, len(pop.rows))
	for _, r := range pop.rows {
		bought = append(bought, report.ByProduct(pop.canonical)(r))
	}

	split := report.SplitByMembership(u.values, report.ToSet(bought))
	return &dto.PotentialDTO{Covered: split.Covered, Potential: split.Potential}, nil
}

// CustomerPotential clientes que ya compran el producto contra el resto de
// la cartera del filtro.
func (uc *PotentialUseCase) CustomerPotential(ctx context.Context, product string, f sales.Filter) (*dto.PotentialDTO, error) {
	if product == "" {
		return nil, fmt.Errorf("%w: el potencial de clientes requiere un producto", domain.ErrInvalidInput)
	}

	now := uc.now()
	universe := f
	universe.Product = ""

	type universeResult struct {
		values []string
		err    error
	}
	universeCh := make(chan universeResult, 1)
	go func() {
		values, err := uc.repo.Distinct(ctx, repository.DimCustomers, universe.Resolve(now))
		universeCh <- universeResult{values, err}
	}()

	f.Product = product
	pop, err := uc.loader.load(ctx, f, now)
	if err != nil {
		return nil, err
	}

	u := <-universeCh
	if u.err != nil {
		return nil, fmt.Errorf("potencial de clientes: universo: %w", u.err)
	}

	buyers := make([]string, 0, len(pop.rows))
	for _, r := range pop.rows {
		buyers = append(buyers, r.CustomerName)
	}

	split := report.SplitByMembership(u.values, report.ToSet(buyers))
	return &dto.PotentialDTO{Covered: split.Covered, Potential: split.Potential}, nil
}
