package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/sales-insight/internal/application/dto"
	"github.com/tu-usuario/sales-insight/internal/domain"
	"github.com/tu-usuario/sales-insight/internal/domain/repository"
	"github.com/tu-usuario/sales-insight/internal/domain/sales"
)

// DimensionsUseCase enumeración de dimensiones para poblar los filtros de
// la interfaz (vendedores, clientes, proveedores, categorías, grupos,
// productos canónicos).
type DimensionsUseCase struct {
	repo repository.SalesRepository
	now  Clock
}

func NewDimensionsUseCase(repo repository.SalesRepository, now Clock) *DimensionsUseCase {
	if now == nil {
		now = time.Now
	}
	return &DimensionsUseCase{repo: repo, now: now}
}

var knownDimensions = map[string]repository.Dimension{
	string(repository.DimSalesReps):     repository.DimSalesReps,
	string(repository.DimCustomers):     repository.DimCustomers,
	string(repository.DimSuppliers):     repository.DimSuppliers,
	string(repository.DimCategories):    repository.DimCategories,
	string(repository.DimProductGroups): repository.DimProductGroups,
	string(repository.DimProducts):      repository.DimProducts,
}

// Values valores distintos de la dimensión bajo el filtro, ascendente.
// Dimensión desconocida → domain.ErrUnknownDimension.
func (uc *DimensionsUseCase) Values(ctx context.Context, dimension string, f sales.Filter) (*dto.DimensionValuesDTO, error) {
	d, ok := knownDimensions[dimension]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownDimension, dimension)
	}

	values, err := uc.repo.Distinct(ctx, d, f.Resolve(uc.now()))
	if err != nil {
		return nil, fmt.Errorf("dimensiones: %w", err)
	}
	if values == nil {
		values = []string{}
	}

	return &dto.DimensionValuesDTO{Dimension: dimension, Values: values}, nil
}
