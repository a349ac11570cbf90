// Package repository define los puertos de lectura del servicio de
// reportes. El hecho de ventas es externo y append-only: todas las
// implementaciones son estrictamente read-only.
package repository

import (
	"context"

	"github.com/tu-usuario/sales-insight/internal/domain/sales"
)

// Dimension dimensión enumerable del hecho (valores distintos para los
// filtros de los reportes).
type Dimension string

const (
	DimSalesReps     Dimension = "reps"
	DimCustomers     Dimension = "customers"
	DimSuppliers     Dimension = "suppliers"
	DimCategories    Dimension = "categories"
	DimProductGroups Dimension = "product-groups"
	DimProducts      Dimension = "products" // nombres canónicos (último nombre por código)
)

// SalesRepository puerto de lectura del hecho de ventas. El filtro se
// empuja a la fuente como predicado con parámetros ligados (nunca valores
// interpolados); los atajos de período deben llegar ya resueltos
// (sales.Filter.Resolve).
type SalesRepository interface {
	// CommercialRows devuelve las filas que pasan la política estándar de
	// reportes comerciales (ventana de años, sin línea de servicio ni
	// proveedor interno) más el filtro dado.
	CommercialRows(ctx context.Context, f sales.Filter) ([]sales.Row, error)

	// AllRows devuelve filas solo con el filtro dado, sin política
	// (población del puente de lenguaje natural).
	AllRows(ctx context.Context, f sales.Filter) ([]sales.Row, error)

	// FallbackCosts máximo costo-o-precio-de-compra positivo por código de
	// producto sobre TODO el historial (el respaldo debe ser conocible fuera
	// de la ventana filtrada).
	FallbackCosts(ctx context.Context) (sales.FallbackCosts, error)

	// CanonicalNames proyección código → nombre vigente (el nombre de la
	// transacción más reciente del código; desempate determinista). Derivada
	// por consulta, nunca almacenada.
	CanonicalNames(ctx context.Context) (map[string]string, error)

	// Distinct valores distintos de la dimensión bajo la política estándar y
	// el filtro dado, orden ascendente. Dimensión desconocida →
	// domain.ErrUnknownDimension.
	Distinct(ctx context.Context, d Dimension, f sales.Filter) ([]string, error)
}
