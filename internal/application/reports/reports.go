// Package reports contiene los casos de uso de los reportes comerciales.
//
// Cada caso de uso es un pipeline puro por petición: cargar filas bajo el
// filtro, normalizar y costear, reducir con las etapas del paquete
// report. Las sub-consultas independientes (filas, costos de respaldo,
// nombres canónicos) se lanzan en paralelo con goroutines y canales.
package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/sales-insight/internal/domain/repository"
	"github.com/tu-usuario/sales-insight/internal/domain/sales"
)

// Clock instante de evaluación de los atajos de período y del reporte de
// riesgo. Producción usa time.Now; los tests lo fijan.
type Clock func() time.Time

// population filas ya costeadas más la proyección de nombres vigentes.
type population struct {
	rows      []sales.CostedRow
	canonical map[string]string
}

// loader carga y costea la población comercial de un reporte.
type loader struct {
	repo repository.SalesRepository
}

// load resuelve el filtro y lanza en paralelo las tres lecturas que todo
// reporte necesita: filas del período, costos de respaldo del historial
// completo y nombres canónicos.
func (l loader) load(ctx context.Context, f sales.Filter, now time.Time) (population, error) {
	f = f.Resolve(now)

	type rowsResult struct {
		rows []sales.Row
		err  error
	}
	type costsResult struct {
		costs sales.FallbackCosts
		err   error
	}
	type namesResult struct {
		names map[string]string
		err   error
	}

	rowsCh := make(chan rowsResult, 1)
	costsCh := make(chan costsResult, 1)
	namesCh := make(chan namesResult, 1)

	go func() {
		rows, err := l.repo.CommercialRows(ctx, f)
		rowsCh <- rowsResult{rows, err}
	}()
	go func() {
		costs, err := l.repo.FallbackCosts(ctx)
		costsCh <- costsResult{costs, err}
	}()
	go func() {
		names, err := l.repo.CanonicalNames(ctx)
		namesCh <- namesResult{names, err}
	}()

	rows := <-rowsCh
	costs := <-costsCh
	names := <-namesCh

	if rows.err != nil {
		return population{}, fmt.Errorf("reportes: filas del período: %w", rows.err)
	}
	if costs.err != nil {
		return population{}, fmt.Errorf("reportes: costos de respaldo: %w", costs.err)
	}
	if names.err != nil {
		return population{}, fmt.Errorf("reportes: nombres canónicos: %w", names.err)
	}

	return population{
		rows:      sales.AttributeCosts(rows.rows, costs.costs),
		canonical: names.names,
	}, nil
}

// filterCosted sub-particiona una población ya cargada con el mismo
// predicado del repositorio.
func filterCosted(rows []sales.CostedRow, f sales.Filter) []sales.CostedRow {
	out := make([]sales.CostedRow, 0, len(rows))
	for _, r := range rows {
		if f.Matches(r.Row) {
			out = append(out, r)
		}
	}
	return out
}
