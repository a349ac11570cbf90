// Package pdf genera la versión descargable del reporte de rentabilidad por
// producto con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del reporte  │  Fecha de generación         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  KPI: Ingreso / Utilidad / Margen% / Productos / Clientes    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Producto | Ingreso | Utilidad | Margen% | Unid.  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/tu-usuario/sales-insight/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoProfitabilityGenerator implementa reports.ProfitabilityPDFGenerator
// usando Maroto v2.
type MarotoProfitabilityGenerator struct{}

func NewMarotoProfitabilityGenerator() *MarotoProfitabilityGenerator {
	return &MarotoProfitabilityGenerator{}
}

// Generate genera el PDF del reporte y devuelve sus bytes.
func (g *MarotoProfitabilityGenerator) Generate(
	_ context.Context,
	rep *dto.ProductProfitabilityDTO,
	generatedAt time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de rentabilidad por producto", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(kpiRow(rep))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableRows(rep.Products) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y fecha de generación (der).
func headerRow(generatedAt time.Time) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New("RENTABILIDAD POR PRODUCTO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Ingreso y utilidad netos de devoluciones, costo real atribuido", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

// kpiRow: bloque de KPIs del resumen.
func kpiRow(rep *dto.ProductProfitabilityDTO) core.Row {
	kpi := func(label, value string) core.Col {
		return col.New(2).Add(
			text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 7, Align: align.Center,
				Color: colorGray, Top: 1,
			}),
			text.New(value, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Center,
				Color: colorPrimary, Top: 6,
			}),
		)
	}
	s := rep.Summary
	return row.New(14).Add(
		col.New(1),
		kpi("INGRESO", s.Revenue.StringFixed(2)),
		kpi("UTILIDAD", s.Profit.StringFixed(2)),
		kpi("MARGEN %", s.MarginPct.StringFixed(2)),
		kpi("PRODUCTOS", fmt.Sprintf("%d", rep.ProductCount)),
		kpi("CLIENTES", fmt.Sprintf("%d", s.CustomerCount)),
		col.New(1),
	)
}

// tableHeaderRow: cabecera de la tabla de productos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Producto", 4, align.Left),
		h("Ingreso", 2, align.Right),
		h("Utilidad", 2, align.Right),
		h("Margen %", 1, align.Right),
		h("Unidades", 2, align.Right),
	)
}

// tableRows: una fila por producto, en el orden del reporte (utilidad
// descendente).
func tableRows(products []dto.GroupTotalsDTO) []core.Row {
	result := make([]core.Row, 0, len(products))
	for i, p := range products {
		result = append(result, row.New(6).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", i+1),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(4).Add(text.New(
				p.Key,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				p.Revenue.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				p.Profit.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				p.MarginPct.StringFixed(1),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				p.Units.StringFixed(0),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}
