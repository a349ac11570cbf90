package sales

import (
	"strings"
	"time"
)

// ── Atajos de período ─────────────────────────────────────────────────────────

// Period atajo de rango de fechas con nombre, resuelto contra un instante de
// evaluación explícito (por defecto el reloj de pared; los tests lo fijan).
type Period string

const (
	PeriodNone      Period = ""
	PeriodThisMonth Period = "this_month"
	PeriodLastMonth Period = "last_month"
	PeriodThisYear  Period = "this_year"
)

// ParsePeriod normaliza un token de atajo (inglés o turco). Token no
// reconocido → PeriodNone (sin atajo), nunca un error.
func ParsePeriod(s string) Period {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "this_month", "bu_ay":
		return PeriodThisMonth
	case "last_month", "gecen_ay":
		return PeriodLastMonth
	case "this_year", "bu_yil":
		return PeriodThisYear
	default:
		return PeriodNone
	}
}

// Range resuelve el atajo a [inicio, fin] de calendario contra now.
// ok=false para PeriodNone.
func (p Period) Range(now time.Time) (start, end time.Time, ok bool) {
	switch p {
	case PeriodThisMonth:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		end = start.AddDate(0, 1, -1)
	case PeriodLastMonth:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -1, 0)
		end = start.AddDate(0, 1, -1)
	case PeriodThisYear:
		start = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		end = time.Date(now.Year(), 12, 31, 0, 0, 0, 0, now.Location())
	default:
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// ── Filtro ────────────────────────────────────────────────────────────────────

// Filter predicado unificado de los reportes. Los campos en cero/vacío no
// aportan condición (filtros no seteados son no-ops). Los valores siempre se
// ligan como parámetros en el repositorio, nunca interpolados.
type Filter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Period    Period // atajo; Resolve lo materializa en StartDate/EndDate

	Year  int // 0 = sin filtro
	Month int // 0 = sin filtro

	SalesRep     string
	Customer     string
	Supplier     string
	Category     string
	ProductGroup string
	Product      string // nombre canónico de producto

	Channel Channel
}

// Resolve devuelve una copia con el atajo de período materializado contra el
// instante de evaluación dado. Un rango explícito tiene prioridad sobre el
// atajo. Idempotente.
func (f Filter) Resolve(now time.Time) Filter {
	if f.Period == PeriodNone || f.StartDate != nil || f.EndDate != nil {
		f.Period = PeriodNone
		return f
	}
	start, end, ok := f.Period.Range(now)
	if ok {
		f.StartDate = &start
		f.EndDate = &end
	}
	f.Period = PeriodNone
	return f
}

// Matches evalúa el predicado sobre una fila en memoria. Es el mismo
// contrato que el WHERE que construye el repositorio; se usa para
// sub-particionar poblaciones ya cargadas y en tests.
func (f Filter) Matches(r Row) bool {
	if f.StartDate != nil && r.Date.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && r.Date.After(*f.EndDate) {
		return false
	}
	if f.Year != 0 && r.Year != f.Year {
		return false
	}
	if f.Month != 0 && r.Month != f.Month {
		return false
	}
	if f.SalesRep != "" && r.SalesRep != f.SalesRep {
		return false
	}
	if f.Customer != "" && r.CustomerName != f.Customer {
		return false
	}
	if f.Supplier != "" && r.Supplier != f.Supplier {
		return false
	}
	if f.Category != "" && r.Category != f.Category {
		return false
	}
	if f.ProductGroup != "" && r.ProductGroup != f.ProductGroup {
		return false
	}
	if f.Channel != ChannelNone && ChannelOf(r.ReceiptType) != f.Channel {
		return false
	}
	// El filtro por producto compara contra el nombre canónico, que se
	// resuelve en el repositorio; en memoria comparamos el nombre de la fila.
	if f.Product != "" && r.ProductName != f.Product {
		return false
	}
	return true
}

// ── Política estándar ─────────────────────────────────────────────────────────

// Policy exclusiones permanentes de los reportes comerciales: ventana de
// años soportada, línea de servicio no física e imputación interna de
// gastos. Se aplica antes que cualquier filtro de usuario.
type Policy struct {
	Years              []int  // ventana de reporte; fuera de ella la fila se excluye
	ServiceProductName string // nombre de producto que marca línea de servicio
	InternalSupplier   string // proveedor centinela de gasto interno
}

// DefaultPolicy valores del ledger de origen.
func DefaultPolicy() Policy {
	return Policy{
		Years:              []int{2024, 2025},
		ServiceProductName: "HİZMET",
		InternalSupplier:   "GENEL HARCAMA",
	}
}

// PriorYear el menor año de la ventana (partición "anterior" de churn).
func (p Policy) PriorYear() int {
	min := 0
	for _, y := range p.Years {
		if min == 0 || y < min {
			min = y
		}
	}
	return min
}

// CurrentYear el mayor año de la ventana (partición "actual").
func (p Policy) CurrentYear() int {
	max := 0
	for _, y := range p.Years {
		if y > max {
			max = y
		}
	}
	return max
}

// Allows indica si la fila participa de los reportes comerciales.
func (p Policy) Allows(r Row) bool {
	inWindow := false
	for _, y := range p.Years {
		if r.Year == y {
			inWindow = true
			break
		}
	}
	if !inWindow {
		return false
	}
	if p.ServiceProductName != "" && r.ProductName == p.ServiceProductName {
		return false
	}
	if p.InternalSupplier != "" && r.Supplier == p.InternalSupplier {
		return false
	}
	return true
}
