package postgres

import (
	"fmt"
	"strings"

	"github.com/tu-usuario/sales-insight/internal/domain/sales"
)

// whereBuilder acumula condiciones AND con placeholders posicionales.
// Todo valor de usuario entra como argumento ligado ($n), nunca interpolado.
type whereBuilder struct {
	conds []string
	args  []any
}

// add agrega una condición; cada "?" del fragmento se reemplaza por el
// siguiente placeholder posicional.
func (b *whereBuilder) add(cond string, args ...any) {
	for _, a := range args {
		b.args = append(b.args, a)
		cond = strings.Replace(cond, "?", fmt.Sprintf("$%d", len(b.args)), 1)
	}
	b.conds = append(b.conds, cond)
}

// clause devuelve " WHERE ..." o cadena vacía si no hay condiciones.
func (b *whereBuilder) clause() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conds, " AND ")
}

// applyPolicy empuja la política estándar de reportes comerciales.
func (b *whereBuilder) applyPolicy(p sales.Policy) {
	if len(p.Years) > 0 {
		years := make([]int32, 0, len(p.Years))
		for _, y := range p.Years {
			years = append(years, int32(y))
		}
		b.add("year = ANY(?)", years)
	}
	if p.ServiceProductName != "" {
		b.add("product_name <> ?", p.ServiceProductName)
	}
	if p.InternalSupplier != "" {
		b.add("(supplier IS NULL OR supplier <> ?)", p.InternalSupplier)
	}
}

// applyFilter empuja el filtro de usuario. Los atajos de período deben
// llegar ya resueltos (sales.Filter.Resolve); los campos vacíos no aportan
// condición.
func (b *whereBuilder) applyFilter(f sales.Filter) {
	if f.StartDate != nil {
		b.add("date >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		b.add("date <= ?", *f.EndDate)
	}
	if f.Year != 0 {
		b.add("year = ?", f.Year)
	}
	if f.Month != 0 {
		b.add("month = ?", f.Month)
	}
	if f.SalesRep != "" {
		b.add("sales_rep = ?", f.SalesRep)
	}
	if f.Customer != "" {
		b.add("customer_name = ?", f.Customer)
	}
	if f.Supplier != "" {
		b.add("supplier = ?", f.Supplier)
	}
	if f.Category != "" {
		b.add("category = ?", f.Category)
	}
	if f.ProductGroup != "" {
		b.add("product_group = ?", f.ProductGroup)
	}
	if rts := f.Channel.ReceiptTypes(); len(rts) > 0 {
		codes := make([]int32, 0, len(rts))
		for _, rt := range rts {
			codes = append(codes, int32(rt))
		}
		b.add("receipt_type = ANY(?)", codes)
	}
	if f.Product != "" {
		// El filtro por producto usa el nombre canónico: cualquier código
		// cuyo nombre vigente sea el pedido (productos renombrados incluidos).
		b.add("product_code IN (SELECT product_code FROM ("+canonicalRankedSQL+") c WHERE c.rn = 1 AND c.product_name = ?)", f.Product)
	}
}
